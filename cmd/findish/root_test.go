// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"findish-cli/internal/config"
	"findish-cli/pkg/treeish"
	"findish-cli/pkg/types"

	"github.com/spf13/cobra"
)

// newWalkFlagsCommand binds the walk flag variables to a throwaway command
// so tests can exercise flag/config precedence without touching rootCmd's
// flag state.
func newWalkFlagsCommand() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().IntVar(&flagMaxDepth, "max-depth", 0, "")
	c.Flags().BoolVar(&flagFollow, "follow", false, "")
	c.Flags().BoolVar(&flagFilesOnly, "files-only", false, "")
	c.Flags().StringArrayVar(&flagIgnore, "ignore", nil, "")
	return c
}

func TestWalkBehaviorUsesConfigDefaults(t *testing.T) {
	appConfig = &config.Config{
		Walk: config.WalkConfig{MaxDepth: 4, FollowLinks: true, Ignore: []string{"**/.git/**"}},
	}
	t.Cleanup(func() { appConfig = config.DefaultConfig() })

	c := newWalkFlagsCommand()
	behavior := walkBehavior(c)

	if behavior.MaxDepth != 4 || !behavior.FollowLinks {
		t.Errorf("walkBehavior() = %+v, want config defaults applied", behavior)
	}
	if !slices.Equal(behavior.Ignore, []string{"**/.git/**"}) {
		t.Errorf("walkBehavior().Ignore = %v, want config ignore list", behavior.Ignore)
	}
}

func TestWalkBehaviorFlagsOverrideConfig(t *testing.T) {
	appConfig = &config.Config{
		Walk: config.WalkConfig{MaxDepth: 4, FollowLinks: true},
	}
	t.Cleanup(func() { appConfig = config.DefaultConfig() })

	c := newWalkFlagsCommand()
	if err := c.Flags().Set("max-depth", "2"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := c.Flags().Set("follow", "false"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	behavior := walkBehavior(c)
	if behavior.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want flag value 2", behavior.MaxDepth)
	}
	if behavior.FollowLinks {
		t.Error("FollowLinks = true, want explicit flag value false")
	}
}

func TestWatchTarget(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name         string
		expression   string
		wantRoot     string
		wantPatterns []string
	}{
		{name: "directory path", expression: dir, wantRoot: dir},
		{name: "file path watches its parent", expression: file, wantRoot: dir},
		{name: "bare glob", expression: "**/*.txt", wantRoot: ".", wantPatterns: []string{"**/*.txt"}},
		{name: "anchored glob", expression: dir + "::**/*.txt", wantRoot: dir, wantPatterns: []string{"**/*.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := treeish.New(tt.expression)
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.expression, err)
			}
			root, patterns := watchTarget(tr)
			if root != tt.wantRoot {
				t.Errorf("watchTarget() root = %q, want %q", root, tt.wantRoot)
			}
			if !slices.Equal(patterns, tt.wantPatterns) {
				t.Errorf("watchTarget() patterns = %v, want %v", patterns, tt.wantPatterns)
			}
		})
	}
}

func TestRunFindPrintsMatchingEntries(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{dir + "::*.txt"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := strings.Fields(out.String())
	want := []string{filepath.Join(dir, "a.txt")}
	if !slices.Equal(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestRunFindBuildFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"dir::["})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("Execute() = nil error for malformed expression")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error is not an *ExitError: %v", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("ExitError.Code = %d, want 1", exitErr.Code)
	}
	if !errors.Is(err, types.ErrInvalidGlobPattern) {
		t.Errorf("error does not wrap ErrInvalidGlobPattern: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("stdout not empty on build failure: %q", out.String())
	}
}
