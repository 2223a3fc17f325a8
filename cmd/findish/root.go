// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the findish CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"findish-cli/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// noColor disables styled output
	noColor bool

	flagMaxDepth  int
	flagFollow    bool
	flagFilesOnly bool
	flagIgnore    []string
	flagWatch     bool

	// appConfig holds the loaded configuration; flags override it.
	appConfig = config.DefaultConfig()

	rootCmd = &cobra.Command{
		Use:   "findish <expression>",
		Short: "List filesystem entries matching a treeish expression",
		Long: TitleStyle.Render("findish") + SubtitleStyle.Render(" - walk paths, globs, and anchored globs") + `

A treeish expression is a literal path, a glob, or both joined by '::':

  ` + CmdStyle.Render("findish /var/log/app.log") + `         a literal path
  ` + CmdStyle.Render("findish '**/*.txt'") + `               a glob under the current directory
  ` + CmdStyle.Render("findish '/mnt/media::**/*.txt'") + `   a glob anchored at /mnt/media

The glob side of an anchored expression must not be rooted: the anchor
already names the root. Matching paths are printed one per line; entries
that cannot be read are skipped (shown with --verbose).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runFind,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is findish/findish.yaml in the user config dir)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")

	// Walk flags
	rootCmd.Flags().IntVar(&flagMaxDepth, "max-depth", 0, "bound traversal depth (0 = unbounded)")
	rootCmd.Flags().BoolVar(&flagFollow, "follow", false, "follow symbolic links to directories")
	rootCmd.Flags().BoolVar(&flagFilesOnly, "files-only", false, "print files only, not directories")
	rootCmd.Flags().StringArrayVar(&flagIgnore, "ignore", nil, "glob pattern to prune from the traversal (repeatable)")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "keep running and refresh the listing when files change")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig loads the config file and environment overrides.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		// Config problems are surfaced but never fatal; defaults apply.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
		return
	}
	appConfig = cfg

	// Apply settings from config when not set via flag
	if !verbose {
		verbose = cfg.Verbose
	}
	if !noColor {
		noColor = cfg.NoColor
	}
	if noColor {
		// lipgloss and termenv both honor NO_COLOR.
		os.Setenv("NO_COLOR", "1")
	}
}
