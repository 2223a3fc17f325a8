// SPDX-License-Identifier: MPL-2.0

package fspath_test

import (
	"path/filepath"
	"testing"

	"findish-cli/pkg/fspath"
	"findish-cli/pkg/types"
)

func TestJoin(t *testing.T) {
	t.Parallel()

	got := fspath.Join(types.TreePath("mnt"), types.TreePath("media"))
	want := types.TreePath(filepath.Join("mnt", "media"))
	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}

func TestJoinStr(t *testing.T) {
	t.Parallel()

	got := fspath.JoinStr(types.TreePath("/mnt/media"), "sub", "file.txt")
	want := types.TreePath(filepath.Join("/mnt/media", "sub", "file.txt"))
	if got != want {
		t.Errorf("JoinStr() = %q, want %q", got, want)
	}
}

func TestDir(t *testing.T) {
	t.Parallel()

	got := fspath.Dir(types.TreePath(filepath.Join("a", "b", "c")))
	want := types.TreePath(filepath.Join("a", "b"))
	if got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}

func TestAbs(t *testing.T) {
	t.Parallel()

	got, err := fspath.Abs(types.TreePath("rel"))
	if err != nil {
		t.Fatalf("Abs() error = %v", err)
	}
	if !fspath.IsAbs(got) {
		t.Errorf("Abs() = %q, want absolute path", got)
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	got := fspath.Clean(types.TreePath("a//b/../c"))
	want := types.TreePath(filepath.Clean("a//b/../c"))
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestSlashConversions(t *testing.T) {
	t.Parallel()

	p := types.TreePath("a/b/c")
	native := fspath.FromSlash(p)
	if got := fspath.ToSlash(native); got != "a/b/c" {
		t.Errorf("ToSlash(FromSlash(%q)) = %q, want %q", p, got, "a/b/c")
	}
}
