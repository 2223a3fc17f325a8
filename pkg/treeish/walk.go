// SPDX-License-Identifier: MPL-2.0

package treeish

import (
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"findish-cli/pkg/fspath"
	"findish-cli/pkg/types"
)

type (
	// WalkBehavior bundles traversal policy. The zero value walks without
	// depth bounds, does not follow symbolic links, yields directories as
	// well as files, and ignores nothing.
	WalkBehavior struct {
		// MaxDepth bounds recursion relative to the walk root: entries more
		// than MaxDepth segments below the root are pruned. Zero or
		// negative means unbounded.
		MaxDepth int

		// FollowLinks descends through symbolic links that resolve to
		// directories. Cycles are guarded by tracking resolved targets;
		// a target is walked at most once per traversal.
		FollowLinks bool

		// FilesOnly suppresses directory entries from the yielded
		// sequence. Directories are still descended into.
		FilesOnly bool

		// Ignore lists doublestar patterns, matched against slash-relative
		// paths under the walk root, that are pruned from the traversal
		// entirely.
		Ignore []string
	}

	// Entry is one filesystem object produced by a walk. Path is the
	// entry's location joined under the walk root, in the OS-native
	// separator convention.
	Entry struct {
		Path types.TreePath
		Info fs.DirEntry
	}
)

// DefaultWalkBehavior returns the zero WalkBehavior.
func DefaultWalkBehavior() WalkBehavior { return WalkBehavior{} }

// Walk traverses the subtree denoted by the Treeish with default behavior.
// See WalkWithBehavior.
func (t Treeish) Walk() iter.Seq2[Entry, error] {
	return t.WalkWithBehavior(DefaultWalkBehavior())
}

// WalkWithBehavior returns a lazy sequence over the filesystem entries the
// Treeish denotes. Traversal happens during iteration, in the order the
// underlying directory walk visits entries, and each range over the
// sequence performs a fresh traversal.
//
// Dispatch by variant: a KindPath walks everything under the literal path;
// a KindGlob matches its pattern against paths relative to the current
// working directory; a KindGlobIn matches its pattern against paths
// relative to the explicit tree. The empty Treeish yields nothing.
//
// I/O failures on individual entries are yielded as (Entry, error) pairs
// and never terminate the sequence.
func (t Treeish) WalkWithBehavior(behavior WalkBehavior) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		if t.kind == KindEmpty {
			return
		}
		base, pattern := t.walkTarget()
		w := &walker{
			base:     base,
			pattern:  string(pattern),
			behavior: behavior,
			yield:    yield,
			visited:  make(map[string]struct{}),
		}
		if resolved, err := filepath.EvalSymlinks(string(base)); err == nil {
			w.visited[resolved] = struct{}{}
		}
		w.walkFrom(string(base), "", 0)
	}
}

// walkTarget maps the variant onto a traversal root and match pattern. An
// empty pattern matches every entry.
func (t Treeish) walkTarget() (base types.TreePath, pattern types.GlobPattern) {
	switch t.kind {
	case KindPath:
		return t.tree, ""
	case KindGlob:
		// The implicit root is the current working context. "." is not a
		// canonical location, but it is the one spelling every supported
		// platform understands.
		return ".", t.glob
	case KindGlobIn:
		return t.tree, t.glob
	default:
		return "", ""
	}
}

// walker carries the state of one traversal. It wraps filepath.WalkDir,
// adding pattern matching, ignore pruning, depth bounds, and optional
// symlink descent on top of it.
type walker struct {
	base     types.TreePath
	pattern  string
	behavior WalkBehavior
	yield    func(Entry, error) bool
	visited  map[string]struct{}
	stopped  bool
}

// walkFrom traverses the directory tree at dir. logical is the
// slash-relative position of dir under the walk root ("" for the root
// itself) and depth is the number of segments in it; both diverge from the
// physical path once a symlink has been followed.
func (w *walker) walkFrom(dir, logical string, depth int) {
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if w.stopped {
			return fs.SkipAll
		}

		rel, relErr := filepath.Rel(dir, p)

		if err != nil {
			errPath := types.TreePath(p)
			if relErr == nil {
				errPath = w.displayPath(path.Join(logical, filepath.ToSlash(rel)))
			}
			if !w.emit(Entry{Path: errPath}, err) {
				return fs.SkipAll
			}
			return nil
		}
		if relErr != nil {
			return nil
		}

		if rel == "." {
			// The walk root itself: produced only by the match-everything
			// walk of a literal path, and only from the outermost call. A
			// root that is itself a file is not a directory entry, so
			// FilesOnly never suppresses it.
			if logical == "" && w.pattern == "" && !(w.behavior.FilesOnly && d.IsDir()) {
				if !w.emit(Entry{Path: w.base, Info: d}, nil) {
					return fs.SkipAll
				}
			}
			return nil
		}

		logicalRel := path.Join(logical, filepath.ToSlash(rel))
		entryDepth := depth + 1 + strings.Count(filepath.ToSlash(rel), "/")

		if w.isIgnored(logicalRel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if w.matches(logicalRel) && !(w.behavior.FilesOnly && d.IsDir()) {
			if !w.emit(Entry{Path: w.displayPath(logicalRel), Info: d}, nil) {
				return fs.SkipAll
			}
		}

		if d.IsDir() {
			if w.behavior.MaxDepth > 0 && entryDepth >= w.behavior.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if w.behavior.FollowLinks && d.Type()&fs.ModeSymlink != 0 {
			w.followLink(p, logicalRel, entryDepth)
			if w.stopped {
				return fs.SkipAll
			}
		}
		return nil
	})
}

// followLink descends into a symlink that resolves to a directory, keeping
// the symlink's logical position as the subtree's logical root. Resolved
// targets are walked at most once per traversal.
func (w *walker) followLink(p, logicalRel string, depth int) {
	target, err := filepath.EvalSymlinks(p)
	if err != nil {
		w.emit(Entry{Path: w.displayPath(logicalRel)}, err)
		return
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return
	}
	if _, seen := w.visited[target]; seen {
		return
	}
	w.visited[target] = struct{}{}
	if w.behavior.MaxDepth > 0 && depth >= w.behavior.MaxDepth {
		return
	}
	w.walkFrom(target, logicalRel, depth)
}

// displayPath joins a slash-relative logical path under the walk root in
// the OS-native separator convention.
func (w *walker) displayPath(logicalRel string) types.TreePath {
	return fspath.JoinStr(w.base, filepath.FromSlash(logicalRel))
}

// matches reports whether the slash-relative path matches the walk
// pattern. An empty pattern matches everything.
func (w *walker) matches(logicalRel string) bool {
	if w.pattern == "" {
		return true
	}
	matched, err := doublestar.Match(w.pattern, logicalRel)
	return err == nil && matched
}

// isIgnored reports whether the slash-relative path matches any ignore
// pattern.
func (w *walker) isIgnored(logicalRel string) bool {
	for _, pat := range w.behavior.Ignore {
		if matched, err := doublestar.Match(pat, logicalRel); err == nil && matched {
			return true
		}
	}
	return false
}

// emit yields one entry and records when the consumer has stopped pulling.
func (w *walker) emit(e Entry, err error) bool {
	if !w.yield(e, err) {
		w.stopped = true
		return false
	}
	return true
}
