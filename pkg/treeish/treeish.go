// SPDX-License-Identifier: MPL-2.0

package treeish

import (
	"strings"

	"findish-cli/pkg/types"
)

// Kind discriminates the variants of a Treeish.
type Kind int

const (
	// KindEmpty is the sentinel for the empty expression; it matches nothing.
	KindEmpty Kind = iota
	// KindPath is a literal filesystem path.
	KindPath
	// KindGlob is a glob pattern with an implicit root (the current
	// working context).
	KindGlob
	// KindGlobIn is a glob pattern rooted at an explicit literal tree.
	KindGlobIn
)

// String returns a short name for the Kind.
func (k Kind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindGlob:
		return "glob"
	case KindGlobIn:
		return "glob-in"
	default:
		return "empty"
	}
}

// Treeish is the normalized form of a treeish expression: a literal path, a
// glob, or a glob anchored in a literal tree. The zero value is the empty
// Treeish, which matches nothing.
//
// A Treeish is immutable after construction and only New produces non-zero
// values, so every Treeish in existence satisfies the join rule: the glob
// of a KindGlobIn value is never rooted, and no variant ever holds an empty
// path or pattern.
type Treeish struct {
	kind Kind
	tree types.TreePath
	glob types.GlobPattern
}

// New parses expression and validates the result. The returned error, when
// non-nil, is a *BuildError.
func New(expression string) (Treeish, error) {
	part, err := parse(expression)
	if err != nil {
		return Treeish{}, &BuildError{Expression: expression, Cause: err}
	}
	t, err := fromPartitioned(part)
	if err != nil {
		return Treeish{}, &BuildError{Expression: expression, Cause: err}
	}
	return t, nil
}

// fromPartitioned converts an intermediate partition into a Treeish. It is
// the sole gate for the join rule; every construction path funnels through
// it.
func fromPartitioned(part partitioned) (Treeish, error) {
	switch part.kind {
	case partitionPath:
		return Treeish{kind: KindPath, tree: part.tree}, nil
	case partitionGlob:
		return Treeish{kind: KindGlob, glob: part.glob}, nil
	case partitionGlobIn:
		if part.glob.IsRooted() {
			return Treeish{}, &RuleError{Tree: part.tree, Glob: part.glob}
		}
		return Treeish{kind: KindGlobIn, tree: part.tree, glob: part.glob}, nil
	default:
		return Treeish{}, nil
	}
}

// Kind returns the variant of the Treeish.
func (t Treeish) Kind() Kind { return t.kind }

// IsEmpty reports whether the Treeish is the empty sentinel.
func (t Treeish) IsEmpty() bool { return t.kind == KindEmpty }

// HasPath reports whether the Treeish carries an explicit literal-path
// component (true for KindPath and KindGlobIn).
func (t Treeish) HasPath() bool {
	return t.kind == KindPath || t.kind == KindGlobIn
}

// HasGlob reports whether the Treeish carries a glob component (true for
// KindGlob and KindGlobIn).
func (t Treeish) HasGlob() bool {
	return t.kind == KindGlob || t.kind == KindGlobIn
}

// Path returns the literal path when the Treeish is a KindPath.
func (t Treeish) Path() (types.TreePath, bool) {
	if t.kind != KindPath {
		return "", false
	}
	return t.tree, true
}

// Glob returns the pattern when the Treeish is a KindGlob.
func (t Treeish) Glob() (types.GlobPattern, bool) {
	if t.kind != KindGlob {
		return "", false
	}
	return t.glob, true
}

// GlobIn returns the tree and pattern when the Treeish is a KindGlobIn.
func (t Treeish) GlobIn() (types.TreePath, types.GlobPattern, bool) {
	if t.kind != KindGlobIn {
		return "", "", false
	}
	return t.tree, t.glob, true
}

// IntoOwned returns a Treeish whose components no longer share backing
// memory with the expression they were parsed from. Substrings produced by
// parsing alias the original expression's allocation and keep all of it
// reachable; IntoOwned re-allocates just the held components. Calling it on
// an already-detached Treeish is equivalent to a copy.
func (t Treeish) IntoOwned() Treeish {
	t.tree = types.TreePath(strings.Clone(string(t.tree)))
	t.glob = types.GlobPattern(strings.Clone(string(t.glob)))
	return t
}

// String renders the Treeish back in expression syntax.
func (t Treeish) String() string {
	switch t.kind {
	case KindPath:
		return string(t.tree)
	case KindGlob:
		return string(t.glob)
	case KindGlobIn:
		return string(t.tree) + Separator + string(t.glob)
	default:
		return ""
	}
}
