// SPDX-License-Identifier: MPL-2.0

package treeish

import (
	"strings"

	"findish-cli/internal/glob"
	"findish-cli/pkg/types"
)

// Separator joins the literal tree component to the glob component in an
// explicit treeish expression, as in "/mnt/media::**/*.txt". Only the first
// occurrence is significant; escaping the separator inside a pattern is not
// supported.
const Separator = "::"

type partitionKind int

const (
	partitionNone partitionKind = iota
	partitionPath
	partitionGlob
	partitionGlobIn
)

// partitioned is the intermediate result of splitting an expression, before
// the join rule has been checked. Components are substrings of the original
// expression; the kind says which of them are meaningful.
type partitioned struct {
	kind partitionKind
	tree types.TreePath
	glob types.GlobPattern
}

// parse splits expression into its literal and glob components.
//
// Precedence is fixed. An explicit "::" separator wins: its suffix must be
// a valid glob, because the separator is an unambiguous statement of intent
// and a malformed glob after it is not recoverable by literal
// interpretation. Without a separator the whole expression is tried as a
// glob and partitioned into literal prefix and remainder; a string that
// fails glob validation falls back to a literal path. The empty expression
// produces no partition at all.
func parse(expression string) (partitioned, error) {
	if prefix, suffix, found := strings.Cut(expression, Separator); found {
		if suffix == "" {
			return partitioned{}, &ParseError{Expression: expression}
		}
		pattern := types.GlobPattern(suffix)
		if err := pattern.Validate(); err != nil {
			return partitioned{}, err
		}
		if prefix == "" {
			// An empty prefix is discarded, never kept as a degenerate
			// literal path.
			return partitioned{kind: partitionGlob, glob: pattern}, nil
		}
		return partitioned{kind: partitionGlobIn, tree: types.TreePath(prefix), glob: pattern}, nil
	}

	if expression == "" {
		return partitioned{kind: partitionNone}, nil
	}

	if types.GlobPattern(expression).Validate() == nil {
		prefix, remainder := glob.Partition(expression)
		switch {
		case prefix != "" && remainder != "":
			return partitioned{
				kind: partitionGlobIn,
				tree: types.TreePath(prefix),
				glob: types.GlobPattern(remainder),
			}, nil
		case remainder != "":
			return partitioned{kind: partitionGlob, glob: types.GlobPattern(remainder)}, nil
		default:
			// No metacharacters: the expression is entirely literal.
			return partitioned{kind: partitionPath, tree: types.TreePath(prefix)}, nil
		}
	}

	return partitioned{kind: partitionPath, tree: types.TreePath(expression)}, nil
}
