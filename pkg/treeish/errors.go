// SPDX-License-Identifier: MPL-2.0

package treeish

import (
	"errors"
	"fmt"

	"findish-cli/pkg/types"
)

var (
	// ErrParse is the sentinel error wrapped by ParseError.
	ErrParse = errors.New("malformed treeish expression")

	// ErrRootedGlobIn is the sentinel error wrapped by RuleError.
	ErrRootedGlobIn = errors.New("rooted glob joined to an explicit tree")
)

type (
	// BuildError is returned by New when an expression cannot be turned
	// into a Treeish. It records the offending expression and wraps one of
	// three causes: an invalid glob pattern
	// (types.InvalidGlobPatternError), a parse failure (ParseError), or a
	// join-rule violation (RuleError). All three are deterministic input
	// errors; the only recovery is correcting the expression text.
	BuildError struct {
		Expression string
		Cause      error
	}

	// ParseError reports that the expression grammar could not be
	// exhaustively consumed.
	ParseError struct {
		Expression string
	}

	// RuleError reports a combined tree-and-glob expression whose glob is
	// rooted. A rooted glob cannot be joined under a tree
	// non-destructively, so such expressions are rejected outright.
	RuleError struct {
		Tree types.TreePath
		Glob types.GlobPattern
	}
)

// Error implements the error interface for BuildError.
func (e *BuildError) Error() string {
	return fmt.Sprintf("build treeish from %q: %v", e.Expression, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *BuildError) Unwrap() error { return e.Cause }

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse treeish expression %q", e.Expression)
}

// Unwrap returns ErrParse for errors.Is() compatibility.
func (e *ParseError) Unwrap() error { return ErrParse }

// Error implements the error interface for RuleError.
func (e *RuleError) Error() string {
	return fmt.Sprintf("glob %q declares its own root and cannot be joined under tree %q", e.Glob, e.Tree)
}

// Unwrap returns ErrRootedGlobIn for errors.Is() compatibility.
func (e *RuleError) Unwrap() error { return ErrRootedGlobIn }
