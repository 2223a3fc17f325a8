// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidGlobPattern is the sentinel error wrapped by InvalidGlobPatternError.
var ErrInvalidGlobPattern = errors.New("invalid glob pattern")

type (
	// GlobPattern is a doublestar-compatible glob pattern over slash-separated
	// paths (e.g. "**/*.txt"). A valid GlobPattern is never empty: "no
	// pattern" is expressed by omitting the value. The zero value ("") is
	// invalid.
	GlobPattern string

	// InvalidGlobPatternError is returned when a GlobPattern value is empty
	// or rejected by the pattern engine.
	InvalidGlobPatternError struct {
		Value GlobPattern
	}
)

// String returns the string representation of the GlobPattern.
func (g GlobPattern) String() string { return string(g) }

// Validate returns an error if the GlobPattern is empty or does not compile
// as a doublestar pattern.
func (g GlobPattern) Validate() error {
	if g == "" || !doublestar.ValidatePattern(string(g)) {
		return &InvalidGlobPatternError{Value: g}
	}
	return nil
}

// IsRooted reports whether the pattern denotes an anchored location on its
// own: it begins with a slash or backslash, or carries a drive prefix such
// as "C:". Drive prefixes are recognized on every platform so that
// expressions behave the same regardless of the host OS.
func (g GlobPattern) IsRooted() bool {
	s := string(g)
	switch {
	case s == "":
		return false
	case s[0] == '/' || s[0] == '\\':
		return true
	case len(s) >= 2 && s[1] == ':' && isASCIILetter(s[0]):
		return true
	}
	return false
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Error implements the error interface for InvalidGlobPatternError.
func (e *InvalidGlobPatternError) Error() string {
	if e.Value == "" {
		return "invalid glob pattern: must be non-empty"
	}
	return fmt.Sprintf("invalid glob pattern %q", e.Value)
}

// Unwrap returns ErrInvalidGlobPattern for errors.Is() compatibility.
func (e *InvalidGlobPatternError) Unwrap() error { return ErrInvalidGlobPattern }
