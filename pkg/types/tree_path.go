// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
)

// ErrInvalidTreePath is the sentinel error wrapped by InvalidTreePathError.
var ErrInvalidTreePath = errors.New("invalid tree path")

type (
	// TreePath is a literal filesystem path naming a file or the root of a
	// subtree. A valid TreePath is never empty: "no path" is expressed by
	// omitting the value, never by a degenerate empty one. The zero value
	// ("") is invalid.
	TreePath string

	// InvalidTreePathError is returned when a TreePath value is empty.
	InvalidTreePathError struct {
		Value TreePath
	}
)

// String returns the string representation of the TreePath.
func (p TreePath) String() string { return string(p) }

// Validate returns an error if the TreePath is empty.
func (p TreePath) Validate() error {
	if p == "" {
		return &InvalidTreePathError{Value: p}
	}
	return nil
}

// Error implements the error interface for InvalidTreePathError.
func (e *InvalidTreePathError) Error() string {
	return fmt.Sprintf("invalid tree path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidTreePath for errors.Is() compatibility.
func (e *InvalidTreePathError) Unwrap() error { return ErrInvalidTreePath }
