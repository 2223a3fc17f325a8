// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath functions that
// accept and return types.TreePath, so path manipulation stays in the typed
// domain instead of falling back to raw strings at every call site.
package fspath

import (
	"fmt"
	"path/filepath"

	"findish-cli/pkg/types"
)

// Join wraps filepath.Join, accepting and returning types.TreePath.
func Join(elem ...types.TreePath) types.TreePath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.TreePath(filepath.Join(strs...))
}

// JoinStr wraps filepath.Join, accepting a typed base path and raw string
// segments. Use this when joining a tree root with relative match paths
// reported by a traversal.
func JoinStr(base types.TreePath, elem ...string) types.TreePath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.TreePath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for TreePath.
func Dir(p types.TreePath) types.TreePath {
	return types.TreePath(filepath.Dir(string(p)))
}

// Abs wraps filepath.Abs for TreePath. Returns an error if the underlying
// OS call fails.
func Abs(p types.TreePath) (types.TreePath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.TreePath(abs), nil
}

// Clean wraps filepath.Clean for TreePath.
func Clean(p types.TreePath) types.TreePath {
	return types.TreePath(filepath.Clean(string(p)))
}

// FromSlash wraps filepath.FromSlash for TreePath. Converts forward slashes
// to the OS-specific path separator.
func FromSlash(p types.TreePath) types.TreePath {
	return types.TreePath(filepath.FromSlash(string(p)))
}

// ToSlash wraps filepath.ToSlash for TreePath. Converts the OS-specific
// path separator to forward slashes, the form glob patterns match against.
func ToSlash(p types.TreePath) string {
	return filepath.ToSlash(string(p))
}

// IsAbs wraps filepath.IsAbs for TreePath.
func IsAbs(p types.TreePath) bool {
	return filepath.IsAbs(string(p))
}
