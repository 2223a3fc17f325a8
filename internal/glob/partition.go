// SPDX-License-Identifier: MPL-2.0

// Package glob adapts the doublestar pattern engine to treeish expressions.
//
// Its main operation is Partition, which separates a pattern's invariant
// literal prefix from its variable remainder so that callers can root a
// traversal at the prefix and match only the remainder.
package glob

// HasMeta reports whether s contains an unescaped glob metacharacter
// (one of `*?[{`). A backslash escapes the byte that follows it.
func HasMeta(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// Partition splits pattern into a literal prefix and a remainder pattern.
// The split point is the last slash that appears before the first unescaped
// metacharacter. Either half may be empty:
//
//	"src/**/*.go"  →  ("src", "**/*.go")
//	"**/*.go"      →  ("", "**/*.go")
//	"src/main.go"  →  ("src/main.go", "")
//	"/*.txt"       →  ("/", "*.txt")
//
// A pattern with no metacharacters is entirely literal, so the whole of it
// becomes the prefix. A leading slash followed immediately by a
// metacharacter keeps the root as the prefix rather than dropping it.
func Partition(pattern string) (prefix, remainder string) {
	if !HasMeta(pattern) {
		return pattern, ""
	}

	splitIdx := -1
scan:
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '/':
			splitIdx = i
		case '*', '?', '[', '{':
			break scan
		}
	}

	switch {
	case splitIdx < 0:
		return "", pattern
	case splitIdx == 0:
		return "/", pattern[1:]
	default:
		return pattern[:splitIdx], pattern[splitIdx+1:]
	}
}
