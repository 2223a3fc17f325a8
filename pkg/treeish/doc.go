// SPDX-License-Identifier: MPL-2.0

// Package treeish parses hybrid path/glob expressions and walks the
// filesystem subtrees they denote.
//
// A treeish expression takes one of three shapes:
//
//	/var/log/app.log          a literal path
//	**/*.txt                  a glob, rooted at the current directory
//	/mnt/media::**/*.txt      a glob rooted at an explicit literal path
//
// The "::" separator joins a literal tree to a glob. Only its first
// occurrence is significant, and there is no way to escape it inside a
// pattern (known limitation). When the separator is absent, the expression
// is tried as a glob first; a string that is not a valid glob is taken as a
// literal path.
//
// The glob side of a "::" expression must not be rooted: the tree side
// already names the root, and a glob declaring its own root on top of that
// is contradictory. New rejects such expressions.
package treeish
