// SPDX-License-Identifier: MPL-2.0

// Command findish lists filesystem entries matching a treeish expression:
// a literal path, a glob, or a glob anchored at a literal path via "::".
package main

import cmd "findish-cli/cmd/findish"

func main() {
	cmd.Execute()
}
