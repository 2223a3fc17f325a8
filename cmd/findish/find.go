// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"findish-cli/pkg/treeish"
	"findish-cli/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// runFind builds the treeish from the positional expression and prints the
// entries it matches. A build failure exits with code 1; traversal errors
// on individual entries do not affect the exit code.
func runFind(cmd *cobra.Command, args []string) error {
	expression := args[0]

	tr, err := treeish.New(expression)
	if err != nil {
		return &ExitError{Code: types.ExitCode(1), Err: err}
	}

	logger := newLogger(cmd.ErrOrStderr())
	behavior := walkBehavior(cmd)
	logger.Debug("built treeish", "kind", tr.Kind(), "expression", expression)

	printListing(cmd.OutOrStdout(), logger, tr, behavior)

	if flagWatch {
		return runWatch(cmd.Context(), cmd.OutOrStdout(), logger, tr, behavior)
	}
	return nil
}

func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "findish"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// walkBehavior merges config-file defaults with walk flags; a flag that
// was set explicitly wins.
func walkBehavior(cmd *cobra.Command) treeish.WalkBehavior {
	behavior := treeish.WalkBehavior{
		MaxDepth:    appConfig.Walk.MaxDepth,
		FollowLinks: appConfig.Walk.FollowLinks,
		FilesOnly:   appConfig.Walk.FilesOnly,
		Ignore:      appConfig.Walk.Ignore,
	}
	if cmd.Flags().Changed("max-depth") {
		behavior.MaxDepth = flagMaxDepth
	}
	if cmd.Flags().Changed("follow") {
		behavior.FollowLinks = flagFollow
	}
	if cmd.Flags().Changed("files-only") {
		behavior.FilesOnly = flagFilesOnly
	}
	if len(flagIgnore) > 0 {
		behavior.Ignore = append(behavior.Ignore, flagIgnore...)
	}
	return behavior
}

// printListing walks the treeish and prints one matched path per line.
// Entries that errored are skipped; --verbose makes them visible.
func printListing(out io.Writer, logger *log.Logger, tr treeish.Treeish, behavior treeish.WalkBehavior) {
	for entry, err := range tr.WalkWithBehavior(behavior) {
		if err != nil {
			logger.Debug("skipping entry", "path", entry.Path, "error", err)
			continue
		}
		fmt.Fprintln(out, entry.Path)
	}
}
