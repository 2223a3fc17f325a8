// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"findish-cli/internal/watch"
	"findish-cli/pkg/fspath"
	"findish-cli/pkg/treeish"
	"findish-cli/pkg/types"

	"github.com/charmbracelet/log"
)

// runWatch blocks, re-printing the listing whenever files under the walk
// root change. It returns on context cancellation (Ctrl-C).
func runWatch(ctx context.Context, out io.Writer, logger *log.Logger, tr treeish.Treeish, behavior treeish.WalkBehavior) error {
	if tr.IsEmpty() {
		// The empty expression matches nothing; there is no root worth
		// monitoring and the listing would stay empty forever.
		logger.Warn("empty expression matches nothing; not watching")
		return nil
	}
	root, patterns := watchTarget(tr)

	w, err := watch.New(watch.Config{
		BaseDir:  root,
		Patterns: patterns,
		Ignore:   behavior.Ignore,
		Debounce: time.Duration(appConfig.Watch.DebounceMillis) * time.Millisecond,
		Logger:   logger,
		OnChange: func(context.Context) error {
			printListing(out, logger, tr, behavior)
			return nil
		},
	})
	if err != nil {
		return &ExitError{Code: types.ExitCode(1), Err: err}
	}

	logger.Info("watching for changes", "root", root)
	return w.Run(ctx)
}

// watchTarget derives the directory to monitor and the patterns that
// should trigger a refresh from the treeish variant. A literal path that
// names a file is watched through its parent directory.
func watchTarget(tr treeish.Treeish) (string, []string) {
	if p, ok := tr.Path(); ok {
		if info, err := os.Stat(string(p)); err == nil && !info.IsDir() {
			return string(fspath.Dir(p)), nil
		}
		return string(p), nil
	}
	if g, ok := tr.Glob(); ok {
		return ".", []string{string(g)}
	}
	if p, g, ok := tr.GlobIn(); ok {
		return string(p), []string{string(g)}
	}
	return ".", nil
}
