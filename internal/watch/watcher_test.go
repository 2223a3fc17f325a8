// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestWatcherCoalescesEvents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var calls atomic.Int32
	done := make(chan struct{})

	w, err := New(Config{
		BaseDir:  dir,
		Debounce: 100 * time.Millisecond,
		Logger:   quietLogger(),
		OnChange: func(ctx context.Context) error {
			if calls.Add(1) == 1 {
				close(done)
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- w.Run(ctx) }()

	// A burst of writes inside the debounce window should produce a single
	// callback.
	for _, name := range []string{"one.txt", "two.txt", "three.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("callback did not fire")
	}

	// Allow any stray second firing to land before asserting.
	time.Sleep(300 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("callback fired %d times, want 1", got)
	}

	cancel()
	if err := <-runErr; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestWatcherIgnoresFilteredPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var calls atomic.Int32
	w, err := New(Config{
		BaseDir:  dir,
		Patterns: []string{"**/*.txt"},
		Debounce: 50 * time.Millisecond,
		Logger:   quietLogger(),
		OnChange: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// Neither a .git file nor a non-matching extension should trigger.
	if err := os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "note.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("callback fired %d times for filtered paths, want 0", got)
	}
}

func TestNewRejectsInvalidPatterns(t *testing.T) {
	t.Parallel()

	_, err := New(Config{
		BaseDir:  t.TempDir(),
		Patterns: []string{"["},
		Logger:   quietLogger(),
	})
	if err == nil {
		t.Error("New() with invalid pattern returned nil error")
	}
}

func TestRunTwiceFails(t *testing.T) {
	t.Parallel()

	w, err := New(Config{BaseDir: t.TempDir(), Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = w.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)

	if err := w.Run(ctx); err == nil {
		t.Error("second Run() returned nil error")
	}
	cancel()
}
