package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestWatcher(path string, reloads chan<- struct{}) *galaxyWatcher {
	return &galaxyWatcher{
		path:     path,
		debounce: 20 * time.Millisecond,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		reload: func(ctx context.Context) error {
			reloads <- struct{}{}
			return nil
		},
	}
}

func waitForReload(t *testing.T, reloads <-chan struct{}) {
	t.Helper()
	select {
	case <-reloads:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestGalaxyWatcher_ReloadsOnStartAndOnChange(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "galaxy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("systems: []\n"), 0o644))

	reloads := make(chan struct{}, 8)
	w := newTestWatcher(path, reloads)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Assert initial load
	waitForReload(t, reloads)

	// Act
	require.NoError(t, os.WriteFile(path, []byte("systems:\n  - {id: 1}\n"), 0o644))

	// Assert
	waitForReload(t, reloads)

	cancel()
	require.NoError(t, <-done)
}

func TestGalaxyWatcher_IgnoresOtherFiles(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "galaxy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("systems: []\n"), 0o644))

	reloads := make(chan struct{}, 8)
	w := newTestWatcher(path, reloads)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	waitForReload(t, reloads)

	// Act
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	// Assert
	select {
	case <-reloads:
		t.Fatal("unexpected reload for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestGalaxyWatcher_SkipsMissingFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "galaxy.yaml")

	reloads := make(chan struct{}, 8)
	w := newTestWatcher(path, reloads)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	select {
	case <-reloads:
		t.Fatal("reload without a galaxy file")
	case <-time.After(100 * time.Millisecond):
	}

	// Act
	require.NoError(t, os.WriteFile(path, []byte("systems: []\n"), 0o644))

	// Assert
	waitForReload(t, reloads)
}
