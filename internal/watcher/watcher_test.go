package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, files []string) <-chan []string {
	t.Helper()
	got := make(chan []string, 8)
	w, err := New(files, func(changed []string) { got <- changed })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx, nil)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return got
}

func TestReportsWatchedFilesOnly(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yml")
	seed := filepath.Join(dir, "seed.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("a"), 0o600))

	got := startWatcher(t, []string{cfg, seed, ""})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(cfg, []byte("b"), 0o600))
	require.NoError(t, os.WriteFile(seed, []byte("tasks: []"), 0o600))

	select {
	case changed := <-got:
		assert.Equal(t, []string{cfg, seed}, changed)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestDetectsReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("a"), 0o600))

	got := startWatcher(t, []string{cfg})

	tmp := filepath.Join(dir, ".config.yml.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("b"), 0o600))
	require.NoError(t, os.Rename(tmp, cfg))

	select {
	case changed := <-got:
		assert.Equal(t, []string{cfg}, changed)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestNewFailsForMissingDir(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "gone", "config.yml")}, func([]string) {})
	assert.Error(t, err)
}
