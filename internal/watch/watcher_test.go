package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_RebuildOnChange(t *testing.T) {
	dir := t.TempDir()
	var rebuilds atomic.Int32

	w, err := NewWatcher(dir, filepath.Join(dir, "build"), func(context.Context) error {
		rebuilds.Add(1)
		return nil
	})
	require.NoError(t, err)
	w.debounceTime = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "source.txt"), []byte("v1"), 0o644))

	assert.Eventually(t, func() bool {
		return rebuilds.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresBuildDirectory(t *testing.T) {
	dir := t.TempDir()
	buildDir := filepath.Join(dir, "build")

	w, err := NewWatcher(dir, buildDir, func(context.Context) error { return nil })
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.True(t, w.ignored(filepath.Join(buildDir, "variant-0", "out")))
	assert.True(t, w.ignored(buildDir))
	assert.True(t, w.ignored(filepath.Join(dir, ".git")))
	assert.False(t, w.ignored(filepath.Join(dir, "source.txt")))
}
