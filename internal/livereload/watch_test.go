package livereload

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	params := filepath.Join(dir, "surfaceview.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(params, []byte("view: {}\n"), 0644))

	var calls atomic.Int32
	changed := make(chan []fsnotify.Event, 4)
	w := &Watcher{
		Files:    []string{params},
		Debounce: 50 * time.Millisecond,
		OnChange: func(events []fsnotify.Event) {
			calls.Add(1)
			changed <- events
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(params, []byte("view: {resolution: 60}\n"), 0644))
	}
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0644))

	select {
	case events := <-changed:
		require.NotEmpty(t, events)
		for _, ev := range events {
			assert.Equal(t, "surfaceview.yaml", filepath.Base(ev.Name))
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := &Watcher{Files: []string{filepath.Join(t.TempDir(), "nope", "surfaceview.yaml")}}
	assert.Error(t, w.Run(context.Background()))
}
