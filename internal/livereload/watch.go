package livereload

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher calls OnChange once per burst of writes to the watched files.
type Watcher struct {
	Files    []string
	Debounce time.Duration
	OnChange func(events []fsnotify.Event)
	Logger   *log.Logger
}

// Run watches until ctx is done. Parent directories are watched rather than
// the files themselves so editors that save by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	delay := w.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	wanted := make(map[string]bool, len(w.Files))
	dirs := make(map[string]bool)
	for _, f := range w.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	debounce := time.NewTimer(delay)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	var pending []fsnotify.Event
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !wanted[abs] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending = append(pending, event)
			debounce.Reset(delay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Println("Watcher error:", err)

		case <-debounce.C:
			events := pending
			pending = nil
			if len(events) > 0 && w.OnChange != nil {
				w.OnChange(events)
			}
		}
	}
}
