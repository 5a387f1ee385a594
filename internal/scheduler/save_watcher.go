package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// SaveWatcher runs an early save check whenever the presentation file
// changes on disk, instead of waiting for the next poll tick. The watched
// file is re-resolved every resync interval because a presentation only gets
// a file once it is saved, and may be saved under a new name.
type SaveWatcher struct {
	target   func() string
	onChange func()
	resync   time.Duration
	debounce time.Duration
}

// NewSaveWatcher watches the file reported by target and calls onChange,
// debounced, when it changes. An empty target means nothing to watch.
func NewSaveWatcher(target func() string, onChange func(), resync time.Duration) *SaveWatcher {
	if resync <= 0 {
		resync = time.Second
	}
	return &SaveWatcher{target: target, onChange: onChange, resync: resync, debounce: defaultDebounce}
}

// Start watches until ctx is done. The returned channel is closed once the
// watcher has been released.
func (w *SaveWatcher) Start(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer watcher.Close()

		var file, dir string
		resync := func() {
			next := w.target()
			if next == file {
				return
			}
			nextDir := ""
			if next != "" {
				nextDir = filepath.Dir(next)
			}
			if dir != "" && dir != nextDir {
				_ = watcher.Remove(dir)
			}
			if nextDir != "" && nextDir != dir {
				if err := watcher.Add(nextDir); err != nil {
					logger.WithComponent("save-watch").Warnf("watch %s: %v", nextDir, err)
					file, dir = "", ""
					return
				}
			}
			file, dir = next, nextDir
			logger.WithComponent("save-watch").Debugf("watching %q", file)
		}

		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.debounce, w.onChange)
		}

		ticker := time.NewTicker(w.resync)
		defer ticker.Stop()
		resync()

		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return
			case <-ticker.C:
				resync()
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if file == "" || filepath.Clean(event.Name) != filepath.Clean(file) {
					continue
				}
				// PowerPoint saves through a temp file and rename, so Create
				// and Rename count as writes.
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Chmod) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithComponent("save-watch").Warnf("watcher error: %v", err)
			}
		}
	}()
	return done, nil
}
