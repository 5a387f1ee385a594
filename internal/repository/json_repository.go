package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/containerd/errdefs"
	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
)

// CacheStore defines the interface for cache operations needed by the watcher callback.
type CacheStore interface {
	GetLastUpdate() int64
	IsDirty() bool
	Snapshot() (Journal, error)
	// ReplaceIfClean swaps in doc unless the cache holds unsaved changes.
	ReplaceIfClean(doc Journal) bool
}

// JSONRepository handles disk persistence and watching of the journal file.
type JSONRepository struct {
	fs        afero.Fs
	path      string
	dir       string
	base      string
	validator *validator.Validate
	mu        sync.Mutex
}

// NewJSONRepository creates a repository for the given JSON file path on fs.
// A nil fs means the OS filesystem.
func NewJSONRepository(fs afero.Fs, path string) (*JSONRepository, error) {
	if path == "" {
		return nil, errors.New("journal file path is required")
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == "" || dir == "." {
		dir = "."
	}

	return &JSONRepository{fs: fs, path: path, dir: dir, base: base, validator: validator.New()}, nil
}

// Load reads the JSON file, parses and validates it. A missing file is
// reported as errdefs.ErrNotFound.
func (r *JSONRepository) Load(ctx context.Context) (*Journal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadUnlocked()
}

// LoadOrEmpty is Load, except a missing file yields an empty journal.
func (r *JSONRepository) LoadOrEmpty(ctx context.Context) (*Journal, error) {
	doc, err := r.Load(ctx)
	if errdefs.IsNotFound(err) {
		empty := &Journal{}
		empty.ApplyDefaults()
		return empty, nil
	}
	return doc, err
}

// loadUnlocked reads the JSON file without acquiring the lock (caller must hold it).
func (r *JSONRepository) loadUnlocked() (*Journal, error) {
	file, err := r.fs.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open journal file: %w", errors.Join(errdefs.ErrNotFound, err))
		}
		return nil, fmt.Errorf("open journal file: %w", err)
	}
	defer file.Close()

	var doc Journal
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode journal file: %w", err)
	}

	doc.ApplyDefaults()

	if err := r.validator.Struct(&doc); err != nil {
		return nil, fmt.Errorf("validate journal file: %w", err)
	}

	return &doc, nil
}

// Save validates and writes the journal atomically.
func (r *JSONRepository) Save(ctx context.Context, doc *Journal) error {
	if doc == nil {
		return errors.New("journal is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.validator.Struct(doc); err != nil {
		return fmt.Errorf("validate before save: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveUnlocked(doc)
}

// saveUnlocked writes the journal without acquiring the lock (caller must hold it).
func (r *JSONRepository) saveUnlocked(doc *Journal) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal journal: %w", err)
	}

	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	tmpFile, err := afero.TempFile(r.fs, r.dir, r.base+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmpFile.Name()
	renamed := false
	defer func() {
		tmpFile.Close()
		if !renamed {
			r.fs.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(payload); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := r.fs.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace journal file: %w", err)
	}
	renamed = true

	logger.WithComponent("journal-repo").Debugf("saved %d events to %s", len(doc.Events), r.path)
	return nil
}

// StartWatcher reloads the cache when the journal file is changed by someone
// else, e.g. truncated by hand. It watches the parent directory so atomic
// replace sequences (temp+rename) are still observed. Events are filtered by
// basename and debounced. Cancel ctx to stop the goroutine.
func (r *JSONRepository) StartWatcher(ctx context.Context, cacheStore CacheStore) error {
	onChange := r.MakeWatcherCallback(cacheStore)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, onChange)
		}

		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != r.base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod|fsnotify.Remove|fsnotify.Rename) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithComponent("journal-repo").Warnf("watcher error: %v", err)
			}
		}
	}()

	return nil
}

// MakeWatcherCallback returns a callback that reloads the cache from disk if
// the file is newer and the cache has nothing unsaved.
func (r *JSONRepository) MakeWatcherCallback(cacheStore CacheStore) func() {
	log := logger.WithComponent("journal-repo")
	return func() {
		diskDoc, err := r.Load(context.Background())
		if err != nil {
			log.Debugf("watch reload skipped: %v", err)
			return
		}
		cacheLastUpdate := cacheStore.GetLastUpdate()
		diskLastUpdate := diskDoc.Metadata.LastUpdate

		if diskLastUpdate < cacheLastUpdate {
			log.Debugf("disk version is not newer than cache: disk=%d cache=%d", diskLastUpdate, cacheLastUpdate)
			return
		}

		if cacheStore.IsDirty() {
			log.Warn("disk journal is newer but cache is dirty; skipping reload")
			return
		}

		if diskLastUpdate == cacheLastUpdate {
			snapshot, err := cacheStore.Snapshot()
			if err != nil {
				log.Errorf("cache reload error: failed to get snapshot: %v", err)
				return
			}
			if AreJournalsEqual(&snapshot, diskDoc) {
				return
			}
		}
		// The cache may have become dirty since the check above.
		if !cacheStore.ReplaceIfClean(*diskDoc) {
			log.Debug("cache changed during reload; keeping it")
			return
		}
		log.Info("journal reloaded from newer disk version")
	}
}
