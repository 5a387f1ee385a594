package repository

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/containerd/errdefs"
	"github.com/spf13/afero"
)

const journalPath = "/data/journal.json"

func createTestJournal() Journal {
	return Journal{
		Metadata: Metadata{LastUpdate: 1000},
		Events: []Entry{
			{
				ID:           "8f14e45f-ceea-4a7e-9b1f-2f6a0a6c1f11",
				Kind:         "slide_changed",
				Presentation: "Deck.pptx",
				Slide:        2,
				At:           time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			},
		},
	}
}

func writeJournal(t *testing.T, fs afero.Fs, doc Journal) {
	t.Helper()
	data, _ := json.MarshalIndent(doc, "", "  ")
	if err := afero.WriteFile(fs, journalPath, data, 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
}

func TestNewJSONRepository_EmptyPath(t *testing.T) {
	_, err := NewJSONRepository(afero.NewMemMapFs(), "")
	if err == nil {
		t.Error("expected error for empty path")
	}
}

func TestJSONRepository_LoadAndSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeJournal(t, fs, createTestJournal())

	repo, err := NewJSONRepository(fs, journalPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded.Events) != 1 || loaded.Events[0].Slide != 2 {
		t.Fatalf("unexpected events: %+v", loaded.Events)
	}

	loaded.Events = append(loaded.Events, Entry{
		ID:   "0b7c1e2a-8d4f-4f3e-a1b2-c3d4e5f60718",
		Kind: "presentation_saved",
		Path: `C:\decks\Deck.pptx`,
	})
	if err := repo.Save(context.Background(), loaded); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	reloaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if len(reloaded.Events) != 2 {
		t.Errorf("expected 2 events, got %d", len(reloaded.Events))
	}

	files, _ := afero.ReadDir(fs, "/data")
	if len(files) != 1 {
		t.Errorf("expected temp files to be cleaned up, found %d entries", len(files))
	}
}

func TestJSONRepository_Load_FileNotFound(t *testing.T) {
	repo, _ := NewJSONRepository(afero.NewMemMapFs(), journalPath)

	_, err := repo.Load(context.Background())
	if !errdefs.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}

	doc, err := repo.LoadOrEmpty(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Events == nil || len(doc.Events) != 0 {
		t.Errorf("expected empty journal, got %+v", doc)
	}
}

func TestJSONRepository_Load_InvalidJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, journalPath, []byte("{not json"), 0o644)
	repo, _ := NewJSONRepository(fs, journalPath)

	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("expected decode error")
	}
	if _, err := repo.LoadOrEmpty(context.Background()); err == nil {
		t.Error("expected LoadOrEmpty to surface decode errors")
	}
}

func TestJSONRepository_Load_ValidationError(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := createTestJournal()
	doc.Events[0].Kind = "zoomed"
	writeJournal(t, fs, doc)
	repo, _ := NewJSONRepository(fs, journalPath)

	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("expected validation error")
	}
}

func TestJSONRepository_Save_NilDocument(t *testing.T) {
	repo, _ := NewJSONRepository(afero.NewMemMapFs(), journalPath)
	if err := repo.Save(context.Background(), nil); err == nil {
		t.Error("expected error for nil journal")
	}
}

func TestJSONRepository_Save_ValidationError(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo, _ := NewJSONRepository(fs, journalPath)
	doc := createTestJournal()
	doc.Events[0].ID = "not-a-uuid"

	if err := repo.Save(context.Background(), &doc); err == nil {
		t.Error("expected validation error")
	}
	if exists, _ := afero.Exists(fs, journalPath); exists {
		t.Error("expected nothing to be written")
	}
}

func TestJSONRepository_Save_CancelledContext(t *testing.T) {
	repo, _ := NewJSONRepository(afero.NewMemMapFs(), journalPath)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := createTestJournal()
	if err := repo.Save(ctx, &doc); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type fakeCacheStore struct {
	lastUpdate int64
	dirty      bool
	snapshot   Journal
	replaced   *Journal
}

func (f *fakeCacheStore) GetLastUpdate() int64       { return f.lastUpdate }
func (f *fakeCacheStore) IsDirty() bool              { return f.dirty }
func (f *fakeCacheStore) Snapshot() (Journal, error) { return f.snapshot, nil }
func (f *fakeCacheStore) ReplaceIfClean(doc Journal) bool {
	if f.dirty {
		return false
	}
	f.replaced = &doc
	return true
}

func TestJSONRepository_MakeWatcherCallback_ReloadsWhenDiskNewer(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := createTestJournal()
	doc.Metadata.LastUpdate = 2000
	writeJournal(t, fs, doc)
	repo, _ := NewJSONRepository(fs, journalPath)

	store := &fakeCacheStore{lastUpdate: 1000}
	repo.MakeWatcherCallback(store)()

	if store.replaced == nil {
		t.Fatal("expected cache to be replaced")
	}
	if len(store.replaced.Events) != 1 {
		t.Errorf("expected 1 event, got %d", len(store.replaced.Events))
	}
}

func TestJSONRepository_MakeWatcherCallback_SkipsWhenDiskOlder(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeJournal(t, fs, createTestJournal())
	repo, _ := NewJSONRepository(fs, journalPath)

	store := &fakeCacheStore{lastUpdate: 5000}
	repo.MakeWatcherCallback(store)()

	if store.replaced != nil {
		t.Error("expected cache not to be replaced")
	}
}

func TestJSONRepository_MakeWatcherCallback_SkipsWhenDirty(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := createTestJournal()
	doc.Metadata.LastUpdate = 2000
	writeJournal(t, fs, doc)
	repo, _ := NewJSONRepository(fs, journalPath)

	store := &fakeCacheStore{lastUpdate: 1000, dirty: true}
	repo.MakeWatcherCallback(store)()

	if store.replaced != nil {
		t.Error("expected dirty cache not to be replaced")
	}
}

func TestJSONRepository_MakeWatcherCallback_SkipsWhenSameContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := createTestJournal()
	writeJournal(t, fs, doc)
	repo, _ := NewJSONRepository(fs, journalPath)

	store := &fakeCacheStore{lastUpdate: 1000, snapshot: doc}
	repo.MakeWatcherCallback(store)()

	if store.replaced != nil {
		t.Error("expected identical cache not to be replaced")
	}
}

func TestJSONRepository_SaveThenLoad_FreshFilesystem(t *testing.T) {
	for _, path := range []string{"/j/journal.json", "journal.json", "/journal.json"} {
		t.Run(path, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			repo, err := NewJSONRepository(fs, path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			doc := createTestJournal()
			if err := repo.Save(context.Background(), &doc); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			loaded, err := repo.Load(context.Background())
			if err != nil {
				t.Fatalf("load after save failed: %v", err)
			}
			if len(loaded.Events) != len(doc.Events) {
				t.Errorf("expected %d events, got %d", len(doc.Events), len(loaded.Events))
			}

			entries, err := afero.ReadDir(fs, filepath.Dir(path))
			if err != nil {
				t.Fatalf("read dir: %v", err)
			}
			for _, e := range entries {
				if strings.Contains(e.Name(), ".tmp-") {
					t.Errorf("temp file left behind: %s", e.Name())
				}
			}
		})
	}
}
