package cache

import (
	"slices"
	"sync"

	"github.com/bassista/go_pptcoach/internal/monitor"
	"github.com/bassista/go_pptcoach/internal/repository"
	"github.com/google/uuid"
)

// DefaultCapacity bounds the journal when no capacity is configured.
const DefaultCapacity = 1000

// Store keeps an in-memory copy of the event journal. Once capacity is
// reached the oldest events are dropped.
type Store struct {
	mu         sync.RWMutex
	data       repository.Journal
	capacity   int
	dirty      bool   // true if journal changed since last persist
	version    uint64 // bumped on every change
	lastUpdate int64  // journal's metadata.lastUpdate
}

// NewStore creates a store seeded with doc.
func NewStore(doc repository.Journal, capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{capacity: capacity, lastUpdate: doc.Metadata.LastUpdate}
	s.data = cloneJournal(doc)
	s.trim()
	return s
}

// MarkDirty sets the dirty flag to true.
func (s *Store) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changed()
}

// changed records a modification. Caller must hold the lock.
func (s *Store) changed() {
	s.dirty = true
	s.version++
}

// IsDirty returns true if the journal has unpersisted changes.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

func (s *Store) GetLastUpdate() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// Snapshot returns a deep copy of the journal.
func (s *Store) Snapshot() (repository.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneJournal(s.data), nil
}

// SnapshotVersion returns a deep copy of the journal and the version it was
// taken at. Pass the version to MarkPersisted once the copy is saved.
func (s *Store) SnapshotVersion() (repository.Journal, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneJournal(s.data), s.version
}

// MarkPersisted records that the snapshot taken at version was saved with
// lastUpdate. The store is only marked clean if nothing changed since that
// snapshot; it reports whether it did.
func (s *Store) MarkPersisted(version uint64, lastUpdate int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdate = lastUpdate
	if s.version != version {
		return false
	}
	s.dirty = false
	return true
}

// ReplaceIfClean swaps the journal, e.g. after the file was edited on disk.
// A store holding unsaved changes is left untouched; it reports whether it
// swapped.
func (s *Store) ReplaceIfClean(doc repository.Journal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		return false
	}
	s.data = cloneJournal(doc)
	s.trim()
	s.lastUpdate = doc.Metadata.LastUpdate
	s.dirty = false
	s.version++
	return true
}

// Record appends event under a fresh id and returns the stored entry.
func (s *Store) Record(presentation string, event monitor.Event) repository.Entry {
	entry := repository.Entry{
		ID:           uuid.NewString(),
		Kind:         string(event.Kind),
		Presentation: presentation,
		Slide:        event.Slide,
		Shape:        event.Shape,
		Path:         event.Path,
		At:           event.At,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Events = append(s.data.Events, entry)
	s.trim()
	s.changed()
	return entry
}

// Latest returns up to limit of the newest entries, oldest first. A limit
// of 0 or less returns everything.
func (s *Store) Latest(limit int) []repository.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := s.data.Events
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	out := make([]repository.Entry, len(events))
	copy(out, events)
	return out
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Events = []repository.Entry{}
	s.changed()
}

// trim drops the oldest entries beyond capacity. Caller must hold the lock.
func (s *Store) trim() {
	if over := len(s.data.Events) - s.capacity; over > 0 {
		s.data.Events = append([]repository.Entry(nil), s.data.Events[over:]...)
	}
}

// cloneJournal copies the journal so callers never share the events slice.
func cloneJournal(doc repository.Journal) repository.Journal {
	out := repository.Journal{Metadata: doc.Metadata, Events: slices.Clone(doc.Events)}
	out.ApplyDefaults()
	return out
}
