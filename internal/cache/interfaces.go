package cache

import (
	"github.com/bassista/go_pptcoach/internal/monitor"
	"github.com/bassista/go_pptcoach/internal/repository"
)

// ReadOnlyStore is the minimal journal API for read-only controllers.
type ReadOnlyStore interface {
	Snapshot() (repository.Journal, error)
	Latest(limit int) []repository.Entry
}

// EventStore is the journal API needed by the event handlers.
type EventStore interface {
	ReadOnlyStore
	Record(presentation string, event monitor.Event) repository.Entry
	Clear()
}

// PersistableStore is the journal API needed by the persistence scheduler.
type PersistableStore interface {
	IsDirty() bool
	SnapshotVersion() (repository.Journal, uint64)
	MarkPersisted(version uint64, lastUpdate int64) bool
}

// AppStore is the journal contract the application container exposes.
type AppStore interface {
	repository.CacheStore
	EventStore
	PersistableStore
}
