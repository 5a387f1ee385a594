package repository

import "context"

// Saver persists a Journal.
// Small interface used by background jobs like the persistence scheduler.
type Saver interface {
	Save(ctx context.Context, doc *Journal) error
}

// Repository abstracts persistence and watching of the journal file.
// JSONRepository implements this interface.
type Repository interface {
	Saver
	Load(ctx context.Context) (*Journal, error)
	StartWatcher(ctx context.Context, cacheStore CacheStore) error
}
