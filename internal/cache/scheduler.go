package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/bassista/go_pptcoach/internal/repository"
)

// DefaultPersistInterval is used when no positive interval is configured.
const DefaultPersistInterval = 5 * time.Second

// StartPersistenceScheduler flushes the journal every interval while it is
// dirty. Once ctx is done it flushes one last time and closes the returned
// channel.
func StartPersistenceScheduler(
	ctx context.Context,
	store PersistableStore,
	repo repository.Saver,
	interval time.Duration,
) <-chan struct{} {
	if interval <= 0 {
		interval = DefaultPersistInterval
	}
	log := logger.WithComponent("persist")
	log.Debugf("persisting journal every %v", interval)

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := Flush(ctx, store, repo); err != nil {
					log.Errorf("journal flush failed: %v", err)
				}
			case <-ctx.Done():
				// ctx is already cancelled; the last write must not see it.
				if _, err := Flush(context.Background(), store, repo); err != nil {
					log.Errorf("final journal flush failed: %v", err)
				}
				log.Info("journal persistence stopped")
				return
			}
		}
	}()
	return done
}

// Flush saves the journal when it is dirty and reports whether it wrote.
// On failure, or when events arrived during the save, the store stays dirty
// so the next flush writes again.
func Flush(ctx context.Context, store PersistableStore, repo repository.Saver) (bool, error) {
	if !store.IsDirty() {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	snapshot, version := store.SnapshotVersion()
	snapshot.Metadata.LastUpdate = time.Now().UnixMilli()

	if err := repo.Save(ctx, &snapshot); err != nil {
		return false, fmt.Errorf("save journal: %w", err)
	}
	if !store.MarkPersisted(version, snapshot.Metadata.LastUpdate) {
		logger.WithComponent("persist").Debug("journal changed while saving, keeping it dirty")
	}
	logger.WithComponent("persist").Debugf("journal persisted, %d events", len(snapshot.Events))
	return true, nil
}
