package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bassista/go_pptcoach/internal/logger"
)

// Checker is polled once per tick. monitor.Monitor implements it.
type Checker interface {
	Check()
}

// PollingScheduler drives a Checker on a fixed interval. The checker must
// swallow its own errors; the scheduler only paces it.
type PollingScheduler struct {
	checker Checker
	poll    time.Duration
	ticks   atomic.Uint64
}

func NewPollingScheduler(checker Checker, poll time.Duration) *PollingScheduler {
	if poll <= 0 {
		poll = time.Second
	}
	return &PollingScheduler{checker: checker, poll: poll}
}

// Start runs the loop until ctx is done. The returned channel is closed once
// the loop has exited.
func (s *PollingScheduler) Start(ctx context.Context) <-chan struct{} {
	logger.WithComponent("sched").Debugf("starting polling scheduler with interval: %v", s.poll)
	done := make(chan struct{})
	ticker := time.NewTicker(s.poll)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("sched").Info("scheduler stopped")
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
	return done
}

func (s *PollingScheduler) tick(ctx context.Context) {
	// A tick that races with shutdown is dropped.
	if ctx.Err() != nil {
		return
	}
	s.checker.Check()
	n := s.ticks.Add(1)
	logger.WithComponent("sched").Tracef("poll tick %d completed", n)
}

// Ticks reports how many checks have run.
func (s *PollingScheduler) Ticks() uint64 {
	return s.ticks.Load()
}
