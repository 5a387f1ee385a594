package monitor

import (
	"sync"

	"github.com/bassista/go_pptcoach/internal/host"
)

// Machine is an Idle/Monitoring state machine over one signal.
type Machine interface {
	// Start caches the current value of doc and enters Monitoring.
	Start(doc host.Presentation) error
	// Stop returns to Idle and forgets the cache.
	Stop()
	// Check emits an event if the value moved since the last Start or Check.
	// Errors are treated as "no change".
	Check()
	Monitoring() bool
}

// state is the shared Idle/Monitoring bookkeeping. T is the cached value.
// checking is held for a whole Check, emission included, so one machine
// delivers its events in the order its cache moved.
type state[T comparable] struct {
	checking sync.Mutex
	mu       sync.Mutex
	doc      host.Presentation
	cache    T
}

func (s *state[T]) start(doc host.Presentation, value T) {
	s.doc = doc
	s.cache = value
}

func (s *state[T]) stop() {
	var zero T
	s.doc = nil
	s.cache = zero
}

func (s *state[T]) monitoring() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc != nil
}
