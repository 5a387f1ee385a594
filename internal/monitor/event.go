package monitor

import (
	"fmt"
	"time"

	"github.com/containerd/errdefs"
)

// Kind names the change an Event reports.
type Kind string

const (
	SlideChanged      Kind = "slide_changed"
	SelectionChanged  Kind = "selection_changed"
	PresentationSaved Kind = "presentation_saved"
)

// Event is emitted by a machine when its watched value changes.
type Event struct {
	Kind  Kind      `json:"kind"`
	Slide int       `json:"slide,omitempty"`
	Shape string    `json:"shape,omitempty"`
	Path  string    `json:"path,omitempty"`
	At    time.Time `json:"at"`
}

// Handler receives events. It runs on the goroutine that called Check and
// must not call Check on the emitting machine. Checks of one machine are
// serialized, so its events arrive in the order they happened; events of
// different machines are not ordered relative to each other.
type Handler func(Event)

// Signal identifies one of the three machines.
type Signal string

const (
	SignalSlide     Signal = "slide"
	SignalSelection Signal = "selection"
	SignalSave      Signal = "save"
)

// Signals lists every signal in check order.
var Signals = []Signal{SignalSlide, SignalSelection, SignalSave}

func ParseSignal(s string) (Signal, error) {
	switch Signal(s) {
	case SignalSlide, SignalSelection, SignalSave:
		return Signal(s), nil
	}
	return "", fmt.Errorf("unknown signal %q: %w", s, errdefs.ErrInvalidArgument)
}
