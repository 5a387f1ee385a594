package host

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	// ErrInvalidInstance is returned when a handle does not expose the expected members.
	ErrInvalidInstance = fmt.Errorf("invalid PowerPoint instance: %w", errdefs.ErrInvalidArgument)
	// ErrLastSlide is returned when deleting the only slide of a presentation.
	ErrLastSlide = fmt.Errorf("cannot delete the last slide in the presentation: %w", errdefs.ErrFailedPrecondition)
)

// ConnectionError reports a failed attempt to reach a running PowerPoint.
// Code carries the HRESULT when one is available.
type ConnectionError struct {
	Reason string
	Code   int32
	Err    error
}

func (e *ConnectionError) Error() string {
	msg := e.Reason
	if e.Code != 0 {
		msg = fmt.Sprintf("%s (hresult 0x%08X)", msg, uint32(e.Code))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConnectionError) Unwrap() []error {
	if e.Err != nil {
		return []error{errdefs.ErrUnavailable, e.Err}
	}
	return []error{errdefs.ErrUnavailable}
}

// CreationError reports an automation fault while creating a presentation or slide.
type CreationError struct {
	Op  string
	Err error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *CreationError) Unwrap() []error {
	return []error{errdefs.ErrInternal, e.Err}
}

// IsConnectionError reports whether err carries a *ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsCreationError reports whether err carries a *CreationError.
func IsCreationError(err error) bool {
	var ce *CreationError
	return errors.As(err, &ce)
}
