//go:build !windows

package host

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// COMConnector is only functional on Windows.
type COMConnector struct{}

func NewCOMConnector() (*COMConnector, error) {
	return nil, fmt.Errorf("COM automation requires Windows: %w", errdefs.ErrNotImplemented)
}

func (c *COMConnector) Installed() bool {
	return false
}

func (c *COMConnector) Connect() (Application, error) {
	return nil, &ConnectionError{Reason: "COM automation requires Windows", Err: errdefs.ErrNotImplemented}
}

func (c *COMConnector) Close() {}
