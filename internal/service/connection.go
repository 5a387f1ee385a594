package service

import (
	"errors"

	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
)

// Connection probes for and attaches to a running PowerPoint.
type Connection struct {
	connector host.Connector
}

func NewConnection(connector host.Connector) *Connection {
	return &Connection{connector: connector}
}

// IsInstalled never fails; any lookup problem reads as "not installed".
func (c *Connection) IsInstalled() bool {
	if c.connector == nil {
		return false
	}
	return c.connector.Installed()
}

// RunningInstance returns the running application, or ok=false when none is
// registered or the connection attempt fails for any reason.
func (c *Connection) RunningInstance() (app host.Application, ok bool) {
	app, err := c.ConnectOrFail()
	if err != nil {
		logger.WithComponent("connection").Debugf("no running PowerPoint instance: %v", err)
		return nil, false
	}
	return app, true
}

// ConnectOrFail attaches to the running application or returns a
// *host.ConnectionError. It never retries.
func (c *Connection) ConnectOrFail() (host.Application, error) {
	if c.connector == nil {
		return nil, &host.ConnectionError{Reason: "no PowerPoint connector configured"}
	}
	app, err := c.connector.Connect()
	if err != nil {
		var ce *host.ConnectionError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &host.ConnectionError{Reason: "failed to connect to running PowerPoint instance", Err: err}
	}
	if app == nil {
		return nil, &host.ConnectionError{Reason: "PowerPoint instance is null"}
	}
	return app, nil
}
