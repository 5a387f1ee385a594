package host

import (
	"fmt"
)

const (
	HostTypeCOM    = "com"
	HostTypeMemory = "memory"
)

// NewConnectorFromConfig creates a Connector for the host type.
// "com" (default) talks to a real PowerPoint, "memory" serves an in-process
// graph seeded with one blank presentation.
func NewConnectorFromConfig(hostType string) (Connector, error) {
	switch hostType {
	case HostTypeMemory:
		c := NewMemoryConnector()
		doc, err := c.App().AddPresentation()
		if err != nil {
			return nil, err
		}
		if _, err := doc.AddSlide(1, LayoutBlank); err != nil {
			return nil, err
		}
		return c, nil
	case HostTypeCOM, "":
		c, err := NewCOMConnector()
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown host type: %s (supported: %s, %s)", hostType, HostTypeCOM, HostTypeMemory)
	}
}
