package monitor

import (
	"time"

	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/bassista/go_pptcoach/internal/service"
)

// SelectionMonitor watches the name of the first selected shape.
type SelectionMonitor struct {
	state[string]
	query *service.SlideQuery
	emit  Handler
}

func NewSelectionMonitor(query *service.SlideQuery, emit Handler) *SelectionMonitor {
	return &SelectionMonitor{query: query, emit: emit}
}

func (m *SelectionMonitor) Start(doc host.Presentation) error {
	if doc == nil {
		return host.ErrInvalidInstance
	}
	name, err := m.query.SelectedShapeName(doc)
	if err != nil {
		logger.WithComponent("monitor").Debugf("selection monitor start: %v", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.start(doc, name)
	return nil
}

func (m *SelectionMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop()
}

func (m *SelectionMonitor) Monitoring() bool {
	return m.monitoring()
}

func (m *SelectionMonitor) Check() {
	m.checking.Lock()
	defer m.checking.Unlock()

	m.mu.Lock()
	if m.doc == nil {
		m.mu.Unlock()
		return
	}
	name, err := m.query.SelectedShapeName(m.doc)
	if err != nil {
		m.mu.Unlock()
		logger.WithComponent("monitor").Tracef("selection check: %v", err)
		return
	}
	if name == "" || name == m.cache {
		m.mu.Unlock()
		return
	}
	m.cache = name
	m.mu.Unlock()

	if m.emit != nil {
		m.emit(Event{Kind: SelectionChanged, Shape: name, At: time.Now()})
	}
}
