package monitor

import (
	"time"

	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/bassista/go_pptcoach/internal/service"
)

// SlideMonitor watches the current slide number.
type SlideMonitor struct {
	state[int]
	query *service.SlideQuery
	emit  Handler
}

func NewSlideMonitor(query *service.SlideQuery, emit Handler) *SlideMonitor {
	return &SlideMonitor{query: query, emit: emit}
}

func (m *SlideMonitor) Start(doc host.Presentation) error {
	if doc == nil {
		return host.ErrInvalidInstance
	}
	n, err := m.query.CurrentSlideNumber(doc)
	if err != nil {
		logger.WithComponent("monitor").Debugf("slide monitor start: %v", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.start(doc, n)
	logger.WithComponent("monitor").Debugf("slide monitor started at slide %d", n)
	return nil
}

func (m *SlideMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop()
}

func (m *SlideMonitor) Monitoring() bool {
	return m.monitoring()
}

func (m *SlideMonitor) Check() {
	m.checking.Lock()
	defer m.checking.Unlock()

	m.mu.Lock()
	if m.doc == nil {
		m.mu.Unlock()
		return
	}
	n, err := m.query.CurrentSlideNumber(m.doc)
	if err != nil {
		m.mu.Unlock()
		logger.WithComponent("monitor").Tracef("slide check: %v", err)
		return
	}
	if n == m.cache || n <= 0 {
		m.mu.Unlock()
		return
	}
	m.cache = n
	m.mu.Unlock()

	if m.emit != nil {
		m.emit(Event{Kind: SlideChanged, Slide: n, At: time.Now()})
	}
}
