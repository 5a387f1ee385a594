package app

import (
	"fmt"
	"sync"

	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/bassista/go_pptcoach/internal/service"
	"github.com/containerd/errdefs"
)

// Session tracks the PowerPoint instance and the presentation the server
// works on. Handles are reused across requests and released on detach.
type Session struct {
	pp *service.PowerPoint

	mu   sync.Mutex
	app  host.Application
	doc  host.Presentation
	name string
}

// SessionStatus is a snapshot of the session for the host endpoint.
type SessionStatus struct {
	Installed    bool   `json:"installed"`
	Connected    bool   `json:"connected"`
	Attached     bool   `json:"attached"`
	Presentation string `json:"presentation,omitempty"`
}

func NewSession(pp *service.PowerPoint) *Session {
	return &Session{pp: pp}
}

// Application returns the connected instance, connecting first if needed.
func (s *Session) Application() (host.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applicationLocked()
}

func (s *Session) applicationLocked() (host.Application, error) {
	if s.app != nil {
		return s.app, nil
	}
	app, err := s.pp.Connection.ConnectOrFail()
	if err != nil {
		return nil, err
	}
	s.app = app
	logger.WithComponent("session").Info("connected to PowerPoint")
	return app, nil
}

// Current returns the attached presentation. With nothing attached it
// attaches to the active presentation of the running instance.
func (s *Session) Current() (host.Presentation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc != nil {
		return s.doc, nil
	}
	app, err := s.applicationLocked()
	if err != nil {
		return nil, err
	}
	doc, err := s.pp.Presentations.Active(app)
	if err != nil {
		return nil, fmt.Errorf("no presentation attached: %w", errdefs.ErrNotFound)
	}
	s.attachLocked(doc)
	return doc, nil
}

// Attached returns the attached presentation without attaching one.
func (s *Session) Attached() (host.Presentation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc, s.doc != nil
}

// Create makes a new presentation with one blank slide. The caller decides
// whether to attach it.
func (s *Session) Create() (host.Presentation, error) {
	app, err := s.Application()
	if err != nil {
		return nil, err
	}
	return s.pp.Presentations.Create(app)
}

// Attach replaces the attached presentation, releasing the previous one.
func (s *Session) Attach(doc host.Presentation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachLocked(doc)
}

func (s *Session) attachLocked(doc host.Presentation) {
	if s.doc != nil && s.doc != doc {
		host.Release(s.doc)
	}
	s.doc = doc
	s.name = ""
	if doc != nil {
		if name, err := doc.FullName(); err == nil {
			s.name = name
		}
		logger.WithPresentation("session", s.name).Info("attached presentation")
	}
}

// Detach forgets the presentation and the instance.
func (s *Session) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachLocked(nil)
	if s.app != nil {
		host.Release(s.app)
		s.app = nil
	}
}

// Name is the full name of the attached presentation as last seen.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Rename records a new full name, e.g. after the presentation was saved
// under a path.
func (s *Session) Rename(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc != nil && name != "" {
		s.name = name
	}
}

func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionStatus{
		Installed:    s.pp.Connection.IsInstalled(),
		Connected:    s.app != nil,
		Attached:     s.doc != nil,
		Presentation: s.name,
	}
}
