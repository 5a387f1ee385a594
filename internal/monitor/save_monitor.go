package monitor

import (
	"time"

	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/spf13/afero"
)

// SaveMonitor watches the last-write time of the presentation file. A
// presentation that was never saved has no file and never reports a save.
type SaveMonitor struct {
	state[time.Time]
	fs   afero.Fs
	emit Handler
}

func NewSaveMonitor(fs afero.Fs, emit Handler) *SaveMonitor {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &SaveMonitor{fs: fs, emit: emit}
}

func (m *SaveMonitor) Start(doc host.Presentation) error {
	if doc == nil {
		return host.ErrInvalidInstance
	}
	at, _, _ := m.lastWrite(doc)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.start(doc, at)
	return nil
}

func (m *SaveMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop()
}

func (m *SaveMonitor) Monitoring() bool {
	return m.monitoring()
}

func (m *SaveMonitor) Check() {
	m.checking.Lock()
	defer m.checking.Unlock()

	m.mu.Lock()
	if m.doc == nil {
		m.mu.Unlock()
		return
	}
	at, path, ok := m.lastWrite(m.doc)
	if !ok || at.Equal(m.cache) {
		m.mu.Unlock()
		return
	}
	m.cache = at
	m.mu.Unlock()

	if m.emit != nil {
		m.emit(Event{Kind: PresentationSaved, Path: path, At: time.Now()})
	}
}

// WatchedFile returns the file backing the monitored presentation, or ""
// when idle or unsaved.
func (m *SaveMonitor) WatchedFile() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return ""
	}
	_, path, ok := m.lastWrite(m.doc)
	if !ok {
		return ""
	}
	return path
}

// lastWrite reads the modification time of doc's file. ok is false when the
// presentation has no saved file.
func (m *SaveMonitor) lastWrite(doc host.Presentation) (at time.Time, fullName string, ok bool) {
	dir, err := doc.Path()
	if err != nil || dir == "" {
		return time.Time{}, "", false
	}
	fullName, err = doc.FullName()
	if err != nil || fullName == "" {
		return time.Time{}, "", false
	}
	info, err := m.fs.Stat(fullName)
	if err != nil {
		logger.WithComponent("monitor").Tracef("stat %s: %v", fullName, err)
		return time.Time{}, "", false
	}
	return info.ModTime(), fullName, true
}
