package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bassista/go_pptcoach/internal/cache"
	"github.com/bassista/go_pptcoach/internal/config"
	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/monitor"
	"github.com/bassista/go_pptcoach/internal/repository"
)

// mockRepository implements repository.Repository for testing
type mockRepository struct {
	mu             sync.Mutex
	watcherStarted bool
	watcherErr     error
	doc            repository.Journal
}

func (m *mockRepository) Load(ctx context.Context) (*repository.Journal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.doc
	return &doc, nil
}

func (m *mockRepository) Save(ctx context.Context, doc *repository.Journal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc != nil {
		m.doc = *doc
	}
	return nil
}

func (m *mockRepository) StartWatcher(ctx context.Context, store repository.CacheStore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watcherErr != nil {
		return m.watcherErr
	}
	m.watcherStarted = true
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Host: config.HostConfig{Type: host.HostTypeMemory, AttachActive: true},
		Monitor: config.MonitorConfig{
			Enabled:      true,
			PollInterval: 10 * time.Millisecond,
			Slide:        true,
			Selection:    true,
		},
		Journal: config.JournalConfig{PersistInterval: time.Hour, Capacity: 100},
	}
}

func newTestApp(t *testing.T) (*App, *host.MemoryConnector, *mockRepository) {
	t.Helper()
	connector := host.NewMemoryConnector()
	doc, err := connector.App().AddPresentation()
	if err != nil {
		t.Fatalf("add presentation: %v", err)
	}
	for i := 1; i <= 3; i++ {
		if _, err := doc.AddSlide(i, host.LayoutBlank); err != nil {
			t.Fatalf("add slide: %v", err)
		}
	}

	repo := &mockRepository{}
	app, err := New(testConfig(), repo, cache.NewStore(repository.Journal{}, 100), connector)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	t.Cleanup(app.Shutdown)
	return app, connector, repo
}

func TestNew_Success(t *testing.T) {
	app, connector, _ := newTestApp(t)

	if app.Connector != connector {
		t.Error("connector not set correctly")
	}
	if app.PowerPoint == nil || app.Monitor == nil || app.Session == nil {
		t.Error("facade, monitor and session should be built")
	}
	if app.BaseCtx == nil || app.Cancel == nil {
		t.Error("lifecycle context should be set")
	}
}

func TestNew_NilDependencies(t *testing.T) {
	cfg := testConfig()
	repo := &mockRepository{}
	store := cache.NewStore(repository.Journal{}, 10)
	connector := host.NewMemoryConnector()

	tests := []struct {
		name string
		fn   func() (*App, error)
		msg  string
	}{
		{"config", func() (*App, error) { return New(nil, repo, store, connector) }, "config is nil"},
		{"repo", func() (*App, error) { return New(cfg, nil, store, connector) }, "repo is nil"},
		{"store", func() (*App, error) { return New(cfg, repo, nil, connector) }, "journal store is nil"},
		{"connector", func() (*App, error) { return New(cfg, repo, store, nil) }, "connector is nil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := tt.fn()
			if app != nil {
				t.Error("expected nil app on error")
			}
			if err == nil || err.Error() != tt.msg {
				t.Errorf("expected %q, got %v", tt.msg, err)
			}
		})
	}
}

func TestApp_Shutdown(t *testing.T) {
	app, _, _ := newTestApp(t)

	app.Shutdown()

	select {
	case <-app.BaseCtx.Done():
	default:
		t.Error("context should be done after shutdown")
	}
	if app.Session.Status().Attached {
		t.Error("session should be detached after shutdown")
	}
}

func TestApp_Shutdown_Nil(t *testing.T) {
	var app *App
	app.Shutdown()

	(&App{}).Shutdown()
}

func TestApp_MonitorEventsReachJournal(t *testing.T) {
	app, connector, _ := newTestApp(t)

	if err := app.StartMonitoring(monitor.SignalSlide); err != nil {
		t.Fatalf("start monitoring: %v", err)
	}
	connector.App().SetView(host.ViewNormal, 3)
	app.Monitor.Check()

	events := app.Journal.Latest(0)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Kind != string(monitor.SlideChanged) || events[0].Slide != 3 {
		t.Errorf("unexpected event: %+v", events[0])
	}
	if events[0].Presentation != "Presentation1" {
		t.Errorf("expected presentation name, got %q", events[0].Presentation)
	}
}

func TestApp_AttachMovesMonitors(t *testing.T) {
	app, connector, _ := newTestApp(t)
	if err := app.StartMonitoring(monitor.SignalSelection); err != nil {
		t.Fatalf("start monitoring: %v", err)
	}

	doc, err := app.Session.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := app.Attach(doc); err != nil {
		t.Fatalf("attach: %v", err)
	}

	status := app.Monitor.Status()
	if !status[monitor.SignalSelection] || status[monitor.SignalSlide] {
		t.Errorf("expected only selection to be monitored, got %v", status)
	}
	current, _ := app.Session.Attached()
	if current != doc {
		t.Error("expected new presentation to be attached")
	}

	connector.App().SelectShapes("Box")
	app.Monitor.Check()
	if n := len(app.Journal.Latest(0)); n != 1 {
		t.Errorf("expected 1 event after attach, got %d", n)
	}
}

func TestApp_StartWatchers(t *testing.T) {
	app, connector, repo := newTestApp(t)

	if err := app.StartWatchers(); err != nil {
		t.Fatalf("start watchers: %v", err)
	}
	if !repo.watcherStarted {
		t.Error("expected journal watcher to be started")
	}
	status := app.Monitor.Status()
	if !status[monitor.SignalSlide] || !status[monitor.SignalSelection] || status[monitor.SignalSave] {
		t.Errorf("expected configured signals to be monitored, got %v", status)
	}

	connector.App().SetView(host.ViewNormal, 2)
	deadline := time.Now().Add(time.Second)
	for len(app.Journal.Latest(0)) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if len(app.Journal.Latest(0)) == 0 {
		t.Error("expected the poll loop to record a slide change")
	}
}

func TestApp_StartWatchers_WatcherError(t *testing.T) {
	app, _, repo := newTestApp(t)
	repo.watcherErr = errors.New("no inotify")

	if err := app.StartWatchers(); err == nil {
		t.Error("expected watcher error to surface")
	}
}

func TestApp_StartWatchers_NotRunning(t *testing.T) {
	app, connector, _ := newTestApp(t)
	connector.SetRunning(false)

	if err := app.StartWatchers(); err != nil {
		t.Fatalf("a missing PowerPoint must not stop the server: %v", err)
	}
	for s, on := range app.Monitor.Status() {
		if on {
			t.Errorf("expected %s to stay idle", s)
		}
	}
}

func TestApp_ShutdownFlushesJournal(t *testing.T) {
	app, connector, repo := newTestApp(t)
	if err := app.StartWatchers(); err != nil {
		t.Fatalf("start watchers: %v", err)
	}

	connector.App().SetView(host.ViewNormal, 3)
	app.Monitor.Check()
	app.Shutdown()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.doc.Events) == 0 {
		t.Fatal("expected the journal to be saved on shutdown")
	}
	if repo.doc.Metadata.LastUpdate == 0 {
		t.Error("expected lastUpdate to be stamped")
	}
}
