package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bassista/go_pptcoach/internal/cache"
	"github.com/bassista/go_pptcoach/internal/config"
	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/bassista/go_pptcoach/internal/monitor"
	"github.com/bassista/go_pptcoach/internal/repository"
	"github.com/bassista/go_pptcoach/internal/scheduler"
	"github.com/bassista/go_pptcoach/internal/service"
	"github.com/spf13/afero"
)

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config     *config.Config
	Repo       repository.Repository
	Journal    cache.AppStore
	Connector  host.Connector
	PowerPoint *service.PowerPoint
	Monitor    *monitor.Monitor
	Session    *Session

	BaseCtx context.Context
	Cancel  context.CancelFunc

	persisted <-chan struct{}
}

// shutdownFlushTimeout bounds the wait for the final journal flush.
const shutdownFlushTimeout = 5 * time.Second

func New(cfg *config.Config, repo repository.Repository, store cache.AppStore, connector host.Connector) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if repo == nil {
		return nil, errors.New("repo is nil")
	}
	if store == nil {
		return nil, errors.New("journal store is nil")
	}
	if connector == nil {
		return nil, errors.New("connector is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	pp := service.New(connector)
	a := &App{
		Config:     cfg,
		Repo:       repo,
		Journal:    store,
		Connector:  connector,
		PowerPoint: pp,
		Session:    NewSession(pp),
		BaseCtx:    ctx,
		Cancel:     cancel,
	}
	a.Monitor = monitor.New(pp.SlideQuery, afero.NewOsFs(), a.record)
	return a, nil
}

// record is the monitor handler: every event lands in the journal.
func (a *App) record(ev monitor.Event) {
	if ev.Kind == monitor.PresentationSaved {
		a.Session.Rename(ev.Path)
	}
	name := a.Session.Name()
	entry := a.Journal.Record(name, ev)
	logger.WithPresentation("monitor", name).Infof("%s recorded as %s", ev.Kind, entry.ID)
}

// Attach makes doc the working presentation. Signals being monitored are
// moved over to doc.
func (a *App) Attach(doc host.Presentation) error {
	var running []monitor.Signal
	status := a.Monitor.Status()
	for _, s := range monitor.Signals {
		if status[s] {
			running = append(running, s)
		}
	}
	a.Monitor.StopAll()
	a.Session.Attach(doc)
	return a.Monitor.StartAll(doc, running...)
}

// StartMonitoring starts signal on the current presentation.
func (a *App) StartMonitoring(signal monitor.Signal) error {
	doc, err := a.Session.Current()
	if err != nil {
		return err
	}
	return a.Monitor.StartAll(doc, signal)
}

func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
	if a.Monitor != nil {
		a.Monitor.StopAll()
	}
	if a.persisted != nil {
		select {
		case <-a.persisted:
		case <-time.After(shutdownFlushTimeout):
			logger.WithComponent("app").Warn("journal flush did not finish before shutdown")
		}
	}
	if a.Session != nil {
		a.Session.Detach()
	}
	if closer, ok := a.Connector.(interface{ Close() }); ok {
		closer.Close()
	}
}

// configuredSignals lists the signals enabled in configuration.
func (a *App) configuredSignals() []monitor.Signal {
	var out []monitor.Signal
	m := a.Config.Monitor
	if m.Slide {
		out = append(out, monitor.SignalSlide)
	}
	if m.Selection {
		out = append(out, monitor.SignalSelection)
	}
	if m.Save {
		out = append(out, monitor.SignalSave)
	}
	return out
}

// StartWatchers starts the background jobs: journal file watcher, journal
// persistence and, when enabled, the monitor poll loop and save watcher.
func (a *App) StartWatchers() error {
	if err := a.Repo.StartWatcher(a.BaseCtx, a.Journal); err != nil {
		return fmt.Errorf("cannot start journal file watcher: %w", err)
	}

	a.persisted = cache.StartPersistenceScheduler(a.BaseCtx, a.Journal, a.Repo, a.Config.Journal.PersistInterval)

	if !a.Config.Monitor.Enabled {
		logger.WithComponent("app").Info("monitoring disabled")
		return nil
	}

	if a.Config.Host.AttachActive {
		if doc, err := a.Session.Current(); err != nil {
			logger.WithComponent("app").Warnf("no presentation to monitor yet: %v", err)
		} else if err := a.Monitor.StartAll(doc, a.configuredSignals()...); err != nil {
			logger.WithComponent("app").Warnf("cannot start monitors: %v", err)
		}
	}

	scheduler.NewPollingScheduler(a.Monitor, a.Config.Monitor.PollInterval).Start(a.BaseCtx)

	if a.Config.Monitor.WatchFiles && a.Config.Monitor.Save {
		w := scheduler.NewSaveWatcher(a.Monitor.Save.WatchedFile, a.Monitor.Save.Check, a.Config.Monitor.PollInterval)
		if _, err := w.Start(a.BaseCtx); err != nil {
			logger.WithComponent("app").Warnf("save watcher disabled: %v", err)
		}
	}
	return nil
}
