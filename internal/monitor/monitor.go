package monitor

import (
	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/bassista/go_pptcoach/internal/service"
	"github.com/spf13/afero"
)

// Monitor groups the three machines behind one handler. Each machine keeps
// its own lock, so signals can be started, stopped and checked independently.
type Monitor struct {
	Slide     *SlideMonitor
	Selection *SelectionMonitor
	Save      *SaveMonitor
}

func New(query *service.SlideQuery, fs afero.Fs, handler Handler) *Monitor {
	return &Monitor{
		Slide:     NewSlideMonitor(query, handler),
		Selection: NewSelectionMonitor(query, handler),
		Save:      NewSaveMonitor(fs, handler),
	}
}

// Machine returns the machine for signal.
func (m *Monitor) Machine(signal Signal) (Machine, error) {
	switch signal {
	case SignalSlide:
		return m.Slide, nil
	case SignalSelection:
		return m.Selection, nil
	case SignalSave:
		return m.Save, nil
	}
	_, err := ParseSignal(string(signal))
	return nil, err
}

// StartAll starts every listed signal on doc.
func (m *Monitor) StartAll(doc host.Presentation, signals ...Signal) error {
	for _, s := range signals {
		machine, err := m.Machine(s)
		if err != nil {
			return err
		}
		if err := machine.Start(doc); err != nil {
			return err
		}
		logger.WithComponent("monitor").Infof("monitoring %s", s)
	}
	return nil
}

func (m *Monitor) StopAll() {
	for _, s := range Signals {
		machine, _ := m.Machine(s)
		machine.Stop()
	}
}

// Check polls every machine once. Idle machines are skipped.
func (m *Monitor) Check() {
	m.Slide.Check()
	m.Selection.Check()
	m.Save.Check()
}

// Status reports which signals are being monitored.
func (m *Monitor) Status() map[Signal]bool {
	status := make(map[Signal]bool, len(Signals))
	for _, s := range Signals {
		machine, _ := m.Machine(s)
		status[s] = machine.Monitoring()
	}
	return status
}
