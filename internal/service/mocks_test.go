package service

import (
	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/stretchr/testify/mock"
)

// MockConnector is a mock implementation of host.Connector
type MockConnector struct {
	mock.Mock
}

func (m *MockConnector) Installed() bool {
	return m.Called().Bool(0)
}

func (m *MockConnector) Connect() (host.Application, error) {
	args := m.Called()
	app, _ := args.Get(0).(host.Application)
	return app, args.Error(1)
}

// MockApplication is a mock implementation of host.Application
type MockApplication struct {
	mock.Mock
}

func (m *MockApplication) AddPresentation() (host.Presentation, error) {
	args := m.Called()
	doc, _ := args.Get(0).(host.Presentation)
	return doc, args.Error(1)
}

func (m *MockApplication) ActivePresentation() (host.Presentation, error) {
	args := m.Called()
	doc, _ := args.Get(0).(host.Presentation)
	return doc, args.Error(1)
}

func (m *MockApplication) ActiveWindow() (host.Window, error) {
	args := m.Called()
	w, _ := args.Get(0).(host.Window)
	return w, args.Error(1)
}

// stubShape answers every property from its fields and fails where err is set.
type stubShape struct {
	hasTextFrame host.TriState
	frameErr     error
	typeErr      error
	fillErr      error
}

func (s *stubShape) Name() (string, error)                { return "stub", nil }
func (s *stubShape) Type() (host.ShapeType, error)        { return host.ShapeAutoShape, s.typeErr }
func (s *stubShape) HasTextFrame() (host.TriState, error) { return s.hasTextFrame, nil }
func (s *stubShape) TextFrame() (host.TextFrame, error)   { return nil, s.frameErr }
func (s *stubShape) FillColor() (int32, error)            { return 0x00FF00, s.fillErr }
func (s *stubShape) Left() (float32, error)               { return 1, nil }
func (s *stubShape) Top() (float32, error)                { return 2, nil }
func (s *stubShape) Width() (float32, error)              { return 3, nil }
func (s *stubShape) Height() (float32, error)             { return 4, nil }
func (s *stubShape) TableCell(int, int) (host.Shape, error) {
	return nil, s.frameErr
}
