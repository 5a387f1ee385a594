package host

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/containerd/errdefs"
)

const (
	hresultClassString int32 = -0x7FFBFE0D // CO_E_CLASSSTRING 0x800401F3
	hresultUnavailable int32 = -0x7FFBFE1D // MK_E_UNAVAILABLE 0x800401E3
)

// MemoryConnector serves an in-process PowerPoint object graph.
// It is useful where no PowerPoint is available: tests, CI and local development.
type MemoryConnector struct {
	mu        sync.RWMutex
	installed bool
	running   bool
	app       *MemoryApplication
}

func NewMemoryConnector() *MemoryConnector {
	return &MemoryConnector{installed: true, running: true, app: NewMemoryApplication()}
}

func (c *MemoryConnector) Installed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.installed
}

func (c *MemoryConnector) Connect() (Application, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.installed {
		return nil, &ConnectionError{Reason: "failed to get CLSID for " + ProgID, Code: hresultClassString}
	}
	if !c.running {
		return nil, &ConnectionError{Reason: "failed to connect to running PowerPoint instance", Code: hresultUnavailable}
	}
	logger.WithComponent("memory-host").Debugf("connected to in-memory application")
	return c.app, nil
}

// SetInstalled toggles whether the program id resolves.
func (c *MemoryConnector) SetInstalled(installed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.installed = installed
}

// SetRunning toggles whether an instance is registered.
func (c *MemoryConnector) SetRunning(running bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = running
}

// App returns the application served by Connect.
func (c *MemoryConnector) App() *MemoryApplication {
	return c.app
}

// MemoryApplication is the root of the in-memory graph. A single lock guards
// the whole graph, so any handle may be used from any goroutine.
type MemoryApplication struct {
	mu            *sync.Mutex
	presentations []*MemoryPresentation
	active        *MemoryPresentation
	window        memoryWindow
}

type memoryWindow struct {
	viewType   ViewType
	viewSlide  int
	selType    SelectionType
	selSlide   int
	selShapes  []string
	selSlideOK bool
}

func NewMemoryApplication() *MemoryApplication {
	return &MemoryApplication{
		mu:     &sync.Mutex{},
		window: memoryWindow{viewType: ViewNormal, viewSlide: 1},
	}
}

func (a *MemoryApplication) AddPresentation() (Presentation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := &MemoryPresentation{mu: a.mu, app: a}
	a.presentations = append(a.presentations, p)
	a.active = p
	a.window = memoryWindow{viewType: ViewNormal, viewSlide: 1}
	logger.WithComponent("memory-host").Debugf("added presentation, %d open", len(a.presentations))
	return p, nil
}

func (a *MemoryApplication) ActivePresentation() (Presentation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active == nil {
		return nil, fmt.Errorf("no active presentation: %w", errdefs.ErrNotFound)
	}
	return a.active, nil
}

func (a *MemoryApplication) ActiveWindow() (Window, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active == nil {
		return nil, fmt.Errorf("no active window: %w", errdefs.ErrNotFound)
	}
	return &memoryWindowHandle{app: a}, nil
}

// SetView switches the active window's view and the slide it displays.
// A slide index of 0 leaves the view without a readable slide.
func (a *MemoryApplication) SetView(view ViewType, slideIndex int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.window.viewType = view
	a.window.viewSlide = slideIndex
}

// ClearSelection empties the active window's selection.
func (a *MemoryApplication) ClearSelection() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.window.selType = SelectionNone
	a.window.selSlide = 0
	a.window.selShapes = nil
	a.window.selSlideOK = false
}

// SelectSlide selects a slide range starting at slideNumber. A slideNumber
// of 0 makes the range unreadable.
func (a *MemoryApplication) SelectSlide(slideNumber int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.window.selType = SelectionSlides
	a.window.selSlide = slideNumber
	a.window.selShapes = nil
	a.window.selSlideOK = slideNumber > 0
}

// SelectShapes selects shapes by name, in order.
func (a *MemoryApplication) SelectShapes(names ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.window.selType = SelectionShapes
	a.window.selSlide = 0
	a.window.selShapes = slices.Clone(names)
	a.window.selSlideOK = false
}

// SetSelectionType forces a raw selection type, e.g. text selection (3).
func (a *MemoryApplication) SetSelectionType(t SelectionType) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.window.selType = t
}

type memoryWindowHandle struct {
	app *MemoryApplication
}

func (w *memoryWindowHandle) ViewType() (ViewType, error) {
	w.app.mu.Lock()
	defer w.app.mu.Unlock()
	return w.app.window.viewType, nil
}

func (w *memoryWindowHandle) ViewSlideIndex() (int, error) {
	w.app.mu.Lock()
	defer w.app.mu.Unlock()
	idx := w.app.window.viewSlide
	if w.app.active == nil || idx < 1 || idx > len(w.app.active.slides) {
		return 0, fmt.Errorf("view has no slide: %w", errdefs.ErrNotFound)
	}
	return idx, nil
}

func (w *memoryWindowHandle) Selection() (Selection, error) {
	w.app.mu.Lock()
	defer w.app.mu.Unlock()
	sel := w.app.window
	sel.selShapes = slices.Clone(sel.selShapes)
	return &memorySelection{state: sel}, nil
}

type memorySelection struct {
	state memoryWindow
}

func (s *memorySelection) Type() (SelectionType, error) {
	return s.state.selType, nil
}

func (s *memorySelection) SlideNumber() (int, error) {
	if s.state.selType != SelectionSlides || !s.state.selSlideOK {
		return 0, fmt.Errorf("no slide range selected: %w", errdefs.ErrNotFound)
	}
	return s.state.selSlide, nil
}

func (s *memorySelection) ShapeNames() ([]string, error) {
	if s.state.selType != SelectionShapes {
		return nil, fmt.Errorf("no shape range selected: %w", errdefs.ErrNotFound)
	}
	return s.state.selShapes, nil
}

// MemoryPresentation is an in-memory presentation.
type MemoryPresentation struct {
	mu       *sync.Mutex
	app      *MemoryApplication
	slides   []*MemorySlide
	fullName string
}

func (p *MemoryPresentation) Application() (Application, error) {
	return p.app, nil
}

func (p *MemoryPresentation) SlideCount() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slides), nil
}

func (p *MemoryPresentation) Slide(index int) (Slide, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 1 || index > len(p.slides) {
		return nil, fmt.Errorf("slide %d out of range 1..%d: %w", index, len(p.slides), errdefs.ErrNotFound)
	}
	return p.slides[index-1], nil
}

func (p *MemoryPresentation) AddSlide(index int, layout SlideLayout) (Slide, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 1 || index > len(p.slides)+1 {
		return nil, fmt.Errorf("slide index %d out of range 1..%d: %w", index, len(p.slides)+1, errdefs.ErrInvalidArgument)
	}
	s := &MemorySlide{mu: p.mu, pres: p, layout: layout}
	p.slides = slices.Insert(p.slides, index-1, s)
	logger.WithComponent("memory-host").Debugf("added slide at %d with layout %s", index, layout)
	return s, nil
}

func (p *MemoryPresentation) Path() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fullName == "" {
		return "", nil
	}
	return filepath.Dir(p.fullName), nil
}

func (p *MemoryPresentation) FullName() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fullName == "" {
		return "Presentation1", nil
	}
	return p.fullName, nil
}

// SaveAs records fullName as the saved location. The file itself is not
// written; callers that need a timestamp write it through their own filesystem.
func (p *MemoryPresentation) SaveAs(fullName string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fullName = fullName
}

func (p *MemoryPresentation) indexOf(s *MemorySlide) int {
	for i, candidate := range p.slides {
		if candidate == s {
			return i + 1
		}
	}
	return 0
}

// MemorySlide is an in-memory slide.
type MemorySlide struct {
	mu     *sync.Mutex
	pres   *MemoryPresentation
	layout SlideLayout
	shapes []*MemoryShape
}

func (s *MemorySlide) Index() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.pres.indexOf(s)
	if idx == 0 {
		return 0, fmt.Errorf("slide was deleted: %w", errdefs.ErrNotFound)
	}
	return idx, nil
}

func (s *MemorySlide) Layout() (SlideLayout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout, nil
}

func (s *MemorySlide) ShapeCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shapes), nil
}

func (s *MemorySlide) Shape(index int) (Shape, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 1 || index > len(s.shapes) {
		return nil, fmt.Errorf("shape %d out of range 1..%d: %w", index, len(s.shapes), errdefs.ErrNotFound)
	}
	return s.shapes[index-1], nil
}

func (s *MemorySlide) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.pres.indexOf(s)
	if idx == 0 {
		return fmt.Errorf("slide was deleted: %w", errdefs.ErrNotFound)
	}
	s.pres.slides = slices.Delete(s.pres.slides, idx-1, idx)
	logger.WithComponent("memory-host").Debugf("deleted slide %d", idx)
	return nil
}

func (s *MemorySlide) MoveTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.pres.indexOf(s)
	if from == 0 {
		return fmt.Errorf("slide was deleted: %w", errdefs.ErrNotFound)
	}
	if index < 1 || index > len(s.pres.slides) {
		return fmt.Errorf("slide index %d out of range 1..%d: %w", index, len(s.pres.slides), errdefs.ErrInvalidArgument)
	}
	slides := slices.Delete(s.pres.slides, from-1, from)
	s.pres.slides = slices.Insert(slides, index-1, s)
	logger.WithComponent("memory-host").Debugf("moved slide %d to %d", from, index)
	return nil
}

// AddShape appends a shape built from def and returns it.
func (s *MemorySlide) AddShape(def MemoryShape) *MemoryShape {
	s.mu.Lock()
	defer s.mu.Unlock()
	shape := def
	shape.mu = s.mu
	if shape.ShapeName == "" {
		shape.ShapeName = fmt.Sprintf("Shape %d", len(s.shapes)+1)
	}
	shape.Cells = make([][]MemoryShape, len(def.Cells))
	for r := range def.Cells {
		shape.Cells[r] = slices.Clone(def.Cells[r])
		for c := range shape.Cells[r] {
			shape.Cells[r][c].mu = s.mu
		}
	}
	s.shapes = append(s.shapes, &shape)
	return &shape
}

// AddTextBox appends a text box holding text in the given font.
func (s *MemorySlide) AddTextBox(name, text string, font MemoryFont) *MemoryShape {
	return s.AddShape(MemoryShape{
		ShapeName:    name,
		Kind:         ShapeTextBox,
		TextFrameSet: true,
		Text:         text,
		Font:         font,
	})
}

// MemoryShape is an in-memory shape. Exported fields describe it when passed
// to AddShape; after that the shape must only be read through its methods.
type MemoryShape struct {
	mu *sync.Mutex

	ShapeName    string
	Kind         ShapeType
	TextFrameSet bool
	Text         string
	Font         MemoryFont
	Fill         int32
	X, Y         float32
	W, H         float32
	// Cells holds table cells row-major; each cell is itself a text shape.
	Cells [][]MemoryShape
}

// MemoryFont describes the font of a shape's text range.
type MemoryFont struct {
	Name  string
	Size  float32
	Color int32
}

func (sh *MemoryShape) lock() func() {
	if sh.mu == nil {
		return func() {}
	}
	sh.mu.Lock()
	return sh.mu.Unlock
}

func (sh *MemoryShape) Name() (string, error) {
	defer sh.lock()()
	return sh.ShapeName, nil
}

func (sh *MemoryShape) Type() (ShapeType, error) {
	defer sh.lock()()
	return sh.Kind, nil
}

func (sh *MemoryShape) HasTextFrame() (TriState, error) {
	defer sh.lock()()
	if sh.TextFrameSet {
		return TriStateTrue, nil
	}
	return TriStateFalse, nil
}

func (sh *MemoryShape) TextFrame() (TextFrame, error) {
	defer sh.lock()()
	if !sh.TextFrameSet {
		return nil, fmt.Errorf("shape %q has no text frame: %w", sh.ShapeName, errdefs.ErrNotFound)
	}
	return &memoryTextFrame{shape: sh}, nil
}

func (sh *MemoryShape) FillColor() (int32, error) {
	defer sh.lock()()
	return sh.Fill, nil
}

func (sh *MemoryShape) Left() (float32, error) {
	defer sh.lock()()
	return sh.X, nil
}

func (sh *MemoryShape) Top() (float32, error) {
	defer sh.lock()()
	return sh.Y, nil
}

func (sh *MemoryShape) Width() (float32, error) {
	defer sh.lock()()
	return sh.W, nil
}

func (sh *MemoryShape) Height() (float32, error) {
	defer sh.lock()()
	return sh.H, nil
}

func (sh *MemoryShape) TableCell(row, col int) (Shape, error) {
	defer sh.lock()()
	if sh.Kind != ShapeTable {
		return nil, fmt.Errorf("shape %q has no table: %w", sh.ShapeName, errdefs.ErrInvalidArgument)
	}
	if row < 1 || row > len(sh.Cells) || col < 1 || col > len(sh.Cells[row-1]) {
		return nil, fmt.Errorf("cell (%d,%d) out of range: %w", row, col, errdefs.ErrNotFound)
	}
	return &sh.Cells[row-1][col-1], nil
}

type memoryTextFrame struct {
	shape *MemoryShape
}

func (tf *memoryTextFrame) HasText() (TriState, error) {
	defer tf.shape.lock()()
	if tf.shape.Text != "" {
		return TriStateTrue, nil
	}
	return TriStateFalse, nil
}

func (tf *memoryTextFrame) Text() (string, error) {
	defer tf.shape.lock()()
	return tf.shape.Text, nil
}

func (tf *memoryTextFrame) Font() (Font, error) {
	defer tf.shape.lock()()
	return memoryFont{def: tf.shape.Font}, nil
}

type memoryFont struct {
	def MemoryFont
}

func (f memoryFont) Name() (string, error) {
	return f.def.Name, nil
}

func (f memoryFont) Size() (float32, error) {
	return f.def.Size, nil
}

func (f memoryFont) Color() (int32, error) {
	return f.def.Color, nil
}
