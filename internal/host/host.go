package host

// Connector locates the PowerPoint automation server.
// COMConnector talks to a real PowerPoint through the Running Object Table,
// MemoryConnector serves an in-process object graph for tests and development.
type Connector interface {
	// Installed reports whether the PowerPoint program id can be resolved.
	Installed() bool
	// Connect returns the running Application or a *ConnectionError.
	Connect() (Application, error)
}

// Application is the root of the PowerPoint object graph.
type Application interface {
	AddPresentation() (Presentation, error)
	ActivePresentation() (Presentation, error)
	ActiveWindow() (Window, error)
}

// Window is the active document window.
type Window interface {
	ViewType() (ViewType, error)
	// ViewSlideIndex is View.Slide.SlideIndex.
	ViewSlideIndex() (int, error)
	Selection() (Selection, error)
}

// Selection is the window's current selection.
type Selection interface {
	Type() (SelectionType, error)
	// SlideNumber is SlideRange.SlideNumber, valid for SelectionSlides.
	SlideNumber() (int, error)
	// ShapeNames lists ShapeRange names in order, valid for SelectionShapes.
	ShapeNames() ([]string, error)
}

type Presentation interface {
	Application() (Application, error)
	SlideCount() (int, error)
	// Slide resolves a 1-based slide index.
	Slide(index int) (Slide, error)
	AddSlide(index int, layout SlideLayout) (Slide, error)
	// Path is the saved directory, empty until the first save.
	Path() (string, error)
	FullName() (string, error)
}

type Slide interface {
	Index() (int, error)
	Layout() (SlideLayout, error)
	ShapeCount() (int, error)
	// Shape resolves a 1-based shape index.
	Shape(index int) (Shape, error)
	Delete() error
	MoveTo(index int) error
}

type Shape interface {
	Name() (string, error)
	Type() (ShapeType, error)
	HasTextFrame() (TriState, error)
	TextFrame() (TextFrame, error)
	// FillColor is Fill.ForeColor.RGB in packed BGR form.
	FillColor() (int32, error)
	Left() (float32, error)
	Top() (float32, error)
	Width() (float32, error)
	Height() (float32, error)
	// TableCell is Table.Cell(row, col).Shape, both 1-based.
	TableCell(row, col int) (Shape, error)
}

type TextFrame interface {
	HasText() (TriState, error)
	// Text is TextRange.Text.
	Text() (string, error)
	// Font is TextRange.Font.
	Font() (Font, error)
}

type Font interface {
	Name() (string, error)
	Size() (float32, error)
	// Color is Color.RGB in packed BGR form.
	Color() (int32, error)
}

// Releaser is implemented by handles that pin external resources.
type Releaser interface {
	Release()
}

// Release frees v if it holds external resources. Safe on nil and on
// handles that hold nothing.
func Release(v any) {
	if r, ok := v.(Releaser); ok && r != nil {
		r.Release()
	}
}
