package host

const (
	// ProgID is the COM program id of the PowerPoint automation server.
	ProgID = "PowerPoint.Application"
	// Executable is the PowerPoint process image name.
	Executable = "powerpnt.exe"
)

// SlideLayout mirrors ppSlideLayout.
type SlideLayout int32

const (
	LayoutTitle SlideLayout = 1
	LayoutText  SlideLayout = 2
	LayoutBlank SlideLayout = 12
)

// ViewType mirrors ppViewType.
type ViewType int32

const (
	ViewNormal      ViewType = 1
	ViewSlideSorter ViewType = 3
)

// SelectionType mirrors ppSelectionType.
type SelectionType int32

const (
	SelectionNone   SelectionType = 0
	SelectionSlides SelectionType = 1
	SelectionShapes SelectionType = 2
)

// TriState mirrors msoTriState.
type TriState int32

const (
	TriStateTrue  TriState = -1
	TriStateFalse TriState = 0
)

// ShapeType mirrors the subset of msoShapeType this package names.
type ShapeType int32

const (
	ShapeAutoShape   ShapeType = 1
	ShapePicture     ShapeType = 13
	ShapePlaceholder ShapeType = 14
	ShapeTextBox     ShapeType = 17
	ShapeTable       ShapeType = 19
)

// ShapeKindUnknown is reported for every unmapped shape type.
const ShapeKindUnknown = "Unknown"

var shapeKindNames = map[ShapeType]string{
	ShapeAutoShape:   "AutoShape",
	ShapePicture:     "Picture",
	ShapePlaceholder: "Placeholder",
	ShapeTextBox:     "TextBox",
	ShapeTable:       "Table",
}

// ShapeKindName maps a shape type code to its readable name.
func ShapeKindName(t ShapeType) string {
	if name, ok := shapeKindNames[t]; ok {
		return name
	}
	return ShapeKindUnknown
}

// Valid reports whether l is one of the layouts this package creates.
func (l SlideLayout) Valid() bool {
	switch l {
	case LayoutTitle, LayoutText, LayoutBlank:
		return true
	}
	return false
}

func (l SlideLayout) String() string {
	switch l {
	case LayoutTitle:
		return "title"
	case LayoutText:
		return "text"
	case LayoutBlank:
		return "blank"
	}
	return "unknown"
}
