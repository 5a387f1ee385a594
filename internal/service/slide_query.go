package service

import (
	"fmt"
	"strings"

	"github.com/bassista/go_pptcoach/internal/host"
)

// SlideQuery reads slide-level information.
type SlideQuery struct{}

func NewSlideQuery() *SlideQuery {
	return &SlideQuery{}
}

// CurrentSlideNumber reports the slide the user is looking at. The answer
// depends on the view:
//   - Normal view: the slide shown in the view, or 1 if it cannot be read.
//   - Nothing selected: 0 in Slide Sorter, otherwise 1 if any slide exists.
//   - Slides selected: the selected range's number, or 0 if unreadable.
//   - Anything else: 0.
func (q *SlideQuery) CurrentSlideNumber(doc host.Presentation) (int, error) {
	app, err := doc.Application()
	if err != nil {
		return 0, fmt.Errorf("get application: %w", err)
	}
	defer host.Release(app)

	window, err := app.ActiveWindow()
	if err != nil {
		return 0, fmt.Errorf("get active window: %w", err)
	}
	defer host.Release(window)

	selection, err := window.Selection()
	if err != nil {
		return 0, fmt.Errorf("get selection: %w", err)
	}
	defer host.Release(selection)

	selectionType, err := selection.Type()
	if err != nil {
		return 0, fmt.Errorf("get selection type: %w", err)
	}
	viewType, err := window.ViewType()
	if err != nil {
		return 0, fmt.Errorf("get view type: %w", err)
	}

	if viewType == host.ViewNormal {
		idx, err := window.ViewSlideIndex()
		if err != nil {
			return 1, nil
		}
		return idx, nil
	}

	switch selectionType {
	case host.SelectionNone:
		if viewType == host.ViewSlideSorter {
			return 0, nil
		}
		count, err := doc.SlideCount()
		if err != nil {
			return 0, fmt.Errorf("count slides: %w", err)
		}
		if count > 0 {
			return 1, nil
		}
		return 0, nil
	case host.SelectionSlides:
		n, err := selection.SlideNumber()
		if err != nil {
			return 0, nil
		}
		return n, nil
	}
	return 0, nil
}

func (q *SlideQuery) SlideCount(doc host.Presentation) (int, error) {
	return doc.SlideCount()
}

// Slide resolves a 1-based slide index.
func (q *SlideQuery) Slide(doc host.Presentation, index int) (host.Slide, error) {
	slide, err := doc.Slide(index)
	if err != nil {
		return nil, fmt.Errorf("get slide %d: %w", index, err)
	}
	return slide, nil
}

// SlideTitle is the text of the slide's first shape.
func (q *SlideQuery) SlideTitle(slide host.Slide) (string, error) {
	shape, err := slide.Shape(1)
	if err != nil {
		return "", fmt.Errorf("get title shape: %w", err)
	}
	defer host.Release(shape)

	tf, err := shape.TextFrame()
	if err != nil {
		return "", fmt.Errorf("get title text frame: %w", err)
	}
	defer host.Release(tf)

	return tf.Text()
}

// AllText joins the trimmed text of every shape that carries some, one shape
// per line. Shapes that cannot be read are skipped.
func (q *SlideQuery) AllText(slide host.Slide) (string, error) {
	count, err := slide.ShapeCount()
	if err != nil {
		return "", fmt.Errorf("count shapes: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= count; i++ {
		text, ok := shapeText(slide, i)
		if !ok {
			continue
		}
		sb.WriteString(strings.TrimSpace(text))
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(sb.String()), nil
}

func shapeText(slide host.Slide, index int) (string, bool) {
	shape, err := slide.Shape(index)
	if err != nil {
		return "", false
	}
	defer host.Release(shape)

	has, err := shape.HasTextFrame()
	if err != nil || has != host.TriStateTrue {
		return "", false
	}
	tf, err := shape.TextFrame()
	if err != nil {
		return "", false
	}
	defer host.Release(tf)

	hasText, err := tf.HasText()
	if err != nil || hasText != host.TriStateTrue {
		return "", false
	}
	text, err := tf.Text()
	if err != nil || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// Shapes materialises the slide's shapes in order.
func (q *SlideQuery) Shapes(slide host.Slide) ([]host.Shape, error) {
	count, err := slide.ShapeCount()
	if err != nil {
		return nil, fmt.Errorf("count shapes: %w", err)
	}
	shapes := make([]host.Shape, 0, count)
	for i := 1; i <= count; i++ {
		shape, err := slide.Shape(i)
		if err != nil {
			for _, s := range shapes {
				host.Release(s)
			}
			return nil, fmt.Errorf("get shape %d: %w", i, err)
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

// SelectedShapeName is the name of the first selected shape, or "" when the
// selection does not hold shapes.
func (q *SlideQuery) SelectedShapeName(doc host.Presentation) (string, error) {
	app, err := doc.Application()
	if err != nil {
		return "", fmt.Errorf("get application: %w", err)
	}
	defer host.Release(app)

	window, err := app.ActiveWindow()
	if err != nil {
		return "", fmt.Errorf("get active window: %w", err)
	}
	defer host.Release(window)

	selection, err := window.Selection()
	if err != nil {
		return "", fmt.Errorf("get selection: %w", err)
	}
	defer host.Release(selection)

	selectionType, err := selection.Type()
	if err != nil {
		return "", fmt.Errorf("get selection type: %w", err)
	}
	if selectionType != host.SelectionShapes {
		return "", nil
	}
	names, err := selection.ShapeNames()
	if err != nil {
		return "", fmt.Errorf("get selected shapes: %w", err)
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[0], nil
}
