package host

import (
	"sync"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryPresentation(t *testing.T, layouts ...SlideLayout) (*MemoryApplication, *MemoryPresentation) {
	t.Helper()
	app := NewMemoryApplication()
	doc, err := app.AddPresentation()
	require.NoError(t, err)
	for i, l := range layouts {
		_, err := doc.AddSlide(i+1, l)
		require.NoError(t, err)
	}
	return app, doc.(*MemoryPresentation)
}

func TestMemoryConnector_Connect(t *testing.T) {
	c := NewMemoryConnector()
	assert.True(t, c.Installed())

	app, err := c.Connect()
	require.NoError(t, err)
	assert.Same(t, c.App(), app)
}

func TestMemoryConnector_NotRunning(t *testing.T) {
	c := NewMemoryConnector()
	c.SetRunning(false)

	app, err := c.Connect()
	assert.Nil(t, app)
	var ce *ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, hresultUnavailable, ce.Code)
}

func TestMemoryConnector_NotInstalled(t *testing.T) {
	c := NewMemoryConnector()
	c.SetInstalled(false)

	assert.False(t, c.Installed())
	_, err := c.Connect()
	var ce *ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, hresultClassString, ce.Code)
}

func TestMemoryApplication_NoPresentation(t *testing.T) {
	app := NewMemoryApplication()

	_, err := app.ActivePresentation()
	assert.True(t, errdefs.IsNotFound(err))
	_, err = app.ActiveWindow()
	assert.True(t, errdefs.IsNotFound(err))
}

func TestMemoryPresentation_AddSlide(t *testing.T) {
	_, doc := newMemoryPresentation(t, LayoutTitle)

	s, err := doc.AddSlide(2, LayoutBlank)
	require.NoError(t, err)

	idx, err := s.Index()
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	layout, _ := s.Layout()
	assert.Equal(t, LayoutBlank, layout)

	_, err = doc.AddSlide(5, LayoutBlank)
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestMemorySlide_DeleteAndMove(t *testing.T) {
	_, doc := newMemoryPresentation(t, LayoutTitle, LayoutText, LayoutBlank)

	second, err := doc.Slide(2)
	require.NoError(t, err)
	require.NoError(t, second.MoveTo(1))

	first, _ := doc.Slide(1)
	layout, _ := first.Layout()
	assert.Equal(t, LayoutText, layout)

	require.NoError(t, first.Delete())
	count, _ := doc.SlideCount()
	assert.Equal(t, 2, count)

	_, err = first.Index()
	assert.True(t, errdefs.IsNotFound(err))
	assert.True(t, errdefs.IsNotFound(first.Delete()))
}

func TestMemoryPresentation_SlideOutOfRange(t *testing.T) {
	_, doc := newMemoryPresentation(t, LayoutBlank)

	_, err := doc.Slide(0)
	assert.True(t, errdefs.IsNotFound(err))
	_, err = doc.Slide(2)
	assert.True(t, errdefs.IsNotFound(err))
}

func TestMemoryPresentation_SaveAs(t *testing.T) {
	_, doc := newMemoryPresentation(t, LayoutBlank)

	path, _ := doc.Path()
	assert.Empty(t, path)

	doc.SaveAs("/decks/talk.pptx")
	path, _ = doc.Path()
	full, _ := doc.FullName()
	assert.Equal(t, "/decks", path)
	assert.Equal(t, "/decks/talk.pptx", full)
}

func TestMemoryShape_TextAndTable(t *testing.T) {
	_, doc := newMemoryPresentation(t, LayoutBlank)
	slide, _ := doc.Slide(1)
	ms := slide.(*MemorySlide)

	ms.AddTextBox("Title", "Hello", MemoryFont{Name: "Arial", Size: 24, Color: 0x0000FF})
	ms.AddShape(MemoryShape{Kind: ShapePicture})
	ms.AddShape(MemoryShape{
		ShapeName: "Grid",
		Kind:      ShapeTable,
		Cells: [][]MemoryShape{
			{{TextFrameSet: true, Text: "a"}, {TextFrameSet: true, Text: "b"}},
		},
	})

	count, _ := ms.ShapeCount()
	assert.Equal(t, 3, count)

	picture, _ := ms.Shape(2)
	name, _ := picture.Name()
	assert.Equal(t, "Shape 2", name)
	_, err := picture.TextFrame()
	assert.True(t, errdefs.IsNotFound(err))

	title, _ := ms.Shape(1)
	tf, err := title.TextFrame()
	require.NoError(t, err)
	text, _ := tf.Text()
	assert.Equal(t, "Hello", text)
	font, _ := tf.Font()
	fontName, _ := font.Name()
	assert.Equal(t, "Arial", fontName)

	grid, _ := ms.Shape(3)
	cell, err := grid.TableCell(1, 2)
	require.NoError(t, err)
	ctf, _ := cell.TextFrame()
	cellText, _ := ctf.Text()
	assert.Equal(t, "b", cellText)

	_, err = grid.TableCell(2, 1)
	assert.True(t, errdefs.IsNotFound(err))
	_, err = title.TableCell(1, 1)
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestMemoryWindow_ViewAndSelection(t *testing.T) {
	app, _ := newMemoryPresentation(t, LayoutBlank, LayoutBlank)

	app.SetView(ViewNormal, 2)
	w, err := app.ActiveWindow()
	require.NoError(t, err)
	idx, err := w.ViewSlideIndex()
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	app.SetView(ViewNormal, 9)
	_, err = w.ViewSlideIndex()
	assert.Error(t, err)

	app.SelectShapes("A", "B")
	sel, _ := w.Selection()
	typ, _ := sel.Type()
	assert.Equal(t, SelectionShapes, typ)
	names, _ := sel.ShapeNames()
	assert.Equal(t, []string{"A", "B"}, names)
	_, err = sel.SlideNumber()
	assert.Error(t, err)

	app.SelectSlide(2)
	sel, _ = w.Selection()
	n, err := sel.SlideNumber()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemoryApplication_Concurrency(t *testing.T) {
	app, doc := newMemoryPresentation(t, LayoutBlank)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = doc.AddSlide(1, LayoutBlank)
		}()
		go func(n int) {
			defer wg.Done()
			app.SetView(ViewNormal, n)
			_, _ = doc.SlideCount()
		}(i)
	}
	wg.Wait()

	count, _ := doc.SlideCount()
	assert.Equal(t, 51, count)
}

func TestRelease_NoOpForMemoryHandles(t *testing.T) {
	_, doc := newMemoryPresentation(t, LayoutBlank)
	assert.NotPanics(t, func() {
		Release(doc)
		Release(nil)
	})
}
