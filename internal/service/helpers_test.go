package service

import (
	"testing"

	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/stretchr/testify/require"
)

// newDeck returns an in-memory presentation holding one slide per layout.
func newDeck(t *testing.T, layouts ...host.SlideLayout) (*host.MemoryApplication, *host.MemoryPresentation) {
	t.Helper()
	app := host.NewMemoryApplication()
	doc, err := app.AddPresentation()
	require.NoError(t, err)
	for i, l := range layouts {
		_, err := doc.AddSlide(i+1, l)
		require.NoError(t, err)
	}
	return app, doc.(*host.MemoryPresentation)
}

func memorySlide(t *testing.T, doc host.Presentation, index int) *host.MemorySlide {
	t.Helper()
	s, err := doc.Slide(index)
	require.NoError(t, err)
	return s.(*host.MemorySlide)
}
