package service

import (
	"fmt"

	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
)

// SlideOperations adds, deletes and reorders slides.
type SlideOperations struct{}

func NewSlideOperations() *SlideOperations {
	return &SlideOperations{}
}

// AddBlankSlide appends a blank slide.
func (o *SlideOperations) AddBlankSlide(doc host.Presentation) (host.Slide, error) {
	return o.AddSlideWithLayout(doc, host.LayoutBlank)
}

// AddSlideWithLayout appends a slide using layout.
func (o *SlideOperations) AddSlideWithLayout(doc host.Presentation, layout host.SlideLayout) (host.Slide, error) {
	count, err := doc.SlideCount()
	if err != nil {
		return nil, fmt.Errorf("count slides: %w", err)
	}
	slide, err := doc.AddSlide(count+1, layout)
	if err != nil {
		return nil, creationFailure(fmt.Sprintf("add slide %d", count+1), err)
	}
	logger.WithComponent("slides").Debugf("added slide %d with layout %s", count+1, layout)
	return slide, nil
}

// DeleteSlide removes the slide at the 1-based index. The last remaining
// slide is never deleted.
func (o *SlideOperations) DeleteSlide(doc host.Presentation, index int) error {
	count, err := doc.SlideCount()
	if err != nil {
		return fmt.Errorf("count slides: %w", err)
	}
	if count == 1 {
		return host.ErrLastSlide
	}

	slide, err := doc.Slide(index)
	if err != nil {
		return fmt.Errorf("get slide %d: %w", index, err)
	}
	defer host.Release(slide)

	if err := slide.Delete(); err != nil {
		return fmt.Errorf("delete slide %d: %w", index, err)
	}
	logger.WithComponent("slides").Debugf("deleted slide %d of %d", index, count)
	return nil
}

// MoveSlide relocates the slide at from to position to.
func (o *SlideOperations) MoveSlide(doc host.Presentation, from, to int) error {
	slide, err := doc.Slide(from)
	if err != nil {
		return fmt.Errorf("get slide %d: %w", from, err)
	}
	defer host.Release(slide)

	if err := slide.MoveTo(to); err != nil {
		return fmt.Errorf("move slide %d to %d: %w", from, to, err)
	}
	logger.WithComponent("slides").Debugf("moved slide %d to %d", from, to)
	return nil
}
