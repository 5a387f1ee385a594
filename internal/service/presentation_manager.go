package service

import (
	"errors"
	"fmt"

	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
)

// PresentationManager creates and resolves presentations.
type PresentationManager struct{}

func NewPresentationManager() *PresentationManager {
	return &PresentationManager{}
}

// Create adds a presentation holding exactly one blank slide.
func (m *PresentationManager) Create(app host.Application) (host.Presentation, error) {
	if app == nil {
		return nil, host.ErrInvalidInstance
	}

	doc, err := app.AddPresentation()
	if err != nil {
		return nil, creationFailure("create presentation", err)
	}

	slide, err := doc.AddSlide(1, host.LayoutBlank)
	if err != nil {
		host.Release(doc)
		return nil, creationFailure("add the initial blank slide", err)
	}
	host.Release(slide)

	logger.WithComponent("presentations").Info("created presentation with one blank slide")
	return doc, nil
}

// Active returns the application's active presentation.
func (m *PresentationManager) Active(app host.Application) (host.Presentation, error) {
	if app == nil {
		return nil, host.ErrInvalidInstance
	}
	doc, err := app.ActivePresentation()
	if err != nil {
		return nil, fmt.Errorf("get active presentation: %w", err)
	}
	return doc, nil
}

func creationFailure(op string, err error) error {
	if errors.Is(err, host.ErrInvalidInstance) {
		return err
	}
	return &host.CreationError{Op: op, Err: err}
}
