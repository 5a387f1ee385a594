package controller

import (
	"net/http"

	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/bassista/go_pptcoach/internal/service"
	"github.com/gin-gonic/gin"
)

// Presenter yields the presentation requests operate on.
type Presenter interface {
	Current() (host.Presentation, error)
}

type SlideController struct {
	presenter Presenter
	pp        *service.PowerPoint
}

func NewSlideController(presenter Presenter, pp *service.PowerPoint) *SlideController {
	return &SlideController{presenter: presenter, pp: pp}
}

// AddSlideRequest is the body of POST /slides. Layout defaults to blank.
type AddSlideRequest struct {
	Layout int32 `json:"layout" validate:"omitempty,oneof=1 2 12"`
}

type MoveSlideRequest struct {
	To int `json:"to" validate:"required,min=1"`
}

type SlideSummary struct {
	Index  int    `json:"index"`
	Layout string `json:"layout"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
}

// Overview handles GET /slides: slide count and the slide being viewed.
func (sc *SlideController) Overview(c *gin.Context) {
	doc, err := sc.presenter.Current()
	if err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	count, err := sc.pp.SlideQuery.SlideCount(doc)
	if err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	current, err := sc.pp.SlideQuery.CurrentSlideNumber(doc)
	if err != nil {
		// The current slide is advisory; report 0 rather than fail.
		logger.WithComponent("slide-controller").Debugf("current slide unavailable: %v", err)
		current = 0
	}
	c.JSON(http.StatusOK, gin.H{"count": count, "current": current})
}

// Add handles POST /slides and appends a slide at the end.
func (sc *SlideController) Add(c *gin.Context) {
	var req AddSlideRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	layout := host.SlideLayout(req.Layout)
	if layout == 0 {
		layout = host.LayoutBlank
	}

	doc, err := sc.presenter.Current()
	if err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	slide, err := sc.pp.Slides.AddSlideWithLayout(doc, layout)
	if err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	defer host.Release(slide)

	index, err := slide.Index()
	if err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	logger.WithComponent("slide-controller").Infof("added %s slide at %d", layout, index)
	c.JSON(http.StatusCreated, SlideSummary{Index: index, Layout: layout.String()})
}

// Get handles GET /slides/:index with the slide's title and text.
func (sc *SlideController) Get(c *gin.Context) {
	index, err := positiveParam(c, "index")
	if err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	doc, err := sc.presenter.Current()
	if err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	slide, err := sc.pp.SlideQuery.Slide(doc, index)
	if err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	defer host.Release(slide)

	summary := SlideSummary{Index: index}
	if layout, err := slide.Layout(); err == nil {
		summary.Layout = layout.String()
	}
	// A slide without shapes has no title.
	summary.Title, _ = sc.pp.SlideQuery.SlideTitle(slide)
	if summary.Text, err = sc.pp.SlideQuery.AllText(slide); err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Delete handles DELETE /slides/:index. The last slide cannot be deleted.
func (sc *SlideController) Delete(c *gin.Context) {
	index, err := positiveParam(c, "index")
	if err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	doc, err := sc.presenter.Current()
	if err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	if err := sc.pp.Slides.DeleteSlide(doc, index); err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	logger.WithComponent("slide-controller").Infof("deleted slide %d", index)
	c.Status(http.StatusNoContent)
}

// Move handles POST /slides/:index/move.
func (sc *SlideController) Move(c *gin.Context) {
	index, err := positiveParam(c, "index")
	if err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	var req MoveSlideRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	doc, err := sc.presenter.Current()
	if err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	if err := sc.pp.Slides.MoveSlide(doc, index, req.To); err != nil {
		respondError(c, "slide-controller", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": index, "to": req.To})
}
