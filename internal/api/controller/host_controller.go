package controller

import (
	"net/http"

	"github.com/bassista/go_pptcoach/internal/app"
	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/bassista/go_pptcoach/internal/monitor"
	"github.com/gin-gonic/gin"
)

// HostController exposes the PowerPoint instance and the attached presentation.
type HostController struct {
	app *app.App
}

func NewHostController(a *app.App) *HostController {
	return &HostController{app: a}
}

type HostStatus struct {
	app.SessionStatus
	Monitors map[monitor.Signal]bool `json:"monitors"`
}

// Status handles GET /host.
func (hc *HostController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, HostStatus{
		SessionStatus: hc.app.Session.Status(),
		Monitors:      hc.app.Monitor.Status(),
	})
}

// CreatePresentation handles POST /presentations: a new presentation with
// one blank slide becomes the working presentation.
func (hc *HostController) CreatePresentation(c *gin.Context) {
	doc, err := hc.app.Session.Create()
	if err != nil {
		respondError(c, "host-controller", err)
		return
	}
	if err := hc.app.Attach(doc); err != nil {
		respondError(c, "host-controller", err)
		return
	}
	count, err := hc.app.PowerPoint.SlideQuery.SlideCount(doc)
	if err != nil {
		respondError(c, "host-controller", err)
		return
	}
	logger.WithComponent("host-controller").Info("created presentation")
	c.JSON(http.StatusCreated, gin.H{"slides": count})
}
