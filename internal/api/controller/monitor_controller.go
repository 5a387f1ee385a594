package controller

import (
	"net/http"

	"github.com/bassista/go_pptcoach/internal/app"
	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/bassista/go_pptcoach/internal/monitor"
	"github.com/gin-gonic/gin"
)

// MonitorController starts and stops change monitors on the working
// presentation.
type MonitorController struct {
	app *app.App
}

func NewMonitorController(a *app.App) *MonitorController {
	return &MonitorController{app: a}
}

// Status handles GET /monitor.
func (mc *MonitorController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, mc.app.Monitor.Status())
}

// Start handles POST /monitor/:signal/start.
func (mc *MonitorController) Start(c *gin.Context) {
	signal, err := monitor.ParseSignal(c.Param("signal"))
	if err != nil {
		respondError(c, "monitor-controller", err)
		return
	}
	if err := mc.app.StartMonitoring(signal); err != nil {
		respondError(c, "monitor-controller", err)
		return
	}
	logger.WithComponent("monitor-controller").Infof("%s monitor started", signal)
	c.JSON(http.StatusOK, mc.app.Monitor.Status())
}

// Stop handles POST /monitor/:signal/stop.
func (mc *MonitorController) Stop(c *gin.Context) {
	signal, err := monitor.ParseSignal(c.Param("signal"))
	if err != nil {
		respondError(c, "monitor-controller", err)
		return
	}
	m, err := mc.app.Monitor.Machine(signal)
	if err != nil {
		respondError(c, "monitor-controller", err)
		return
	}
	m.Stop()
	logger.WithComponent("monitor-controller").Infof("%s monitor stopped", signal)
	c.JSON(http.StatusOK, mc.app.Monitor.Status())
}

// Check handles POST /monitor/check: one poll of every running monitor.
func (mc *MonitorController) Check(c *gin.Context) {
	mc.app.Monitor.Check()
	c.JSON(http.StatusOK, mc.app.Monitor.Status())
}
