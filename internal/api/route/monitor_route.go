package route

import (
	"time"

	"github.com/bassista/go_pptcoach/internal/api/controller"
	"github.com/bassista/go_pptcoach/internal/api/middleware"
	"github.com/bassista/go_pptcoach/internal/app"
	"github.com/gin-gonic/gin"
)

func NewMonitorRouter(timeout time.Duration, group *gin.RouterGroup, appCtx *app.App) {
	group.Use(middleware.RequestTimeout(timeout))

	mc := controller.NewMonitorController(appCtx)

	group.GET("monitor", mc.Status)
	group.POST("monitor/check", mc.Check)
	group.POST("monitor/:signal/start", mc.Start)
	group.POST("monitor/:signal/stop", mc.Stop)
}
