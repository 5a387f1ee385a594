package route

import (
	"time"

	"github.com/bassista/go_pptcoach/internal/api/controller"
	"github.com/bassista/go_pptcoach/internal/api/middleware"
	"github.com/bassista/go_pptcoach/internal/app"
	"github.com/gin-gonic/gin"
)

func NewHostRouter(timeout time.Duration, group *gin.RouterGroup, appCtx *app.App) {
	group.Use(middleware.RequestTimeout(timeout))

	hc := controller.NewHostController(appCtx)

	group.GET("host", hc.Status)
	group.POST("presentations", hc.CreatePresentation)
}
