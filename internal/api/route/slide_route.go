package route

import (
	"time"

	"github.com/bassista/go_pptcoach/internal/api/controller"
	"github.com/bassista/go_pptcoach/internal/api/middleware"
	"github.com/bassista/go_pptcoach/internal/app"
	"github.com/gin-gonic/gin"
)

// NewSlideRouter sets up slide and shape routes on the working presentation.
func NewSlideRouter(timeout time.Duration, group *gin.RouterGroup, appCtx *app.App) {
	group.Use(middleware.RequestTimeout(timeout))

	sc := controller.NewSlideController(appCtx.Session, appCtx.PowerPoint)
	shc := controller.NewShapeController(appCtx.Session, appCtx.PowerPoint)

	group.GET("slides", sc.Overview)
	group.POST("slides", sc.Add)
	group.GET("slides/:index", sc.Get)
	group.DELETE("slides/:index", sc.Delete)
	group.POST("slides/:index/move", sc.Move)
	group.GET("slides/:index/shapes", shc.List)
	group.GET("slides/:index/shapes/:shape/cell", shc.Cell)
}
