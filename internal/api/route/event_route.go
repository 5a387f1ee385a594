package route

import (
	"time"

	"github.com/bassista/go_pptcoach/internal/api/controller"
	"github.com/bassista/go_pptcoach/internal/api/middleware"
	"github.com/bassista/go_pptcoach/internal/cache"
	"github.com/gin-gonic/gin"
)

func NewEventRouter(timeout time.Duration, group *gin.RouterGroup, store cache.EventStore) {
	group.Use(middleware.RequestTimeout(timeout))

	ec := controller.NewEventController(store)

	group.GET("events", ec.List)
	group.DELETE("events", ec.Clear)
}
