package route

import (
	"net/http"

	"github.com/bassista/go_pptcoach/internal/api/middleware"
	"github.com/bassista/go_pptcoach/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes builds the engine serving the automation API.
func SetupRoutes(appCtx *app.App, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.HoneybadgerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
		})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	// All Public APIs
	timeout := appCtx.Config.Server.RequestTimeout

	NewConfigurationRouter(timeout, r.Group(""), appCtx.Config)
	NewHostRouter(timeout, r.Group(""), appCtx)
	NewSlideRouter(timeout, r.Group(""), appCtx)
	NewMonitorRouter(timeout, r.Group(""), appCtx)
	NewEventRouter(timeout, r.Group(""), appCtx.Journal)

	return r
}
