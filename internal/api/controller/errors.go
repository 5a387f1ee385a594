package controller

import (
	"net/http"

	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/containerd/errdefs"
	"github.com/gin-gonic/gin"
)

// statusOf maps an error class to an HTTP status.
func statusOf(err error) int {
	switch {
	case host.IsConnectionError(err), errdefs.IsUnavailable(err):
		return http.StatusServiceUnavailable
	case errdefs.IsFailedPrecondition(err):
		return http.StatusConflict
	case errdefs.IsNotFound(err):
		return http.StatusNotFound
	case errdefs.IsInvalidArgument(err):
		return http.StatusBadRequest
	case errdefs.IsNotImplemented(err):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, component string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		logger.WithComponent(component).Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	} else {
		logger.WithComponent(component).Debugf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
