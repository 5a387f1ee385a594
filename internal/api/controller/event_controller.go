package controller

import (
	"net/http"

	"github.com/bassista/go_pptcoach/internal/cache"
	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/gin-gonic/gin"
)

const defaultEventLimit = 50

// EventController serves the change journal.
type EventController struct {
	store cache.EventStore
}

func NewEventController(store cache.EventStore) *EventController {
	return &EventController{store: store}
}

// List handles GET /events?limit=, newest last.
func (ec *EventController) List(c *gin.Context) {
	limit := defaultEventLimit
	if c.Query("limit") != "" {
		n, err := positiveQuery(c, "limit")
		if err != nil {
			respondError(c, "event-controller", err)
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, ec.store.Latest(limit))
}

// Clear handles DELETE /events.
func (ec *EventController) Clear(c *gin.Context) {
	ec.store.Clear()
	logger.WithComponent("event-controller").Info("journal cleared")
	c.Status(http.StatusNoContent)
}
