package controller

import (
	"net/http"

	"github.com/bassista/go_pptcoach/internal/config"
	"github.com/gin-gonic/gin"
)

// ConfigurationResponse represents the configuration response structure for the API.
type ConfigurationResponse struct {
	HostType          string   `json:"hostType"`
	MonitorEnabled    bool     `json:"monitorEnabled"`
	PollIntervalMs    int64    `json:"pollIntervalMs"`
	Signals           []string `json:"signals"`
	JournalCapacity   int      `json:"journalCapacity"`
	PersistIntervalMs int64    `json:"persistIntervalMs"`
}

// ConfigurationController handles configuration-related API endpoints.
type ConfigurationController struct {
	config *config.Config
}

// NewConfigurationController creates a new ConfigurationController.
func NewConfigurationController(cfg *config.Config) *ConfigurationController {
	return &ConfigurationController{
		config: cfg,
	}
}

// GetConfiguration returns the effective monitoring configuration.
func (cc *ConfigurationController) GetConfiguration(c *gin.Context) {
	m := cc.config.Monitor
	signals := []string{}
	if m.Slide {
		signals = append(signals, "slide")
	}
	if m.Selection {
		signals = append(signals, "selection")
	}
	if m.Save {
		signals = append(signals, "save")
	}

	response := ConfigurationResponse{
		HostType:          cc.config.Host.Type,
		MonitorEnabled:    m.Enabled,
		PollIntervalMs:    m.PollInterval.Milliseconds(),
		Signals:           signals,
		JournalCapacity:   cc.config.Journal.Capacity,
		PersistIntervalMs: cc.config.Journal.PersistInterval.Milliseconds(),
	}
	c.JSON(http.StatusOK, response)
}
