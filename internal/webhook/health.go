package webhook

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redhat-data-and-ai/timekeeper/internal/config"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	config    *config.Config
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		config:    cfg,
		startTime: time.Now(),
	}
}

// HandleHealth returns comprehensive health status
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	uptime := time.Since(h.startTime)

	health := fiber.Map{
		"status":            "healthy",
		"service":           "timekeeper",
		"version":           "v1.0.0",
		"uptime_seconds":    int64(uptime.Seconds()),
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
		"notification_mode": h.config.NotificationMode(),
		"timesheet_mode":    h.config.TimesheetMode(),
		"slack_token":       h.config.HasSlackToken(),
		"replicon_token":    h.config.HasRepliconToken(),
	}

	return c.JSON(health)
}

// HandleReady returns readiness status for Kubernetes
func (h *HealthHandler) HandleReady(c *fiber.Ctx) error {
	ready := fiber.Map{
		"ready":          true,
		"service":        "timekeeper",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"slack_token":    h.config.HasSlackToken(),
		"replicon_token": h.config.HasRepliconToken(),
	}

	// Time logging is the one side effect every merge request delivery
	// depends on, so an unconfigured Replicon token means not ready.
	if !h.config.HasRepliconToken() {
		ready["ready"] = false
		ready["reason"] = "Replicon token not configured"
		return c.Status(503).JSON(ready)
	}

	return c.JSON(ready)
}
