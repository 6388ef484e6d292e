package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthResponse reports service liveness and database connectivity.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Database      string `json:"database"`
}

// HandleHealth returns service status. Responds 200 even when the database
// is unreachable so load balancers can distinguish degraded from down.
func (c *Controller) HandleHealth(ctx echo.Context) error {
	resp := HealthResponse{
		Status:        "healthy",
		Version:       c.Settings.Version,
		UptimeSeconds: int64(time.Since(c.startTime).Seconds()),
		Database:      "connected",
	}

	if _, err := c.DS.CountDetections(); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
	}

	return ctx.JSON(http.StatusOK, resp)
}
