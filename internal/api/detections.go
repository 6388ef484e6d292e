package api

import (
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/riceguard/riceguard-go/internal/errors"
)

// HistoryEntry is one detection reshaped for the history view.
type HistoryEntry struct {
	ID            uint    `json:"id"`
	Disease       string  `json:"disease"`
	Confidence    float64 `json:"confidence"`
	Severity      string  `json:"severity"`
	OriginalImage string  `json:"original_image"`
	ResultImage   string  `json:"result_image,omitempty"`
	Timestamp     string  `json:"timestamp"`
}

// HandleHistory returns all detections, newest first.
func (c *Controller) HandleHistory(ctx echo.Context) error {
	detections, err := c.DS.GetAllDetections()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to load detection history", http.StatusInternalServerError)
	}

	entries := make([]HistoryEntry, 0, len(detections))
	for i := range detections {
		d := &detections[i]
		entries = append(entries, HistoryEntry{
			ID:            d.ID,
			Disease:       d.Disease,
			Confidence:    d.Confidence,
			Severity:      d.Severity,
			OriginalImage: c.imageURL(d.ImagePath),
			ResultImage:   c.imageURL(d.ResultPath),
			Timestamp:     d.CreatedAt.Format(time.RFC3339),
		})
	}

	return ctx.JSON(http.StatusOK, entries)
}

// HandleDelete removes a detection row and best-effort-deletes its image
// files. The row deletion is authoritative; file removal failures are only
// logged.
func (c *Controller) HandleDelete(ctx echo.Context) error {
	id := ctx.Param("id")

	detection, err := c.DS.GetDetection(id)
	if err != nil {
		if errors.IsNotFound(err) {
			return c.HandleError(ctx, err, "Detection not found", http.StatusNotFound)
		}
		return c.HandleError(ctx, err, "Failed to load detection", http.StatusInternalServerError)
	}

	if err := c.DS.DeleteDetection(id); err != nil {
		if errors.IsNotFound(err) {
			return c.HandleError(ctx, err, "Detection not found", http.StatusNotFound)
		}
		return c.HandleError(ctx, err, "Failed to delete detection", http.StatusInternalServerError)
	}

	for _, path := range []string{detection.ImagePath, detection.ResultPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("failed to remove detection image", "path", path, "error", err)
		}
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"message": "Detection deleted",
		"id":      detection.ID,
	})
}
