package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/riceguard/riceguard-go/internal/errors"
	"github.com/riceguard/riceguard-go/internal/report"
	"github.com/riceguard/riceguard-go/internal/ricenet"
)

// ReportRequest is the payload of POST /generate_report. Either a stored
// detection id or an inline detection-shaped payload is accepted.
type ReportRequest struct {
	DetectionID string `json:"detection_id"`

	Disease     string   `json:"disease"`
	Confidence  float64  `json:"confidence"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Timestamp   string   `json:"timestamp"`
	Symptoms    []string `json:"symptoms"`
	Treatment   []string `json:"treatment"`
	Prevention  []string `json:"prevention"`
}

// HandleGenerateReport renders a PDF for a detection and returns its URL.
func (c *Controller) HandleGenerateReport(ctx echo.Context) error {
	var req ReportRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid report payload", http.StatusBadRequest)
	}

	var data report.Data
	switch {
	case req.DetectionID != "":
		detection, err := c.DS.GetDetection(req.DetectionID)
		if err != nil {
			if errors.IsNotFound(err) {
				return c.HandleError(ctx, err, "Detection not found", http.StatusNotFound)
			}
			return c.HandleError(ctx, err, "Failed to load detection", http.StatusInternalServerError)
		}

		info := ricenet.InfoFor(detection.Disease)
		data = report.Data{
			Disease:     detection.Disease,
			Confidence:  detection.Confidence,
			Severity:    detection.Severity,
			Description: fmt.Sprintf("%s detected on rice leaf.", detection.Disease),
			Timestamp:   detection.CreatedAt.Format(time.RFC3339),
			Symptoms:    info.Symptoms,
			Treatment:   info.Treatment,
			Prevention:  info.Prevention,
			ImagePath:   detection.ImagePath,
			ResultPath:  detection.ResultPath,
		}

	case req.Disease != "":
		data = report.Data{
			Disease:     req.Disease,
			Confidence:  req.Confidence,
			Severity:    req.Severity,
			Description: req.Description,
			Timestamp:   req.Timestamp,
			Symptoms:    req.Symptoms,
			Treatment:   req.Treatment,
			Prevention:  req.Prevention,
		}
		if data.Description == "" {
			data.Description = fmt.Sprintf("%s detected on rice leaf.", req.Disease)
		}

	default:
		return c.HandleError(ctx, errors.ValidationError("neither detection_id nor disease provided"),
			"detection_id or a detection payload is required", http.StatusBadRequest)
	}

	path, err := c.Reports.Generate(data)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to generate report", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"report_url": "/reports/" + filepath.Base(path),
	})
}
