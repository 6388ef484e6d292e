package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const overviewCacheKey = "admin_overview"

// AdminOverview aggregates detection statistics for the dashboard.
type AdminOverview struct {
	TotalDetections int64          `json:"total_detections"`
	ByDisease       []DiseaseStat  `json:"by_disease"`
	BySeverity      []SeverityStat `json:"by_severity"`
	DailyCounts     []DailyStat    `json:"daily_counts"`
	Recent          []HistoryEntry `json:"recent"`
	GeneratedAt     string         `json:"generated_at"`
}

type DiseaseStat struct {
	Disease       string  `json:"disease"`
	Count         int     `json:"count"`
	AvgConfidence float64 `json:"avg_confidence"`
	MaxConfidence float64 `json:"max_confidence"`
}

type SeverityStat struct {
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

type DailyStat struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HandleAdminOverview serves the dashboard aggregates, gated by the
// X-Admin-Token header and cached for one minute.
func (c *Controller) HandleAdminOverview(ctx echo.Context) error {
	configured := c.Settings.WebServer.AdminToken
	if configured == "" {
		return c.HandleError(ctx, fmt.Errorf("admin token not configured"),
			"Admin dashboard is disabled", http.StatusServiceUnavailable)
	}

	provided := ctx.Request().Header.Get("X-Admin-Token")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) != 1 {
		return c.HandleError(ctx, fmt.Errorf("admin token mismatch"),
			"Unauthorized", http.StatusUnauthorized)
	}

	if cached, found := c.overviewCache.Get(overviewCacheKey); found {
		if overview, ok := cached.(*AdminOverview); ok {
			return ctx.JSON(http.StatusOK, overview)
		}
	}

	overview, err := c.buildOverview()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to build dashboard overview", http.StatusInternalServerError)
	}

	c.overviewCache.SetDefault(overviewCacheKey, overview)
	return ctx.JSON(http.StatusOK, overview)
}

func (c *Controller) buildOverview() (*AdminOverview, error) {
	total, err := c.DS.CountDetections()
	if err != nil {
		return nil, err
	}

	diseaseCounts, err := c.DS.DetectionStats()
	if err != nil {
		return nil, err
	}
	severityCounts, err := c.DS.SeverityStats()
	if err != nil {
		return nil, err
	}
	dailyCounts, err := c.DS.DailyDetectionCounts(7)
	if err != nil {
		return nil, err
	}
	recent, err := c.DS.GetRecentDetections(10)
	if err != nil {
		return nil, err
	}

	overview := &AdminOverview{
		TotalDetections: total,
		ByDisease:       make([]DiseaseStat, 0, len(diseaseCounts)),
		BySeverity:      make([]SeverityStat, 0, len(severityCounts)),
		DailyCounts:     make([]DailyStat, 0, len(dailyCounts)),
		Recent:          make([]HistoryEntry, 0, len(recent)),
		GeneratedAt:     time.Now().Format(time.RFC3339),
	}

	for _, dc := range diseaseCounts {
		overview.ByDisease = append(overview.ByDisease, DiseaseStat{
			Disease:       dc.Disease,
			Count:         dc.Count,
			AvgConfidence: round2(dc.AvgConfidence),
			MaxConfidence: round2(dc.MaxConfidence),
		})
	}
	for _, sc := range severityCounts {
		overview.BySeverity = append(overview.BySeverity, SeverityStat{
			Severity: sc.Severity,
			Count:    sc.Count,
		})
	}
	for _, day := range dailyCounts {
		overview.DailyCounts = append(overview.DailyCounts, DailyStat{
			Date:  day.Date,
			Count: day.Count,
		})
	}
	for i := range recent {
		d := &recent[i]
		overview.Recent = append(overview.Recent, HistoryEntry{
			ID:            d.ID,
			Disease:       d.Disease,
			Confidence:    d.Confidence,
			Severity:      d.Severity,
			OriginalImage: c.imageURL(d.ImagePath),
			ResultImage:   c.imageURL(d.ResultPath),
			Timestamp:     d.CreatedAt.Format(time.RFC3339),
		})
	}

	return overview, nil
}
