// internal/datastore/analytics.go
package datastore

import (
	"fmt"
	"time"
)

// DiseaseCount contains per-disease detection statistics for the dashboard.
type DiseaseCount struct {
	Disease       string  `json:"disease"`
	Count         int     `json:"count"`
	AvgConfidence float64 `json:"avg_confidence"`
	MaxConfidence float64 `json:"max_confidence"`
}

// SeverityCount represents detection counts grouped by severity bucket.
type SeverityCount struct {
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

// DailyCount represents detection counts grouped by day.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DetectionStats retrieves per-disease detection counts and confidence stats,
// most frequent disease first.
func (ds *DataStore) DetectionStats() ([]DiseaseCount, error) {
	var stats []DiseaseCount

	err := ds.DB.Table("detections").
		Select("disease, COUNT(*) as count, AVG(confidence) as avg_confidence, MAX(confidence) as max_confidence").
		Group("disease").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("error getting detection stats: %w", err)
	}

	return stats, nil
}

// SeverityStats retrieves detection counts grouped by severity.
func (ds *DataStore) SeverityStats() ([]SeverityCount, error) {
	var stats []SeverityCount

	err := ds.DB.Table("detections").
		Select("severity, COUNT(*) as count").
		Group("severity").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("error getting severity stats: %w", err)
	}

	return stats, nil
}

// DailyDetectionCounts retrieves detection counts per day for the trailing
// number of days, oldest day first. Days without detections are absent.
func (ds *DataStore) DailyDetectionCounts(days int) ([]DailyCount, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)

	var counts []DailyCount
	err := ds.DB.Table("detections").
		Select("date(created_at) as date, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("date(created_at)").
		Order("date ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("error getting daily detection counts: %w", err)
	}

	return counts, nil
}
