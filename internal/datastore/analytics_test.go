// analytics_test.go: Tests for dashboard aggregation queries
package datastore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAnalyticsData(t *testing.T, ds *DataStore) {
	t.Helper()

	now := time.Now()
	rows := []Detection{
		{Disease: "Rice Blast", Confidence: 92.0, Severity: SeveritySevere, CreatedAt: now},
		{Disease: "Rice Blast", Confidence: 88.0, Severity: SeverityModerate, CreatedAt: now.Add(-time.Hour)},
		{Disease: "Brown Spot", Confidence: 85.0, Severity: SeverityMild, CreatedAt: now.Add(-25 * time.Hour)},
		{Disease: "Healthy", Confidence: 99.0, Severity: SeverityNone, CreatedAt: now.Add(-48 * time.Hour)},
	}
	for i := range rows {
		require.NoError(t, ds.SaveDetection(&rows[i]))
	}
}

func TestDetectionStats(t *testing.T) {
	t.Parallel()
	ds := setupTestDB(t)
	seedAnalyticsData(t, ds)

	stats, err := ds.DetectionStats()
	require.NoError(t, err)
	require.Len(t, stats, 3)

	// Most frequent disease first
	assert.Equal(t, "Rice Blast", stats[0].Disease)
	assert.Equal(t, 2, stats[0].Count)
	assert.InDelta(t, 90.0, stats[0].AvgConfidence, 0.001)
	assert.InDelta(t, 92.0, stats[0].MaxConfidence, 0.001)
}

func TestSeverityStats(t *testing.T) {
	t.Parallel()
	ds := setupTestDB(t)
	seedAnalyticsData(t, ds)

	stats, err := ds.SeverityStats()
	require.NoError(t, err)

	bySeverity := map[string]int{}
	for _, s := range stats {
		bySeverity[s.Severity] = s.Count
	}
	assert.Equal(t, 1, bySeverity[SeveritySevere])
	assert.Equal(t, 1, bySeverity[SeverityModerate])
	assert.Equal(t, 1, bySeverity[SeverityMild])
	assert.Equal(t, 1, bySeverity[SeverityNone])
}

func TestDailyDetectionCounts(t *testing.T) {
	t.Parallel()
	ds := setupTestDB(t)
	seedAnalyticsData(t, ds)

	counts, err := ds.DailyDetectionCounts(7)
	require.NoError(t, err)
	require.NotEmpty(t, counts)

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	assert.Equal(t, 4, total)

	// Oldest day first
	for i := 1; i < len(counts); i++ {
		assert.LessOrEqual(t, counts[i-1].Date, counts[i].Date)
	}

	// Window smaller than the data span excludes old rows
	counts, err = ds.DailyDetectionCounts(1)
	require.NoError(t, err)
	total = 0
	for _, c := range counts {
		total += c.Count
	}
	assert.LessOrEqual(t, total, 3)
}
