// Package populate implements the sample-data seeding subcommand.
package populate

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/riceguard/riceguard-go/internal/conf"
	"github.com/riceguard/riceguard-go/internal/datastore"
)

const sampleCount = 20

var (
	diseases   = []string{"Rice Blast", "Brown Spot", "Leaf Smut", "False Smut", "Stem Rot", "Healthy"}
	severities = []string{datastore.SeverityMild, datastore.SeverityModerate, datastore.SeveritySevere}
)

// Command creates the populate subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "populate",
		Short: "Seed the database with sample detections from the past 30 days",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(settings)
		},
	}
}

func run(settings *conf.Settings) error {
	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no datastore enabled in configuration")
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer store.Close()

	if _, err := store.DeleteAllDetections(); err != nil {
		return fmt.Errorf("clearing existing detections: %w", err)
	}

	for _, detection := range sampleDetections(time.Now()) {
		d := detection
		if err := store.SaveDetection(&d); err != nil {
			return fmt.Errorf("inserting sample detection: %w", err)
		}
	}

	fmt.Printf("Populated database with %d sample detections from the past 30 days\n", sampleCount)
	return nil
}

// sampleDetections builds the seed rows, each timestamped randomly within
// the 30 days before now.
func sampleDetections(now time.Time) []datastore.Detection {
	detections := make([]datastore.Detection, 0, sampleCount)
	for i := 0; i < sampleCount; i++ {
		createdAt := now.
			AddDate(0, 0, -(rand.Intn(30) + 1)).
			Add(-time.Duration(rand.Intn(24)) * time.Hour).
			Add(-time.Duration(rand.Intn(60)) * time.Minute)

		disease := diseases[rand.Intn(len(diseases))]
		severity := datastore.SeverityNone
		if disease != "Healthy" {
			severity = severities[rand.Intn(len(severities))]
		}

		confidence := 85 + rand.Float64()*14
		detections = append(detections, datastore.Detection{
			Disease:    disease,
			Confidence: float64(int(confidence*100)) / 100,
			Severity:   severity,
			ImagePath:  fmt.Sprintf("uploads/sample_%d.jpg", i+1),
			ResultPath: fmt.Sprintf("uploads/results/result_sample_%d.jpg", i+1),
			CreatedAt:  createdAt,
		})
	}
	return detections
}
