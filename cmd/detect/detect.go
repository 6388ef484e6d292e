// Package detect implements the one-shot file detection subcommand.
package detect

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riceguard/riceguard-go/internal/conf"
	"github.com/riceguard/riceguard-go/internal/ricenet"
)

// Command creates the detect subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "detect [image file]",
		Short: "Analyze a single image and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(settings, args[0])
		},
	}
}

type output struct {
	Disease    string   `json:"disease"`
	Confidence float64  `json:"confidence"`
	Severity   string   `json:"severity"`
	BoxCount   int      `json:"box_count"`
	Symptoms   []string `json:"symptoms"`
	Treatment  []string `json:"treatment"`
	Prevention []string `json:"prevention"`
}

func run(settings *conf.Settings, imagePath string) error {
	model, err := ricenet.New(settings)
	if err != nil {
		return fmt.Errorf("initializing detection model: %w", err)
	}
	defer model.Close()

	_, boxes, err := model.DetectFile(imagePath)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", imagePath, err)
	}

	assessment := ricenet.Assess(boxes)
	info := ricenet.InfoFor(assessment.Disease)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output{
		Disease:    assessment.Disease,
		Confidence: assessment.Confidence,
		Severity:   assessment.Severity,
		BoxCount:   assessment.BoxCount,
		Symptoms:   info.Symptoms,
		Treatment:  info.Treatment,
		Prevention: info.Prevention,
	})
}
