// Package clear implements the database clearing subcommand.
package clear

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riceguard/riceguard-go/internal/conf"
	"github.com/riceguard/riceguard-go/internal/datastore"
)

// Command creates the clear subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all detections from the database",
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

	deleted, err := store.DeleteAllDetections()
	if err != nil {
		return fmt.Errorf("clearing detections: %w", err)
	}

	fmt.Printf("Cleared %d detections from the database\n", deleted)
	return nil
}
