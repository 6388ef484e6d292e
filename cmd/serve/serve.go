// Package serve implements the HTTP server subcommand.
package serve

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/riceguard/riceguard-go/internal/api"
	"github.com/riceguard/riceguard-go/internal/conf"
	"github.com/riceguard/riceguard-go/internal/datastore"
	"github.com/riceguard/riceguard-go/internal/logging"
	"github.com/riceguard/riceguard-go/internal/ricenet"
)

// Command creates the serve subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the RiceGuard API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), settings)
		},
	}

	cmd.Flags().StringVar(&settings.WebServer.Host, "host", viper.GetString("webserver.host"), "Address to listen on")
	cmd.Flags().StringVar(&settings.WebServer.Port, "port", viper.GetString("webserver.port"), "Port to listen on")

	return cmd
}

func run(ctx context.Context, settings *conf.Settings) error {
	logger := logging.ForService("serve")

	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no datastore enabled in configuration")
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close datastore", "error", err)
		}
	}()

	model, err := ricenet.New(settings)
	if err != nil {
		return fmt.Errorf("initializing detection model: %w", err)
	}
	defer model.Close()

	logger.Info("starting riceguard server",
		"version", settings.Version,
		"model", settings.RiceNET.ModelPath,
		"db", settings.Output.SQLite.Path)

	server := api.NewServer(settings,
		api.WithDataStore(store),
		api.WithDetector(model),
	)
	return server.Start(ctx)
}
