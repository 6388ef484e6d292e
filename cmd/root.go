// Package cmd assembles the riceguard command line interface.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/riceguard/riceguard-go/cmd/clear"
	"github.com/riceguard/riceguard-go/cmd/detect"
	"github.com/riceguard/riceguard-go/cmd/populate"
	"github.com/riceguard/riceguard-go/cmd/serve"
	"github.com/riceguard/riceguard-go/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "riceguard",
		Short: "RiceGuard AI rice leaf disease detection",
		Long:  "RiceGuard AI detects rice leaf diseases from images and serves a detection, history and advisory API.",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		serve.Command(settings),
		detect.Command(settings),
		populate.Command(settings),
		clear.Command(settings),
	)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.RiceNET.ModelPath, "model", viper.GetString("ricenet.modelpath"), "Path to the TFLite detection model")
	rootCmd.PersistentFlags().StringVar(&settings.Output.SQLite.Path, "db", viper.GetString("output.sqlite.path"), "Path to the SQLite database file")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		cobra.CheckErr(err)
	}
}
