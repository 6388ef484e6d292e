package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/riceguard/riceguard-go/cmd"
	"github.com/riceguard/riceguard-go/internal/buildinfo"
	"github.com/riceguard/riceguard-go/internal/conf"
	"github.com/riceguard/riceguard-go/internal/logging"
)

// version and buildDate are set at build time via ldflags.
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		return 1
	}
	build := buildinfo.New(version, buildDate)
	settings.Version = build.Version
	settings.BuildDate = build.BuildDate

	logLevel := slog.LevelInfo
	if settings.Debug {
		logLevel = slog.LevelDebug
	}
	logging.Init(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
