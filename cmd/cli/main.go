package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dinebridge/dinebridge/internal/buildinfo"
	"github.com/dinebridge/dinebridge/internal/client/cli"
	"github.com/dinebridge/dinebridge/internal/client/config"
	"github.com/dinebridge/dinebridge/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
