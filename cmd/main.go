package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnvFile(".env"); err != nil {
		logger.Warn("ignoring .env", "error", err)
	}

	config, err := shared.LoadConfigOrDefault("config.toml")
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		config = shared.DefaultConfig()
		config.ApplyEnv()
	}
	shared.SetLogLevelString(logger, config.Logging.Level)

	var youtubeService services.Service
	if svc, err := services.NewYouTubeServiceFromConfig(config.YouTube); err == nil {
		youtubeService = svc
	} else {
		logger.Debug("youtube client not configured", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		YouTube: youtubeService,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "ytlink",
		Usage:    "Browse and export YouTube channel playlists",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		case errors.Is(err, shared.ErrMissingCredentials):
			logger.Fatal("missing credentials", "error", err, "hint", "run 'ytlink setup config' and set youtube.api_key")
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
