package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/ytlink/internal/repositories"
	"github.com/desertthunder/ytlink/internal/server"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, svc, err := r.serveConfig(cmd)
	if err != nil {
		return err
	}

	store, err := repositories.NewSyncStore(config.Sync)
	if err != nil {
		return fmt.Errorf("failed to open sync store: %w", err)
	}
	defer store.Close()

	listener, err := net.Listen("tcp", config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", config.Server.Addr(), err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	url := "http://" + listener.Addr().String()
	r.logger.Info("starting server", "url", url, "sync_backend", config.Sync.Backend)
	if cmd.Bool("open") {
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	return server.New(config.Server, svc, store, r.logger).Serve(ctx, listener)
}

// serveConfig applies --config, --host and --port over the runner's config.
func (r *Runner) serveConfig(cmd *cli.Command) (*shared.Config, services.Service, error) {
	base := *r.config
	config := &base
	svc := r.youtube

	if cmd.IsSet("config") {
		loaded, err := shared.LoadConfigOrDefault(cmd.String("config"))
		if err != nil {
			return nil, nil, err
		}
		config = loaded
		svc = nil
	}

	if cmd.IsSet("host") {
		config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		config.Server.Port = cmd.Int("port")
	}

	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	if svc == nil {
		yt, err := services.NewYouTubeServiceFromConfig(config.YouTube)
		if err != nil {
			return nil, nil, err
		}
		svc = yt
	}
	return config, svc, nil
}
