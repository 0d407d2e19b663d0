package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example config and checks it loads.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")

	r.logger.Info("creating config file", "path", path)
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load created config: %w", err)
	}

	r.writePlain("✓ Config written to %s\n", path)
	r.writePlainln("Next steps:")
	if err := config.Validate(); err != nil {
		r.writePlain("1. Set youtube.api_key in %s or %s in .env\n", path, shared.EnvAPIKey)
	} else {
		r.writePlain("1. Credentials found\n")
	}
	r.writePlain("2. Run 'ytlink serve' and open http://localhost:%d\n", config.Server.Port)
	return nil
}
