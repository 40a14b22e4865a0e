package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/stepx/internal/services"
	"github.com/desertthunder/stepx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	catalog := services.NewBootStepperService(config.Catalog, nil)
	profile := services.NewProfileService(config.Profile, nil)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Profile: profile,
		Logger:  logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "stepx",
		Usage:    "Search the BootStepper catalog and manage dance collections",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
