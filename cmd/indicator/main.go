package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mohamedkhairy/kline-indicators/internal/api"
	"github.com/mohamedkhairy/kline-indicators/internal/config"
	"github.com/mohamedkhairy/kline-indicators/internal/indicator"
	"github.com/mohamedkhairy/kline-indicators/pkg/logger"
)

// app bundles the components every subcommand needs
type app struct {
	cfg     *config.Config
	engine  *indicator.Engine
	encoder *api.Encoder
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		return nil, err
	}

	registry := indicator.NewIndicatorRegistry()
	if err := indicator.RegisterAllIndicators(registry, cfg.Indicators); err != nil {
		return nil, fmt.Errorf("failed to register indicators: %w", err)
	}

	return &app{
		cfg:     cfg,
		engine:  indicator.NewEngine(indicator.EngineConfig{MaxBars: cfg.API.MaxBars}, registry),
		encoder: api.NewEncoder(cfg.API.OutputPrecision, cfg.API.MACDColors),
	}, nil
}

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cmd := &cli.Command{
		Name:  "indicator",
		Usage: "Compute K-line chart indicators from OHLCV bars",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the indicator HTTP API",
				Action: a.serveAction,
			},
			{
				Name:  "calc",
				Usage: "Compute one indicator over a JSON bar file and print the result",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "indicator",
						Aliases:  []string{"i"},
						Usage:    "Indicator name (see the list command)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON bar array or {\"bars\": [...]} object; `-` reads stdin",
						Value:    "-",
						Required: false,
					},
					&cli.StringFlag{
						Name:     "params",
						Aliases:  []string{"p"},
						Usage:    "Indicator parameters as a JSON object, e.g. '{\"period\": 10}'",
						Required: false,
					},
				},
				Action: a.calcAction,
			},
			{
				Name:   "list",
				Usage:  "List available indicators and their default parameters",
				Action: a.listAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error("Command failed", logger.ErrorField(err))
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
