package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/mohamedkhairy/kline-indicators/internal/api"
	"github.com/mohamedkhairy/kline-indicators/internal/models"
	"github.com/mohamedkhairy/kline-indicators/pkg/logger"
)

func (a *app) serveAction(ctx context.Context, cmd *cli.Command) error {
	logger.Info("Starting indicator API service",
		logger.Int("port", a.cfg.API.Port),
		logger.Int("max_bars", a.cfg.API.MaxBars),
		logger.Int("indicators", len(a.engine.Registry().ListAvailable())),
	)

	handler := api.NewIndicatorHandler(a.engine, a.encoder)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.API.Port),
		Handler:      api.NewRouter(handler, api.RouterConfig{RateLimitRPS: a.cfg.API.RateLimitRPS}),
		ReadTimeout:  a.cfg.API.ReadTimeout,
		WriteTimeout: a.cfg.API.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server",
			logger.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("Shutting down indicator API service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down HTTP server",
			logger.ErrorField(err),
		)
	}

	logger.Info("Indicator API service stopped")
	return nil
}

func (a *app) calcAction(ctx context.Context, cmd *cli.Command) error {
	var in io.Reader = os.Stdin
	if path := cmd.String("input"); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	bars, err := readBars(in)
	if err != nil {
		return err
	}

	var params json.RawMessage
	if p := cmd.String("params"); p != "" {
		params = json.RawMessage(p)
	}

	result, err := a.engine.Compute(ctx, cmd.String("indicator"), bars, params)
	if err != nil {
		return err
	}

	encoded, err := a.encoder.Encode(result.Output)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, encoded)
}

func (a *app) listAction(ctx context.Context, cmd *cli.Command) error {
	return writeJSON(os.Stdout, a.engine.Registry().GetAllMetadata())
}

// readBars accepts either a bare JSON bar array or an object with a bars field
func readBars(r io.Reader) ([]models.Bar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read bars: %w", err)
	}

	var bars []models.Bar
	if err := json.Unmarshal(data, &bars); err == nil {
		return bars, nil
	}

	var wrapped struct {
		Bars []models.Bar `json:"bars"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode bars: %w", err)
	}
	return wrapped.Bars, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
