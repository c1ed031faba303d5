package indicator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
	"github.com/mohamedkhairy/kline-indicators/pkg/logger"
)

// Engine validates bar arrays and dispatches them to registered pipelines.
// Every call recomputes from the full array; the engine keeps no per-series
// state and is safe for concurrent use.
type Engine struct {
	indicatorRegistry *IndicatorRegistry
	maxBars           int
}

// EngineConfig holds configuration for the indicator engine
type EngineConfig struct {
	MaxBars int // Maximum number of bars accepted by one computation
}

// DefaultEngineConfig returns default configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxBars: 100000,
	}
}

// Request names one indicator computation over a shared bar array
type Request struct {
	Indicator string          `json:"indicator"`
	Params    json.RawMessage `json:"params,omitempty"`
}

// Result is the output of one computation
type Result struct {
	Indicator string        `json:"indicator"`
	Output    interface{}   `json:"output,omitempty"`
	Bars      int           `json:"bars"`
	Duration  time.Duration `json:"-"`
	Err       error         `json:"-"`
}

// NewEngine creates a new indicator engine
func NewEngine(config EngineConfig, registry *IndicatorRegistry) *Engine {
	if config.MaxBars <= 0 {
		config.MaxBars = DefaultEngineConfig().MaxBars
	}
	return &Engine{
		indicatorRegistry: registry,
		maxBars:           config.MaxBars,
	}
}

// Registry returns the engine's indicator registry
func (e *Engine) Registry() *IndicatorRegistry {
	return e.indicatorRegistry
}

// Compute runs the named indicator over bars. Bars are validated before any
// computation; configuration problems wrap models.ErrInvalidConfig.
func (e *Engine) Compute(ctx context.Context, name string, bars []models.Bar, params json.RawMessage) (*Result, error) {
	log := logger.WithContext(ctx)

	pipeline, exists := e.indicatorRegistry.GetPipeline(name)
	if !exists {
		logger.IndicatorComputations.WithLabelValues("unknown", logger.OutcomeUnknown).Inc()
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownIndicator, name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := e.checkBars(bars); err != nil {
		logger.IndicatorComputations.WithLabelValues(name, logger.OutcomeInvalidBars).Inc()
		log.Warn("Rejected bar array",
			logger.String("indicator", name),
			logger.Int("bars", len(bars)),
			logger.ErrorField(err),
		)
		return nil, err
	}

	start := time.Now()
	output, err := pipeline(bars, params)
	elapsed := time.Since(start)

	if err != nil {
		outcome := logger.OutcomeError
		if errors.Is(err, models.ErrInvalidConfig) {
			outcome = logger.OutcomeInvalidConfig
		}
		logger.IndicatorComputations.WithLabelValues(name, outcome).Inc()
		log.Warn("Indicator computation rejected",
			logger.String("indicator", name),
			logger.ErrorField(err),
		)
		return nil, err
	}

	logger.IndicatorComputations.WithLabelValues(name, logger.OutcomeOK).Inc()
	logger.IndicatorDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	logger.IndicatorInputBars.WithLabelValues(name).Observe(float64(len(bars)))
	log.Debug("Computed indicator",
		logger.String("indicator", name),
		logger.Int("bars", len(bars)),
		logger.Duration("duration", elapsed),
	)

	return &Result{
		Indicator: name,
		Output:    output,
		Bars:      len(bars),
		Duration:  elapsed,
	}, nil
}

// ComputeBatch runs several indicators over the same bars concurrently.
// Results are returned in request order; a failed computation carries its
// error in Result.Err and does not affect the others.
func (e *Engine) ComputeBatch(ctx context.Context, bars []models.Bar, requests []Request) []Result {
	results := make([]Result, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()

			res, err := e.Compute(ctx, req.Indicator, bars, req.Params)
			if err != nil {
				results[i] = Result{Indicator: req.Indicator, Bars: len(bars), Err: err}
				return
			}
			results[i] = *res
		}(i, req)
	}
	wg.Wait()

	return results
}

func (e *Engine) checkBars(bars []models.Bar) error {
	if len(bars) > e.maxBars {
		return fmt.Errorf("%w: %d bars, limit is %d", models.ErrTooManyBars, len(bars), e.maxBars)
	}
	if idx, err := models.ValidateBars(bars); err != nil {
		return fmt.Errorf("bar %d: %w", idx, err)
	}
	return nil
}
