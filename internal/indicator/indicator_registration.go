package indicator

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mohamedkhairy/kline-indicators/internal/config"
	"github.com/mohamedkhairy/kline-indicators/internal/models"
	indicatorpkg "github.com/mohamedkhairy/kline-indicators/pkg/indicator"
)

// RegisterAllIndicators registers every indicator pipeline, using defaults
// for parameters a caller leaves out
func RegisterAllIndicators(registry *IndicatorRegistry, defaults config.IndicatorDefaults) error {
	if err := registerTrendIndicators(registry, defaults); err != nil {
		return err
	}
	if err := registerOscillators(registry, defaults); err != nil {
		return err
	}
	return registerVolumeIndicators(registry, defaults)
}

func registerTrendIndicators(registry *IndicatorRegistry, defaults config.IndicatorDefaults) error {
	if err := register(registry, "ma", defaults.MA, computeMA(""),
		IndicatorMetadata{
			Description: "Moving average (sma, ema or wma) over a selectable price source",
			Category:    "trend",
			Output:      OutputSeries,
		},
	); err != nil {
		return err
	}

	// Fixed-kind aliases; a kind in the request is ignored
	for _, kind := range []indicatorpkg.MAKind{indicatorpkg.MAKindSMA, indicatorpkg.MAKindEMA, indicatorpkg.MAKindWMA} {
		def := defaults.MA
		def.Kind = kind
		if err := register(registry, string(kind), def, computeMA(kind),
			IndicatorMetadata{
				Description: fmt.Sprintf("%s moving average", maDescriptions[kind]),
				Category:    "trend",
				Output:      OutputSeries,
			},
		); err != nil {
			return err
		}
	}

	if err := register(registry, "boll", defaults.Bollinger,
		func(bars []models.Bar, p indicatorpkg.BollingerParams) (interface{}, error) {
			return indicatorpkg.Bollinger(bars, p)
		},
		IndicatorMetadata{
			Description: "Bollinger Bands: SMA middle band with population standard deviation envelopes",
			Category:    "volatility",
			Output:      OutputMultiSeries,
		},
	); err != nil {
		return err
	}

	if err := register(registry, "donchian", defaults.Donchian,
		func(bars []models.Bar, p indicatorpkg.DonchianParams) (interface{}, error) {
			return indicatorpkg.Donchian(bars, p)
		},
		IndicatorMetadata{
			Description: "Donchian Channel: rolling highest high, lowest low and their midpoint",
			Category:    "volatility",
			Output:      OutputMultiSeries,
		},
	); err != nil {
		return err
	}

	return register(registry, "macd", defaults.MACD,
		func(bars []models.Bar, p indicatorpkg.MACDParams) (interface{}, error) {
			return indicatorpkg.MACD(bars, p)
		},
		IndicatorMetadata{
			Description: "MACD line, signal line and histogram with sign classification",
			Category:    "trend",
			Output:      OutputMACD,
		},
	)
}

func registerOscillators(registry *IndicatorRegistry, defaults config.IndicatorDefaults) error {
	if err := register(registry, "kdj", defaults.KDJ,
		func(bars []models.Bar, p indicatorpkg.KDJParams) (interface{}, error) {
			return indicatorpkg.KDJ(bars, p)
		},
		IndicatorMetadata{
			Description: "KDJ stochastic oscillator with K and D seeded at 50",
			Category:    "momentum",
			Output:      OutputMultiSeries,
		},
	); err != nil {
		return err
	}

	return register(registry, "rsi", defaults.RSI,
		func(bars []models.Bar, p indicatorpkg.RSIParams) (interface{}, error) {
			return indicatorpkg.RSI(bars, p)
		},
		IndicatorMetadata{
			Description: "Relative Strength Index with Wilder smoothing and constant threshold bands",
			Category:    "momentum",
			Output:      OutputMultiSeries,
		},
	)
}

func registerVolumeIndicators(registry *IndicatorRegistry, defaults config.IndicatorDefaults) error {
	if err := register(registry, "aggregate", defaults.Aggregate,
		func(bars []models.Bar, p indicatorpkg.AggregateParams) (interface{}, error) {
			return indicatorpkg.AggregateWithParams(bars, p)
		},
		IndicatorMetadata{
			Description: "Merges every window consecutive bars into one coarser bar",
			Category:    "transform",
			Output:      OutputBars,
		},
	); err != nil {
		return err
	}

	return register(registry, "volume_ratio", defaults.DayRatio,
		func(bars []models.Bar, p indicatorpkg.DayRatioParams) (interface{}, error) {
			return indicatorpkg.DayRatioSeries(bars, p)
		},
		IndicatorMetadata{
			Description: "Day volume ratio of each bar against the mean of the preceding window bars",
			Category:    "volume",
			Output:      OutputSeries,
		},
	)
}

var maDescriptions = map[indicatorpkg.MAKind]string{
	indicatorpkg.MAKindSMA: "Simple",
	indicatorpkg.MAKindEMA: "Exponential",
	indicatorpkg.MAKindWMA: "Linearly weighted",
}

func computeMA(kind indicatorpkg.MAKind) func([]models.Bar, indicatorpkg.MAParams) (interface{}, error) {
	return func(bars []models.Bar, p indicatorpkg.MAParams) (interface{}, error) {
		if kind != "" {
			p.Kind = kind
		}
		return indicatorpkg.MA(bars, p)
	}
}

// register adapts a typed computation into a Pipeline that decodes its
// parameters over a copy of defaults
func register[P any](
	registry *IndicatorRegistry,
	name string,
	defaults P,
	compute func([]models.Bar, P) (interface{}, error),
	metadata IndicatorMetadata,
) error {
	metadata.Parameters = defaults
	pipeline := func(bars []models.Bar, raw json.RawMessage) (interface{}, error) {
		params, err := decodeParams(raw, defaults)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return compute(bars, params)
	}
	return registry.Register(name, pipeline, metadata)
}

// decodeParams overlays the JSON object raw onto defaults. Unknown fields
// are rejected.
func decodeParams[P any](raw json.RawMessage, defaults P) (P, error) {
	params := defaults

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return params, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&params); err != nil {
		var zero P
		return zero, fmt.Errorf("%w: decoding parameters: %v", models.ErrInvalidConfig, err)
	}
	return params, nil
}
