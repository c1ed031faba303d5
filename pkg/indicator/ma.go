package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

// MovingAverage computes a moving average aligned to values: index i holds
// the average of the window ending at i, or None during warm-up.
//
// SMA = window sum / period
// EMA = Smooth with alpha 2/(period+1), seeded by the first SMA
// WMA = sum(value[i-j] * (period-j)) / (period*(period+1)/2)
func MovingAverage(values []float64, period int, kind MAKind) ([]optional.Option[float64], error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: MA period must be positive, got %d", models.ErrInvalidConfig, period)
	}

	switch kind {
	case MAKindSMA, "":
		return sma(values, period)
	case MAKindEMA:
		return EMA(values, period)
	case MAKindWMA:
		return wma(values, period), nil
	default:
		return nil, fmt.Errorf("%w: unknown MA kind %q", models.ErrInvalidConfig, kind)
	}
}

func sma(values []float64, period int) ([]optional.Option[float64], error) {
	out := make([]optional.Option[float64], len(values))
	if len(values) < period {
		for i := range out {
			out[i] = optional.None[float64]()
		}
		return out, nil
	}

	w, err := NewWindowAggregator(period)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		agg := w.Push(v)
		if agg.Full {
			out[i] = optional.Some(agg.Sum / float64(period))
		} else {
			out[i] = optional.None[float64]()
		}
	}
	return out, nil
}

func wma(values []float64, period int) []optional.Option[float64] {
	out := make([]optional.Option[float64], len(values))
	denominator := float64(period*(period+1)) / 2

	for i := range values {
		if i < period-1 {
			out[i] = optional.None[float64]()
			continue
		}
		var numerator float64
		for j := 0; j < period; j++ {
			numerator += values[i-j] * float64(period-j)
		}
		out[i] = optional.Some(numerator / denominator)
	}
	return out
}

// MA computes a moving average over bars and maps it onto bar timestamps.
// Warm-up bars are dropped, not padded.
func MA(bars []models.Bar, params MAParams) (models.Series, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	values, err := MovingAverage(sourceValues(bars, params.Source), params.Period, params.Kind)
	if err != nil {
		return nil, err
	}
	return alignSeries(bars, values), nil
}

// alignSeries pairs every defined value with the timestamp of the bar at the
// same index
func alignSeries(bars []models.Bar, values []optional.Option[float64]) models.Series {
	series := make(models.Series, 0, len(values))
	for i, v := range values {
		if v.IsNone() {
			continue
		}
		series = append(series, models.Point{Time: bars[i].Time, Value: v.Unwrap()})
	}
	return series
}

// sourceValues extracts the selected field from every bar
func sourceValues(bars []models.Bar, source Source) []float64 {
	values := make([]float64, len(bars))
	for i := range bars {
		b := &bars[i]
		switch source {
		case SourceOpen:
			values[i] = b.Open
		case SourceHigh:
			values[i] = b.High
		case SourceLow:
			values[i] = b.Low
		case SourceVolume:
			values[i] = b.Volume
		case SourceHL2:
			values[i] = b.HL2()
		default:
			values[i] = b.Close
		}
	}
	return values
}

func closes(bars []models.Bar) []float64 {
	return sourceValues(bars, SourceClose)
}
