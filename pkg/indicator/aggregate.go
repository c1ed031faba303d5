package indicator

import (
	"math"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

// AggregateBars downsamples parallel OHLC/time arrays into buckets of window
// consecutive bars. See AggregateBarSeries for the bucket rule.
// Mismatched array lengths or a non-positive window yield an empty result.
func AggregateBars(open, high, low, close []float64, times []models.Time, window int) []models.Bar {
	n := len(open)
	if window <= 0 || len(high) != n || len(low) != n || len(close) != n || len(times) != n {
		return []models.Bar{}
	}

	bars := make([]models.Bar, n)
	for i := 0; i < n; i++ {
		bars[i] = models.Bar{
			Time:  times[i],
			Open:  open[i],
			High:  high[i],
			Low:   low[i],
			Close: close[i],
		}
	}
	return AggregateBarSeries(bars, window)
}

// AggregateBarSeries groups bars into complete buckets of window bars
// starting at the first bar. Each bucket becomes one bar with the time and
// close of its last bar, the open of its first bar, the highest high, the
// lowest low and the summed volume. A trailing incomplete bucket is dropped.
func AggregateBarSeries(bars []models.Bar, window int) []models.Bar {
	if window <= 0 || len(bars) < window {
		return []models.Bar{}
	}

	out := make([]models.Bar, 0, len(bars)/window)
	for start := 0; start+window <= len(bars); start += window {
		bucket := bars[start : start+window]
		last := bucket[len(bucket)-1]

		agg := models.Bar{
			Time:  last.Time,
			Open:  bucket[0].Open,
			High:  math.Inf(-1),
			Low:   math.Inf(1),
			Close: last.Close,
		}
		for _, b := range bucket {
			agg.High = math.Max(agg.High, b.High)
			agg.Low = math.Min(agg.Low, b.Low)
			agg.Volume += b.Volume
		}
		out = append(out, agg)
	}
	return out
}

// AggregateWithParams is the strictly validated form of AggregateBarSeries used by
// the indicator registry: a non-positive window is a configuration error.
func AggregateWithParams(bars []models.Bar, params AggregateParams) ([]models.Bar, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return AggregateBarSeries(bars, params.Window), nil
}
