package indicator

import (
	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

// Series keys shared by the band-style indicators
const (
	KeyUpper  = "upper"
	KeyMiddle = "middle"
	KeyLower  = "lower"
)

// Bollinger calculates Bollinger Bands over closes:
// middle = SMA(period), upper/lower = middle ± multiplier * population std dev.
// One point per bar from index period-1 onward.
func Bollinger(bars []models.Bar, params BollingerParams) (models.MultiSeries, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if len(bars) < params.Period {
		return emptyBands(), nil
	}

	w, err := NewWindowAggregator(params.Period)
	if err != nil {
		return nil, err
	}

	size := outputSize(len(bars), params.Period-1)
	upper := make(models.Series, 0, size)
	middle := make(models.Series, 0, size)
	lower := make(models.Series, 0, size)

	for i := range bars {
		agg := w.Push(bars[i].Close)
		if !agg.Full {
			continue
		}

		mean := agg.Mean()
		band := params.Multiplier * agg.StdDev()
		t := bars[i].Time

		upper = append(upper, models.Point{Time: t, Value: mean + band})
		middle = append(middle, models.Point{Time: t, Value: mean})
		lower = append(lower, models.Point{Time: t, Value: mean - band})
	}

	return models.MultiSeries{
		KeyUpper:  upper,
		KeyMiddle: middle,
		KeyLower:  lower,
	}, nil
}

func emptyBands() models.MultiSeries {
	return models.MultiSeries{
		KeyUpper:  models.Series{},
		KeyMiddle: models.Series{},
		KeyLower:  models.Series{},
	}
}

// outputSize is the number of points a series with the given warm-up offset
// produces over n bars
func outputSize(n, warmup int) int {
	if n <= warmup {
		return 0
	}
	return n - warmup
}
