package indicator

import (
	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

// Donchian calculates the Donchian Channel: highest high (upper), lowest
// low (lower) and their midpoint over the trailing period.
func Donchian(bars []models.Bar, params DonchianParams) (models.MultiSeries, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if len(bars) < params.Period {
		return emptyBands(), nil
	}

	highs, err := NewWindowAggregator(params.Period)
	if err != nil {
		return nil, err
	}
	lows, err := NewWindowAggregator(params.Period)
	if err != nil {
		return nil, err
	}

	size := outputSize(len(bars), params.Period-1)
	upper := make(models.Series, 0, size)
	middle := make(models.Series, 0, size)
	lower := make(models.Series, 0, size)

	for i := range bars {
		hi := highs.Push(bars[i].High)
		lo := lows.Push(bars[i].Low)
		if !hi.Full {
			continue
		}

		t := bars[i].Time
		upper = append(upper, models.Point{Time: t, Value: hi.Max})
		middle = append(middle, models.Point{Time: t, Value: (hi.Max + lo.Min) / 2})
		lower = append(lower, models.Point{Time: t, Value: lo.Min})
	}

	return models.MultiSeries{
		KeyUpper:  upper,
		KeyMiddle: middle,
		KeyLower:  lower,
	}, nil
}
