package indicator

import (
	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

// KeyRSI is the RSI line; the bands use KeyUpper and KeyLower
const KeyRSI = "rsi"

// RSI calculates the Relative Strength Index with Wilder smoothing.
//
// The first average gain/loss is the plain mean of the first period close
// differences, so the first value lands on bar index period. After that
// both averages are smoothed with alpha 1/period:
//
//	avg = (avg*(period-1) + current) / period
//	RSI = 100 - 100/(1 + avgGain/avgLoss), or 100 when avgLoss is zero
//
// The upper and lower bands are constant series on the same timestamps.
func RSI(bars []models.Bar, params RSIParams) (models.MultiSeries, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	period := params.Period
	size := outputSize(len(bars), period)
	rsi := make(models.Series, 0, size)
	upper := make(models.Series, 0, size)
	lower := make(models.Series, 0, size)

	result := models.MultiSeries{
		KeyRSI:   rsi,
		KeyUpper: upper,
		KeyLower: lower,
	}
	if len(bars) <= period {
		return result, nil
	}

	var seedGain, seedLoss float64
	for i := 1; i <= period; i++ {
		change := bars[i].Close - bars[i-1].Close
		if change >= 0 {
			seedGain += change
		} else {
			seedLoss -= change
		}
	}

	gains := NewSmoother(WilderAlpha(period))
	gains.Seed(seedGain / float64(period))
	losses := NewSmoother(WilderAlpha(period))
	losses.Seed(seedLoss / float64(period))

	emit := func(i int) {
		t := bars[i].Time
		rsi = append(rsi, models.Point{Time: t, Value: rsiValue(gains.Value(), losses.Value())})
		upper = append(upper, models.Point{Time: t, Value: params.Upper})
		lower = append(lower, models.Point{Time: t, Value: params.Lower})
	}

	emit(period)
	for i := period + 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		gains.Next(gain)
		losses.Next(loss)
		emit(i)
	}

	result[KeyRSI] = rsi
	result[KeyUpper] = upper
	result[KeyLower] = lower
	return result, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
