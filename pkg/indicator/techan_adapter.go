package indicator

import (
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

// TechanSeries converts bars into a techan time series so results can be
// compared with techan's indicator set. Bar times are opaque, so candle
// periods are synthesized from start at a fixed interval, one per bar.
func TechanSeries(bars []models.Bar, start time.Time, interval time.Duration) *techan.TimeSeries {
	series := techan.NewTimeSeries()
	for i, bar := range bars {
		period := techan.NewTimePeriod(start.Add(time.Duration(i)*interval), interval)
		candle := techan.NewCandle(period)

		candle.OpenPrice = big.NewDecimal(bar.Open)
		candle.MaxPrice = big.NewDecimal(bar.High)
		candle.MinPrice = big.NewDecimal(bar.Low)
		candle.ClosePrice = big.NewDecimal(bar.Close)
		candle.Volume = big.NewDecimal(bar.Volume)

		series.AddCandle(candle)
	}
	return series
}

// TechanValues evaluates a techan indicator at every index from first to
// last (inclusive) and returns the results as floats.
func TechanValues(ind techan.Indicator, first, last int) []float64 {
	if first < 0 || last < first {
		return nil
	}
	out := make([]float64, 0, last-first+1)
	for i := first; i <= last; i++ {
		out = append(out, ind.Calculate(i).Float())
	}
	return out
}
