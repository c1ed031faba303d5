package indicator

import (
	"math"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

// Volume ratios compare current volume against a historical baseline.
// They are advisory: empty inputs and zero baselines return NaN instead of
// an error.

// DayRatio returns todayVolume divided by the mean of the positive entries
// of pastVolumes. Non-positive past entries are missing data and are skipped.
func DayRatio(todayVolume float64, pastVolumes []float64) float64 {
	if todayVolume < 0 || math.IsNaN(todayVolume) {
		return math.NaN()
	}

	avg := positiveMean(pastVolumes)
	if math.IsNaN(avg) || avg == 0 {
		return math.NaN()
	}
	return todayVolume / avg
}

// MinuteRatioSameTime compares today's cumulative volume since the open
// with the average cumulative volume at the same minute on past days.
// Past days with fewer minutes than today are skipped.
func MinuteRatioSameTime(todayMinuteVolumes []float64, pastDaysMinuteVolumes [][]float64) float64 {
	if len(todayMinuteVolumes) == 0 || len(pastDaysMinuteVolumes) == 0 {
		return math.NaN()
	}

	minutes := len(todayMinuteVolumes)
	todayCum := sumMissingAsZero(todayMinuteVolumes)

	var sumCum float64
	validDays := 0
	for _, day := range pastDaysMinuteVolumes {
		if len(day) < minutes {
			continue
		}
		sumCum += sumMissingAsZero(day[:minutes])
		validDays++
	}
	if validDays == 0 {
		return math.NaN()
	}

	avgCum := sumCum / float64(validDays)
	if avgCum == 0 {
		return math.NaN()
	}
	return todayCum / avgCum
}

// MinuteRatioSimple compares today's per-minute volume so far with the past
// days' full-day per-minute volume:
//
//	(todayCum / minutesElapsed) / (mean(pastTotals) / fullDayMinutes)
func MinuteRatioSimple(todayCumVolume float64, pastDayTotals []float64, minutesElapsed, fullDayMinutes int) float64 {
	if len(pastDayTotals) == 0 || minutesElapsed <= 0 || fullDayMinutes <= 0 {
		return math.NaN()
	}

	todayPerMinute := todayCumVolume / float64(minutesElapsed)
	pastPerMinute := sumMissingAsZero(pastDayTotals) / float64(len(pastDayTotals)) / float64(fullDayMinutes)
	if pastPerMinute == 0 {
		return math.NaN()
	}
	return todayPerMinute / pastPerMinute
}

// DayRatioSeries computes DayRatio for every bar against the window bars
// before it. The first window bars have no baseline and are omitted, like
// the warm-up of every other series. A bar whose baseline has no positive
// volume gets a NaN point.
func DayRatioSeries(bars []models.Bar, params DayRatioParams) (models.Series, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	volumes := sourceValues(bars, SourceVolume)
	series := make(models.Series, 0, outputSize(len(bars), params.Window))
	for i := params.Window; i < len(bars); i++ {
		series = append(series, models.Point{
			Time:  bars[i].Time,
			Value: DayRatio(volumes[i], volumes[i-params.Window:i]),
		})
	}
	return series, nil
}

func positiveMean(values []float64) float64 {
	var sum float64
	count := 0
	for _, v := range values {
		if v > 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

func sumMissingAsZero(values []float64) float64 {
	var sum float64
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
	}
	return sum
}
