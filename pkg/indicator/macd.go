package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

const (
	KeyMACD      = "macd"
	KeySignal    = "signal"
	KeyHistogram = "histogram"
)

// MACDLines holds the three MACD lines aligned to the input values
type MACDLines struct {
	MACD      []optional.Option[float64]
	Signal    []optional.Option[float64]
	Histogram []optional.Option[float64]
}

// CalculateMACD computes the MACD lines over values.
//
//	MACD      = EMA(short) - EMA(long), defined from index long-1
//	Signal    = EMA(MACD, signal), seeded on the MACD line itself
//	Histogram = MACD - Signal
func CalculateMACD(values []float64, params MACDParams) (*MACDLines, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	emaShort, err := EMA(values, params.Short)
	if err != nil {
		return nil, err
	}
	emaLong, err := EMA(values, params.Long)
	if err != nil {
		return nil, err
	}

	lines := &MACDLines{
		MACD:      make([]optional.Option[float64], len(values)),
		Signal:    make([]optional.Option[float64], len(values)),
		Histogram: make([]optional.Option[float64], len(values)),
	}
	for i := range values {
		lines.MACD[i] = optional.None[float64]()
		lines.Signal[i] = optional.None[float64]()
		lines.Histogram[i] = optional.None[float64]()
		if emaShort[i].IsSome() && emaLong[i].IsSome() {
			lines.MACD[i] = optional.Some(emaShort[i].Unwrap() - emaLong[i].Unwrap())
		}
	}

	// The signal EMA is seeded over the MACD line without its undefined prefix
	macdValues, start := compact(lines.MACD)
	if start < 0 {
		return lines, nil
	}
	signal, err := EMA(macdValues, params.Signal)
	if err != nil {
		return nil, err
	}
	for k, v := range signal {
		if v.IsNone() {
			continue
		}
		idx := start + k
		lines.Signal[idx] = v
		lines.Histogram[idx] = optional.Some(lines.MACD[idx].Unwrap() - v.Unwrap())
	}

	return lines, nil
}

// MACDResult is the bar-aligned MACD output. All three series cover the
// same bars: those where the histogram is defined.
type MACDResult struct {
	MACD      models.Series
	Signal    models.Series
	Histogram []models.HistogramPoint
}

// MACD computes MACD over bar closes and keeps only the bars on which
// MACD, signal and histogram are all defined
func MACD(bars []models.Bar, params MACDParams) (*MACDResult, error) {
	lines, err := CalculateMACD(closes(bars), params)
	if err != nil {
		return nil, err
	}

	size := outputSize(len(bars), params.Long+params.Signal-2)
	result := &MACDResult{
		MACD:      make(models.Series, 0, size),
		Signal:    make(models.Series, 0, size),
		Histogram: make([]models.HistogramPoint, 0, size),
	}
	for i := range bars {
		if lines.Histogram[i].IsNone() {
			continue
		}
		t := bars[i].Time
		hist := lines.Histogram[i].Unwrap()

		result.MACD = append(result.MACD, models.Point{Time: t, Value: lines.MACD[i].Unwrap()})
		result.Signal = append(result.Signal, models.Point{Time: t, Value: lines.Signal[i].Unwrap()})
		result.Histogram = append(result.Histogram, models.HistogramPoint{
			Time:  t,
			Value: hist,
			Sign:  models.SignOf(hist),
		})
	}
	return result, nil
}

// AsMultiSeries drops the sign classification and returns the plain series
func (r *MACDResult) AsMultiSeries() models.MultiSeries {
	hist := make(models.Series, len(r.Histogram))
	for i, p := range r.Histogram {
		hist[i] = models.Point{Time: p.Time, Value: p.Value}
	}
	return models.MultiSeries{
		KeyMACD:      r.MACD,
		KeySignal:    r.Signal,
		KeyHistogram: hist,
	}
}
