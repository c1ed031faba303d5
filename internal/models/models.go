package models

import (
	"math"
)

// Time is an opaque bar timestamp: an epoch number or a business-day string
// such as "2024-03-01". Indicators never interpret it, they only copy it onto
// the points they emit.
type Time interface{}

// Bar represents one OHLCV sample
type Bar struct {
	Time   Time    `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume,omitempty"`
}

// Validate validates a Bar
func (b *Bar) Validate() error {
	if b.Time == nil {
		return ErrInvalidTimestamp
	}
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidPrice
		}
	}
	if b.High < b.Low {
		return ErrInvalidBar
	}
	// Non-positive volume marks missing data and is left to the volume ratios.
	if math.IsNaN(b.Volume) || math.IsInf(b.Volume, 0) {
		return ErrInvalidVolume
	}
	return nil
}

// HL2 returns the midpoint of the bar's range
func (b *Bar) HL2() float64 {
	return (b.High + b.Low) / 2
}

// Point is one indicator output unit
type Point struct {
	Time  Time    `json:"time"`
	Value float64 `json:"value"`
}

// Series is an ordered sequence of points, one per bar past warm-up
type Series []Point

// Values returns the point values in order
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// MultiSeries is a named group of aligned series, e.g. upper/middle/lower
type MultiSeries map[string]Series

// HistogramSign classifies a MACD histogram bar for display
type HistogramSign string

const (
	HistogramPositive    HistogramSign = "positive"
	HistogramNonPositive HistogramSign = "non_positive"
)

// SignOf classifies v: strictly positive values are positive, everything
// else (including zero) is non-positive.
func SignOf(v float64) HistogramSign {
	if v > 0 {
		return HistogramPositive
	}
	return HistogramNonPositive
}

// HistogramPoint is a histogram value together with its sign class
type HistogramPoint struct {
	Time  Time          `json:"time"`
	Value float64       `json:"value"`
	Sign  HistogramSign `json:"sign"`
}

// ValidateBars validates every bar and returns the index of the first bad one
func ValidateBars(bars []Bar) (int, error) {
	for i := range bars {
		if err := bars[i].Validate(); err != nil {
			return i, err
		}
	}
	return -1, nil
}
