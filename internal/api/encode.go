package api

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mohamedkhairy/kline-indicators/internal/config"
	"github.com/mohamedkhairy/kline-indicators/internal/models"
	indicatorpkg "github.com/mohamedkhairy/kline-indicators/pkg/indicator"
)

// Encoder turns indicator outputs into their JSON response shapes.
// NaN and infinite values are written as null.
type Encoder struct {
	places int32
	colors config.MACDColors
}

// NewEncoder creates an encoder rounding to precision decimal places
// (-1 keeps full float precision)
func NewEncoder(precision int, colors config.MACDColors) *Encoder {
	return &Encoder{places: int32(precision), colors: colors}
}

type number struct {
	value  float64
	places int32
}

func (n number) MarshalJSON() ([]byte, error) {
	if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
		return []byte("null"), nil
	}
	if n.places < 0 {
		return json.Marshal(n.value)
	}
	return []byte(decimal.NewFromFloat(n.value).Round(n.places).String()), nil
}

type pointJSON struct {
	Time  models.Time `json:"time"`
	Value number      `json:"value"`
}

type coloredPointJSON struct {
	Time  models.Time `json:"time"`
	Value number      `json:"value"`
	Color string      `json:"color"`
}

type histogramPointJSON struct {
	Time  models.Time          `json:"time"`
	Value number               `json:"value"`
	Sign  models.HistogramSign `json:"sign"`
	Color string               `json:"color"`
}

type macdJSON struct {
	MACD      []coloredPointJSON   `json:"macd"`
	Signal    []coloredPointJSON   `json:"signal"`
	Histogram []histogramPointJSON `json:"histogram"`
}

type barJSON struct {
	Time   models.Time `json:"time"`
	Open   number      `json:"open"`
	High   number      `json:"high"`
	Low    number      `json:"low"`
	Close  number      `json:"close"`
	Volume number      `json:"volume"`
}

// Encode converts a pipeline output into a JSON-ready value
func (e *Encoder) Encode(output interface{}) (interface{}, error) {
	switch out := output.(type) {
	case models.Series:
		return e.series(out), nil
	case models.MultiSeries:
		result := make(map[string][]pointJSON, len(out))
		for key, s := range out {
			result[key] = e.series(s)
		}
		return result, nil
	case *indicatorpkg.MACDResult:
		return e.macd(out), nil
	case []models.Bar:
		return e.bars(out), nil
	default:
		return nil, fmt.Errorf("unsupported indicator output %T", output)
	}
}

// Number wraps a scalar for encoding with the encoder's precision
func (e *Encoder) Number(v float64) json.Marshaler {
	return e.num(v)
}

func (e *Encoder) num(v float64) number {
	return number{value: v, places: e.places}
}

func (e *Encoder) series(s models.Series) []pointJSON {
	out := make([]pointJSON, len(s))
	for i, p := range s {
		out[i] = pointJSON{Time: p.Time, Value: e.num(p.Value)}
	}
	return out
}

func (e *Encoder) macd(r *indicatorpkg.MACDResult) macdJSON {
	out := macdJSON{
		MACD:      make([]coloredPointJSON, len(r.MACD)),
		Signal:    make([]coloredPointJSON, len(r.Signal)),
		Histogram: make([]histogramPointJSON, len(r.Histogram)),
	}
	for i, p := range r.MACD {
		out.MACD[i] = coloredPointJSON{Time: p.Time, Value: e.num(p.Value), Color: e.colors.Line}
	}
	for i, p := range r.Signal {
		out.Signal[i] = coloredPointJSON{Time: p.Time, Value: e.num(p.Value), Color: e.colors.Signal}
	}
	for i, p := range r.Histogram {
		color := e.colors.NonPositive
		if p.Sign == models.HistogramPositive {
			color = e.colors.Positive
		}
		out.Histogram[i] = histogramPointJSON{Time: p.Time, Value: e.num(p.Value), Sign: p.Sign, Color: color}
	}
	return out
}

func (e *Encoder) bars(bars []models.Bar) []barJSON {
	out := make([]barJSON, len(bars))
	for i, b := range bars {
		out[i] = barJSON{
			Time:   b.Time,
			Open:   e.num(b.Open),
			High:   e.num(b.High),
			Low:    e.num(b.Low),
			Close:  e.num(b.Close),
			Volume: e.num(b.Volume),
		}
	}
	return out
}
