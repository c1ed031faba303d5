package indicator

import (
	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

const (
	KeyK = "k"
	KeyD = "d"
	KeyJ = "j"

	// kdjSeed is the neutral starting value of K and D
	kdjSeed = 50.0
)

// KDJ calculates the KDJ oscillator.
//
//	RSV = (close - lowN) / (highN - lowN) * 100, or 0 when highN == lowN
//	K   = smoothing of RSV with alpha 1/kPeriod, seeded at 50
//	D   = smoothing of K with alpha 1/dPeriod, seeded at 50
//	J   = 3K - 2D
//
// Points start at index n-1.
func KDJ(bars []models.Bar, params KDJParams) (models.MultiSeries, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if len(bars) < params.N {
		return models.MultiSeries{
			KeyK: models.Series{},
			KeyD: models.Series{},
			KeyJ: models.Series{},
		}, nil
	}

	highs, err := NewWindowAggregator(params.N)
	if err != nil {
		return nil, err
	}
	lows, err := NewWindowAggregator(params.N)
	if err != nil {
		return nil, err
	}

	k := NewSmoother(WilderAlpha(params.KPeriod))
	k.Seed(kdjSeed)
	d := NewSmoother(WilderAlpha(params.DPeriod))
	d.Seed(kdjSeed)

	size := outputSize(len(bars), params.N-1)
	kSeries := make(models.Series, 0, size)
	dSeries := make(models.Series, 0, size)
	jSeries := make(models.Series, 0, size)

	for i := range bars {
		hi := highs.Push(bars[i].High)
		lo := lows.Push(bars[i].Low)
		if !hi.Full {
			continue
		}

		rsv := 0.0
		if hi.Max != lo.Min {
			rsv = (bars[i].Close - lo.Min) / (hi.Max - lo.Min) * 100
		}

		kv := k.Next(rsv)
		dv := d.Next(kv)
		t := bars[i].Time

		kSeries = append(kSeries, models.Point{Time: t, Value: kv})
		dSeries = append(dSeries, models.Point{Time: t, Value: dv})
		jSeries = append(jSeries, models.Point{Time: t, Value: 3*kv - 2*dv})
	}

	return models.MultiSeries{
		KeyK: kSeries,
		KeyD: dSeries,
		KeyJ: jSeries,
	}, nil
}
