package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

// Smoother applies y = alpha*x + (1-alpha)*y_prev.
// The first value must be provided with Seed; Next on an unseeded smoother
// takes x itself as the seed.
type Smoother struct {
	alpha  float64
	value  float64
	seeded bool
}

// NewSmoother creates a smoother with the given smoothing factor
func NewSmoother(alpha float64) *Smoother {
	return &Smoother{alpha: alpha}
}

// Alpha returns the standard exponential-MA factor 2/(period+1)
func Alpha(period int) float64 {
	return 2.0 / float64(period+1)
}

// WilderAlpha returns Wilder's smoothing factor 1/period
func WilderAlpha(period int) float64 {
	return 1.0 / float64(period)
}

// Seed sets the current smoothed value
func (s *Smoother) Seed(v float64) {
	s.value = v
	s.seeded = true
}

// Next folds x into the smoothed value and returns it
func (s *Smoother) Next(x float64) float64 {
	if !s.seeded {
		s.Seed(x)
		return s.value
	}
	s.value = s.alpha*x + (1-s.alpha)*s.value
	return s.value
}

// Value returns the current smoothed value
func (s *Smoother) Value() float64 {
	return s.value
}

// Smooth runs an exponential smoother with the given alpha over values.
// The first defined output, at index period-1, is the mean of the first
// period inputs; earlier indices are None. Inputs shorter than period
// produce no defined values.
func Smooth(values []float64, period int, alpha float64) ([]optional.Option[float64], error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: smoothing period must be positive, got %d", models.ErrInvalidConfig, period)
	}

	out := make([]optional.Option[float64], len(values))
	for i := range out {
		out[i] = optional.None[float64]()
	}
	if len(values) < period {
		return out, nil
	}

	var seed float64
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	seed /= float64(period)

	s := NewSmoother(alpha)
	s.Seed(seed)
	out[period-1] = optional.Some(seed)
	for i := period; i < len(values); i++ {
		out[i] = optional.Some(s.Next(values[i]))
	}
	return out, nil
}

// EMA is Smooth with alpha = 2/(period+1)
func EMA(values []float64, period int) ([]optional.Option[float64], error) {
	return Smooth(values, period, Alpha(period))
}

// SmoothFrom applies the recurrence to every value starting from a fixed
// seed rather than a computed mean. The returned slice has one value per
// input.
func SmoothFrom(values []float64, alpha, seed float64) []float64 {
	s := NewSmoother(alpha)
	s.Seed(seed)

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = s.Next(v)
	}
	return out
}

// compact returns the defined values of a nullable series that starts with
// a None prefix, together with the index of the first defined value.
// start is -1 when nothing is defined.
func compact(series []optional.Option[float64]) (values []float64, start int) {
	start = -1
	for i, v := range series {
		if v.IsSome() {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, -1
	}

	values = make([]float64, 0, len(series)-start)
	for _, v := range series[start:] {
		values = append(values, v.Unwrap())
	}
	return values, start
}
