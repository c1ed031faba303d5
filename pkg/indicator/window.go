package indicator

import (
	"fmt"
	"math"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

// Aggregate is the state of a trailing window after one push
type Aggregate struct {
	Sum   float64
	SumSq float64
	Min   float64
	Max   float64
	Count int  // number of elements currently in the window
	Full  bool // true once the window holds period elements
}

// Mean returns the window mean
func (a Aggregate) Mean() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Sum / float64(a.Count)
}

// Variance returns the population variance sumSq/n - mean².
// Floating-point cancellation can push the result slightly below zero for
// near-constant windows; such values are clamped to zero.
func (a Aggregate) Variance() float64 {
	if a.Count == 0 {
		return 0
	}
	mean := a.Mean()
	variance := a.SumSq/float64(a.Count) - mean*mean
	if variance < 0 && variance > -varianceEpsilon {
		variance = 0
	}
	return math.Max(0, variance)
}

// StdDev returns the population standard deviation
func (a Aggregate) StdDev() float64 {
	return math.Sqrt(a.Variance())
}

const varianceEpsilon = 1e-12

// dequeEntry is a candidate extremum in a monotonic deque
type dequeEntry struct {
	index int
	value float64
}

// WindowAggregator keeps the running sum, sum of squares, minimum and
// maximum of the last period values pushed into it.
// Sum/SumSq are maintained incrementally; min/max use monotonic deques,
// so every push is amortized O(1).
type WindowAggregator struct {
	period int
	ring   []float64 // last period values
	head   int       // next write position in ring
	pushed int       // total values pushed
	sum    float64
	sumSq  float64
	maxq   []dequeEntry // decreasing values, front is the window max
	minq   []dequeEntry // increasing values, front is the window min
}

// NewWindowAggregator creates an aggregator over a trailing window of period values
func NewWindowAggregator(period int) (*WindowAggregator, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: window period must be positive, got %d", models.ErrInvalidConfig, period)
	}

	// Storage grows with the values pushed, never ahead of them.
	return &WindowAggregator{period: period}, nil
}

// Period returns the window size
func (w *WindowAggregator) Period() int {
	return w.period
}

// Push adds a value to the window, evicting the oldest one once the window
// is full, and returns the resulting aggregate
func (w *WindowAggregator) Push(x float64) Aggregate {
	idx := w.pushed

	if len(w.ring) < w.period {
		w.ring = append(w.ring, x)
	} else {
		old := w.ring[w.head]
		w.sum -= old
		w.sumSq -= old * old
		w.ring[w.head] = x
		w.head = (w.head + 1) % w.period
	}
	w.sum += x
	w.sumSq += x * x
	w.pushed++

	// Evict dominated candidates from the back, then expired ones from the front
	for len(w.maxq) > 0 && w.maxq[len(w.maxq)-1].value <= x {
		w.maxq = w.maxq[:len(w.maxq)-1]
	}
	w.maxq = append(w.maxq, dequeEntry{index: idx, value: x})
	for w.maxq[0].index <= idx-w.period {
		w.maxq = w.maxq[1:]
	}

	for len(w.minq) > 0 && w.minq[len(w.minq)-1].value >= x {
		w.minq = w.minq[:len(w.minq)-1]
	}
	w.minq = append(w.minq, dequeEntry{index: idx, value: x})
	for w.minq[0].index <= idx-w.period {
		w.minq = w.minq[1:]
	}

	return w.Current()
}

// Current returns the aggregate of the values currently in the window
func (w *WindowAggregator) Current() Aggregate {
	count := w.pushed
	if count > w.period {
		count = w.period
	}

	agg := Aggregate{
		Sum:   w.sum,
		SumSq: w.sumSq,
		Count: count,
		Full:  count == w.period,
	}
	if len(w.maxq) > 0 {
		agg.Max = w.maxq[0].value
		agg.Min = w.minq[0].value
	}
	return agg
}

// Rolling returns one aggregate for every index i >= period-1 of values.
// A period longer than the input yields no aggregates.
func Rolling(values []float64, period int) ([]Aggregate, error) {
	w, err := NewWindowAggregator(period)
	if err != nil {
		return nil, err
	}
	if len(values) < period {
		return []Aggregate{}, nil
	}

	out := make([]Aggregate, 0, len(values)-period+1)
	for _, v := range values {
		agg := w.Push(v)
		if agg.Full {
			out = append(out, agg)
		}
	}
	return out, nil
}
