package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

func TestAggregateBars_TwoBuckets(t *testing.T) {
	open := []float64{1, 2, 3, 4}
	high := []float64{2, 3, 4, 5}
	low := []float64{0, 1, 2, 3}
	closePrices := []float64{1.5, 2.5, 3.5, 4.5}
	times := []models.Time{"t0", "t1", "t2", "t3"}

	out := AggregateBars(open, high, low, closePrices, times, 2)
	require.Len(t, out, 2)

	assert.Equal(t, models.Bar{Time: "t1", Open: 1, High: 3, Low: 0, Close: 2.5}, out[0])
	assert.Equal(t, models.Bar{Time: "t3", Open: 3, High: 5, Low: 2, Close: 4.5}, out[1])
}

func TestAggregateBars_IncompleteTrailingBucket(t *testing.T) {
	open := []float64{1, 2, 3, 4, 5}
	times := []models.Time{1, 2, 3, 4, 5}

	out := AggregateBars(open, open, open, open, times, 2)
	require.Len(t, out, 2)
	assert.Equal(t, 4, out[1].Time)

	assert.Empty(t, AggregateBars(open, open, open, open, times, 6))
}

func TestAggregateBars_InvalidInputYieldsEmpty(t *testing.T) {
	open := []float64{1, 2}
	times := []models.Time{1, 2}

	tests := []struct {
		name   string
		high   []float64
		times  []models.Time
		window int
	}{
		{"mismatched high", []float64{1}, times, 1},
		{"mismatched times", open, []models.Time{1}, 1},
		{"nil arrays", nil, nil, 1},
		{"zero window", open, times, 0},
		{"negative window", open, times, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := AggregateBars(open, tt.high, open, open, tt.times, tt.window)
			assert.NotNil(t, out)
			assert.Empty(t, out)
		})
	}
}

func TestAggregateBarSeries_SumsVolume(t *testing.T) {
	bars := []models.Bar{
		{Time: "09:31", Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100},
		{Time: "09:32", Open: 10.5, High: 12, Low: 10, Close: 11, Volume: 250},
		{Time: "09:33", Open: 11, High: 11.5, Low: 8, Close: 9, Volume: 50},
	}

	out := AggregateBarSeries(bars, 3)
	require.Len(t, out, 1)
	assert.Equal(t, models.Bar{Time: "09:33", Open: 10, High: 12, Low: 8, Close: 9, Volume: 400}, out[0])
}

func TestAggregateWithParams_StrictWindow(t *testing.T) {
	_, err := AggregateWithParams(barsFromCloses(1, 2), AggregateParams{Window: 0})
	assert.ErrorIs(t, err, models.ErrInvalidConfig)

	out, err := AggregateWithParams(barsFromCloses(1, 2, 3, 4), AggregateParams{Window: 2})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
