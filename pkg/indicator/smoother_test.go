package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

func TestEMA_SeededWithMean(t *testing.T) {
	out, err := EMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.True(t, out[0].IsNone())
	assert.True(t, out[1].IsNone())
	// seed = mean(1,2,3), alpha = 0.5
	assert.Equal(t, 2.0, out[2].Unwrap())
	assert.Equal(t, 3.0, out[3].Unwrap())
	assert.Equal(t, 4.0, out[4].Unwrap())
}

func TestEMA_ShorterThanPeriod(t *testing.T) {
	out, err := EMA([]float64{1, 2}, 3)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, v := range out {
		assert.True(t, v.IsNone())
	}
}

func TestSmooth_InvalidPeriod(t *testing.T) {
	_, err := Smooth([]float64{1, 2, 3}, 0, 0.5)
	assert.ErrorIs(t, err, models.ErrInvalidConfig)
}

func TestSmooth_CustomAlpha(t *testing.T) {
	out, err := Smooth([]float64{3, 3, 6}, 2, 1.0/3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, out[1].Unwrap())
	assert.InDelta(t, 4.0, out[2].Unwrap(), 1e-12)
}

func TestSmoothFrom_FixedSeed(t *testing.T) {
	out := SmoothFrom([]float64{0, 0, 0}, 1.0/3, 50)
	require.Len(t, out, 3)
	assert.InDelta(t, 100.0/3, out[0], 1e-12)
	assert.InDelta(t, 200.0/9, out[1], 1e-12)
	assert.InDelta(t, 400.0/27, out[2], 1e-12)
}

func TestSmoother_UnseededTakesFirstValue(t *testing.T) {
	s := NewSmoother(Alpha(3))
	assert.Equal(t, 10.0, s.Next(10))
	assert.Equal(t, 15.0, s.Next(20))
	assert.Equal(t, 15.0, s.Value())
}

func TestCompact(t *testing.T) {
	series, err := EMA([]float64{1, 2, 3, 4}, 2)
	require.NoError(t, err)

	values, start := compact(series)
	assert.Equal(t, 1, start)
	assert.Len(t, values, 3)

	empty, err := EMA([]float64{1}, 2)
	require.NoError(t, err)
	values, start = compact(empty)
	assert.Equal(t, -1, start)
	assert.Nil(t, values)
}
