package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar_Validate(t *testing.T) {
	tests := []struct {
		name    string
		bar     Bar
		wantErr error
	}{
		{
			name: "valid bar with epoch time",
			bar:  Bar{Time: 1700000000, Open: 10, High: 12, Low: 9, Close: 11, Volume: 100},
		},
		{
			name: "valid bar with business day",
			bar:  Bar{Time: "2024-03-01", Open: 10, High: 12, Low: 9, Close: 11},
		},
		{
			name:    "missing time",
			bar:     Bar{Open: 10, High: 12, Low: 9, Close: 11},
			wantErr: ErrInvalidTimestamp,
		},
		{
			name:    "high below low",
			bar:     Bar{Time: 1, Open: 10, High: 8, Low: 9, Close: 11},
			wantErr: ErrInvalidBar,
		},
		{
			name: "negative volume is a missing-data marker",
			bar:  Bar{Time: 1, Open: 10, High: 12, Low: 9, Close: 11, Volume: -1},
		},
		{
			name:    "infinite volume",
			bar:     Bar{Time: 1, Open: 10, High: 12, Low: 9, Close: 11, Volume: math.Inf(1)},
			wantErr: ErrInvalidVolume,
		},
		{
			name:    "NaN close",
			bar:     Bar{Time: 1, Open: 10, High: 12, Low: 9, Close: math.NaN()},
			wantErr: ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bar.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateBars(t *testing.T) {
	bars := []Bar{
		{Time: 1, Open: 1, High: 2, Low: 0, Close: 1},
		{Time: 2, Open: 1, High: 0, Low: 2, Close: 1},
	}
	idx, err := ValidateBars(bars)
	assert.Equal(t, 1, idx)
	assert.ErrorIs(t, err, ErrInvalidBar)

	idx, err = ValidateBars(bars[:1])
	assert.Equal(t, -1, idx)
	assert.NoError(t, err)
}

func TestSignOf(t *testing.T) {
	assert.Equal(t, HistogramPositive, SignOf(0.5))
	assert.Equal(t, HistogramNonPositive, SignOf(0))
	assert.Equal(t, HistogramNonPositive, SignOf(-0.1))
}

func TestSeries_Values(t *testing.T) {
	s := Series{{Time: "a", Value: 1}, {Time: "b", Value: 2}}
	assert.Equal(t, []float64{1, 2}, s.Values())
	assert.Empty(t, Series{}.Values())
}
