package indicator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

func TestDefaultParams_Valid(t *testing.T) {
	assert.NoError(t, DefaultMAParams().Validate())
	assert.NoError(t, DefaultBollingerParams().Validate())
	assert.NoError(t, DefaultDonchianParams().Validate())
	assert.NoError(t, DefaultKDJParams().Validate())
	assert.NoError(t, DefaultMACDParams().Validate())
	assert.NoError(t, DefaultRSIParams().Validate())
	assert.NoError(t, DefaultAggregateParams().Validate())
	assert.NoError(t, DefaultDayRatioParams().Validate())
}

func TestParams_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params interface{ Validate() error }
	}{
		{"ma bad source", MAParams{Period: 5, Source: "median"}},
		{"bollinger zero period", BollingerParams{Period: 0, Multiplier: 2}},
		{"donchian zero period", DonchianParams{}},
		{"kdj zero n", KDJParams{N: 0, KPeriod: 3, DPeriod: 3}},
		{"kdj zero d", KDJParams{N: 9, KPeriod: 3, DPeriod: 0}},
		{"macd short equals long", MACDParams{Short: 5, Long: 5, Signal: 3}},
		{"rsi inverted bands", RSIParams{Period: 14, Upper: 10, Lower: 90}},
		{"aggregate zero window", AggregateParams{}},
		{"volume ratio negative window", DayRatioParams{Window: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.params.Validate(), models.ErrInvalidConfig)
		})
	}
}

func TestParams_ConcurrentValidate(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, MACDParams{Short: 2, Long: 3 + i, Signal: 1}.Validate())
			assert.ErrorIs(t, BollingerParams{Period: -i}.Validate(), models.ErrInvalidConfig)
		}(i)
	}
	wg.Wait()
}
