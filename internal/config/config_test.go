package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
	"github.com/mohamedkhairy/kline-indicators/pkg/indicator"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.API.Port)
	assert.Equal(t, 100000, cfg.API.MaxBars)
	assert.Equal(t, -1, cfg.API.OutputPrecision)
	assert.Equal(t, MACDColors{Line: "blue", Signal: "orange", Positive: "red", NonPositive: "green"}, cfg.API.MACDColors)
	assert.Equal(t, DefaultIndicatorDefaults(), cfg.Indicators)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9100")
	t.Setenv("API_READ_TIMEOUT", "2s")
	t.Setenv("API_OUTPUT_PRECISION", "4")
	t.Setenv("API_MACD_COLORS", "white, yellow, green, red")
	t.Setenv("INDICATOR_MA_KIND", "ema")
	t.Setenv("INDICATOR_BOLL_MULTIPLIER", "2.5")
	t.Setenv("INDICATOR_MACD_SHORT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.API.Port)
	assert.Equal(t, 2*time.Second, cfg.API.ReadTimeout)
	assert.Equal(t, 4, cfg.API.OutputPrecision)
	assert.Equal(t, MACDColors{Line: "white", Signal: "yellow", Positive: "green", NonPositive: "red"}, cfg.API.MACDColors)
	assert.Equal(t, indicator.MAKindEMA, cfg.Indicators.MA.Kind)
	assert.Equal(t, 2.5, cfg.Indicators.Bollinger.Multiplier)
	assert.Equal(t, 5, cfg.Indicators.MACD.Short)
}

func TestLoad_UnparsableValueFallsBack(t *testing.T) {
	t.Setenv("API_MAX_BARS", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100000, cfg.API.MaxBars)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"negative port", "API_PORT", "-1"},
		{"zero bar budget", "API_MAX_BARS", "0"},
		{"bad precision", "API_OUTPUT_PRECISION", "-3"},
		{"two colours", "API_MACD_COLORS", "red,green"},
		{"macd short not below long", "INDICATOR_MACD_SHORT", "40"},
		{"unknown ma kind", "INDICATOR_MA_KIND", "hull"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestIndicatorDefaults_ValidateWrapsConfigError(t *testing.T) {
	d := DefaultIndicatorDefaults()
	d.RSI.Period = 0
	assert.ErrorIs(t, d.Validate(), models.ErrInvalidConfig)
}
