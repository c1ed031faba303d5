package indicator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/kline-indicators/internal/config"
	"github.com/mohamedkhairy/kline-indicators/internal/models"
	indicatorpkg "github.com/mohamedkhairy/kline-indicators/pkg/indicator"
)

func newTestRegistry(t *testing.T) *IndicatorRegistry {
	t.Helper()
	registry := NewIndicatorRegistry()
	require.NoError(t, RegisterAllIndicators(registry, config.DefaultIndicatorDefaults()))
	return registry
}

func linearBars(n int) []models.Bar {
	bars := make([]models.Bar, n)
	for i := range bars {
		c := float64(i + 1)
		bars[i] = models.Bar{Time: i, Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 100}
	}
	return bars
}

func run(t *testing.T, registry *IndicatorRegistry, name string, bars []models.Bar, params string) (interface{}, error) {
	t.Helper()
	pipeline, ok := registry.GetPipeline(name)
	require.True(t, ok, name)
	var raw json.RawMessage
	if params != "" {
		raw = json.RawMessage(params)
	}
	return pipeline(bars, raw)
}

func TestRegisterAllIndicators_Names(t *testing.T) {
	registry := newTestRegistry(t)

	assert.Equal(t, []string{
		"aggregate", "boll", "donchian", "ema", "kdj", "ma", "macd", "rsi", "sma", "volume_ratio", "wma",
	}, registry.ListAvailable())

	meta, ok := registry.GetMetadata("macd")
	require.True(t, ok)
	assert.Equal(t, OutputMACD, meta.Output)
	assert.Equal(t, indicatorpkg.DefaultMACDParams(), meta.Parameters)

	assert.Error(t, RegisterAllIndicators(registry, config.DefaultIndicatorDefaults()))
}

func TestPipelines_DefaultParams(t *testing.T) {
	registry := newTestRegistry(t)
	bars := linearBars(60)

	out, err := run(t, registry, "ma", bars, "")
	require.NoError(t, err)
	assert.Len(t, out.(models.Series), 41)

	out, err = run(t, registry, "boll", bars, "null")
	require.NoError(t, err)
	assert.Len(t, out.(models.MultiSeries)[indicatorpkg.KeyMiddle], 41)

	out, err = run(t, registry, "macd", bars, "{}")
	require.NoError(t, err)
	assert.Len(t, out.(*indicatorpkg.MACDResult).Histogram, 60-33)

	out, err = run(t, registry, "aggregate", bars, "")
	require.NoError(t, err)
	assert.Len(t, out.([]models.Bar), 12)

	out, err = run(t, registry, "volume_ratio", bars, "")
	require.NoError(t, err)
	assert.Len(t, out.(models.Series), 55)
}

func TestPipelines_PartialOverride(t *testing.T) {
	registry := newTestRegistry(t)
	bars := linearBars(10)

	out, err := run(t, registry, "ma", bars, `{"period": 3}`)
	require.NoError(t, err)
	series := out.(models.Series)
	require.Len(t, series, 8)
	assert.InDelta(t, 2.0, series[0].Value, 1e-12)

	out, err = run(t, registry, "kdj", bars, `{"n": 5}`)
	require.NoError(t, err)
	assert.Len(t, out.(models.MultiSeries)[indicatorpkg.KeyK], 6)
}

func TestPipelines_KindAliasesOverrideRequestKind(t *testing.T) {
	registry := newTestRegistry(t)
	bars := linearBars(10)

	viaAlias, err := run(t, registry, "ema", bars, `{"period": 3, "kind": "wma"}`)
	require.NoError(t, err)
	viaMA, err := run(t, registry, "ma", bars, `{"period": 3, "kind": "ema"}`)
	require.NoError(t, err)
	assert.Equal(t, viaMA, viaAlias)
}

func TestPipelines_InvalidParams(t *testing.T) {
	registry := newTestRegistry(t)
	bars := linearBars(10)

	tests := []struct {
		name      string
		indicator string
		params    string
	}{
		{"unknown field", "rsi", `{"periods": 3}`},
		{"wrong type", "ma", `{"period": "three"}`},
		{"not an object", "boll", `[1,2]`},
		{"zero period", "donchian", `{"period": 0}`},
		{"short not below long", "macd", `{"short": 30}`},
		{"negative multiplier", "boll", `{"multiplier": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, registry, tt.indicator, bars, tt.params)
			assert.ErrorIs(t, err, models.ErrInvalidConfig)
		})
	}
}
