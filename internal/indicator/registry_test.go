package indicator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

func echoPipeline(bars []models.Bar, _ json.RawMessage) (interface{}, error) {
	return len(bars), nil
}

func TestIndicatorRegistry_RegisterAndGet(t *testing.T) {
	registry := NewIndicatorRegistry()

	require.NoError(t, registry.Register("b", echoPipeline, IndicatorMetadata{Category: "trend"}))
	require.NoError(t, registry.Register("a", echoPipeline, IndicatorMetadata{Category: "volume"}))

	pipeline, ok := registry.GetPipeline("a")
	require.True(t, ok)
	out, err := pipeline(make([]models.Bar, 3), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, out)

	_, ok = registry.GetPipeline("missing")
	assert.False(t, ok)

	meta, ok := registry.GetMetadata("b")
	require.True(t, ok)
	assert.Equal(t, "b", meta.Name)
	assert.Equal(t, "trend", meta.Category)

	assert.Equal(t, []string{"a", "b"}, registry.ListAvailable())

	all := registry.GetAllMetadata()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
}

func TestIndicatorRegistry_RejectsDuplicatesAndEmpty(t *testing.T) {
	registry := NewIndicatorRegistry()
	require.NoError(t, registry.Register("x", echoPipeline, IndicatorMetadata{}))

	assert.Error(t, registry.Register("x", echoPipeline, IndicatorMetadata{}))
	assert.Error(t, registry.Register("", echoPipeline, IndicatorMetadata{}))
	assert.Error(t, registry.Register("y", nil, IndicatorMetadata{}))
}
