package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBars(t *testing.T) {
	bare := `[{"time":"2024-01-02","open":1,"high":2,"low":0.5,"close":1.5}]`
	bars, err := readBars(strings.NewReader(bare))
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, "2024-01-02", bars[0].Time)

	wrapped := `{"bars":[{"time":1704153600,"open":1,"high":2,"low":0.5,"close":1.5,"volume":10}]}`
	bars, err = readBars(strings.NewReader(wrapped))
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 1704153600.0, bars[0].Time)
	assert.Equal(t, 10.0, bars[0].Volume)

	_, err = readBars(strings.NewReader(`"nope"`))
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
