package indicator

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

// Pipeline computes one indicator over a bar array. params is the raw JSON
// parameter object from the caller; nil or empty means use the defaults.
type Pipeline func(bars []models.Bar, params json.RawMessage) (interface{}, error)

// IndicatorRegistry manages all available indicator pipelines
type IndicatorRegistry struct {
	mu        sync.RWMutex
	pipelines map[string]Pipeline
	metadata  map[string]IndicatorMetadata
}

// IndicatorMetadata contains information about an indicator
type IndicatorMetadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"` // "trend", "volatility", "momentum", "volume", "transform"
	Output      string      `json:"output"`   // "series", "multi_series", "macd", "bars"
	Parameters  interface{} `json:"parameters"`
}

// Output shapes reported in IndicatorMetadata.Output
const (
	OutputSeries      = "series"
	OutputMultiSeries = "multi_series"
	OutputMACD        = "macd"
	OutputBars        = "bars"
)

// NewIndicatorRegistry creates a new indicator registry
func NewIndicatorRegistry() *IndicatorRegistry {
	return &IndicatorRegistry{
		pipelines: make(map[string]Pipeline),
		metadata:  make(map[string]IndicatorMetadata),
	}
}

// Register registers an indicator pipeline
func (r *IndicatorRegistry) Register(
	name string,
	pipeline Pipeline,
	metadata IndicatorMetadata,
) error {
	if name == "" || pipeline == nil {
		return fmt.Errorf("indicator name and pipeline are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pipelines[name]; exists {
		return fmt.Errorf("indicator %q already registered", name)
	}

	metadata.Name = name
	r.pipelines[name] = pipeline
	r.metadata[name] = metadata
	return nil
}

// GetPipeline returns the pipeline for an indicator
func (r *IndicatorRegistry) GetPipeline(name string) (Pipeline, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pipeline, exists := r.pipelines[name]
	return pipeline, exists
}

// ListAvailable returns all available indicator names, sorted
func (r *IndicatorRegistry) ListAvailable() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.pipelines))
	for name := range r.pipelines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetMetadata returns metadata for an indicator
func (r *IndicatorRegistry) GetMetadata(name string) (IndicatorMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	metadata, exists := r.metadata[name]
	return metadata, exists
}

// GetAllMetadata returns metadata for every indicator, ordered by name
func (r *IndicatorRegistry) GetAllMetadata() []IndicatorMetadata {
	names := r.ListAvailable()

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]IndicatorMetadata, 0, len(names))
	for _, name := range names {
		if metadata, ok := r.metadata[name]; ok {
			result = append(result, metadata)
		}
	}
	return result
}
