package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mohamedkhairy/kline-indicators/internal/indicator"
	"github.com/mohamedkhairy/kline-indicators/internal/models"
	indicatorpkg "github.com/mohamedkhairy/kline-indicators/pkg/indicator"
	"github.com/mohamedkhairy/kline-indicators/pkg/logger"
)

// maxBodyBytes bounds request bodies; the bar budget is enforced by the engine
const maxBodyBytes = 64 << 20

// IndicatorHandler handles indicator computation endpoints
type IndicatorHandler struct {
	engine  *indicator.Engine
	encoder *Encoder
}

// NewIndicatorHandler creates a new indicator handler
func NewIndicatorHandler(engine *indicator.Engine, encoder *Encoder) *IndicatorHandler {
	return &IndicatorHandler{
		engine:  engine,
		encoder: encoder,
	}
}

// ComputeRequest is the body of POST /api/v1/indicators/{name}
type ComputeRequest struct {
	Bars   []models.Bar    `json:"bars"`
	Params json.RawMessage `json:"params,omitempty"`
}

// BatchRequest is the body of POST /api/v1/compute
type BatchRequest struct {
	Bars       []models.Bar        `json:"bars"`
	Indicators []indicator.Request `json:"indicators"`
}

// VolumeRatioRequest is the body of POST /api/v1/volume-ratio.
// Mode selects which fields are read.
type VolumeRatioRequest struct {
	Mode string `json:"mode"` // "day", "minute_same_time" or "minute_simple"

	TodayVolume float64   `json:"today_volume"`
	PastVolumes []float64 `json:"past_volumes"`

	TodayMinuteVolumes []float64   `json:"today_minute_volumes"`
	PastMinuteVolumes  [][]float64 `json:"past_minute_volumes"`

	TodayCumVolume float64   `json:"today_cum_volume"`
	PastDayTotals  []float64 `json:"past_day_totals"`
	MinutesElapsed int       `json:"minutes_elapsed"`
	FullDayMinutes int       `json:"full_day_minutes"`
	// At, when set and MinutesElapsed is zero, derives the elapsed A-share
	// trading minutes from an RFC 3339 timestamp
	At string `json:"at"`
}

// Volume ratio modes
const (
	ModeDay            = "day"
	ModeMinuteSameTime = "minute_same_time"
	ModeMinuteSimple   = "minute_simple"
)

// ListIndicators handles GET /api/v1/indicators
func (h *IndicatorHandler) ListIndicators(w http.ResponseWriter, r *http.Request) {
	all := h.engine.Registry().GetAllMetadata()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"indicators": all,
		"count":      len(all),
	})
}

// GetIndicator handles GET /api/v1/indicators/{name}
func (h *IndicatorHandler) GetIndicator(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	metadata, ok := h.engine.Registry().GetMetadata(name)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Indicator not found")
		return
	}
	respondWithJSON(w, http.StatusOK, metadata)
}

// Compute handles POST /api/v1/indicators/{name}
func (h *IndicatorHandler) Compute(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req ComputeRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.engine.Compute(r.Context(), name, req.Bars, req.Params)
	if err != nil {
		respondWithError(w, errorStatus(err), err.Error())
		return
	}

	encoded, err := h.encoder.Encode(result.Output)
	if err != nil {
		logger.WithContext(r.Context()).Error("Failed to encode indicator output",
			logger.String("indicator", name),
			logger.ErrorField(err),
		)
		respondWithError(w, http.StatusInternalServerError, "Failed to encode result")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"indicator": result.Indicator,
		"bars":      result.Bars,
		"result":    encoded,
	})
}

// ComputeBatch handles POST /api/v1/compute
func (h *IndicatorHandler) ComputeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Indicators) == 0 {
		respondWithError(w, http.StatusBadRequest, "At least one indicator is required")
		return
	}

	results := h.engine.ComputeBatch(r.Context(), req.Bars, req.Indicators)

	out := make([]map[string]interface{}, 0, len(results))
	for _, res := range results {
		entry := map[string]interface{}{"indicator": res.Indicator}
		if res.Err != nil {
			entry["error"] = res.Err.Error()
			entry["code"] = errorStatus(res.Err)
			out = append(out, entry)
			continue
		}

		encoded, err := h.encoder.Encode(res.Output)
		if err != nil {
			entry["error"] = err.Error()
			entry["code"] = http.StatusInternalServerError
		} else {
			entry["result"] = encoded
		}
		out = append(out, entry)
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bars":    len(req.Bars),
		"results": out,
	})
}

// VolumeRatio handles POST /api/v1/volume-ratio
func (h *IndicatorHandler) VolumeRatio(w http.ResponseWriter, r *http.Request) {
	var req VolumeRatioRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	response := map[string]interface{}{"mode": req.Mode}

	var ratio float64
	switch req.Mode {
	case ModeDay:
		ratio = indicatorpkg.DayRatio(req.TodayVolume, req.PastVolumes)
	case ModeMinuteSameTime:
		ratio = indicatorpkg.MinuteRatioSameTime(req.TodayMinuteVolumes, req.PastMinuteVolumes)
	case ModeMinuteSimple:
		elapsed := req.MinutesElapsed
		if elapsed == 0 && req.At != "" {
			at, err := time.Parse(time.RFC3339, req.At)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "Invalid at timestamp: "+err.Error())
				return
			}
			elapsed = indicatorpkg.ElapsedTradingMinutesCN(at)
		}
		fullDay := req.FullDayMinutes
		if fullDay == 0 {
			fullDay = indicatorpkg.TradingMinutesCN
		}
		ratio = indicatorpkg.MinuteRatioSimple(req.TodayCumVolume, req.PastDayTotals, elapsed, fullDay)
		response["minutes_elapsed"] = elapsed
	default:
		respondWithError(w, http.StatusBadRequest, "Unknown volume ratio mode")
		return
	}

	response["ratio"] = h.encoder.Number(ratio)
	respondWithJSON(w, http.StatusOK, response)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// errorStatus maps engine errors onto HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrUnknownIndicator):
		return http.StatusNotFound
	case errors.Is(err, models.ErrTooManyBars):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrInvalidConfig),
		errors.Is(err, models.ErrInvalidBar),
		errors.Is(err, models.ErrInvalidPrice),
		errors.Is(err, models.ErrInvalidVolume),
		errors.Is(err, models.ErrInvalidTimestamp):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
