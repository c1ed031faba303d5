package indicator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mohamedkhairy/kline-indicators/internal/models"
)

// MAKind selects the moving-average variant
type MAKind string

const (
	MAKindSMA MAKind = "sma"
	MAKindEMA MAKind = "ema"
	MAKindWMA MAKind = "wma"
)

// Source selects which bar field an indicator reads
type Source string

const (
	SourceClose  Source = "close"
	SourceOpen   Source = "open"
	SourceHigh   Source = "high"
	SourceLow    Source = "low"
	SourceVolume Source = "volume"
	SourceHL2    Source = "hl2"
)

// MAParams configures a moving average
type MAParams struct {
	Period int    `json:"period" validate:"gt=0"`
	Kind   MAKind `json:"kind" validate:"omitempty,oneof=sma ema wma"`
	Source Source `json:"source" validate:"omitempty,oneof=close open high low volume hl2"`
}

// DefaultMAParams returns a 20-period SMA over closes
func DefaultMAParams() MAParams {
	return MAParams{Period: 20, Kind: MAKindSMA, Source: SourceClose}
}

// Validate validates MAParams
func (p MAParams) Validate() error {
	return validateParams("ma", p)
}

// BollingerParams configures Bollinger Bands
type BollingerParams struct {
	Period     int     `json:"period" validate:"gt=0"`
	Multiplier float64 `json:"multiplier" validate:"gte=0"`
}

// DefaultBollingerParams returns period 20, multiplier 2
func DefaultBollingerParams() BollingerParams {
	return BollingerParams{Period: 20, Multiplier: 2}
}

// Validate validates BollingerParams
func (p BollingerParams) Validate() error {
	return validateParams("bollinger", p)
}

// DonchianParams configures the Donchian Channel
type DonchianParams struct {
	Period int `json:"period" validate:"gt=0"`
}

// DefaultDonchianParams returns period 20
func DefaultDonchianParams() DonchianParams {
	return DonchianParams{Period: 20}
}

// Validate validates DonchianParams
func (p DonchianParams) Validate() error {
	return validateParams("donchian", p)
}

// KDJParams configures the KDJ oscillator
type KDJParams struct {
	N       int `json:"n" validate:"gt=0"`
	KPeriod int `json:"k_period" validate:"gt=0"`
	DPeriod int `json:"d_period" validate:"gt=0"`
}

// DefaultKDJParams returns 9/3/3
func DefaultKDJParams() KDJParams {
	return KDJParams{N: 9, KPeriod: 3, DPeriod: 3}
}

// Validate validates KDJParams
func (p KDJParams) Validate() error {
	return validateParams("kdj", p)
}

// MACDParams configures MACD
type MACDParams struct {
	Short  int `json:"short" validate:"gt=0,ltfield=Long"`
	Long   int `json:"long" validate:"gt=0"`
	Signal int `json:"signal" validate:"gt=0"`
}

// DefaultMACDParams returns 12/26/9
func DefaultMACDParams() MACDParams {
	return MACDParams{Short: 12, Long: 26, Signal: 9}
}

// Validate validates MACDParams. Short must be strictly less than Long.
func (p MACDParams) Validate() error {
	return validateParams("macd", p)
}

// RSIParams configures RSI and its reference bands
type RSIParams struct {
	Period int     `json:"period" validate:"gt=0"`
	Upper  float64 `json:"upper" validate:"gtefield=Lower"`
	Lower  float64 `json:"lower"`
}

// DefaultRSIParams returns period 14 with 70/30 bands
func DefaultRSIParams() RSIParams {
	return RSIParams{Period: 14, Upper: 70, Lower: 30}
}

// Validate validates RSIParams
func (p RSIParams) Validate() error {
	return validateParams("rsi", p)
}

// AggregateParams configures bar downsampling
type AggregateParams struct {
	Window int `json:"window" validate:"gt=0"`
}

// DefaultAggregateParams returns a bucket of 5 bars
func DefaultAggregateParams() AggregateParams {
	return AggregateParams{Window: 5}
}

// Validate validates AggregateParams
func (p AggregateParams) Validate() error {
	return validateParams("aggregate", p)
}

// DayRatioParams configures the bar-aligned day volume ratio
type DayRatioParams struct {
	Window int `json:"window" validate:"gt=0"`
}

// DefaultDayRatioParams returns a 5-day lookback
func DefaultDayRatioParams() DayRatioParams {
	return DayRatioParams{Window: 5}
}

// Validate validates DayRatioParams
func (p DayRatioParams) Validate() error {
	return validateParams("volume_ratio", p)
}

// validate caches struct metadata and is safe for concurrent use
var validate = validator.New()

func validateParams(name string, params interface{}) error {
	if err := validate.Struct(params); err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrInvalidConfig, name, err)
	}
	return nil
}
