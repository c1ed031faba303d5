package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mohamedkhairy/kline-indicators/pkg/indicator"
)

// Config holds all configuration for the application
type Config struct {
	// Common
	Environment string
	LogLevel    string

	API        APIConfig
	Indicators IndicatorDefaults
}

// APIConfig holds REST API configuration
type APIConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// MaxBars bounds the bar array accepted by a single computation
	MaxBars int
	// RateLimitRPS caps requests per second per client; 0 disables limiting
	RateLimitRPS int
	// OutputPrecision rounds output values to this many decimal places; -1 disables rounding
	OutputPrecision int
	// MACDColors are the presentation colours attached to MACD output
	MACDColors MACDColors
}

// MACDColors holds the line colours of a MACD chart and the histogram
// colours per sign class
type MACDColors struct {
	Line        string
	Signal      string
	Positive    string
	NonPositive string
}

// IndicatorDefaults are the parameters used when a request omits them
type IndicatorDefaults struct {
	MA        indicator.MAParams
	Bollinger indicator.BollingerParams
	Donchian  indicator.DonchianParams
	KDJ       indicator.KDJParams
	MACD      indicator.MACDParams
	RSI       indicator.RSIParams
	Aggregate indicator.AggregateParams
	DayRatio  indicator.DayRatioParams
}

// DefaultIndicatorDefaults returns the built-in parameter defaults
func DefaultIndicatorDefaults() IndicatorDefaults {
	return IndicatorDefaults{
		MA:        indicator.DefaultMAParams(),
		Bollinger: indicator.DefaultBollingerParams(),
		Donchian:  indicator.DefaultDonchianParams(),
		KDJ:       indicator.DefaultKDJParams(),
		MACD:      indicator.DefaultMACDParams(),
		RSI:       indicator.DefaultRSIParams(),
		Aggregate: indicator.DefaultAggregateParams(),
		DayRatio:  indicator.DefaultDayRatioParams(),
	}
}

// Load loads configuration from environment variables
// It automatically loads .env file if it exists in the current directory
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	colors := getEnvAsStringSlice("API_MACD_COLORS", []string{"blue", "orange", "red", "green"})
	if len(colors) != 4 {
		return nil, fmt.Errorf("config validation failed: API_MACD_COLORS must have exactly four entries, got %d", len(colors))
	}

	def := DefaultIndicatorDefaults()
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		API: APIConfig{
			Port:            getEnvAsInt("API_PORT", 8090),
			ReadTimeout:     getEnvAsDuration("API_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("API_WRITE_TIMEOUT", 30*time.Second),
			MaxBars:         getEnvAsInt("API_MAX_BARS", 100000),
			RateLimitRPS:    getEnvAsInt("API_RATE_LIMIT_RPS", 0),
			OutputPrecision: getEnvAsInt("API_OUTPUT_PRECISION", -1),
			MACDColors: MACDColors{
				Line:        colors[0],
				Signal:      colors[1],
				Positive:    colors[2],
				NonPositive: colors[3],
			},
		},
		Indicators: IndicatorDefaults{
			MA: indicator.MAParams{
				Period: getEnvAsInt("INDICATOR_MA_PERIOD", def.MA.Period),
				Kind:   indicator.MAKind(getEnv("INDICATOR_MA_KIND", string(def.MA.Kind))),
				Source: indicator.Source(getEnv("INDICATOR_MA_SOURCE", string(def.MA.Source))),
			},
			Bollinger: indicator.BollingerParams{
				Period:     getEnvAsInt("INDICATOR_BOLL_PERIOD", def.Bollinger.Period),
				Multiplier: getEnvAsFloat("INDICATOR_BOLL_MULTIPLIER", def.Bollinger.Multiplier),
			},
			Donchian: indicator.DonchianParams{
				Period: getEnvAsInt("INDICATOR_DONCHIAN_PERIOD", def.Donchian.Period),
			},
			KDJ: indicator.KDJParams{
				N:       getEnvAsInt("INDICATOR_KDJ_N", def.KDJ.N),
				KPeriod: getEnvAsInt("INDICATOR_KDJ_K_PERIOD", def.KDJ.KPeriod),
				DPeriod: getEnvAsInt("INDICATOR_KDJ_D_PERIOD", def.KDJ.DPeriod),
			},
			MACD: indicator.MACDParams{
				Short:  getEnvAsInt("INDICATOR_MACD_SHORT", def.MACD.Short),
				Long:   getEnvAsInt("INDICATOR_MACD_LONG", def.MACD.Long),
				Signal: getEnvAsInt("INDICATOR_MACD_SIGNAL", def.MACD.Signal),
			},
			RSI: indicator.RSIParams{
				Period: getEnvAsInt("INDICATOR_RSI_PERIOD", def.RSI.Period),
				Upper:  getEnvAsFloat("INDICATOR_RSI_UPPER", def.RSI.Upper),
				Lower:  getEnvAsFloat("INDICATOR_RSI_LOWER", def.RSI.Lower),
			},
			Aggregate: indicator.AggregateParams{
				Window: getEnvAsInt("INDICATOR_AGGREGATE_WINDOW", def.Aggregate.Window),
			},
			DayRatio: indicator.DayRatioParams{
				Window: getEnvAsInt("INDICATOR_VOLUME_RATIO_WINDOW", def.DayRatio.Window),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("API_PORT must be between 1 and 65535, got %d", c.API.Port)
	}
	if c.API.MaxBars <= 0 {
		return fmt.Errorf("API_MAX_BARS must be positive, got %d", c.API.MaxBars)
	}
	if c.API.RateLimitRPS < 0 {
		return fmt.Errorf("API_RATE_LIMIT_RPS must not be negative, got %d", c.API.RateLimitRPS)
	}
	if c.API.OutputPrecision < -1 {
		return fmt.Errorf("API_OUTPUT_PRECISION must be -1 or a non-negative number of places, got %d", c.API.OutputPrecision)
	}
	mc := c.API.MACDColors
	if mc.Line == "" || mc.Signal == "" || mc.Positive == "" || mc.NonPositive == "" {
		return fmt.Errorf("API_MACD_COLORS must name four colours")
	}
	return c.Indicators.Validate()
}

// Validate checks every default parameter set
func (d IndicatorDefaults) Validate() error {
	checks := []interface{ Validate() error }{
		d.MA, d.Bollinger, d.Donchian, d.KDJ, d.MACD, d.RSI, d.Aggregate, d.DayRatio,
	}
	for _, p := range checks {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Split by comma and trim spaces
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
