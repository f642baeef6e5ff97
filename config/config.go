// Package config loads the indicator engine's runtime configuration via
// viper: log level, default construction parameters per indicator family,
// and whether resamplers are primed from historical OHLCV before live
// updates begin.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the engine's full runtime configuration, loaded from
// environment variables, an optional config file, and hard-coded defaults
// in that order of precedence (lowest to highest: defaults, file, env).
type Config struct {
	LogLevel   string           `mapstructure:"log_level"`
	Indicators IndicatorDefaults `mapstructure:"indicators"`
	Resample   ResampleConfig   `mapstructure:"resample"`
}

// IndicatorDefaults holds per-family default construction parameters as
// loaded from configuration. The indicators package does not read them:
// its constructors fall back to their own built-in defaults when a
// Requirement omits a param.
type IndicatorDefaults struct {
	SMAPeriod    int     `mapstructure:"sma_period"`
	EMAPeriod    int     `mapstructure:"ema_period"`
	RSIPeriod    int     `mapstructure:"rsi_period"`
	MACDFast     int     `mapstructure:"macd_fast"`
	MACDSlow     int     `mapstructure:"macd_slow"`
	MACDSignal   int     `mapstructure:"macd_signal"`
	BollPeriod   int     `mapstructure:"boll_period"`
	BollStdDev   float64 `mapstructure:"boll_std_dev"`
	ATRPeriod    int     `mapstructure:"atr_period"`
	StochKPeriod int     `mapstructure:"stoch_k_period"`
	StochDPeriod int     `mapstructure:"stoch_d_period"`
}

// ResampleConfig controls how synthetic higher-timeframe bars are seeded.
type ResampleConfig struct {
	// PrimeFromHistory records whether resampled timeframes should be
	// backfilled from historical lower-timeframe bars before live updates.
	// The engine does not consult it; WarmupFromOHLCV runs whenever it is
	// called.
	PrimeFromHistory bool `mapstructure:"prime_from_history"`
}

const envPrefix = "INDICORE"

// Load reads configuration from environment variables prefixed
// INDICORE_ (e.g. INDICORE_LOG_LEVEL), falling back to the defaults below
// when unset. It never reads a config file from disk; callers that need
// file-based overrides should call LoadFile.
func Load() (*Config, error) {
	v := newViper()
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile behaves like Load but additionally merges in a YAML or JSON
// config file at path before environment variables are applied, so env
// vars still take precedence over file contents.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("indicators.sma_period", 20)
	v.SetDefault("indicators.ema_period", 20)
	v.SetDefault("indicators.rsi_period", 14)
	v.SetDefault("indicators.macd_fast", 12)
	v.SetDefault("indicators.macd_slow", 26)
	v.SetDefault("indicators.macd_signal", 9)
	v.SetDefault("indicators.boll_period", 20)
	v.SetDefault("indicators.boll_std_dev", 2.0)
	v.SetDefault("indicators.atr_period", 14)
	v.SetDefault("indicators.stoch_k_period", 14)
	v.SetDefault("indicators.stoch_d_period", 3)
	v.SetDefault("resample.prime_from_history", true)
	return v
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

func (c *Config) validate() error {
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("config: log_level must be one of debug|info|warn|error, got %q", c.LogLevel)
	}
	if c.Indicators.MACDFast >= c.Indicators.MACDSlow {
		return fmt.Errorf("config: indicators.macd_fast must be less than indicators.macd_slow")
	}
	return nil
}
