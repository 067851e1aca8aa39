// Package config handles configuration loading for fiscalrates.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Data    DataConfig    `mapstructure:"data"    yaml:"data"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// APIConfig holds FiscalData API client settings.
type APIConfig struct {
	BaseURL       string `mapstructure:"base_url"        yaml:"base_url"`
	Endpoint      string `mapstructure:"endpoint"        yaml:"endpoint"`
	TimeoutSec    int    `mapstructure:"timeout_sec"     yaml:"timeout_sec"`
	Debug         bool   `mapstructure:"debug"           yaml:"debug"`
	RateLimit     int    `mapstructure:"rate_limit"      yaml:"rate_limit"`      // requests per window
	RateWindowSec int    `mapstructure:"rate_window_sec" yaml:"rate_window_sec"` // window length
}

// DataConfig bounds the months the API is known to carry rate data for.
// These come from config rather than constants: the availability window
// moves as Treasury publishes new months.
type DataConfig struct {
	AvailableFrom string `mapstructure:"available_from" yaml:"available_from"` // YYYY-MM
	AvailableTo   string `mapstructure:"available_to"   yaml:"available_to"`   // YYYY-MM
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Timeout returns the HTTP client timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSec) * time.Second
}

// RateWindow returns the rate limiter window as a duration.
func (a APIConfig) RateWindow() time.Duration {
	return time.Duration(a.RateWindowSec) * time.Second
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.fiscalrates/config.yaml (home directory)
//  3. /etc/fiscalrates/config.yaml (system)
//
// Environment variables override config file values.
// Format: FISCALRATES_<SECTION>_<KEY>, e.g., FISCALRATES_API_BASE_URL
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".fiscalrates"))
	v.AddConfigPath("/etc/fiscalrates")

	v.SetEnvPrefix("FISCALRATES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("FISCALRATES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://api.fiscaldata.treasury.gov/services/api/fiscal_service")
	v.SetDefault("api.endpoint", "/v2/accounting/od/avg_interest_rates")
	v.SetDefault("api.timeout_sec", 30)
	v.SetDefault("api.debug", false)
	v.SetDefault("api.rate_limit", 5)
	v.SetDefault("api.rate_window_sec", 1)

	// Availability of avg_interest_rates month-end records as of this
	// release; override once Treasury publishes beyond it.
	v.SetDefault("data.available_from", "2020-10")
	v.SetDefault("data.available_to", "2025-09")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
