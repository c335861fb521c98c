// Package config loads and validates the client configuration from flags,
// environment variables (PRICEWATCH_*), and an optional YAML config file,
// all routed through viper.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level client configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Cache   CacheConfig   `mapstructure:"cache"`
	User    UserConfig    `mapstructure:"user"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig defines how the backend REST API is reached.
type APIConfig struct {
	BaseURL       string  `mapstructure:"base_url"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	RateBurst     int     `mapstructure:"rate_burst"`
}

// CacheConfig defines the query cache behavior.
type CacheConfig struct {
	Staleness time.Duration `mapstructure:"staleness"`
	Size      int           `mapstructure:"size"`
}

// UserConfig identifies the acting user for watch operations.
type UserConfig struct {
	ID int `mapstructure:"id"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// SetDefaults registers every default on v. Call before binding flags so
// flag values win over defaults.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.rate_per_second", 10.0)
	v.SetDefault("api.rate_burst", 5)
	v.SetDefault("cache.staleness", 5*time.Minute)
	v.SetDefault("cache.size", 256)
	v.SetDefault("user.id", 1)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Load unmarshals v into a validated Config.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api.base_url: %w", err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api.base_url must include a host")
	}
	if c.API.RatePerSecond <= 0 {
		return fmt.Errorf("api.rate_per_second must be positive")
	}
	if c.API.RateBurst <= 0 {
		return fmt.Errorf("api.rate_burst must be positive")
	}
	if c.Cache.Staleness <= 0 {
		return fmt.Errorf("cache.staleness must be positive")
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be positive")
	}
	if c.User.ID <= 0 {
		return fmt.Errorf("user.id must be positive")
	}
	return nil
}
