package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Feed   FeedConfig
	Cache  CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FeedConfig holds price-feed configuration
type FeedConfig struct {
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerMinute float64       `mapstructure:"rate_per_minute"`
	Burst         int           `mapstructure:"burst"`
}

// CacheConfig holds search-result cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/feira/")

	v.SetEnvPrefix("FEIRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Registered empty so viper picks FEIRA_FEED_URL up from the
	// environment; validate rejects the empty value.
	v.SetDefault("feed.url", "")
	v.SetDefault("feed.timeout", "30s")
	v.SetDefault("feed.rate_per_minute", 6)
	v.SetDefault("feed.burst", 2)

	v.SetDefault("cache.ttl", "10m")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Feed.URL == "" {
		return fmt.Errorf("feed URL is required (set FEIRA_FEED_URL)")
	}

	if config.Feed.Timeout <= 0 {
		return fmt.Errorf("feed timeout must be positive, got: %s", config.Feed.Timeout)
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	return nil
}
