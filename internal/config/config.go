// Package config loads the TOML configuration for the headerlens service.
package config

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	// Server configuration
	Server struct {
		Listen       string   `toml:"listen"`
		ReadTimeout  int      `toml:"read_timeout"`
		WriteTimeout int      `toml:"write_timeout"`
		MaxBodySize  int64    `toml:"max_body_size"`
		CORSOrigins  []string `toml:"cors_origins"`
	} `toml:"server"`

	// Analysis result cache configuration
	Cache struct {
		Type       string `toml:"type"` // "memory", "redis", "memcached"
		Host       string `toml:"host"`
		Port       int    `toml:"port"`
		Password   string `toml:"password"`
		Database   int    `toml:"database"`
		TTLSeconds int    `toml:"ttl_seconds"`
	} `toml:"cache"`

	// Logging configuration
	Logging struct {
		Level  string `toml:"level"`
		Format string `toml:"format"` // "text" or "json"
	} `toml:"logging"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Server.Listen = "127.0.0.1:8440"
	cfg.Server.ReadTimeout = 15
	cfg.Server.WriteTimeout = 15
	cfg.Server.MaxBodySize = 1 << 20 // headers top out well under 1MB

	cfg.Cache.Type = "memory"
	cfg.Cache.TTLSeconds = 3600

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"

	return cfg
}

// CacheTTL returns the configured cache expiration as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// FindConfigFile looks for a configuration file in common locations
func FindConfigFile(configPath string) (string, error) {
	// If a specific path is provided, check only that
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
		return "", fmt.Errorf("config file not found at specified path: %s", configPath)
	}

	locations := []string{
		"./headerlens.conf",
		"./config/headerlens.conf",
		os.ExpandEnv("$HOME/.headerlens.conf"),
		"/etc/headerlens/headerlens.conf",
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc, nil
		}
	}

	return "", fmt.Errorf("no config file found")
}

// LoadConfig loads a configuration from a file, falling back to defaults
// when no file is found.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	configFile, err := FindConfigFile(configPath)
	if err != nil {
		if configPath != "" {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	return cfg, nil
}
