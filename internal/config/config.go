package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all settings read from the environment.
type Config struct {
	DatabasePath     string `envconfig:"DATABASE_PATH" default:"data/feedback.db"`
	Host             string `envconfig:"HOST" default:"0.0.0.0"`
	Port             int    `envconfig:"PORT" default:"8090"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile          string `envconfig:"LOG_FILE" default:""`
	MaxMessageLength int    `envconfig:"MAX_MESSAGE_LENGTH" default:"500"`
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
