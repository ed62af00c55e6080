// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service configuration.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Port the HTTP server listens on.
	Port string `envconfig:"APP_PORT" default:"8080"`

	// Env selects development/production behavior (logger encoding).
	Env string `envconfig:"APP_ENV" default:"development"`

	// LogLevel: debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// JWTSecret signs access tokens.
	JWTSecret string `envconfig:"JWT_SECRET" default:"change-me-in-production"`

	// AccessTokenTTL is the lifetime of issued access tokens.
	AccessTokenTTL time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"15m"`

	// DefaultLocation is the warehouse location used by automated
	// receipt and deduction. Falls back to the fixed literal when unset.
	DefaultLocation string `envconfig:"DEFAULT_LOCATION" default:"Main Warehouse"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}
