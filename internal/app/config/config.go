// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the service-level settings. Connection details for the
// database and Redis are read by their platform packages directly.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `env:"ADDR" envDefault:":8080"`

	// JWTSecret signs issued auth tokens. Must be set in production.
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is the lifetime of issued auth tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
