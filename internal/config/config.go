// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the server.
type Config struct {
	// Port is the HTTP listen port.
	Port int `env:"PORT" envDefault:"8080"`

	// StoreBackend selects the storage backend: "memory" or "sqlite".
	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory"`

	// DBPath is the SQLite database file, used when StoreBackend is sqlite.
	DBPath string `env:"DB_PATH" envDefault:"./data/circles.db"`

	// JWTSecret signs session tokens. Must be set in production.
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`

	// TokenTTL is how long session tokens stay valid.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Seed loads the demo dataset into a fresh memory store.
	Seed bool `env:"SEED" envDefault:"false"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.StoreBackend != "memory" && cfg.StoreBackend != "sqlite" {
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return cfg, nil
}
