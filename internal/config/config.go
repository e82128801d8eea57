// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the full runtime configuration for the genesis daemon.
type Config struct {
	// GeminiAPIKey authenticates against the Gemini API. Required: the
	// world cannot be forged or advanced without the generator.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	// Model selects which Gemini model backs the generation gateway.
	Model string `env:"GENESIS_MODEL" envDefault:"gemini-2.5-flash"`

	// DBPath is the SQLite database file for the world record.
	DBPath string `env:"GENESIS_DB_PATH" envDefault:"data/genesis.db"`

	// APIPort is the HTTP listen port.
	APIPort int `env:"GENESIS_API_PORT" envDefault:"8080"`

	// AdminKey is the bearer token for POST endpoints. When empty, the
	// control-plane endpoints are disabled and the API is read-only.
	AdminKey string `env:"GENESIS_ADMIN_KEY"`

	// TickInterval is the simulation cadence.
	TickInterval time.Duration `env:"GENESIS_TICK_INTERVAL" envDefault:"5m"`

	// QuestChance is the per-tick probability of spawning a world quest.
	QuestChance float64 `env:"GENESIS_QUEST_CHANCE" envDefault:"0.3"`

	// GatewayTimeout bounds each generation call.
	GatewayTimeout time.Duration `env:"GENESIS_GATEWAY_TIMEOUT" envDefault:"30s"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TickInterval <= 0 {
		return Config{}, fmt.Errorf("GENESIS_TICK_INTERVAL must be positive, got %s", cfg.TickInterval)
	}
	return cfg, nil
}
