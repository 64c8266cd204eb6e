// Package config loads runtime configuration for AgentWorld binaries from
// environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-driven settings shared by the example
// binaries and embedding applications.
type Config struct {
	// CheckpointPath is where Save/LoadCheckpoint read and write.
	CheckpointPath string `env:"AGENTWORLD_CHECKPOINT_PATH" envDefault:"agentworld.checkpoint.json"`
	// Model selects the provider entry for new llm components.
	Model string `env:"AGENTWORLD_MODEL" envDefault:"default"`
	// MaxTicks bounds a run; -1 runs until a terminal marker appears.
	MaxTicks int `env:"AGENTWORLD_MAX_TICKS" envDefault:"100"`
	// MaxSnapshots caps the checkpoint ring.
	MaxSnapshots int `env:"AGENTWORLD_MAX_SNAPSHOTS" envDefault:"10"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"AGENTWORLD_LOG_LEVEL" envDefault:"info"`
	// LogFormat is json or text.
	LogFormat string `env:"AGENTWORLD_LOG_FORMAT" envDefault:"text"`
}

// FromEnv parses a Config from the process environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
