package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name.
const Prefix = "CMDSYNTH"

// Config holds settings read from the environment. Command-line flags
// override the generation settings.
type Config struct {
	Environment   string `envconfig:"ENVIRONMENT" default:"development"`
	LogFile       string `envconfig:"LOG_FILE"`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"50"`
	LogMaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"7"`

	Seed          *uint64 `envconfig:"SEED"`
	Workers       int     `envconfig:"WORKERS" default:"1"`
	ChunkSize     int     `envconfig:"CHUNK_SIZE" default:"4096"`
	MaxUsers      int     `envconfig:"MAX_USERS" default:"2000"`
	DefaultOutput string  `envconfig:"DEFAULT_OUTPUT" default:"synthetic_commands.csv"`
}

// Load reads configuration from CMDSYNTH_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%s_WORKERS must be at least 1, got %d", Prefix, cfg.Workers)
	}
	if cfg.ChunkSize < 1 {
		return nil, fmt.Errorf("%s_CHUNK_SIZE must be at least 1, got %d", Prefix, cfg.ChunkSize)
	}
	return &cfg, nil
}
