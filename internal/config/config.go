// Package config holds runtime settings for the RPAS console app.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries the two locations the core needs: the blob store database
// and the root under which documents are materialized.
type Config struct {
	// DatabasePath is the SQLite file backing the blob store.
	DatabasePath string `env:"RPAS_DB_PATH"`

	// FilesRoot is the directory holding the reserved document subdirectory.
	FilesRoot string `env:"RPAS_FILES_ROOT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "rpas.db"
	c.FilesRoot = "."
}

// LoadConfig constructs a Config, applies defaults, then overlays environment
// variables and command-line flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	parseFlags(cfg)
	return cfg, nil
}
