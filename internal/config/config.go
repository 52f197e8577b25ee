package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file written at a ledger's root.
const FileName = "budgetbook.yaml"

// Config represents the top-level budgetbook.yaml configuration.
type Config struct {
	Ledger   LedgerConfig   `yaml:"ledger"`
	Database DatabaseConfig `yaml:"database"`
	Git      GitConfig      `yaml:"git"`
}

// LedgerConfig identifies the ledger.
type LedgerConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// DatabaseConfig locates the SQLite snapshot database, relative to the
// ledger root.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a budgetbook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "budgetbook.db"
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(name string) *Config {
	return &Config{
		Ledger: LedgerConfig{
			Name:     name,
			Currency: "USD",
		},
		Database: DatabaseConfig{
			Path: "budgetbook.db",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Budgetbook",
			AuthorEmail: "ledger@budgetbook.dev",
		},
	}
}
