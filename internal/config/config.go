// Package config holds the application configuration, loaded from
// DAYLIGHT_* environment variables on top of code defaults.
package config

import (
	"fmt"

	"daylight/internal/env"
	"daylight/internal/schedule"
)

// Storage backend names accepted by DAYLIGHT_STORAGE.
const (
	StorageFS       = "fs"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageGCS      = "gcs"
)

// Config is the full application configuration.
type Config struct {
	// Env names the deployment environment, local by default.
	Env string `env:"DAYLIGHT_ENV"`

	// Storage selects the vault backend: fs, sqlite, postgres or gcs.
	Storage string `env:"DAYLIGHT_STORAGE"`

	// VaultDir is the markdown vault directory for the fs backend.
	VaultDir string `env:"DAYLIGHT_VAULT_DIR"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `env:"DAYLIGHT_SQLITE_PATH"`

	// PostgresURL is the connection string for the postgres backend.
	PostgresURL string `env:"DAYLIGHT_POSTGRES_URL"`

	// GCSBucket is the bucket name for the gcs backend.
	GCSBucket string `env:"DAYLIGHT_GCS_BUCKET"`

	// LookBehindDays and LookAheadDays bound the instance generation
	// window around today.
	LookBehindDays int `env:"DAYLIGHT_LOOK_BEHIND_DAYS"`
	LookAheadDays  int `env:"DAYLIGHT_LOOK_AHEAD_DAYS"`

	// OTelEnabled turns on trace, metric and log export over OTLP.
	OTelEnabled bool `env:"DAYLIGHT_OTEL_ENABLED"`
}

// Load builds the configuration from defaults overlaid with environment
// variables.
func Load() (*Config, error) {
	cfg := &Config{
		Env:            "local",
		Storage:        StorageFS,
		VaultDir:       "vault",
		SQLitePath:     "daylight.db",
		LookBehindDays: schedule.DefaultLookBehindDays,
		LookAheadDays:  schedule.DefaultLookAheadDays,
	}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field consistency after loading.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFS:
		if c.VaultDir == "" {
			return fmt.Errorf("DAYLIGHT_VAULT_DIR is required for the fs backend")
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("DAYLIGHT_SQLITE_PATH is required for the sqlite backend")
		}
	case StoragePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("DAYLIGHT_POSTGRES_URL is required for the postgres backend")
		}
	case StorageGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("DAYLIGHT_GCS_BUCKET is required for the gcs backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage)
	}

	if c.LookBehindDays < 0 {
		return fmt.Errorf("DAYLIGHT_LOOK_BEHIND_DAYS must not be negative")
	}
	if c.LookAheadDays < 0 {
		return fmt.Errorf("DAYLIGHT_LOOK_AHEAD_DAYS must not be negative")
	}
	return nil
}
