package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daylight/internal/schedule"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, StorageFS, cfg.Storage)
	assert.Equal(t, "vault", cfg.VaultDir)
	assert.Equal(t, schedule.DefaultLookBehindDays, cfg.LookBehindDays)
	assert.Equal(t, schedule.DefaultLookAheadDays, cfg.LookAheadDays)
	assert.False(t, cfg.OTelEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DAYLIGHT_STORAGE", "sqlite")
	t.Setenv("DAYLIGHT_SQLITE_PATH", "/tmp/tasks.db")
	t.Setenv("DAYLIGHT_LOOK_AHEAD_DAYS", "30")
	t.Setenv("DAYLIGHT_OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, "/tmp/tasks.db", cfg.SQLitePath)
	assert.Equal(t, 30, cfg.LookAheadDays)
	assert.True(t, cfg.OTelEnabled)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"fs defaults are valid", func(c *Config) {}, false},
		{"unknown backend", func(c *Config) { c.Storage = "redis" }, true},
		{"postgres without url", func(c *Config) { c.Storage = StoragePostgres }, true},
		{"postgres with url", func(c *Config) { c.Storage = StoragePostgres; c.PostgresURL = "postgres://localhost/daylight" }, false},
		{"gcs without bucket", func(c *Config) { c.Storage = StorageGCS }, true},
		{"fs without vault dir", func(c *Config) { c.VaultDir = "" }, true},
		{"negative look behind", func(c *Config) { c.LookBehindDays = -1 }, true},
		{"negative look ahead", func(c *Config) { c.LookAheadDays = -1 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				Storage:    StorageFS,
				VaultDir:   "vault",
				SQLitePath: "daylight.db",
			}
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("DAYLIGHT_STORAGE", "redis")
	_, err := Load()
	require.Error(t, err)
}
