package env

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name     string        `env:"TEST_NAME"`
	Port     int           `env:"TEST_PORT"`
	Debug    bool          `env:"TEST_DEBUG"`
	Interval time.Duration `env:"TEST_INTERVAL"`
	Untagged string
}

type validatedConfig struct {
	Port int `env:"TEST_PORT"`
}

func (c *validatedConfig) Validate() error {
	if c.Port < 1 {
		return errors.New("port must be positive")
	}
	return nil
}

type nestedConfig struct {
	Inner testConfig
	Top   string `env:"TEST_TOP"`
}

func TestLoad(t *testing.T) {
	t.Run("fills tagged fields from the environment", func(t *testing.T) {
		t.Setenv("TEST_NAME", "daylight")
		t.Setenv("TEST_PORT", "8080")
		t.Setenv("TEST_DEBUG", "true")
		t.Setenv("TEST_INTERVAL", "90s")

		var cfg testConfig
		require.NoError(t, Load(&cfg))

		assert.Equal(t, "daylight", cfg.Name)
		assert.Equal(t, 8080, cfg.Port)
		assert.True(t, cfg.Debug)
		assert.Equal(t, 90*time.Second, cfg.Interval)
	})

	t.Run("unset variables keep pre-populated defaults", func(t *testing.T) {
		cfg := testConfig{Name: "default", Port: 42}
		require.NoError(t, Load(&cfg))
		assert.Equal(t, "default", cfg.Name)
		assert.Equal(t, 42, cfg.Port)
	})

	t.Run("recurses into nested structs", func(t *testing.T) {
		t.Setenv("TEST_NAME", "inner")
		t.Setenv("TEST_TOP", "outer")

		var cfg nestedConfig
		require.NoError(t, Load(&cfg))
		assert.Equal(t, "inner", cfg.Inner.Name)
		assert.Equal(t, "outer", cfg.Top)
	})

	t.Run("reports unparseable values with context", func(t *testing.T) {
		t.Setenv("TEST_PORT", "not-a-number")

		var cfg testConfig
		err := Load(&cfg)
		require.Error(t, err)

		var invalid ErrInvalidValue
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "TEST_PORT", invalid.EnvVar)
		assert.Equal(t, "Port", invalid.Field)
	})

	t.Run("rejects non-struct-pointer arguments", func(t *testing.T) {
		var notAStruct int
		require.Error(t, Load(&notAStruct))
		require.Error(t, Load(testConfig{}))
	})

	t.Run("runs the validator after loading", func(t *testing.T) {
		t.Setenv("TEST_PORT", "0")

		var cfg validatedConfig
		err := Load(&cfg)
		require.EqualError(t, err, "port must be positive")
	})
}
