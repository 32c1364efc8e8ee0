package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datahutch/scrapecheck/pkg/config"
)

type testConfig struct {
	BaseURL string        `env:"TEST_BASE_URL" envDefault:"https://api.example.org/api/1.0"`
	APIKey  string        `env:"TEST_API_KEY"`
	Timeout time.Duration `env:"TEST_TIMEOUT" envDefault:"30s"`
	MaxRows int           `env:"TEST_MAX_ROWS" envDefault:"100"`
}

type requiredConfig struct {
	Token string `env:"TEST_REQUIRED_TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied when env unset", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "https://api.example.org/api/1.0", cfg.BaseURL)
		assert.Empty(t, cfg.APIKey)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, 100, cfg.MaxRows)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("TEST_BASE_URL", "http://localhost:8080")
		t.Setenv("TEST_API_KEY", "secret")
		t.Setenv("TEST_TIMEOUT", "5s")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("reload picks up changed environment", func(t *testing.T) {
		t.Setenv("TEST_MAX_ROWS", "10")
		var first testConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, 10, first.MaxRows)

		t.Setenv("TEST_MAX_ROWS", "20")
		var second testConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, 20, second.MaxRows)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid value type", func(t *testing.T) {
		t.Setenv("TEST_MAX_ROWS", "not-a-number")
		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("returns populated config", func(t *testing.T) {
		t.Setenv("TEST_API_KEY", "must-key")
		var cfg testConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "must-key", cfg.APIKey)
	})

	t.Run("panics on failure", func(t *testing.T) {
		var cfg requiredConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}
