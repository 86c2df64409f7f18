package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velais/sprintgate/pkg/config"
)

type gatewayTestConfig struct {
	Domain     string `env:"TEST_GW_DOMAIN" envDefault:"localhost"`
	MaxEntries int    `env:"TEST_GW_MAX_ENTRIES" envDefault:"500"`
}

type requiredTestConfig struct {
	Secret string `env:"TEST_GW_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults when the environment is empty", func(t *testing.T) {
		config.ResetCache()

		var cfg gatewayTestConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "localhost", cfg.Domain)
		assert.Equal(t, 500, cfg.MaxEntries)
	})

	t.Run("reads values from the environment", func(t *testing.T) {
		t.Setenv("TEST_GW_DOMAIN", "dashboard.example.com")
		t.Setenv("TEST_GW_MAX_ENTRIES", "42")
		config.ResetCache()

		var cfg gatewayTestConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "dashboard.example.com", cfg.Domain)
		assert.Equal(t, 42, cfg.MaxEntries)
	})

	t.Run("caches the first parse per type", func(t *testing.T) {
		t.Setenv("TEST_GW_DOMAIN", "first.example.com")
		config.ResetCache()

		var first gatewayTestConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_GW_DOMAIN", "second.example.com")
		var second gatewayTestConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first.example.com", second.Domain)
	})

	t.Run("fails on missing required variables", func(t *testing.T) {
		config.ResetCache()

		var cfg requiredTestConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("rejects nil pointers", func(t *testing.T) {
		err := config.Load[gatewayTestConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestForceReloadConfig(t *testing.T) {
	t.Setenv("TEST_GW_DOMAIN", "stale.example.com")
	config.ResetCache()

	var cfg gatewayTestConfig
	require.NoError(t, config.Load(&cfg))

	t.Setenv("TEST_GW_DOMAIN", "fresh.example.com")
	require.NoError(t, config.ForceReloadConfig(&cfg))
	assert.Equal(t, "fresh.example.com", cfg.Domain)
}

func TestLoadEnv(t *testing.T) {
	t.Run("missing explicit file is an error", func(t *testing.T) {
		err := config.LoadEnv("testdata/does_not_exist.env")
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})

	t.Run("MustLoadEnv panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			config.MustLoadEnv("testdata/does_not_exist.env")
		})
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics when a required variable is absent", func(t *testing.T) {
		config.ResetCache()

		assert.Panics(t, func() {
			var cfg requiredTestConfig
			config.MustLoad(&cfg)
		})
	})
}
