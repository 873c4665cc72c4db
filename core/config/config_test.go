package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fanout/core/config"
)

type sweepConfig struct {
	Interval time.Duration `env:"CONFIG_TEST_SWEEP_INTERVAL" envDefault:"10s"`
	Buffer   int           `env:"CONFIG_TEST_BUFFER" envDefault:"100"`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_REQUIRED_SECRET,required"`
}

type cachedConfig struct {
	Name string `env:"CONFIG_TEST_CACHED_NAME" envDefault:"first"`
}

func TestLoad_ParsesEnvironment(t *testing.T) {
	t.Setenv("CONFIG_TEST_SWEEP_INTERVAL", "3s")

	var cfg sweepConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 3*time.Second, cfg.Interval)
	assert.Equal(t, 100, cfg.Buffer)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFIG_TEST_REQUIRED_SECRET")

	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoad_CachesPerType(t *testing.T) {
	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Name)

	t.Setenv("CONFIG_TEST_CACHED_NAME", "second")

	var second cachedConfig
	config.MustLoad(&second)
	assert.Equal(t, "first", second.Name)
}
