package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fanout/core/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("production_writes_json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithProduction("fanout"), logger.WithOutput(&buf))
		log.Info("hello", logger.Component("test"))
		log.Debug("hidden")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "fanout", rec["service"])
		assert.Equal(t, "production", rec["env"])
		assert.Equal(t, "test", rec["component"])
		assert.NotContains(t, buf.String(), "hidden")
	})

	t.Run("development_logs_debug_as_text", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("fanout"), logger.WithOutput(&buf))
		log.Debug("sweep", logger.Count("evicted", 2))

		assert.Contains(t, buf.String(), "msg=sweep")
		assert.Contains(t, buf.String(), "evicted=2")
		assert.Contains(t, buf.String(), "service=fanout")
	})

	t.Run("explicit_level_overrides_preset", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithDevelopment("fanout"),
			logger.WithLevel(slog.LevelWarn),
			logger.WithJSONFormatter(),
			logger.WithOutput(&buf),
		)
		log.Info("dropped")
		log.Warn("kept")

		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), `"msg":"kept"`)
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), "input %q", in)
	}
}
