package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fanout/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)

	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
}

func TestDurationHelpers(t *testing.T) {
	t.Parallel()
	d := 250 * time.Millisecond

	assert.Equal(t, "duration", logger.Duration(d).Key)
	assert.Equal(t, d, logger.Duration(d).Value.Duration())
	assert.Equal(t, "latency", logger.Latency(d).Key)
}

func TestIdentifierHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		empty   bool
	}{
		{name: "subscriber", attr: logger.Subscriber(7), wantKey: "subscriber_id"},
		{name: "zero subscriber", attr: logger.Subscriber(0), empty: true},
		{name: "request id", attr: logger.RequestID("req-1"), wantKey: "request_id"},
		{name: "empty request id", attr: logger.RequestID(""), empty: true},
		{name: "client ip", attr: logger.ClientIP("10.0.0.1"), wantKey: "client_ip"},
		{name: "empty client ip", attr: logger.ClientIP(""), empty: true},
		{name: "component", attr: logger.Component("broadcast"), wantKey: "component"},
		{name: "event", attr: logger.Event("update"), wantKey: "event"},
		{name: "transport", attr: logger.Transport("sse"), wantKey: "transport"},
		{name: "method", attr: logger.Method("GET"), wantKey: "method"},
		{name: "path", attr: logger.Path("/events"), wantKey: "path"},
		{name: "status", attr: logger.StatusCode(202), wantKey: "status_code"},
		{name: "count", attr: logger.Count("evicted", 3), wantKey: "evicted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.empty {
				assert.True(t, tt.attr.Equal(slog.Attr{}))
				return
			}
			assert.Equal(t, tt.wantKey, tt.attr.Key)
		})
	}
}
