package response_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fanout/core/response"
	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

func newBroadcaster(t *testing.T) *broadcast.Broadcaster {
	t.Helper()

	clock := clockwork.NewFakeClock()
	b := broadcast.New(broadcast.WithClock(clock))
	t.Cleanup(func() { _ = b.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	return b
}

// nonFlushingWriter hides http.Flusher from the handler.
type nonFlushingWriter struct {
	header http.Header
	status int
}

func (w *nonFlushingWriter) Header() http.Header         { return w.header }
func (w *nonFlushingWriter) Write(b []byte) (int, error) { return len(b), nil }
func (w *nonFlushingWriter) WriteHeader(status int)      { w.status = status }

// failingWriter accepts headers but fails every body write after the first n.
type failingWriter struct {
	*httptest.ResponseRecorder
	allowed int
}

func (w *failingWriter) Write(b []byte) (int, error) {
	if w.allowed == 0 {
		return 0, errors.New("connection reset")
	}
	w.allowed--
	return w.ResponseRecorder.Write(b)
}

func TestSSE_ProtocolFormat(t *testing.T) {
	t.Parallel()

	t.Run("frames_written_verbatim", func(t *testing.T) {
		t.Parallel()

		b := newBroadcaster(t)
		sub := b.Subscribe()
		b.Publish("update", "42")
		b.Publish("update", `{"n":43}`)
		b.Unsubscribe(sub.ID())

		w := httptest.NewRecorder()
		err := response.SSE(sub)(w, httptest.NewRequest(http.MethodGet, "/events", nil))
		require.NoError(t, err)

		assert.Equal(t,
			"event: internal_status\ndata: connected\n\n"+
				"event: update\ndata: 42\n\n"+
				"event: update\ndata: {\"n\":43}\n\n",
			w.Body.String())
	})

	t.Run("required_headers_set", func(t *testing.T) {
		t.Parallel()

		b := newBroadcaster(t)
		sub := b.Subscribe()
		b.Unsubscribe(sub.ID())

		w := httptest.NewRecorder()
		require.NoError(t, response.SSE(sub)(w, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
		assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
		assert.Equal(t, "keep-alive", w.Header().Get("Connection"))
		assert.Equal(t, "no", w.Header().Get("X-Accel-Buffering"))
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("custom_and_disabled_cors", func(t *testing.T) {
		t.Parallel()

		b := newBroadcaster(t)

		sub := b.Subscribe()
		b.Unsubscribe(sub.ID())
		w := httptest.NewRecorder()
		require.NoError(t, response.SSE(sub, response.WithCORS("https://app.example", false))(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

		sub = b.Subscribe()
		b.Unsubscribe(sub.ID())
		w = httptest.NewRecorder()
		require.NoError(t, response.SSE(sub, response.WithoutCORS())(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSSE_Lifecycle(t *testing.T) {
	t.Parallel()

	t.Run("client_disconnect_releases_subscription", func(t *testing.T) {
		t.Parallel()

		b := newBroadcaster(t)
		sub := b.Subscribe()
		require.Equal(t, 1, b.Len())

		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		done := make(chan error, 1)
		go func() { done <- response.SSE(sub)(w, req) }()

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("stream did not end after client disconnect")
		}
		assert.Equal(t, 0, b.Len())
	})

	t.Run("broadcaster_close_ends_stream", func(t *testing.T) {
		t.Parallel()

		b := newBroadcaster(t)
		sub := b.Subscribe()

		w := httptest.NewRecorder()
		done := make(chan error, 1)
		go func() { done <- response.SSE(sub)(w, httptest.NewRequest(http.MethodGet, "/", nil)) }()

		require.NoError(t, b.Close())
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("stream did not end after broadcaster close")
		}
	})

	t.Run("streaming_unsupported", func(t *testing.T) {
		t.Parallel()

		b := newBroadcaster(t)
		sub := b.Subscribe()

		w := &nonFlushingWriter{header: http.Header{}}
		require.NoError(t, response.SSE(sub)(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusInternalServerError, w.status)
		assert.Equal(t, 0, b.Len())
	})

	t.Run("write_error_reported_and_stream_ends", func(t *testing.T) {
		t.Parallel()

		b := newBroadcaster(t)
		sub := b.Subscribe()
		b.Publish("update", "1")

		var reported error
		w := &failingWriter{ResponseRecorder: httptest.NewRecorder(), allowed: 1}
		err := response.SSE(sub, response.WithSSEErrorHandler(func(_ context.Context, err error) {
			reported = err
		}))(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NoError(t, err)
		require.Error(t, reported)
		assert.Contains(t, reported.Error(), "failed to write frame")
		assert.Equal(t, "event: internal_status\ndata: connected\n\n", w.Body.String())
		assert.Equal(t, 0, b.Len())
	})
}
