package response

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

// sseConfig holds configuration for Server-Sent Events responses.
type sseConfig struct {
	allowOrigin      string
	allowCredentials bool
	onError          func(context.Context, error)
}

// EventOption configures Server-Sent Events behavior.
type EventOption func(*sseConfig)

// WithCORS sets the Access-Control-Allow-Origin value and whether credentials
// are allowed. An empty origin disables CORS headers.
func WithCORS(origin string, credentials bool) EventOption {
	return func(s *sseConfig) {
		s.allowOrigin = origin
		s.allowCredentials = credentials
	}
}

// WithoutCORS disables CORS headers on the stream.
func WithoutCORS() EventOption {
	return func(s *sseConfig) {
		s.allowOrigin = ""
		s.allowCredentials = false
	}
}

// WithSSEErrorHandler sets an error handler for SSE streaming errors.
// The handler receives the request context and error for logging or monitoring.
func WithSSEErrorHandler(handler func(context.Context, error)) EventOption {
	return func(s *sseConfig) {
		s.onError = handler
	}
}

// SSE streams a subscription as a Server-Sent Events response. Frames are
// written verbatim and flushed one by one. The response ends when the
// subscription is closed by the broadcaster or the client goes away; the
// subscription is released in both cases.
//
// By default the stream allows any origin with credentials.
func SSE(sub *broadcast.Subscription, opts ...EventOption) Response {
	cfg := &sseConfig{
		allowOrigin:      "*",
		allowCredentials: true,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, req *http.Request) error {
		defer sub.Close()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		if cfg.allowOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", cfg.allowOrigin)
			if cfg.allowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
			return nil
		}

		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		ctx := req.Context()
		for {
			select {
			case <-ctx.Done():
				return nil

			case frame, ok := <-sub.Frames():
				if !ok {
					return nil
				}
				if _, err := w.Write(frame); err != nil {
					if cfg.onError != nil {
						cfg.onError(ctx, fmt.Errorf("failed to write frame: %w", err))
					}
					return nil
				}
				flusher.Flush()
			}
		}
	}
}
