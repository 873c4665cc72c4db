package response

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

// DefaultWSWriteTimeout bounds a single frame write to a WebSocket peer.
const DefaultWSWriteTimeout = 10 * time.Second

type wsConfig struct {
	upgrader       *websocket.Upgrader
	responseHeader http.Header
	writeTimeout   time.Duration
	onError        func(context.Context, error)
}

// WebSocketOption configures WebSocket upgrades.
type WebSocketOption func(*wsConfig)

// WithWSHandshakeTimeout bounds the upgrade handshake.
func WithWSHandshakeTimeout(timeout time.Duration) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.HandshakeTimeout = timeout
	}
}

// WithWSWriteTimeout bounds each frame write. Zero or negative keeps the default.
func WithWSWriteTimeout(timeout time.Duration) WebSocketOption {
	return func(c *wsConfig) {
		if timeout > 0 {
			c.writeTimeout = timeout
		}
	}
}

// WithWSOriginCheck sets the upgrade origin policy. The gorilla default
// accepts same-host origins only.
func WithWSOriginCheck(fn func(r *http.Request) bool) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.CheckOrigin = fn
	}
}

func WithWSAllowAnyOrigin() WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
}

func WithWSUpgradeHeaders(header http.Header) WebSocketOption {
	return func(c *wsConfig) {
		c.responseHeader = header
	}
}

// WithWSErrorHandler receives upgrade and write errors.
func WithWSErrorHandler(fn func(context.Context, error)) WebSocketOption {
	return func(c *wsConfig) {
		c.onError = fn
	}
}

// WebSocket upgrades the connection and hands it to messageHandler.
// Errors are reported through the error handler option, never returned.
func WebSocket(messageHandler func(context.Context, *websocket.Conn) error, opts ...WebSocketOption) Response {
	cfg := newWSConfig(opts)

	return func(w http.ResponseWriter, r *http.Request) error {
		conn, err := cfg.upgrader.Upgrade(w, r, cfg.responseHeader)
		if err != nil {
			cfg.reportError(r.Context(), err)
			return nil
		}
		defer conn.Close()

		if err := messageHandler(r.Context(), conn); err != nil {
			cfg.reportError(r.Context(), err)
		}
		return nil
	}
}

// WebSocketStream streams a subscription over a WebSocket, one text message per
// frame. Incoming messages are discarded; reading only detects disconnects.
// When the broadcaster ends the subscription the peer receives a normal close.
// The subscription is released when the handler returns.
func WebSocketStream(sub *broadcast.Subscription, opts ...WebSocketOption) Response {
	cfg := newWSConfig(opts)

	stream := WebSocket(func(ctx context.Context, conn *websocket.Conn) error {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		go func() {
			defer cancel()
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return nil

			case frame, ok := <-sub.Frames():
				if !ok {
					msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stream ended")
					_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(cfg.writeTimeout))
					return nil
				}
				_ = conn.SetWriteDeadline(time.Now().Add(cfg.writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
					if errors.Is(err, websocket.ErrCloseSent) {
						return nil
					}
					return err
				}
			}
		}
	}, opts...)

	return func(w http.ResponseWriter, r *http.Request) error {
		defer sub.Close()
		return stream(w, r)
	}
}

func newWSConfig(opts []WebSocketOption) *wsConfig {
	cfg := &wsConfig{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		writeTimeout: DefaultWSWriteTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

func (c *wsConfig) reportError(ctx context.Context, err error) {
	if c.onError != nil {
		c.onError(ctx, err)
	}
}
