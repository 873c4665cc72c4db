package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/fanout/core/logger"
	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

// message is the wire format of a relayed event.
type message struct {
	Origin  string `json:"origin"`
	Event   string `json:"event"`
	Payload string `json:"payload"`
}

// Relay fans events out to every instance subscribed to the same channel.
type Relay struct {
	client      redis.UniversalClient
	broadcaster *broadcast.Broadcaster
	channel     string
	origin      string
	logger      *slog.Logger
	relayed     *prometheus.CounterVec
}

// RelayOption configures a Relay.
type RelayOption func(*Relay)

// WithChannel sets the Pub/Sub channel. Empty values are ignored.
func WithChannel(channel string) RelayOption {
	return func(r *Relay) {
		if channel != "" {
			r.channel = channel
		}
	}
}

// WithLogger sets the relay logger.
func WithLogger(l *slog.Logger) RelayOption {
	return func(r *Relay) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics registers relay counters on reg.
func WithMetrics(reg prometheus.Registerer) RelayOption {
	return func(r *Relay) {
		r.relayed = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "relay_messages_total",
			Help: "Relay messages by direction (sent/received/ignored/invalid)",
		}, []string{"direction"})
	}
}

// NewRelay creates a Relay delivering into b. Each relay gets a unique origin.
func NewRelay(client redis.UniversalClient, b *broadcast.Broadcaster, opts ...RelayOption) *Relay {
	r := &Relay{
		client:      client,
		broadcaster: b,
		channel:     DefaultChannel,
		origin:      uuid.NewString(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Origin returns the identifier stamped on messages sent by this relay.
func (r *Relay) Origin() string {
	return r.origin
}

// Publish delivers the event locally, then sends it to the other instances.
// Local subscribers receive it even if Redis is unavailable.
func (r *Relay) Publish(ctx context.Context, event, payload string) error {
	r.broadcaster.Publish(event, payload)

	data, err := json.Marshal(message{Origin: r.origin, Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal relay message: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	r.count("sent")
	return nil
}

// Run provides errgroup compatibility. The returned function subscribes to
// the relay channel and delivers remote events until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) func() error {
	return func() error {
		pubsub := r.client.Subscribe(ctx, r.channel)
		defer func() { _ = pubsub.Close() }()

		if _, err := pubsub.Receive(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
		}
		r.logger.InfoContext(ctx, "relay subscribed",
			logger.Component("relay"),
			slog.String("channel", r.channel),
			slog.String("origin", r.origin),
		)

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				if err := r.handleMessage(msg.Payload); err != nil {
					r.logger.WarnContext(ctx, "relay message dropped",
						logger.Component("relay"),
						logger.Error(err),
					)
				}
			}
		}
	}
}

// handleMessage decodes a relay message and delivers it unless it originated
// from this relay.
func (r *Relay) handleMessage(raw string) error {
	var m message
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		r.count("invalid")
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if m.Origin == r.origin {
		r.count("ignored")
		return nil
	}
	if err := broadcast.ValidateEvent(m.Event, m.Payload); err != nil {
		r.count("invalid")
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	r.broadcaster.PublishFrame(broadcast.NewFrame(m.Event, m.Payload))
	r.count("received")
	return nil
}

func (r *Relay) count(direction string) {
	if r.relayed != nil {
		r.relayed.WithLabelValues(direction).Inc()
	}
}
