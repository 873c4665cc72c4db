package broadcast

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Option configures a Broadcaster.
type Option func(*Broadcaster)

// WithLogger sets the logger used for sweep diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Broadcaster) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock sets the clock driving the sweeper. Tests pass a fake clock.
func WithClock(clock clockwork.Clock) Option {
	return func(b *Broadcaster) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithBufferSize sets the capacity of each subscriber queue.
// Non-positive values are ignored.
func WithBufferSize(size int) Option {
	return func(b *Broadcaster) {
		if size > 0 {
			b.bufferSize = size
		}
	}
}

// WithSweepInterval sets the liveness sweep period.
// Non-positive values are ignored.
func WithSweepInterval(interval time.Duration) Option {
	return func(b *Broadcaster) {
		if interval > 0 {
			b.interval = interval
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(b *Broadcaster) {
		b.metrics = m
	}
}
