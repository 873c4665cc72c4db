package broadcast

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Broadcaster fans event frames out to every registered subscriber.
// Safe for concurrent use.
type Broadcaster struct {
	registry   *registry
	logger     *slog.Logger
	clock      clockwork.Clock
	metrics    *Metrics
	bufferSize int
	interval   time.Duration

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Broadcaster and starts its liveness sweeper.
// The first sweep runs immediately, then every sweep interval until Close.
func New(opts ...Option) *Broadcaster {
	b := &Broadcaster{
		registry:   newRegistry(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:      clockwork.NewRealClock(),
		bufferSize: DefaultBufferSize,
		interval:   DefaultSweepInterval,
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(b)
	}
	if b.metrics != nil {
		b.registry.observe = b.metrics.setSubscribers
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go b.sweepLoop(ctx)

	return b
}

// Subscribe registers a new subscriber and returns its handle.
// The returned subscription always yields ConnectedFrame first.
// After Close, Subscribe returns a subscription that ends right after that frame.
func (b *Broadcaster) Subscribe() *Subscription {
	ch := make(chan Frame, b.bufferSize)
	select {
	case ch <- ConnectedFrame:
	default:
		panic("broadcast: empty subscriber queue rejected the connected frame")
	}

	sub := &Subscription{frames: ch, unsubscribe: b.Unsubscribe}
	id, ok := b.registry.add(ch, &sub.dropped)
	if !ok {
		close(ch)
		return sub
	}
	sub.id = id
	return sub
}

// Publish formats an event and delivers it to every registered subscriber.
// Subscribers with a full queue miss the frame. Publish never blocks on a
// consumer and never fails; input is not validated (see ValidateEvent).
func (b *Broadcaster) Publish(event, payload string) {
	b.PublishFrame(NewFrame(event, payload))
}

// PublishFrame delivers a pre-encoded frame with the same semantics as Publish.
func (b *Broadcaster) PublishFrame(frame Frame) {
	var delivered, dropped int
	b.registry.each(func(e *entry) {
		if e.dropped.Load() {
			dropped++
			return
		}
		select {
		case e.ch <- frame:
			delivered++
		default:
			dropped++
		}
	})
	b.metrics.published(delivered, dropped)
}

// Unsubscribe removes a subscriber immediately and closes its queue.
// Returns false if the subscriber is no longer registered.
func (b *Broadcaster) Unsubscribe(id uint64) bool {
	if !b.registry.remove(id) {
		return false
	}
	b.metrics.unsubscribed()
	return true
}

// Sweep probes every subscriber with PingFrame and evicts those whose queue is
// full or whose consumer has gone away. Survivors keep their relative order.
// Returns the number of evicted subscribers.
func (b *Broadcaster) Sweep() int {
	start := b.clock.Now()
	accepted := 0
	evicted := b.registry.retain(func(e *entry) bool {
		if e.dropped.Load() {
			return false
		}
		select {
		case e.ch <- PingFrame:
			accepted++
			return true
		default:
			return false
		}
	})

	b.metrics.swept(accepted, evicted)
	b.logger.Debug("liveness sweep completed",
		"subscribers", accepted,
		"evicted", evicted,
		"duration", b.clock.Since(start),
	)
	return evicted
}

// Len returns the number of registered subscribers.
func (b *Broadcaster) Len() int {
	return b.registry.len()
}

// Close stops the sweeper and closes every subscriber queue.
// Subsequent Publish calls are no-ops. Safe to call more than once.
func (b *Broadcaster) Close() error {
	b.closeOnce.Do(func() {
		b.cancel()
		<-b.done

		n := b.registry.drain()
		b.logger.Info("broadcaster closed", "subscribers", n)
	})
	return nil
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// The returned function blocks until ctx is cancelled, then closes the broadcaster.
func (b *Broadcaster) Run(ctx context.Context) func() error {
	return func() error {
		<-ctx.Done()
		return b.Close()
	}
}
