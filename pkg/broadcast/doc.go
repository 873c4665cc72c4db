// Package broadcast provides an in-memory fan-out engine for long-lived streaming
// consumers such as Server-Sent Events subscribers.
//
// A single Publish call delivers one event frame to every currently registered
// subscriber. Each subscriber owns a bounded queue; delivery never blocks the
// publisher, and a periodic liveness sweep evicts subscribers that can no longer
// keep up or have gone away.
//
// # Architecture
//
// The package is built from three parts:
//   - registry: the set of subscriber queues, guarded by a single mutex
//   - Broadcaster: Subscribe, Publish and Unsubscribe on top of the registry
//   - sweeper: a background loop that probes every subscriber on a fixed period
//
// # Usage
//
//	b := broadcast.New(broadcast.WithLogger(log))
//	defer b.Close()
//
//	sub := b.Subscribe()
//	defer sub.Close()
//
//	go func() {
//		for frame := range sub.All(ctx) {
//			w.Write(frame)
//		}
//	}()
//
//	b.Publish("update", "42")
//
// # Wire Format
//
// Every frame has the exact layout:
//
//	event: <event-name>\n
//	data: <payload>\n
//	\n
//
// The event name internal_status is reserved. A subscription always starts with
// the frame "event: internal_status\ndata: connected\n\n", and the sweeper sends
// "event: internal_status\ndata: ping\n\n" to every subscriber on each pass.
//
// Publish does not escape or validate its input. Callers that accept event names
// or payloads from the outside should check them with ValidateEvent first, since
// an embedded newline corrupts framing for the rest of that connection.
//
// # Slow Consumer Handling
//
// Each subscriber queue holds DefaultBufferSize frames. When a queue is full,
// Publish drops the frame for that subscriber only. The next sweep then fails to
// enqueue its probe and evicts the subscriber, closing its queue so the consumer
// observes end-of-stream. A consumer whose queue happens to be full at sweep time
// is evicted even if it would have caught up later.
//
// # Lifecycle
//
// The sweeper starts in New, sweeps once immediately and then every
// DefaultSweepInterval. Close stops the sweeper and closes every subscriber
// queue. Run adapts the broadcaster to errgroup-style lifecycle management.
//
// # Thread Safety
//
// All exported methods are safe for concurrent use. Subscribe, Publish,
// Unsubscribe and Sweep each hold the registry lock for a single O(n) pass and
// never block on a consumer while holding it.
package broadcast
