package broadcast

import "context"

// sweepLoop runs the liveness sweep immediately and then once per interval
// until ctx is cancelled.
func (b *Broadcaster) sweepLoop(ctx context.Context) {
	defer close(b.done)

	b.Sweep()

	ticker := b.clock.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			b.Sweep()
		}
	}
}
