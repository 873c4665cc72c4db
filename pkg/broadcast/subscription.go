package broadcast

import (
	"context"
	"io"
	"iter"
	"sync"
	"sync/atomic"
)

// Subscription is the consumer side of one subscriber queue.
// It yields frames in order until the broadcaster drops the queue.
type Subscription struct {
	id          uint64
	frames      <-chan Frame
	dropped     atomic.Bool
	closeOnce   sync.Once
	unsubscribe func(uint64) bool
}

// ID returns the subscription handle used by Broadcaster.Unsubscribe.
// Zero means the subscription was never registered.
func (s *Subscription) ID() uint64 {
	return s.id
}

// Frames returns the read-end of the queue. The channel is closed when the
// subscriber is evicted, unsubscribed or the broadcaster is closed.
func (s *Subscription) Frames() <-chan Frame {
	return s.frames
}

// Next blocks until the next frame is available.
// Returns io.EOF once the queue is closed and drained, or ctx.Err() if ctx ends first.
func (s *Subscription) Next(ctx context.Context) (Frame, error) {
	select {
	case f, ok := <-s.frames:
		if !ok {
			return nil, io.EOF
		}
		return f, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// All returns a single-use sequence of frames that ends on end-of-stream or
// when ctx is cancelled.
func (s *Subscription) All(ctx context.Context) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for {
			f, err := s.Next(ctx)
			if err != nil {
				return
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Close releases the read-end. The subscriber is unregistered right away and
// would fail the next liveness probe otherwise. Safe to call more than once.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.dropped.Store(true)
		if s.id != 0 && s.unsubscribe != nil {
			s.unsubscribe(s.id)
		}
	})
}
