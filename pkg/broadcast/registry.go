package broadcast

import (
	"sync"
	"sync/atomic"
)

// entry is the registry's write-end of one subscriber queue.
type entry struct {
	id      uint64
	ch      chan Frame
	dropped *atomic.Bool // set when the consumer released its read-end
}

// registry holds subscriber queues in insertion order.
// Removal by ID is O(1): the slot is tombstoned and compacted later.
type registry struct {
	mu     sync.Mutex
	nextID uint64
	slots  []*entry
	index  map[uint64]int
	live   int
	closed bool

	// observe, if set, receives the live count after every change while mu is held.
	observe func(live int)
}

func newRegistry() *registry {
	return &registry{index: make(map[uint64]int)}
}

// add registers a queue and returns its ID.
// Returns false if the registry has been closed; the caller keeps ownership of ch.
func (r *registry) add(ch chan Frame, dropped *atomic.Bool) (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, false
	}

	r.nextID++
	e := &entry{id: r.nextID, ch: ch, dropped: dropped}
	r.index[e.id] = len(r.slots)
	r.slots = append(r.slots, e)
	r.live++
	r.notify()
	return e.id, true
}

// remove unregisters the queue with the given ID and closes it.
func (r *registry) remove(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return false
	}

	close(r.slots[pos].ch)
	r.slots[pos] = nil
	delete(r.index, id)
	r.live--
	r.notify()

	if tombstones := len(r.slots) - r.live; tombstones > r.live {
		r.compact()
	}
	return true
}

// each calls fn for every registered entry in registry order, holding the lock
// for the whole pass.
func (r *registry) each(fn func(*entry)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.slots {
		if e != nil {
			fn(e)
		}
	}
}

// retain keeps only the entries for which keep returns true, in their original
// relative order. Rejected queues are closed. Returns the number removed.
func (r *registry) retain(keep func(*entry) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.slots[:0]
	removed := 0
	for _, e := range r.slots {
		if e == nil {
			continue
		}
		if keep(e) {
			kept = append(kept, e)
			continue
		}
		close(e.ch)
		delete(r.index, e.id)
		removed++
	}
	clear(r.slots[len(kept):])
	r.slots = kept
	r.live = len(kept)
	r.reindex()
	r.notify()
	return removed
}

// drain closes every queue, empties the registry and refuses further adds.
// Returns the number of queues closed.
func (r *registry) drain() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.slots {
		if e != nil {
			close(e.ch)
			n++
		}
	}
	r.slots = nil
	r.index = make(map[uint64]int)
	r.live = 0
	r.closed = true
	r.notify()
	return n
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live
}

// notify reports the live count to observe. Callers must hold mu.
func (r *registry) notify() {
	if r.observe != nil {
		r.observe(r.live)
	}
}

// compact drops tombstones. Callers must hold mu.
func (r *registry) compact() {
	kept := r.slots[:0]
	for _, e := range r.slots {
		if e != nil {
			kept = append(kept, e)
		}
	}
	clear(r.slots[len(kept):])
	r.slots = kept
	r.reindex()
}

// reindex rebuilds positions after slots moved. Callers must hold mu.
func (r *registry) reindex() {
	for i, e := range r.slots {
		r.index[e.id] = i
	}
}
