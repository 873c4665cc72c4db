package httpapi

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

// track issues a random handle for sub. The handle is valid until release is
// called, which the stream handlers do when the stream ends.
func (a *API) track(sub *broadcast.Subscription) (string, func()) {
	handle := uuid.NewString()
	a.handles.Store(handle, sub.ID())
	return handle, func() { a.handles.Delete(handle) }
}

func (a *API) lookup(handle string) (uint64, bool) {
	v, ok := a.handles.Load(handle)
	if !ok {
		return 0, false
	}
	return v.(uint64), true
}
