package broadcast

import "strings"

// EventInternalStatus is the reserved event name for connection status frames.
const EventInternalStatus = "internal_status"

// Frame is one encoded event ready to be written to a stream.
// Frames are shared between subscribers and must not be modified.
type Frame []byte

var (
	// ConnectedFrame is the first frame of every subscription.
	ConnectedFrame = NewFrame(EventInternalStatus, "connected")

	// PingFrame is the liveness probe sent by the sweeper.
	PingFrame = NewFrame(EventInternalStatus, "ping")
)

// NewFrame encodes an event name and payload as "event: <event>\ndata: <payload>\n\n".
// No escaping is performed.
func NewFrame(event, payload string) Frame {
	f := make([]byte, 0, len("event: \ndata: \n\n")+len(event)+len(payload))
	f = append(f, "event: "...)
	f = append(f, event...)
	f = append(f, "\ndata: "...)
	f = append(f, payload...)
	f = append(f, "\n\n"...)
	return f
}

// String returns the frame as text.
func (f Frame) String() string {
	return string(f)
}

// ValidateEvent reports whether event and payload can be published without
// breaking frame boundaries. The reserved internal_status event is rejected.
func ValidateEvent(event, payload string) error {
	switch {
	case event == "":
		return ErrEmptyEventName
	case event == EventInternalStatus:
		return ErrReservedEventName
	case strings.ContainsAny(event, "\r\n"), strings.ContainsAny(payload, "\r\n"):
		return ErrInvalidEvent
	}
	return nil
}
