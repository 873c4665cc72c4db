package broadcast

import "errors"

var (
	ErrEmptyEventName       = errors.New("event name is required")
	ErrReservedEventName    = errors.New("event name is reserved")
	ErrInvalidEvent         = errors.New("event name and payload must not contain line breaks")
	ErrInvalidBufferSize    = errors.New("subscriber buffer size must be positive")
	ErrInvalidSweepInterval = errors.New("sweep interval must be positive")
)
