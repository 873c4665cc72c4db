package server

import "time"

// Defaults applied by New.
const (
	DefaultAddr            = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20

	// DefaultWriteTimeout is zero. Event streams stay open for the lifetime of
	// a subscription and any write deadline would cut them off.
	DefaultWriteTimeout time.Duration = 0
)
