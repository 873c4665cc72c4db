package broadcast

import "time"

const (
	// DefaultBufferSize is the capacity of each subscriber queue.
	DefaultBufferSize = 100

	// DefaultSweepInterval is the period of the liveness sweep.
	DefaultSweepInterval = 10 * time.Second
)

// Config holds broadcaster configuration with environment variable support.
type Config struct {
	BufferSize    int           `env:"BROADCAST_BUFFER_SIZE" envDefault:"100"`
	SweepInterval time.Duration `env:"BROADCAST_SWEEP_INTERVAL" envDefault:"10s"`
}

// DefaultConfig returns a Config with the standard queue capacity and sweep period.
func DefaultConfig() Config {
	return Config{
		BufferSize:    DefaultBufferSize,
		SweepInterval: DefaultSweepInterval,
	}
}

// NewFromConfig creates a Broadcaster from configuration.
// Additional options can override config values.
func NewFromConfig(cfg Config, opts ...Option) (*Broadcaster, error) {
	if cfg.BufferSize <= 0 {
		return nil, ErrInvalidBufferSize
	}
	if cfg.SweepInterval <= 0 {
		return nil, ErrInvalidSweepInterval
	}

	configOpts := []Option{
		WithBufferSize(cfg.BufferSize),
		WithSweepInterval(cfg.SweepInterval),
	}
	configOpts = append(configOpts, opts...)

	return New(configOpts...), nil
}
