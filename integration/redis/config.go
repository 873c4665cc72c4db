package redis

import "time"

// DefaultChannel is the Pub/Sub channel used when none is configured.
const DefaultChannel = "fanout:events"

// Config holds Redis configuration with environment variable support.
// An empty ConnectionURL disables the relay.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`
	Channel        string        `env:"REDIS_CHANNEL" envDefault:"fanout:events"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"1s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
