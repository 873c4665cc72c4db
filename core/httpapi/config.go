package httpapi

import "time"

// Config holds HTTP API configuration with environment variable support.
type Config struct {
	MaxPayloadBytes int64  `env:"HTTP_MAX_PAYLOAD_BYTES" envDefault:"65536"`
	CORSOrigin      string `env:"HTTP_CORS_ORIGIN" envDefault:"*"`
	CORSCredentials bool   `env:"HTTP_CORS_CREDENTIALS" envDefault:"true"`

	WSHandshakeTimeout time.Duration `env:"HTTP_WS_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	WSWriteTimeout     time.Duration `env:"HTTP_WS_WRITE_TIMEOUT" envDefault:"10s"`
}

// DefaultConfig returns the defaults used when no Config is supplied.
func DefaultConfig() Config {
	return Config{
		MaxPayloadBytes: 64 << 10,
		CORSOrigin:      "*",
		CORSCredentials: true,

		WSHandshakeTimeout: 10 * time.Second,
		WSWriteTimeout:     10 * time.Second,
	}
}
