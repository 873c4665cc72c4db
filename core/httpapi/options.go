package httpapi

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures an API.
type Option func(*API)

// WithConfig sets payload limits and CORS settings.
func WithConfig(cfg Config) Option {
	return func(a *API) {
		if cfg.MaxPayloadBytes > 0 {
			a.cfg.MaxPayloadBytes = cfg.MaxPayloadBytes
		}
		a.cfg.CORSOrigin = cfg.CORSOrigin
		a.cfg.CORSCredentials = cfg.CORSCredentials
		if cfg.WSHandshakeTimeout > 0 {
			a.cfg.WSHandshakeTimeout = cfg.WSHandshakeTimeout
		}
		if cfg.WSWriteTimeout > 0 {
			a.cfg.WSWriteTimeout = cfg.WSWriteTimeout
		}
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithPublisher routes POST /events through p instead of the local broadcaster.
func WithPublisher(p Publisher) Option {
	return func(a *API) {
		if p != nil {
			a.publisher = p
		}
	}
}

// WithHealthCheck adds a named readiness check.
func WithHealthCheck(name string, check func(context.Context) error) Option {
	return func(a *API) {
		a.healthChecks = append(a.healthChecks, HealthCheck{Name: name, Check: check})
	}
}

// WithRegistry enables HTTP metrics on reg and serves it on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *API) {
		a.registry = reg
	}
}
