package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

// Publisher delivers an event to subscribers. The local broadcaster and the
// Redis relay both satisfy it.
type Publisher interface {
	Publish(ctx context.Context, event, payload string) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, event, payload string) error

func (f PublisherFunc) Publish(ctx context.Context, event, payload string) error {
	return f(ctx, event, payload)
}

// LocalPublisher publishes straight into b.
func LocalPublisher(b *broadcast.Broadcaster) Publisher {
	return PublisherFunc(func(_ context.Context, event, payload string) error {
		b.Publish(event, payload)
		return nil
	})
}

// API serves the broadcaster over HTTP.
type API struct {
	echo         *echo.Echo
	cfg          Config
	broadcaster  *broadcast.Broadcaster
	publisher    Publisher
	logger       *slog.Logger
	healthChecks []HealthCheck
	registry     *prometheus.Registry
	startTime    time.Time

	// handles maps the opaque handle returned to stream clients to the
	// broadcaster's sequential subscription ID.
	handles sync.Map
}

// New creates an API for b with routes registered.
func New(b *broadcast.Broadcaster, opts ...Option) *API {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &API{
		echo:        e,
		cfg:         DefaultConfig(),
		broadcaster: b,
		publisher:   LocalPublisher(b),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		startTime:   time.Now(),
	}

	for _, opt := range opts {
		opt(a)
	}

	e.HTTPErrorHandler = a.handleError
	a.registerRoutes()

	return a
}

// ServeHTTP implements http.Handler.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.echo.ServeHTTP(w, r)
}
