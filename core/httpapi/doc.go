// Package httpapi exposes a broadcaster over HTTP using echo.
//
// Routes:
//
//	GET    /events             Server-Sent Events subscription stream
//	GET    /events/ws          WebSocket subscription stream
//	POST   /events/:event      publish the request body as the event payload
//	DELETE /subscriptions/:id  drop a subscriber right away
//	GET    /stats              current subscriber count
//	GET    /health/live        liveness probe
//	GET    /health/ready       readiness probe running registered checks
//	GET    /metrics            Prometheus metrics, when a registry is set
//
// The stream routes send an opaque handle in the X-Subscription-Id response
// header so clients can unsubscribe explicitly. Handles are random UUIDs valid
// while the stream is open; the broadcaster's sequential subscription IDs are
// never exposed, so a client cannot drop other subscribers by guessing. There
// is no authentication: anyone holding a handle can use it.
//
// API implements http.Handler and is meant to be served by core/server:
//
//	api := httpapi.New(b,
//		httpapi.WithConfig(cfg.HTTP),
//		httpapi.WithLogger(log),
//		httpapi.WithRegistry(reg),
//	)
//	g.Go(srv.Run(ctx, api))
package httpapi
