// Package server wraps http.Server with graceful shutdown, functional options
// and environment-driven configuration.
//
// # Basic Usage
//
//	srv := server.New(":8080",
//		server.WithShutdownTimeout(10*time.Second),
//		server.WithLogger(log),
//	)
//
//	eg, ctx := errgroup.WithContext(ctx)
//	eg.Go(srv.Run(ctx, handler))
//	if err := eg.Wait(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// # Configuration
//
// Config maps SERVER_* environment variables onto server options:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg)
//
// TLS is enabled when both SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE are set.
//
// # Streaming Responses
//
// The default write timeout is zero because event streams stay open for the
// lifetime of the subscriber. http.Server.Shutdown waits for active connections,
// so long-lived handlers must be ended explicitly; register a hook with
// WithOnShutdown that closes the streams:
//
//	srv := server.New(":8080", server.WithOnShutdown(func() { _ = b.Close() }))
package server
