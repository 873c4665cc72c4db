package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/fanout/core/config"
	"github.com/dmitrymomot/fanout/core/httpapi"
	"github.com/dmitrymomot/fanout/core/logger"
	"github.com/dmitrymomot/fanout/core/server"
	"github.com/dmitrymomot/fanout/integration/redis"
	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	log := newLogger(cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	b, err := broadcast.NewFromConfig(cfg.Broadcast,
		broadcast.WithLogger(log.With(logger.Component("broadcast"))),
		broadcast.WithMetrics(broadcast.NewMetrics(reg)),
	)
	if err != nil {
		log.Error("Failed to create broadcaster", logger.Component("broadcast"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(b.Run(ctx))

	apiOpts := []httpapi.Option{
		httpapi.WithConfig(cfg.HTTP),
		httpapi.WithLogger(log.With(logger.Component("http"))),
		httpapi.WithRegistry(reg),
	}

	if cfg.Redis.Enabled() {
		// Connect handles retries and the initial ping.
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Error("Failed to connect to redis", logger.Component("redis"), logger.Error(err))
			os.Exit(1)
		}
		defer client.Close()

		relay := redis.NewRelay(client, b,
			redis.WithChannel(cfg.Redis.Channel),
			redis.WithLogger(log.With(logger.Component("relay"))),
			redis.WithMetrics(reg),
		)
		eg.Go(relay.Run(ctx))

		apiOpts = append(apiOpts,
			httpapi.WithPublisher(relay),
			httpapi.WithHealthCheck("redis", redis.Healthcheck(client)),
		)
	}

	api := httpapi.New(b, apiOpts...)

	// Streams only return once their subscription ends, so the broadcaster is
	// closed as soon as the server starts shutting down.
	s, err := server.NewFromConfig(cfg.Server,
		server.WithLogger(log.With(logger.Component("server"))),
		server.WithOnShutdown(func() { _ = b.Close() }),
	)
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}
	eg.Go(s.Run(ctx, api))

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{logger.WithDevelopment(cfg.AppName)}
	if cfg.AppEnv == "production" {
		opts = []logger.Option{logger.WithProduction(cfg.AppName)}
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	return logger.New(opts...)
}
