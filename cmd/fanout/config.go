package main

import (
	"github.com/dmitrymomot/fanout/core/httpapi"
	"github.com/dmitrymomot/fanout/core/server"
	"github.com/dmitrymomot/fanout/integration/redis"
	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"fanout"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:""`

	Server    server.Config
	Broadcast broadcast.Config
	HTTP      httpapi.Config
	Redis     redis.Config
}
