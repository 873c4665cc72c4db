// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is read once on first use; variables
// already set in the environment take precedence. Struct fields are parsed
// with caarlos0/env, so nested configs from other packages compose:
//
//	type Config struct {
//		AppName string `env:"APP_NAME" envDefault:"fanout"`
//
//		Server    server.Config
//		Broadcast broadcast.Config
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Each type is parsed once. Later calls for the same type copy the cached
// value, so packages can load their own section without re-reading the
// environment. Load returns parse errors; MustLoad panics on them and is
// meant for process startup.
package config
