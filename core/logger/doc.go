// Package logger provides structured logging built on Go's standard slog package.
//
// Loggers are created with New and a set of options. Environment presets select
// sensible defaults:
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("fanout"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("fanout"))
//
//	// Custom
//	log := logger.New(
//		logger.WithLevel(logger.ParseLevel("warn")),
//		logger.WithJSONFormatter(),
//		logger.WithOutput(os.Stderr),
//	)
//
// # Attribute Helpers
//
// Helpers build common attributes with consistent keys. Helpers that take an
// error or an identifier return an empty slog.Attr for zero values, so calls
// such as log.Info("msg", logger.Error(err)) need no nil checks:
//
//	log.Info("subscriber connected",
//		logger.Component("httpapi"),
//		logger.Subscriber(sub.ID()),
//		logger.RequestID(id),
//	)
package logger
