// Package logger provides structured logging utilities built on Go's standard slog package.
// It offers a small logger factory with environment presets and a set of attribute
// helpers used across the message queue, the subscriber registry and the worker pool.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/eventmq/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("eventmq"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("eventmq"))
//
//	// Custom configuration
//	log := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("service", "consumer")),
//		logger.WithOutput(os.Stderr),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, so they can be
// passed unconditionally:
//
//	log.Error("handler panicked",
//		logger.Component("weakevent"),
//		logger.Handler(name),
//		logger.Panic(r),
//	)
//
//	log.Debug("message dispatched",
//		logger.Queue("orders"),
//		logger.MessageID(id.String()),
//		logger.Duration(time.Since(start)),
//	)
//
// Library components in this module never log by default: they start with
// Discard() and accept a logger through their options.
package logger
