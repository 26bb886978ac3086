package eventmq

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/eventmq/pkg/async"
)

// Option configures a Queue.
type Option func(*options)

type options struct {
	name       string
	pool       *async.Pool
	logger     *slog.Logger
	registerer prometheus.Registerer
}

// WithName sets the queue name used in log records and as the "queue" metric label.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithPool sets the worker pool that runs fan-out tasks.
// Defaults to async.Shared().
func WithPool(pool *async.Pool) Option {
	return func(o *options) {
		if pool != nil {
			o.pool = pool
		}
	}
}

// WithLogger configures structured logging for the queue and its registry.
// The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics registers queue metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}
