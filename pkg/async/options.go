package async

import "log/slog"

// PoolOption configures a Pool.
type PoolOption func(*poolOptions)

type poolOptions struct {
	workers int
	logger  *slog.Logger
}

// WithWorkers sets the number of worker goroutines. Non-positive values are ignored.
func WithWorkers(n int) PoolOption {
	return func(o *poolOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithPoolLogger configures structured logging for task panics and shutdown.
func WithPoolLogger(logger *slog.Logger) PoolOption {
	return func(o *poolOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
