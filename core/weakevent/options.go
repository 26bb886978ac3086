package weakevent

import "log/slog"

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	onPanic func(recovered any)
}

// WithLogger configures structured logging for handler failures and sweeps.
// The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPanicHandler sets a callback invoked with the value recovered from a
// panicking handler, after it has been logged. Remaining handlers still run.
func WithPanicHandler(fn func(recovered any)) Option {
	return func(o *options) {
		if fn != nil {
			o.onPanic = fn
		}
	}
}
