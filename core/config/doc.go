// Package config loads env-tagged structs from the process environment.
//
// A .env file in the working directory is read once, on the first Load; a
// missing file is not an error and never overrides variables already set.
// Parsing is done by caarlos0/env, so nested structs such as async.Config and
// eventmq.Config are filled in place without a prefix.
//
//	type Config struct {
//		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
//
//		Pool  async.Config   // ASYNC_POOL_WORKERS
//		Queue eventmq.Config // EVENTMQ_NAME, EVENTMQ_INVOKER_CACHE_SIZE
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
//	pool := async.NewPoolFromConfig(cfg.Pool)
//	mq, err := eventmq.NewFromConfig[Order](cfg.Queue, eventmq.WithPool(pool))
//
// Load returns an error wrapping ErrParsing when a variable cannot be
// converted; MustLoad panics instead and is meant for process startup.
//
// # Caching
//
// The first successful Load of a type is cached for the lifetime of the
// process. Later calls for the same type return that value even if the
// environment has changed since; distinct types are cached independently.
package config
