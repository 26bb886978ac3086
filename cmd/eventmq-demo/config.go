package main

import (
	"time"

	"github.com/dmitrymomot/eventmq/core/eventmq"
	"github.com/dmitrymomot/eventmq/pkg/async"
)

// Config is the demo configuration loaded from the environment.
type Config struct {
	AppName         string        `env:"APP_NAME" envDefault:"eventmq-demo"`
	Debug           bool          `env:"DEBUG" envDefault:"true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	Pool  async.Config
	Queue eventmq.Config
}
