package eventmq

// Config holds queue configuration loaded from the environment.
type Config struct {
	// Name labels log records and metrics of the queue.
	Name string `env:"EVENTMQ_NAME" envDefault:"default"`
	// InvokerCacheSize bounds the process-wide handler invoker cache. Zero keeps the current size.
	InvokerCacheSize int `env:"EVENTMQ_INVOKER_CACHE_SIZE" envDefault:"0"`
}
