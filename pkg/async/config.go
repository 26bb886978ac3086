package async

// Config holds pool configuration loaded from the environment.
type Config struct {
	// Workers is the number of worker goroutines. Zero means GOMAXPROCS.
	Workers int `env:"ASYNC_POOL_WORKERS" envDefault:"0"`
}
