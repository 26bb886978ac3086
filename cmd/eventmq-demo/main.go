package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/eventmq/core/config"
	"github.com/dmitrymomot/eventmq/core/eventmq"
	"github.com/dmitrymomot/eventmq/core/logger"
	"github.com/dmitrymomot/eventmq/pkg/async"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(logger.WithProduction(cfg.AppName))
	if cfg.Debug {
		log = logger.New(logger.WithDevelopment(cfg.AppName))
	}
	consoleLog = log

	pool := async.NewPoolFromConfig(cfg.Pool, async.WithPoolLogger(log))

	mq, err := eventmq.NewFromConfig[string](cfg.Queue,
		eventmq.WithPool(pool),
		eventmq.WithLogger(log),
	)
	if err != nil {
		log.Error("Failed to create message queue", logger.Component("eventmq"), logger.Error(err))
		os.Exit(1)
	}

	if err := subscribe(mq, log); err != nil {
		log.Error("Failed to subscribe consumers", logger.Component("eventmq"), logger.Error(err))
		os.Exit(1)
	}

	mq.Publish("test1")
	mq.Publish("test2")
	mq.Publish("test3")

	// Producers race an unsubscribe: each batch reaches consumerC or not,
	// depending on when its fan-out runs.
	eg, ctx := errgroup.WithContext(ctx)
	for _, batch := range [][]string{{"7", "8", "9"}, {"10", "11", "12"}} {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mq.PublishAll(batch)
			return nil
		})
	}
	eg.Go(func() error {
		mq.Unsubscribe(consumerC)
		return nil
	})

	if err := eg.Wait(); err != nil {
		log.Warn("Publishing interrupted", logger.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	if err := pool.Close(shutdownCtx); err != nil {
		log.Warn("Worker pool did not drain in time", logger.Component("async"), logger.Error(err))
	}

	stats := mq.Stats()
	log.Info("Demo finished",
		logger.Queue(mq.Name()),
		logger.Group("stats",
			slog.Int64("published", stats.Published),
			slog.Int64("dropped", stats.Dropped),
			slog.Int64("invocations", stats.Invocations),
			slog.Int64("skipped", stats.Skipped),
			slog.Int("subscribers", stats.Subscribers)))
}

func subscribe(mq *eventmq.Queue[string], log *slog.Logger) error {
	if err := mq.Subscribe(consumerA); err != nil {
		return err
	}

	// Function literals have no stable identity and are refused.
	if err := mq.Subscribe(func(msg string, _ *eventmq.Args) {
		log.Info("message received", logger.Handler("consumerB"), slog.String("payload", msg))
	}); err != nil {
		log.Warn("Closure consumer rejected", logger.Handler("consumerB"), logger.Error(err))
	}

	if err := mq.Subscribe(consumerC); err != nil {
		return err
	}
	if err := mq.Subscribe(consumerD); err != nil {
		return err
	}
	mq.Unsubscribe(consumerD)

	// The auditor goes out of scope here; once collected it stops receiving messages.
	audit := &auditor{name: "auditor", log: log}
	if err := eventmq.SubscribeMethod(mq, audit, (*auditor).OnMessage); err != nil {
		return err
	}
	runtime.GC()

	return nil
}
