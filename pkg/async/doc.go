// Package async provides a fixed-size worker pool for fire-and-forget tasks.
//
// Submit never blocks: tasks are queued in an unbounded FIFO and picked up by
// the next idle worker. There is no ordering guarantee between tasks once more
// than one worker is running, and no result channel.
//
// # Usage
//
//	pool := async.NewPool(
//		async.WithWorkers(8),
//		async.WithPoolLogger(log),
//	)
//	defer pool.Close(context.Background())
//
//	if err := pool.Submit(func() { sendEmail(msg) }); err != nil {
//		// pool is closed
//	}
//
// # Shared Pool
//
// Shared returns a process-wide pool sized to GOMAXPROCS. It is created on
// first use and never closed; components that accept a pool fall back to it
// when none is configured.
//
// # Shutdown
//
// Close stops accepting tasks, lets workers drain everything already queued
// and waits for them. The context bounds the wait only: when it expires Close
// returns the context error while workers keep draining in the background.
//
// # Panics
//
// A panicking task is recovered and logged; the worker continues with the
// next task.
package async
