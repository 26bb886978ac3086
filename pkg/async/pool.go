package async

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gammazero/deque"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/eventmq/core/logger"
)

// Pool runs submitted tasks on a fixed set of worker goroutines.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  deque.Deque[func()]
	closed bool

	workers   int
	eg        errgroup.Group
	done      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger

	submitted atomic.Int64
	completed atomic.Int64
	panics    atomic.Int64
	active    atomic.Int32
}

// PoolStats provides observability metrics for a Pool.
type PoolStats struct {
	Workers   int   // Number of worker goroutines
	Pending   int   // Tasks queued but not started
	Active    int32 // Tasks currently running
	Submitted int64 // Tasks accepted since creation
	Completed int64 // Tasks finished, panicked ones included
	Panics    int64 // Tasks that panicked
	IsClosed  bool
}

// NewPool creates a pool and starts its workers.
func NewPool(opts ...PoolOption) *Pool {
	o := &poolOptions{
		workers: runtime.GOMAXPROCS(0),
		logger:  logger.Discard(),
	}

	for _, opt := range opts {
		opt(o)
	}

	p := &Pool{
		workers: o.workers,
		done:    make(chan struct{}),
		logger:  o.logger,
	}
	p.cond = sync.NewCond(&p.mu)

	for range p.workers {
		p.eg.Go(p.work)
	}

	return p
}

// NewPoolFromConfig creates a Pool from configuration.
// Additional options override config values.
func NewPoolFromConfig(cfg Config, opts ...PoolOption) *Pool {
	return NewPool(append([]PoolOption{WithWorkers(cfg.Workers)}, opts...)...)
}

var shared = sync.OnceValue(func() *Pool {
	return NewPool()
})

// Shared returns the process-wide pool.
func Shared() *Pool {
	return shared()
}

// Submit queues task for execution and returns immediately.
// Returns ErrPoolClosed if the pool has been closed. A nil task is ignored.
func (p *Pool) Submit(task func()) error {
	if task == nil {
		return nil
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.tasks.PushBack(task)
	p.submitted.Add(1)
	p.mu.Unlock()

	p.cond.Signal()
	return nil
}

func (p *Pool) work() error {
	for {
		task, ok := p.next()
		if !ok {
			return nil
		}
		p.run(task)
	}
}

// next blocks until a task is available. It reports false once the pool is
// closed and the queue is drained.
func (p *Pool) next() (func(), bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.tasks.Len() == 0 && !p.closed {
		p.cond.Wait()
	}
	if p.tasks.Len() == 0 {
		return nil, false
	}

	return p.tasks.PopFront(), true
}

func (p *Pool) run(task func()) {
	p.active.Add(1)
	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			p.logger.Error("pool task panicked",
				logger.Component("async"),
				logger.Panic(r),
				logger.Stack())
		}
		p.active.Add(-1)
		p.completed.Add(1)
	}()

	task()
}

// Close stops accepting tasks and waits until queued tasks are drained.
// If ctx is done first, Close returns its error and workers keep draining.
// Calling Close more than once is safe.
func (p *Pool) Close(ctx context.Context) error {
	start := time.Now()
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		pending := p.tasks.Len()
		p.mu.Unlock()
		p.cond.Broadcast()

		p.logger.Debug("pool closing",
			logger.Component("async"),
			logger.Count("pending", pending))

		go func() {
			_ = p.eg.Wait()
			close(p.done)
		}()
	})

	select {
	case <-p.done:
		p.logger.Debug("pool closed",
			logger.Component("async"),
			logger.Duration(time.Since(start)))
		return nil
	case <-ctx.Done():
		p.logger.Warn("pool close timed out, workers still draining",
			logger.Component("async"),
			logger.Duration(time.Since(start)),
			logger.Error(ctx.Err()))
		return ctx.Err()
	}
}

// Stats returns current pool statistics.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	pending := p.tasks.Len()
	closed := p.closed
	p.mu.Unlock()

	return PoolStats{
		Workers:   p.workers,
		Pending:   pending,
		Active:    p.active.Load(),
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Panics:    p.panics.Load(),
		IsClosed:  closed,
	}
}
