package eventmq

import (
	"iter"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/eventmq/core/logger"
	"github.com/dmitrymomot/eventmq/core/weakevent"
	"github.com/dmitrymomot/eventmq/pkg/async"
)

// Queue delivers published messages of type T to subscribed handlers.
// Every published message becomes one fan-out task on the worker pool; the
// task calls all live handlers sequentially, in subscription order.
// Fan-outs of different messages may run concurrently and in any order.
type Queue[T any] struct {
	name     string
	registry *weakevent.Registry[Handler[T]]
	pool     *async.Pool
	logger   *slog.Logger

	published atomic.Int64
	dropped   atomic.Int64
}

// Stats provides observability metrics for a Queue.
type Stats struct {
	Published int64 // Messages scheduled for fan-out
	Dropped   int64 // Messages rejected because the pool was closed
	weakevent.Stats
}

// New creates a queue for messages of type T.
//
// Example:
//
//	mq, err := eventmq.New[string](
//		eventmq.WithName("orders"),
//		eventmq.WithLogger(log),
//	)
func New[T any](opts ...Option) (*Queue[T], error) {
	o := &options{
		name:   "default",
		logger: logger.Discard(),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.pool == nil {
		o.pool = async.Shared()
	}

	log := o.logger.With(logger.Queue(o.name))

	registry, err := weakevent.New[Handler[T]](weakevent.WithLogger(log))
	if err != nil {
		return nil, err
	}

	q := &Queue[T]{
		name:     o.name,
		registry: registry,
		pool:     o.pool,
		logger:   log,
	}

	if o.registerer != nil {
		if err := q.registerMetrics(o.registerer); err != nil {
			return nil, err
		}
	}

	return q, nil
}

// NewFromConfig creates a Queue from configuration.
// Additional options override config values.
func NewFromConfig[T any](cfg Config, opts ...Option) (*Queue[T], error) {
	weakevent.SetInvokerCacheSize(cfg.InvokerCacheSize)
	return New[T](append([]Option{WithName(cfg.Name)}, opts...)...)
}

// Subscribe registers a free function handler. A nil handler is ignored.
// Function literals and method values are rejected with ErrClosureHandler.
func (q *Queue[T]) Subscribe(h Handler[T]) error {
	return q.registry.Add(h)
}

// Unsubscribe removes the most recent subscription of h.
// Unsubscribing a handler that is not subscribed is a no-op.
func (q *Queue[T]) Unsubscribe(h Handler[T]) {
	q.registry.Remove(h)
}

// SubscribeMethod registers method bound to obj. The queue keeps obj only
// through a weak pointer: once obj is garbage collected the subscription is
// skipped and removed.
//
// Example:
//
//	_ = eventmq.SubscribeMethod(mq, consumer, (*Consumer).OnMessage)
func SubscribeMethod[O, T any](q *Queue[T], obj *O, method func(*O, T, *Args)) error {
	if method == nil {
		return nil
	}
	return weakevent.AddMethod(q.registry, obj, method)
}

// UnsubscribeMethod removes the most recent subscription of method bound to obj.
func UnsubscribeMethod[O, T any](q *Queue[T], obj *O, method func(*O, T, *Args)) {
	if method == nil {
		return
	}
	weakevent.RemoveMethod(q.registry, obj, method)
}

// Publish schedules delivery of msg to all live handlers and returns
// immediately. If the pool is closed the message is dropped and logged.
func (q *Queue[T]) Publish(msg T) {
	id := uuid.New().String()

	// Counted before submit so a fast worker never dispatches an uncounted message.
	q.published.Add(1)
	if err := q.pool.Submit(func() { q.dispatch(id, msg) }); err != nil {
		q.published.Add(-1)
		q.dropped.Add(1)
		q.logger.Warn("message dropped",
			logger.Component("eventmq"),
			logger.MessageID(id),
			logger.Error(err))
	}
}

// PublishAll publishes every message in order, as independent Publish calls.
func (q *Queue[T]) PublishAll(msgs []T) {
	q.PublishSeq(slices.Values(msgs))
}

// PublishSeq publishes every message yielded by seq, as independent Publish calls.
func (q *Queue[T]) PublishSeq(seq iter.Seq[T]) {
	for msg := range seq {
		q.Publish(msg)
	}
}

func (q *Queue[T]) dispatch(id string, msg T) {
	start := time.Now()
	q.registry.Raise(msg, Empty)
	q.logger.Debug("message dispatched",
		logger.Component("eventmq"),
		logger.MessageID(id),
		logger.Elapsed(start))
}

// Name returns the queue name.
func (q *Queue[T]) Name() string {
	return q.name
}

// Len returns the number of subscriptions, including expired ones not yet removed.
func (q *Queue[T]) Len() int {
	return q.registry.Len()
}

// Stats returns current queue statistics.
func (q *Queue[T]) Stats() Stats {
	return Stats{
		Published: q.published.Load(),
		Dropped:   q.dropped.Load(),
		Stats:     q.registry.Stats(),
	}
}
