package eventmq

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "eventmq"

func (q *Queue[T]) registerMetrics(reg prometheus.Registerer) error {
	reg = prometheus.WrapRegistererWith(prometheus.Labels{"queue": q.name}, reg)

	counter := func(name, help string, value func() int64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(value()) })
	}
	gauge := func(name, help string, value func() int64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(value()) })
	}

	collectors := []prometheus.Collector{
		counter("published_total", "Messages scheduled for fan-out.",
			q.published.Load),
		counter("dropped_total", "Messages dropped because the worker pool was closed.",
			q.dropped.Load),
		gauge("subscribers", "Stored subscriptions, including expired ones not yet removed.",
			func() int64 { return int64(q.registry.Len()) }),
		counter("handler_invocations_total", "Handler calls made.",
			func() int64 { return q.registry.Stats().Invocations }),
		counter("handler_skipped_total", "Handler calls skipped because the receiver was collected.",
			func() int64 { return q.registry.Stats().Skipped }),
		counter("subscribers_pruned_total", "Expired subscriptions removed.",
			func() int64 { return q.registry.Stats().Pruned }),
		counter("handler_panics_total", "Handler calls that panicked.",
			func() int64 { return q.registry.Stats().Panics }),
		gauge("pool_pending_tasks", "Fan-out tasks waiting for a worker.",
			func() int64 { return int64(q.pool.Stats().Pending) }),
	}

	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			for _, registered := range collectors[:i] {
				reg.Unregister(registered)
			}
			return fmt.Errorf("eventmq: register metrics: %w", err)
		}
	}
	return nil
}
