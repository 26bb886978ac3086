package weakevent

import (
	"log/slog"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/eventmq/core/logger"
)

// entry is one subscription. Entries are never mutated after creation.
type entry struct {
	id     identity
	name   string
	target target // nil for free functions
	invoke invoker
}

func (e entry) dead() bool {
	return e.target != nil && !e.target.alive()
}

// Registry is an ordered list of event handlers of type H that does not keep
// handler receivers reachable. H must be a func type taking (sender, args)
// with args implementing Args, e.g. func(sender any, args *EventArgs).
//
// Free functions are added with Add. Methods are added with AddMethod, which
// stores only a weak reference to the receiver: once the receiver is garbage
// collected its subscription is skipped and eventually dropped.
//
// All methods are safe for concurrent use.
type Registry[H any] struct {
	shape   shape
	mu      sync.Mutex
	entries []entry

	logger  *slog.Logger
	onPanic func(any)

	invocations atomic.Int64
	skipped     atomic.Int64
	pruned      atomic.Int64
	panics      atomic.Int64
}

// Stats provides observability counters for a Registry.
type Stats struct {
	Subscribers int   // Current number of stored entries, dead ones included until swept
	Invocations int64 // Handler calls made
	Skipped     int64 // Calls skipped because the bound receiver was reclaimed
	Pruned      int64 // Entries removed by dead-entry sweeps and unsubscribe scans
	Panics      int64 // Handler calls that panicked
}

// New creates a registry for handler type H.
// Returns ErrInvalidHandlerType if H does not have the handler shape.
func New[H any](opts ...Option) (*Registry[H], error) {
	s, err := shapeOf[H]()
	if err != nil {
		return nil, err
	}

	o := &options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	return &Registry[H]{
		shape:   s,
		logger:  o.logger,
		onPanic: o.onPanic,
	}, nil
}

// MustNew is like New but panics if H is not a valid handler type.
func MustNew[H any](opts ...Option) *Registry[H] {
	r, err := New[H](opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Add subscribes a free function. A nil handler is ignored.
// Anonymous functions and method values are rejected with ErrClosureHandler;
// use AddMethod to subscribe a method.
func (r *Registry[H]) Add(h H) error {
	fn := reflect.ValueOf(h)
	if !fn.IsValid() || fn.IsNil() {
		return nil
	}

	id, name, err := identify(fn, false)
	if err != nil {
		return err
	}

	r.append(entry{
		id:     id,
		name:   name,
		invoke: invokers.get(id, fn),
	})
	return nil
}

// AddMethod subscribes method bound to obj without keeping obj reachable.
// method must be a method expression such as (*Consumer).OnMessage, i.e. a
// func(*O, sender, args) matching H. Nil obj or method are ignored.
func AddMethod[O, H any](r *Registry[H], obj *O, method any) error {
	fn := reflect.ValueOf(method)
	if obj == nil || !fn.IsValid() || (fn.Kind() == reflect.Func && fn.IsNil()) {
		return nil
	}

	if err := r.shape.validateMethod(fn.Type(), reflect.TypeFor[*O]()); err != nil {
		return err
	}

	id, name, err := identify(fn, true)
	if err != nil {
		return err
	}

	r.append(entry{
		id:     id,
		name:   name,
		target: newTarget(obj),
		invoke: invokers.get(id, fn),
	})
	return nil
}

func (r *Registry[H]) append(e entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Reclaim slots before the slice has to grow.
	if len(r.entries) == cap(r.entries) {
		r.sweepLocked("subscribe")
	}
	r.entries = append(r.entries, e)
}

// Remove unsubscribes the most recently added entry of the free function h.
// Removing a handler that is not subscribed is a no-op.
func (r *Registry[H]) Remove(h H) {
	fn := reflect.ValueOf(h)
	if !fn.IsValid() || fn.IsNil() {
		return
	}
	r.remove(identity{pc: fn.Pointer()}, nil)
}

// RemoveMethod unsubscribes the most recently added entry of method bound to obj.
// Removing a subscription that does not exist is a no-op.
func RemoveMethod[O, H any](r *Registry[H], obj *O, method any) {
	fn := reflect.ValueOf(method)
	if obj == nil || !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return
	}
	r.remove(identity{pc: fn.Pointer(), bound: true}, newTarget(obj))
}

// remove scans from newest to oldest, dropping dead entries on the way, and
// removes the first entry matching id and t.
func (r *Registry[H]) remove(id identity, t target) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.target != nil {
			if !e.target.alive() {
				r.entries = slices.Delete(r.entries, i, i+1)
				r.pruned.Add(1)
				continue
			}
			if t != nil && e.target == t && e.id == id {
				r.entries = slices.Delete(r.entries, i, i+1)
				return
			}
			continue
		}
		if t == nil && e.id == id {
			r.entries = slices.Delete(r.entries, i, i+1)
			return
		}
	}
}

// Raise calls every live handler in subscription order on the calling
// goroutine. Handlers whose receiver has been reclaimed are skipped, and the
// registry is swept afterwards. A panicking handler is logged and does not
// prevent the remaining handlers from running.
//
// Raise iterates over a snapshot, so handlers may subscribe or unsubscribe
// concurrently without affecting the current call.
func (r *Registry[H]) Raise(sender any, args Args) {
	in, err := r.shape.in(sender, args)
	if err != nil {
		r.logger.Error("event raise rejected",
			logger.Component("weakevent"),
			logger.Error(err))
		return
	}

	r.mu.Lock()
	snapshot := slices.Clone(r.entries)
	r.mu.Unlock()

	needsCleanup := false
	for _, e := range snapshot {
		if r.call(e, in) {
			needsCleanup = true
		}
	}

	if needsCleanup {
		r.sweep("raise")
	}
}

func (r *Registry[H]) call(e entry, in []reflect.Value) (dead bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.panics.Add(1)
			r.logger.Error("event handler panicked",
				logger.Component("weakevent"),
				logger.Handler(e.name),
				logger.Panic(rec))
			if r.onPanic != nil {
				r.onPanic(rec)
			}
		}
	}()

	if e.invoke(e.target, in) {
		r.skipped.Add(1)
		return true
	}
	r.invocations.Add(1)
	return false
}

func (r *Registry[H]) sweep(trigger string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked(trigger)
}

func (r *Registry[H]) sweepLocked(trigger string) {
	before := len(r.entries)
	r.entries = slices.DeleteFunc(r.entries, entry.dead)
	if n := before - len(r.entries); n > 0 {
		r.pruned.Add(int64(n))
		r.logger.Debug("dead subscribers removed",
			logger.Component("weakevent"),
			logger.Action(trigger),
			logger.Count("removed", n),
			logger.Count("remaining", len(r.entries)))
	}
}

// Len returns the number of stored entries, including dead ones not yet swept.
func (r *Registry[H]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Stats returns current registry statistics.
func (r *Registry[H]) Stats() Stats {
	return Stats{
		Subscribers: r.Len(),
		Invocations: r.invocations.Load(),
		Skipped:     r.skipped.Load(),
		Pruned:      r.pruned.Load(),
		Panics:      r.panics.Load(),
	}
}
