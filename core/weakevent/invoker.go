package weakevent

import (
	"fmt"
	"reflect"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultInvokerCacheSize is the number of handler invokers kept by default.
const DefaultInvokerCacheSize = 1024

// invoker performs the liveness check and the call for one handler identity.
// It reports true when the bound target has been reclaimed and the call was skipped.
type invoker func(t target, in []reflect.Value) (dead bool)

func newInvoker(fn reflect.Value, bound bool) invoker {
	if !bound {
		return func(_ target, in []reflect.Value) bool {
			fn.Call(in)
			return false
		}
	}
	return func(t target, in []reflect.Value) bool {
		recv, ok := t.resolve()
		if !ok {
			return true
		}
		fn.Call([]reflect.Value{recv, in[0], in[1]})
		return false
	}
}

// invokerCache shares invokers across registries and subscriptions.
// Invokers are pure functions of the identity, so eviction only costs a rebuild.
type invokerCache struct {
	mu      sync.Mutex
	entries *lru.Cache[identity, invoker]
}

func newInvokerCache(size int) *invokerCache {
	entries, err := lru.New[identity, invoker](size)
	if err != nil {
		panic(fmt.Sprintf("weakevent: invoker cache: %v", err))
	}
	return &invokerCache{entries: entries}
}

func (c *invokerCache) get(id identity, fn reflect.Value) invoker {
	c.mu.Lock()
	defer c.mu.Unlock()

	if inv, ok := c.entries.Get(id); ok {
		return inv
	}
	inv := newInvoker(fn, id.bound)
	c.entries.Add(id, inv)
	return inv
}

func (c *invokerCache) resize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Resize(size)
}

func (c *invokerCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

var invokers = newInvokerCache(DefaultInvokerCacheSize)

// SetInvokerCacheSize changes the number of cached handler invokers.
// Non-positive sizes are ignored.
func SetInvokerCacheSize(size int) {
	if size > 0 {
		invokers.resize(size)
	}
}
