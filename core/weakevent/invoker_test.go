package weakevent

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	n    int
	name string
}

func (c *counter) Inc(sender any, _ *EventArgs) {
	c.n += sender.(int)
}

func count(sender any, _ *EventArgs) {
	*sender.(*int)++
}

func TestInvokerCache(t *testing.T) {
	t.Parallel()

	t.Run("builds once per identity", func(t *testing.T) {
		t.Parallel()
		c := newInvokerCache(4)
		fn := reflect.ValueOf(count)
		id := identity{pc: fn.Pointer()}

		c.get(id, fn)
		c.get(id, fn)
		assert.Equal(t, 1, c.len())

		method := reflect.ValueOf((*counter).Inc)
		c.get(identity{pc: method.Pointer(), bound: true}, method)
		assert.Equal(t, 2, c.len())
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		c := newInvokerCache(2)
		fn := reflect.ValueOf(count)
		for pc := range uintptr(3) {
			c.get(identity{pc: pc + 1}, fn)
		}
		assert.Equal(t, 2, c.len())

		c.resize(1)
		assert.Equal(t, 1, c.len())
	})

	t.Run("rejects non-positive size", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { newInvokerCache(0) })
	})
}

func TestInvoker(t *testing.T) {
	t.Parallel()

	t.Run("free function", func(t *testing.T) {
		t.Parallel()
		inv := newInvoker(reflect.ValueOf(count), false)
		n := 0
		dead := inv(nil, []reflect.Value{reflect.ValueOf(&n), reflect.ValueOf(Empty)})
		assert.False(t, dead)
		assert.Equal(t, 1, n)
	})

	t.Run("bound method on live receiver", func(t *testing.T) {
		t.Parallel()
		inv := newInvoker(reflect.ValueOf((*counter).Inc), true)
		c := &counter{name: "live"}
		dead := inv(newTarget(c), []reflect.Value{reflect.ValueOf(5), reflect.ValueOf(Empty)})
		assert.False(t, dead)
		assert.Equal(t, 5, c.n)
	})

	t.Run("bound method on collected receiver", func(t *testing.T) {
		t.Parallel()
		inv := newInvoker(reflect.ValueOf((*counter).Inc), true)
		var zero weakTarget[counter]
		dead := inv(zero, []reflect.Value{reflect.ValueOf(5), reflect.ValueOf(Empty)})
		assert.True(t, dead)
	})
}

func TestIdentify(t *testing.T) {
	t.Parallel()

	t.Run("top-level function", func(t *testing.T) {
		t.Parallel()
		id, name, err := identify(reflect.ValueOf(count), false)
		require.NoError(t, err)
		assert.NotZero(t, id.pc)
		assert.Contains(t, name, "weakevent.count")
	})

	t.Run("method expression", func(t *testing.T) {
		t.Parallel()
		id, name, err := identify(reflect.ValueOf((*counter).Inc), true)
		require.NoError(t, err)
		assert.True(t, id.bound)
		assert.Contains(t, name, "(*counter).Inc")
	})

	t.Run("function literal", func(t *testing.T) {
		t.Parallel()
		_, _, err := identify(reflect.ValueOf(func(any, *EventArgs) {}), false)
		assert.ErrorIs(t, err, ErrClosureHandler)
	})

	t.Run("method value", func(t *testing.T) {
		t.Parallel()
		c := &counter{}
		_, _, err := identify(reflect.ValueOf(c.Inc), false)
		assert.ErrorIs(t, err, ErrClosureHandler)
	})
}

func TestTarget(t *testing.T) {
	t.Parallel()

	a := &counter{name: "a"}
	b := &counter{name: "b"}

	var ta, tb, ta2 target = newTarget(a), newTarget(b), newTarget(a)
	assert.True(t, ta == ta2)
	assert.False(t, ta == tb)
	assert.True(t, ta.alive())

	v, ok := ta.resolve()
	require.True(t, ok)
	assert.Same(t, a, v.Interface().(*counter))
}

func TestSetInvokerCacheSize(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		SetInvokerCacheSize(0)
		SetInvokerCacheSize(-1)
		SetInvokerCacheSize(DefaultInvokerCacheSize)
	})
}
