package weakevent

import (
	"reflect"
	"weak"
)

// target is a non-owning reference to the object a handler is bound to.
type target interface {
	// resolve returns the live receiver, or false if it has been reclaimed.
	resolve() (reflect.Value, bool)
	alive() bool
}

// weakTarget values are comparable: two of them are equal iff they were made
// from the same pointer.
type weakTarget[O any] struct {
	ptr weak.Pointer[O]
}

func newTarget[O any](obj *O) weakTarget[O] {
	return weakTarget[O]{ptr: weak.Make(obj)}
}

func (w weakTarget[O]) resolve() (reflect.Value, bool) {
	obj := w.ptr.Value()
	if obj == nil {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(obj), true
}

func (w weakTarget[O]) alive() bool {
	return w.ptr.Value() != nil
}
