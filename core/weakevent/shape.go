package weakevent

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"sync"
)

var argsType = reflect.TypeFor[Args]()

// shape describes a validated handler func type.
type shape struct {
	typ    reflect.Type
	sender reflect.Type
	args   reflect.Type
}

type shapeResult struct {
	shape shape
	err   error
}

// shapes memoises validation per handler type, so a bad type is diagnosed
// once and the same error is returned to every later constructor call.
var shapes sync.Map // reflect.Type -> shapeResult

func shapeOf[H any]() (shape, error) {
	t := reflect.TypeFor[H]()
	if v, ok := shapes.Load(t); ok {
		res := v.(shapeResult)
		return res.shape, res.err
	}

	res := shapeResult{shape: shape{typ: t}}
	if res.err = validateHandlerType(t); res.err == nil {
		res.shape.sender = t.In(0)
		res.shape.args = t.In(1)
	}

	v, _ := shapes.LoadOrStore(t, res)
	res = v.(shapeResult)
	return res.shape, res.err
}

func validateHandlerType(t reflect.Type) error {
	switch {
	case t.Kind() != reflect.Func:
		return fmt.Errorf("%w: %s is not a function type", ErrInvalidHandlerType, t)
	case t.IsVariadic():
		return fmt.Errorf("%w: %s must not be variadic", ErrInvalidHandlerType, t)
	case t.NumIn() != 2:
		return fmt.Errorf("%w: %s must take exactly 2 parameters", ErrInvalidHandlerType, t)
	case !t.In(1).Implements(argsType):
		return fmt.Errorf("%w: second parameter %s must embed weakevent.EventArgs", ErrInvalidHandlerType, t.In(1))
	case t.NumOut() != 0:
		return fmt.Errorf("%w: %s must not return values", ErrInvalidHandlerType, t)
	}
	return nil
}

// validateMethod checks that m is func(*O, sender, args) for the given shape.
func (s shape) validateMethod(m, recv reflect.Type) error {
	switch {
	case m.Kind() != reflect.Func:
		return fmt.Errorf("%w: method %s is not a function", ErrInvalidHandlerType, m)
	case m.IsVariadic():
		return fmt.Errorf("%w: method %s must not be variadic", ErrInvalidHandlerType, m)
	case m.NumIn() != 3:
		return fmt.Errorf("%w: method %s must take receiver and 2 parameters", ErrInvalidHandlerType, m)
	case m.In(0) != recv:
		return fmt.Errorf("%w: method receiver %s, want %s", ErrInvalidHandlerType, m.In(0), recv)
	case !s.sender.AssignableTo(m.In(1)) || !s.args.AssignableTo(m.In(2)):
		return fmt.Errorf("%w: method %s does not accept (%s, %s)", ErrInvalidHandlerType, m, s.sender, s.args)
	case m.NumOut() != 0:
		return fmt.Errorf("%w: method %s must not return values", ErrInvalidHandlerType, m)
	}
	return nil
}

// in converts raise arguments into call arguments. nil becomes the zero value
// of the parameter type.
func (s shape) in(sender any, args Args) ([]reflect.Value, error) {
	sv, err := argValue(sender, s.sender)
	if err != nil {
		return nil, err
	}
	av, err := argValue(args, s.args)
	if err != nil {
		return nil, err
	}
	return []reflect.Value{sv, av}, nil
}

func argValue(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrArgumentType, rv.Type(), t)
	}
	return rv, nil
}

// anonymous matches compiler-generated names of function literals,
// e.g. "main.main.func1" or "pkg.(*T).Run.func2.1".
var anonymous = regexp.MustCompile(`\.func\d+(\.\d+)*$`)

// identity is the stable key of a handler function.
type identity struct {
	pc    uintptr
	bound bool
}

// identify resolves the code pointer and symbol name of fn, rejecting
// functions whose code pointer does not identify a single function:
// closures, method values (-fm wrappers) and shared generic instantiations.
func identify(fn reflect.Value, bound bool) (identity, string, error) {
	pc := fn.Pointer()
	name := funcName(pc)
	switch {
	case strings.HasSuffix(name, "-fm"):
		return identity{}, name, fmt.Errorf("%w: %s", ErrClosureHandler, name)
	case anonymous.MatchString(name):
		return identity{}, name, fmt.Errorf("%w: %s", ErrClosureHandler, name)
	case strings.Contains(name, "[...]"):
		return identity{}, name, fmt.Errorf("%w: generic instantiation %s", ErrClosureHandler, name)
	}
	return identity{pc: pc, bound: bound}, name, nil
}

func funcName(pc uintptr) string {
	f := runtime.FuncForPC(pc)
	if f == nil {
		return ""
	}
	return f.Name()
}
