package weakevent

import "errors"

var (
	// ErrInvalidHandlerType is returned when a handler type does not have the
	// required shape: a non-variadic func taking (sender, args) where args
	// implements Args, returning nothing.
	ErrInvalidHandlerType = errors.New("weakevent: invalid handler type")

	// ErrClosureHandler is returned when subscribing an anonymous function or a
	// method value. Their identity cannot be shared between subscriptions, and a
	// method value would keep its receiver reachable.
	ErrClosureHandler = errors.New("weakevent: cannot subscribe closure or method value")

	// ErrArgumentType is returned when raise arguments are not assignable to the
	// handler parameters.
	ErrArgumentType = errors.New("weakevent: argument type mismatch")
)
