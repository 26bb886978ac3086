package eventmq

import "github.com/dmitrymomot/eventmq/core/weakevent"

var (
	// ErrClosureHandler is returned when subscribing a function literal or a
	// method value. Subscribe methods with SubscribeMethod instead.
	ErrClosureHandler = weakevent.ErrClosureHandler

	// ErrInvalidHandlerType is returned when a method passed to SubscribeMethod
	// does not match the handler shape.
	ErrInvalidHandlerType = weakevent.ErrInvalidHandlerType
)
