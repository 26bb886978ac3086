package eventmq

import "github.com/dmitrymomot/eventmq/core/weakevent"

// Args accompanies every delivered message. It carries no data.
type Args struct {
	weakevent.EventArgs
}

// Empty is the Args value passed to every handler.
var Empty = &Args{}

// Handler receives messages published to a Queue.
type Handler[T any] func(msg T, args *Args)
