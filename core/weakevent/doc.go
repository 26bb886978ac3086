// Package weakevent provides an ordered event-handler registry that does not
// keep handler receivers alive.
//
// A Registry is parameterised by a handler func type taking a sender and an
// arguments value whose type embeds EventArgs:
//
//	type Handler func(sender any, args *weakevent.EventArgs)
//
//	reg, err := weakevent.New[Handler]()
//	if err != nil {
//		// Handler does not have the required shape
//	}
//
// Free functions are subscribed with Add. Methods are subscribed with
// AddMethod using a method expression plus the receiver; the registry holds
// the receiver through a weak pointer only:
//
//	type Audit struct{ log *slog.Logger }
//
//	func (a *Audit) OnEvent(sender any, args *weakevent.EventArgs) { ... }
//
//	audit := &Audit{log: log}
//	_ = weakevent.AddMethod(reg, audit, (*Audit).OnEvent)
//
//	reg.Raise("order.created", weakevent.Empty)
//
// When audit becomes unreachable and is collected, Raise skips the
// subscription and the registry drops it on the next sweep. Zero-sized
// receivers are never collected and therefore never expire.
//
// # Handler identity
//
// Subscriptions are identified by the function's code pointer, which is also
// the key of a process-wide cache of invokers (see SetInvokerCacheSize).
// Function literals and method values do not have an identity of their own
// and are rejected with ErrClosureHandler; a method value would also keep its
// receiver reachable, defeating the weak reference.
//
// # Raising
//
// Raise calls handlers synchronously, in subscription order, over a snapshot
// of the registry. A panicking handler is recovered and logged; the remaining
// handlers still run.
package weakevent
