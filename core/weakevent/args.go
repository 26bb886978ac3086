package weakevent

// Args is implemented by every event-arguments type. A type satisfies it by
// embedding EventArgs.
//
//	type OrderArgs struct {
//		weakevent.EventArgs
//	}
type Args interface {
	eventArgs()
}

// EventArgs is the base event-arguments marker. It carries no data.
type EventArgs struct{}

func (EventArgs) eventArgs() {}

// Empty is the shared empty event-arguments value.
var Empty = &EventArgs{}
