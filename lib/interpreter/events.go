package interpreter

import "fmt"

// EventKind discriminates the runtime-output events a program emits.
type EventKind int

const (
	EventDeclared EventKind = iota
	EventAssigned
	EventPrint
)

// Event is one entry on the runtime-output channel. ID is meaningful for
// declared/assigned events only.
type Event struct {
	Kind  EventKind
	ID    int
	Value int
}

func (e Event) String() string {
	switch e.Kind {
	case EventDeclared:
		return fmt.Sprintf("Declared var[%d] = %d", e.ID, e.Value)
	case EventAssigned:
		return fmt.Sprintf("Assigned var[%d] = %d", e.ID, e.Value)
	case EventPrint:
		return fmt.Sprintf("Print: %d", e.Value)
	}
	return fmt.Sprintf("unknown event %d", int(e.Kind))
}
