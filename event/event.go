// Package event streams store activity as events designed for 1:1 mapping
// with the AG-UI protocol: full state snapshots, JSON Patch state deltas, and
// one event per dispatched action.
package event

import (
	"time"

	"github.com/spetersoncode/reduce"
)

// Type identifies the kind of event.
type Type string

// State sync events
const (
	// StateSnapshot carries the complete JSON-shaped state.
	StateSnapshot Type = "state_snapshot"

	// StateDelta carries the RFC 6902 patches from the previous state to the current one.
	StateDelta Type = "state_delta"
)

// Dispatch events
const (
	// ActionDispatched fires after an action has passed through the store.
	ActionDispatched Type = "action_dispatched"
)

// Event represents an observable occurrence in a store.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// State contains the JSON-shaped state for StateSnapshot events.
	State any

	// Patches contains the changes for StateDelta events.
	Patches []JSONPatch

	// Action contains the dispatched action for ActionDispatched events.
	Action *reduce.Action

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Emit sends an event with timestamp to the channel (non-blocking).
func Emit(ch chan<- Event, e Event) {
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
		// Channel full - don't block
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}

// EmitSnapshot emits a StateSnapshot event.
func EmitSnapshot(ch chan<- Event, state any) {
	Emit(ch, Event{Type: StateSnapshot, State: state})
}

// EmitDelta emits a StateDelta event. Nothing is emitted without patches.
func EmitDelta(ch chan<- Event, patches ...JSONPatch) {
	if len(patches) == 0 {
		return
	}
	Emit(ch, Event{Type: StateDelta, Patches: patches})
}
