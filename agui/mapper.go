package agui

import (
	"strings"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/spetersoncode/reduce"
	"github.com/spetersoncode/reduce/event"
)

// Mapper converts store events to AG-UI events.
// Each store event maps to at most one AG-UI event.
type Mapper struct {
	threadID string
	runID    string
}

// NewMapper creates a new Mapper for a single run.
// The threadID and runID are used in lifecycle events (RUN_STARTED, RUN_FINISHED).
func NewMapper(threadID, runID string) *Mapper {
	if threadID == "" {
		threadID = events.GenerateThreadID()
	}
	if runID == "" {
		runID = events.GenerateRunID()
	}
	return &Mapper{
		threadID: threadID,
		runID:    runID,
	}
}

// ThreadID returns the thread ID for this mapper.
func (m *Mapper) ThreadID() string {
	return m.threadID
}

// RunID returns the run ID for this mapper.
func (m *Mapper) RunID() string {
	return m.runID
}

// RunStarted returns a RUN_STARTED event.
func (m *Mapper) RunStarted() events.Event {
	return events.NewRunStartedEvent(m.threadID, m.runID)
}

// RunFinished returns a RUN_FINISHED event.
func (m *Mapper) RunFinished() events.Event {
	return events.NewRunFinishedEvent(m.threadID, m.runID)
}

// RunError returns a RUN_ERROR event.
func (m *Mapper) RunError(err error) events.Event {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return events.NewRunErrorEvent(msg)
}

// StateSnapshot returns a STATE_SNAPSHOT event for state.
func (m *Mapper) StateSnapshot(state any) events.Event {
	return events.NewStateSnapshotEvent(state)
}

// StateDelta returns a STATE_DELTA event carrying patches.
func (m *Mapper) StateDelta(patches ...event.JSONPatch) events.Event {
	ops := make([]events.JSONPatchOperation, len(patches))
	for i, p := range patches {
		ops[i] = events.JSONPatchOperation{
			Op:    string(p.Op),
			Path:  p.Path,
			Value: p.Value,
		}
	}
	return events.NewStateDeltaEvent(ops)
}

// MapEvent converts a store event to an AG-UI event.
// Returns nil for events that have no AG-UI equivalent.
func (m *Mapper) MapEvent(e event.Event) events.Event {
	switch e.Type {
	case event.StateSnapshot:
		return m.StateSnapshot(e.State)
	case event.StateDelta:
		return m.StateDelta(e.Patches...)
	case event.ActionDispatched:
		if e.Action == nil {
			return nil
		}
		return m.mapAction(*e.Action)
	default:
		return nil
	}
}

// mapAction reports async lifecycle actions as steps named after the thunk's
// base tag and every other action as a custom event.
func (m *Mapper) mapAction(a reduce.Action) events.Event {
	meta, ok := reduce.MetaOf(a)
	if !ok {
		return events.NewCustomEvent(a.Type, events.WithValue(a.Payload))
	}

	step := strings.TrimSuffix(a.Type, "/"+meta.RequestStatus)
	switch meta.RequestStatus {
	case reduce.StatusPending:
		return events.NewStepStartedEvent(step)
	case reduce.StatusFulfilled, reduce.StatusRejected:
		return events.NewStepFinishedEvent(step)
	default:
		return nil
	}
}

// MapStream maps every event from in and forwards the non-nil results.
// The returned channel is closed once in is closed.
func (m *Mapper) MapStream(in <-chan event.Event) <-chan events.Event {
	out := make(chan events.Event, 100)
	go func() {
		defer close(out)
		for e := range in {
			if ev := m.MapEvent(e); ev != nil {
				out <- ev
			}
		}
	}()
	return out
}
