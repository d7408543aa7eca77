// Package agui exposes store activity through the AG-UI protocol.
//
// AG-UI (Agent-User Interface) is an open, lightweight, event-based protocol
// for connecting backends to user-facing applications. Its shared-state events
// are a natural fit for a state container: a STATE_SNAPSHOT carries the whole
// state, and each STATE_DELTA carries RFC 6902 patches.
//
// # Overview
//
// [Mapper] converts [event.Event] values produced by [event.Watch] and
// [event.Tap] to AG-UI events:
//
//   - event.StateSnapshot → STATE_SNAPSHOT
//   - event.StateDelta → STATE_DELTA
//   - event.ActionDispatched for an async pending action → STEP_STARTED
//   - event.ActionDispatched for an async fulfilled or rejected action → STEP_FINISHED
//   - event.ActionDispatched for any other action → CUSTOM, named by the action tag
//
// The package does NOT provide HTTP handlers; see cmd/aguiserver for an SSE server.
//
// # Usage
//
//	mapper := agui.NewMapper(threadID, runID)
//	writeEvent(mapper.RunStarted())
//	for ev := range mapper.MapStream(event.Watch(ctx, st)) {
//	    writeEvent(ev)
//	}
//	writeEvent(mapper.RunFinished())
//
// # Thread Safety
//
// A Mapper holds no mutable state and may be shared.
package agui
