package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	aguievents "github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/spetersoncode/reduce"
	"github.com/spetersoncode/reduce/agui"
	"github.com/spetersoncode/reduce/event"
	"github.com/spetersoncode/reduce/internal/demo"
)

// EventsHandler streams the demo store as AG-UI events over SSE.
type EventsHandler struct {
	app     *demo.App
	actions *event.Broadcaster
}

// NewEventsHandler creates a handler streaming app's state and the actions published by actions.
func NewEventsHandler(app *demo.App, actions *event.Broadcaster) *EventsHandler {
	return &EventsHandler{app: app, actions: actions}
}

// ServeHTTP handles GET requests and streams events until the client disconnects.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodGet {
		slog.Warn("method not allowed", "method", r.Method, "path", r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mapper := agui.NewMapper(r.URL.Query().Get("thread_id"), r.URL.Query().Get("run_id"))

	// Create request-scoped logger
	log := slog.With(
		"run_id", mapper.RunID(),
		"thread_id", mapper.ThreadID(),
	)

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("streaming not supported")
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	log.Info("stream started")

	ctx := r.Context()
	if err := writeSSE(w, flusher, mapper.RunStarted()); err != nil {
		log.Error("failed to write SSE event", "error", err)
		return
	}

	in := merge(event.Watch(ctx, h.app.Store), h.actions.Subscribe(ctx))

	stream := mapper.MapStream(in)
	defer func() {
		// unblock the producers until ctx ends and they close
		go func() {
			for range stream {
			}
		}()
	}()

	var eventCount int
	for aguiEvent := range stream {
		eventCount++
		log.Debug("sending SSE event",
			"event_type", aguiEvent.Type(),
			"event_num", eventCount,
		)

		if err := writeSSE(w, flusher, aguiEvent); err != nil {
			log.Debug("client gone", "error", err, "event_type", aguiEvent.Type())
			break
		}
	}

	log.Info("stream ended",
		"duration_ms", time.Since(start).Milliseconds(),
		"events_sent", eventCount,
	)
}

// merge forwards every event of the inputs to one channel, closed once all inputs are closed.
func merge(inputs ...<-chan event.Event) <-chan event.Event {
	out := event.NewChannel()
	var wg sync.WaitGroup
	for _, in := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range in {
				out <- e
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// DispatchRequest is the body of POST /dispatch.
type DispatchRequest struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// LoadRequest is the body of POST /load.
type LoadRequest struct {
	List string `json:"list"`
}

// DispatchHandler applies actions and starts loads on the demo store.
type DispatchHandler struct {
	app     *demo.App
	allowed map[string]bool
}

// NewDispatchHandler creates a handler accepting the demo's slice actions.
func NewDispatchHandler(app *demo.App) *DispatchHandler {
	allowed := make(map[string]bool)
	for _, ac := range app.ActionCreators() {
		allowed[ac.Type] = true
	}
	return &DispatchHandler{app: app, allowed: allowed}
}

// Dispatch handles POST /dispatch and responds with the resulting state.
func (h *DispatchHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("invalid request body", "error", err)
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !h.allowed[req.Type] {
		http.Error(w, fmt.Sprintf("unknown action type: %q", req.Type), http.StatusBadRequest)
		return
	}

	result := h.app.Store.Dispatch(r.Context(), reduce.Action{Type: req.Type, Payload: req.Payload})
	if perr, ok := result.(*reduce.PanicError); ok {
		http.Error(w, perr.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, h.app.Store.GetState())
}

// Load handles POST /load. It starts loading a todo list and responds with the
// request id without waiting; progress is visible on the event stream.
func (h *DispatchHandler) Load(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	// the load outlives the request
	res := h.app.LoadTodos.Dispatch(context.WithoutCancel(r.Context()), h.app.Store.Dispatch, req.List)

	select {
	case <-res.Done():
		if _, err := res.Wait(r.Context()); err != nil {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
	default:
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"requestId": res.RequestID()})
}

// writeSSE writes an AG-UI event in SSE format.
func writeSSE(w http.ResponseWriter, flusher http.Flusher, ev aguievents.Event) error {
	data, err := ev.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	// Write SSE format: event: TYPE\ndata: {json}\n\n
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type(), string(data)); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	flusher.Flush()
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// corsMiddleware adds CORS headers for cross-origin frontend requests.
func corsMiddleware(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
