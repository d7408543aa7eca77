package demo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spetersoncode/reduce"
)

// Todo is a single item of the todo list.
type Todo struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Load statuses of the todo list.
const (
	StatusIdle    = "idle"
	StatusLoading = "loading"
	StatusReady   = "ready"
	StatusFailed  = "failed"
)

// Todos is the state of the todos slice.
type Todos struct {
	Items     []Todo `json:"items"`
	NextID    int    `json:"nextId"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Loader fetches the todo list of a named list.
type Loader func(ctx context.Context, list string) ([]Todo, error)

// ErrUnknownList is returned by SeedLoader for lists it does not know.
var ErrUnknownList = errors.New("unknown todo list")

// SeedLoader returns a Loader serving fixed lists after delay.
// Loading the list "flaky" fails with a transient error.
func SeedLoader(delay time.Duration) Loader {
	lists := map[string][]Todo{
		"inbox": {
			{ID: 1, Title: "Read the reducer docs"},
			{ID: 2, Title: "Write a slice", Done: true},
		},
		"work": {
			{ID: 1, Title: "Review pull requests"},
		},
	}

	return func(ctx context.Context, list string) ([]Todo, error) {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		if list == "flaky" {
			return nil, reduce.NewTransientError("todo backend unavailable", nil)
		}
		items, ok := lists[list]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownList, list)
		}
		return append([]Todo(nil), items...), nil
	}
}

// NewLoadTodos creates the async thunk loading a list through loader.
// It declines to start while a load is already in flight.
func NewLoadTodos(loader Loader, opts ...reduce.AsyncOption) *reduce.AsyncThunk[string, []Todo] {
	notLoading := reduce.WithCondition(func(_ any, getState func() any) bool {
		root, ok := getState().(map[string]any)
		if !ok {
			return true
		}
		todos, ok := reduce.Select[Todos](root, "todos")
		return !ok || todos.Status != StatusLoading
	})

	return reduce.CreateAsyncThunk("todos/load", reduce.PayloadCreator[string, []Todo](loader),
		append([]reduce.AsyncOption{notLoading}, opts...)...)
}

// NewTodosSlice creates the todos slice, reacting to the lifecycle of load.
//
// Actions: todos/add (title), todos/toggle (id), todos/remove (id) and todos/clearDone.
func NewTodosSlice(load *reduce.AsyncThunk[string, []Todo]) *reduce.Slice[Todos] {
	return reduce.CreateSlice(reduce.SliceConfig[Todos]{
		Name:         "todos",
		InitialState: Todos{Items: []Todo{}, NextID: 1, Status: StatusIdle},
		Reducers: map[string]reduce.CaseHandler[Todos]{
			"add": func(d *Todos, a reduce.Action) {
				title, ok := stringPayload(a.Payload, "title")
				if !ok || title == "" {
					return
				}
				d.Items = append(d.Items, Todo{ID: d.NextID, Title: title})
				d.NextID++
			},
			"toggle": func(d *Todos, a reduce.Action) {
				id, _ := intPayload(a.Payload, "id")
				for i := range d.Items {
					if d.Items[i].ID == id {
						d.Items[i].Done = !d.Items[i].Done
					}
				}
			},
			"remove": func(d *Todos, a reduce.Action) {
				id, _ := intPayload(a.Payload, "id")
				kept := d.Items[:0]
				for _, t := range d.Items {
					if t.ID != id {
						kept = append(kept, t)
					}
				}
				d.Items = kept
			},
			"clearDone": func(d *Todos, _ reduce.Action) {
				kept := d.Items[:0]
				for _, t := range d.Items {
					if !t.Done {
						kept = append(kept, t)
					}
				}
				d.Items = kept
			},
		},
		ExtraReducers: map[string]reduce.CaseHandler[Todos]{
			load.Pending.Type: func(d *Todos, a reduce.Action) {
				meta, _ := reduce.MetaOf(a)
				d.Status = StatusLoading
				d.Error = ""
				d.RequestID = meta.RequestID
			},
			load.Fulfilled.Type: func(d *Todos, a reduce.Action) {
				if !isCurrent(d, a) {
					return
				}
				items, _ := reduce.PayloadAs[[]Todo](a)
				d.Items = items
				d.NextID = 1
				for _, t := range items {
					d.NextID = max(d.NextID, t.ID+1)
				}
				d.Status = StatusReady
				d.RequestID = ""
			},
			load.Rejected.Type: func(d *Todos, a reduce.Action) {
				if !isCurrent(d, a) {
					return
				}
				d.Status = StatusFailed
				if err, ok := a.Payload.(error); ok {
					d.Error = err.Error()
				}
				d.RequestID = ""
			},
		},
	})
}

// isCurrent reports whether a settles the request the state is waiting for.
func isCurrent(d *Todos, a reduce.Action) bool {
	meta, _ := reduce.MetaOf(a)
	return meta.RequestID == d.RequestID
}
