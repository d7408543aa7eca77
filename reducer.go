package reduce

import (
	"maps"

	"github.com/spetersoncode/reduce/draft"
)

// Reducer computes the next state from the current state and an action.
// Reduce must be pure and synchronous, and must return state itself for actions it does not handle.
type Reducer[S any] interface {
	// Initial returns the state used when no state exists yet.
	Initial() S

	// Reduce returns the next state.
	Reduce(state S, action Action) S
}

// CaseHandler mutates a draft of the state in response to an action.
// The draft is a private copy; changes are committed by the reducer.
type CaseHandler[S any] func(draft *S, action Action)

// HandlerMap maps action tags to case handlers.
type HandlerMap[S any] map[string]CaseHandler[S]

// HandlerReducer is a Reducer driven by a HandlerMap.
type HandlerReducer[S any] struct {
	initial  S
	handlers HandlerMap[S]
}

// CreateReducer builds a reducer that applies the handler registered for an
// action's tag as a copy-on-write mutation, and is the identity otherwise.
//
// Example:
//
//	r := reduce.CreateReducer(Counter{}, reduce.HandlerMap[Counter]{
//	    "counter/increment": func(d *Counter, _ reduce.Action) { d.Value++ },
//	})
func CreateReducer[S any](initial S, handlers HandlerMap[S]) *HandlerReducer[S] {
	return &HandlerReducer[S]{
		initial:  initial,
		handlers: maps.Clone(handlers),
	}
}

// Initial returns the initial state.
func (r *HandlerReducer[S]) Initial() S {
	return r.initial
}

// Reduce applies the matching handler, or returns state unchanged.
// Unchanged subtrees of state are shared with the result, and state itself is
// returned when the handler changes nothing.
func (r *HandlerReducer[S]) Reduce(state S, action Action) S {
	h, ok := r.handlers[action.Type]
	if !ok || h == nil {
		return state
	}
	return draft.Produce(state, func(d *S) {
		h(d, action)
	})
}

// Handles reports whether a handler is registered for tag.
func (r *HandlerReducer[S]) Handles(tag string) bool {
	_, ok := r.handlers[tag]
	return ok
}

// Handle returns a new reducer with h registered for tag. r is not modified.
func (r *HandlerReducer[S]) Handle(tag string, h CaseHandler[S]) *HandlerReducer[S] {
	handlers := maps.Clone(r.handlers)
	if handlers == nil {
		handlers = make(HandlerMap[S])
	}
	handlers[tag] = h
	return &HandlerReducer[S]{initial: r.initial, handlers: handlers}
}

// ReducerFunc adapts a plain function and an initial state to Reducer.
type ReducerFunc[S any] struct {
	Init S
	Fn   func(state S, action Action) S
}

// Initial returns Init.
func (f ReducerFunc[S]) Initial() S {
	return f.Init
}

// Reduce calls Fn.
func (f ReducerFunc[S]) Reduce(state S, action Action) S {
	return f.Fn(state, action)
}
