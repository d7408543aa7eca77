package reduce

import (
	"maps"
	"slices"

	"github.com/spetersoncode/reduce/draft"
)

// Erase adapts a typed reducer to Reducer[any] for use with Combine.
// A sub-state that is missing or of the wrong type is replaced by r.Initial().
func Erase[S any](r Reducer[S]) Reducer[any] {
	return erased[S]{r: r}
}

type erased[S any] struct {
	r Reducer[S]
}

func (e erased[S]) Initial() any {
	return e.r.Initial()
}

func (e erased[S]) Reduce(state any, action Action) any {
	s, ok := state.(S)
	if !ok {
		s = e.r.Initial()
	}
	return e.r.Reduce(s, action)
}

// CombinedReducer drives a state map whose keys each belong to one sub-reducer.
type CombinedReducer struct {
	keys     []string
	reducers map[string]Reducer[any]
}

// Combine builds a root reducer over map[string]any from per-key reducers.
//
// Each key is reduced independently. When no sub-reducer changes its sub-state
// the previous map is returned as is; otherwise a new map is returned that
// shares every unchanged sub-state. Keys without a reducer are dropped.
//
// Example:
//
//	root := reduce.Combine(map[string]reduce.Reducer[any]{
//	    "counter": reduce.Erase(counterSlice.Reducer),
//	    "todos":   reduce.Erase(todoSlice.Reducer),
//	})
func Combine(reducers map[string]Reducer[any]) *CombinedReducer {
	return &CombinedReducer{
		keys:     slices.Sorted(maps.Keys(reducers)),
		reducers: maps.Clone(reducers),
	}
}

// Keys returns the sub-state keys in sorted order.
func (c *CombinedReducer) Keys() []string {
	return slices.Clone(c.keys)
}

// Initial returns a map holding every sub-reducer's initial state.
func (c *CombinedReducer) Initial() map[string]any {
	state := make(map[string]any, len(c.keys))
	for _, k := range c.keys {
		state[k] = c.reducers[k].Initial()
	}
	return state
}

// Reduce runs every sub-reducer against its own key.
// A key missing from state starts from that sub-reducer's initial state.
func (c *CombinedReducer) Reduce(state map[string]any, action Action) map[string]any {
	next := make(map[string]any, len(c.keys))
	changed := len(state) != len(c.keys)

	for _, k := range c.keys {
		r := c.reducers[k]
		prev, ok := state[k]
		if !ok {
			prev = r.Initial()
			changed = true
		}
		sub := r.Reduce(prev, action)
		if draft.Changed(prev, sub) {
			changed = true
		}
		next[k] = sub
	}

	if !changed {
		return state
	}
	return next
}

// Select returns state[key] as T.
func Select[T any](state map[string]any, key string) (T, bool) {
	v, ok := state[key].(T)
	return v, ok
}
