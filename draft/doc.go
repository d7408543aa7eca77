// Package draft provides copy-on-write updates over immutable values.
//
// Produce hands a mutable copy of a base value to a mutator and commits the
// result as a new value that shares every untouched map, slice, pointer and
// interface with the base:
//
//	next := draft.Produce(state, func(d *State) {
//	    d.Todos = append(d.Todos, Todo{Title: "write tests"})
//	})
//	// state is unchanged; next.User == state.User when User is a pointer or map
//
// When the mutator changes nothing observable, Produce returns the base value
// itself, so reference-typed states (maps, pointers, slices) stay identical.
//
// # Limitations
//
// Values must be acyclic. Unexported struct fields, funcs and channels are
// copied shallowly: they are shared with the base and not drafted.
package draft
