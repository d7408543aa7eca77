// Package demo wires a small counter and todo-list application used by the
// binaries under cmd/. It shows slices, extra reducers driven by an async
// thunk, and a store assembled with the standard middleware.
package demo
