// Package mcp exposes a store to Model Context Protocol clients.
//
// The server offers two tools and one resource:
//
//   - get_state returns the JSON state, or the subtree at an optional JSON Pointer path
//   - dispatch dispatches an action built from a type and an optional JSON payload
//   - state://current is the JSON state as a readable resource
//
// Example:
//
//	st := store.ConfigureCombined(reducers)
//	if err := mcp.ServeStdio[map[string]any](st, mcp.WithName("todos")); err != nil {
//	    log.Fatal(err)
//	}
package mcp
