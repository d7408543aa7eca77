// Package middleware provides the standard dispatch middlewares for a store.
//
// Middlewares are applied in the order given to the store; the first one is
// outermost and sees every dispatched command first.
//
//	st := store.Configure[Counter](counter.Reducer, store.WithMiddleware(
//	    middleware.Recoverer(logger),
//	    middleware.Thunk(),
//	    middleware.Logger(logger),
//	))
//
// Thunk is the only middleware a store needs to run async thunks. A chain that
// omits it silently drops every Thunk command.
package middleware
