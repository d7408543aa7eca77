package reduce

import "context"

// Command is anything a store accepts for dispatch.
// The set of variants is closed: an Action is a synchronous state transition,
// a Thunk is a task that receives dispatch and state access.
type Command interface {
	command()
}

// DispatchFunc sends a command through a store's middleware chain.
// For an Action it returns the action; for a Thunk it returns whatever the thunk returned.
type DispatchFunc func(ctx context.Context, cmd Command) any

// Thunk is a function-valued command. Thunk middleware executes it instead of
// forwarding it to the reducer.
type Thunk func(ctx context.Context, dispatch DispatchFunc, getState func() any) any

func (Thunk) command() {}

// MiddlewareAPI is the store access handed to every middleware.
// Dispatch re-enters the full chain from the outermost middleware.
type MiddlewareAPI struct {
	Dispatch DispatchFunc
	GetState func() any
}

// Middleware wraps the dispatch of the next link in the chain.
//
// Example:
//
//	func Tracing(api reduce.MiddlewareAPI) func(next reduce.DispatchFunc) reduce.DispatchFunc {
//	    return func(next reduce.DispatchFunc) reduce.DispatchFunc {
//	        return func(ctx context.Context, cmd reduce.Command) any {
//	            return next(ctx, cmd)
//	        }
//	    }
//	}
type Middleware func(api MiddlewareAPI) func(next DispatchFunc) DispatchFunc

// Chain composes middlewares around base. The first middleware is outermost.
func Chain(api MiddlewareAPI, base DispatchFunc, middlewares ...Middleware) DispatchFunc {
	wrapped := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](api)(wrapped)
	}
	return wrapped
}
