package middleware

import (
	"context"

	"github.com/spetersoncode/reduce"
)

// Thunk executes reduce.Thunk commands with the store's dispatch and state
// access instead of forwarding them, and passes actions on unchanged.
func Thunk() reduce.Middleware {
	return func(api reduce.MiddlewareAPI) func(next reduce.DispatchFunc) reduce.DispatchFunc {
		return func(next reduce.DispatchFunc) reduce.DispatchFunc {
			return func(ctx context.Context, cmd reduce.Command) any {
				switch c := cmd.(type) {
				case reduce.Thunk:
					return c(ctx, api.Dispatch, api.GetState)
				default:
					return next(ctx, cmd)
				}
			}
		}
	}
}
