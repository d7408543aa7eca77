package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/spetersoncode/reduce"
)

// Recoverer converts a panic raised further down the chain, typically by a
// reducer, into a logged error. Dispatch then returns a *reduce.PanicError and
// the store's state is left as it was before the dispatch.
func Recoverer(logger *slog.Logger) reduce.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(api reduce.MiddlewareAPI) func(next reduce.DispatchFunc) reduce.DispatchFunc {
		return func(next reduce.DispatchFunc) reduce.DispatchFunc {
			return func(ctx context.Context, cmd reduce.Command) (result any) {
				defer func() {
					if r := recover(); r != nil {
						perr := &reduce.PanicError{Value: r, Stack: debug.Stack()}
						attrs := []any{"error", perr}
						if a, ok := cmd.(reduce.Action); ok {
							attrs = append(attrs, "type", a.Type)
						}
						logger.ErrorContext(ctx, "dispatch panicked", attrs...)
						result = perr
					}
				}()
				return next(ctx, cmd)
			}
		}
	}
}
