package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/spetersoncode/reduce"
	"github.com/spetersoncode/reduce/draft"
)

// Logger logs every action that reaches it at debug level, with its duration
// and whether the state changed. Place it after Thunk so only actions are logged.
func Logger(logger *slog.Logger) reduce.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(api reduce.MiddlewareAPI) func(next reduce.DispatchFunc) reduce.DispatchFunc {
		return func(next reduce.DispatchFunc) reduce.DispatchFunc {
			return func(ctx context.Context, cmd reduce.Command) any {
				action, ok := cmd.(reduce.Action)
				if !ok {
					return next(ctx, cmd)
				}

				start := time.Now()
				prev := api.GetState()
				result := next(ctx, cmd)

				attrs := []any{
					"type", action.Type,
					"duration", time.Since(start),
					"changed", draft.Changed(prev, api.GetState()),
				}
				if meta, ok := reduce.MetaOf(action); ok {
					attrs = append(attrs, "request_id", meta.RequestID, "status", meta.RequestStatus)
				}
				logger.DebugContext(ctx, "action dispatched", attrs...)

				return result
			}
		}
	}
}
