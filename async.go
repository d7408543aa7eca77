package reduce

import (
	"context"
	"errors"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/spetersoncode/reduce/internal/retry"
)

// ErrNotExecuted is reported by a Result when the dispatched thunk never ran,
// which happens when the store's middleware chain has no thunk middleware.
var ErrNotExecuted = errors.New("thunk was not executed by the middleware chain")

// Request statuses carried by AsyncMeta.
const (
	StatusPending   = "pending"
	StatusFulfilled = "fulfilled"
	StatusRejected  = "rejected"
)

// AsyncMeta is attached as Action.Meta to every lifecycle action.
type AsyncMeta struct {
	// RequestID is shared by the pending and terminal action of one invocation.
	RequestID string

	// Arg is the argument the thunk was run with.
	Arg any

	// RequestStatus is one of StatusPending, StatusFulfilled or StatusRejected.
	RequestStatus string
}

// MetaOf returns the AsyncMeta of a lifecycle action.
func MetaOf(a Action) (AsyncMeta, bool) {
	m, ok := a.Meta.(AsyncMeta)
	return m, ok
}

// PayloadCreator performs the asynchronous operation of an AsyncThunk.
type PayloadCreator[A, R any] func(ctx context.Context, arg A) (R, error)

// AsyncThunk sequences pending, fulfilled and rejected actions around a fallible operation.
type AsyncThunk[A, R any] struct {
	// Type is the base tag.
	Type string

	// Pending is tagged Type + "/pending".
	Pending ActionCreator

	// Fulfilled is tagged Type + "/fulfilled"; its payload is the operation's result.
	Fulfilled ActionCreator

	// Rejected is tagged Type + "/rejected"; its payload is the operation's error.
	Rejected ActionCreator

	payloadCreator PayloadCreator[A, R]
	opts           *AsyncOptions
}

// CreateAsyncThunk derives the three lifecycle action creators for typ and
// binds them to fn.
//
// Example:
//
//	fetchUser := reduce.CreateAsyncThunk("users/fetch",
//	    func(ctx context.Context, id int) (User, error) {
//	        return api.User(ctx, id)
//	    },
//	)
//	res := fetchUser.Dispatch(ctx, st.Dispatch, 42)
//	user, err := res.Unwrap(ctx)
func CreateAsyncThunk[A, R any](typ string, fn PayloadCreator[A, R], opts ...AsyncOption) *AsyncThunk[A, R] {
	o := ApplyAsyncOptions(opts...)
	if o.IDGenerator == nil {
		o.IDGenerator = uuid.NewString
	}

	return &AsyncThunk[A, R]{
		Type:           typ,
		Pending:        CreateAction(typ + "/pending"),
		Fulfilled:      CreateAction(typ + "/fulfilled"),
		Rejected:       CreateAction(typ + "/rejected"),
		payloadCreator: fn,
		opts:           o,
	}
}

// Run returns a thunk invoking the operation with arg.
//
// When executed the thunk dispatches Pending before it returns, starts the
// operation on its own goroutine, and dispatches exactly one of Fulfilled or
// Rejected once the operation settles. It returns a *Result[R] immediately.
// Operation errors never escape the thunk; they become the Rejected payload.
func (t *AsyncThunk[A, R]) Run(arg A) Thunk {
	return func(ctx context.Context, dispatch DispatchFunc, getState func() any) any {
		return t.execute(ctx, arg, dispatch, getState)
	}
}

// Dispatch sends Run(arg) through dispatch and returns the typed result handle.
// If the middleware chain did not execute the thunk the returned Result is
// already settled with ErrNotExecuted.
func (t *AsyncThunk[A, R]) Dispatch(ctx context.Context, dispatch DispatchFunc, arg A) *Result[R] {
	if res, ok := dispatch(ctx, t.Run(arg)).(*Result[R]); ok {
		return res
	}
	res := newResult[R]("")
	res.settle(Action{}, ErrNotExecuted)
	return res
}

func (t *AsyncThunk[A, R]) execute(ctx context.Context, arg A, dispatch DispatchFunc, getState func() any) *Result[R] {
	if getState == nil {
		getState = func() any { return nil }
	}

	res := newResult[R](t.opts.IDGenerator())

	if t.opts.Condition != nil && !t.opts.Condition(arg, getState) {
		res.settle(Action{}, ErrConditionNotMet)
		return res
	}

	pending := t.Pending.Create(nil)
	pending.Meta = t.meta(res.requestID, arg, StatusPending)
	dispatch(ctx, pending)

	go func() {
		var final Action
		var waitErr error
		defer func() {
			if r := recover(); r != nil {
				waitErr = &PanicError{Value: r, Stack: debug.Stack()}
			}
			res.settle(final, waitErr)
		}()

		value, err := t.call(ctx, arg)
		if err != nil {
			final = t.Rejected.Create(err)
			final.Meta = t.meta(res.requestID, arg, StatusRejected)
		} else {
			final = t.Fulfilled.Create(value)
			final.Meta = t.meta(res.requestID, arg, StatusFulfilled)
		}
		dispatch(ctx, final)
	}()

	return res
}

// call runs the payload creator, converting panics to errors and applying the retry policy.
func (t *AsyncThunk[A, R]) call(ctx context.Context, arg A) (R, error) {
	invoke := func() (value R, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
		return t.payloadCreator(ctx, arg)
	}

	if t.opts.Retry == nil {
		return invoke()
	}
	return retry.Do(ctx, t.opts.Retry.internal(), invoke)
}

func (t *AsyncThunk[A, R]) meta(requestID string, arg A, status string) AsyncMeta {
	return AsyncMeta{RequestID: requestID, Arg: arg, RequestStatus: status}
}

// Result is the handle of one async thunk invocation.
type Result[R any] struct {
	requestID string
	done      chan struct{}
	action    Action
	err       error
}

func newResult[R any](requestID string) *Result[R] {
	return &Result[R]{
		requestID: requestID,
		done:      make(chan struct{}),
	}
}

func (r *Result[R]) settle(action Action, err error) {
	r.action = action
	r.err = err
	close(r.done)
}

// RequestID returns the id carried by this invocation's lifecycle actions.
func (r *Result[R]) RequestID() string {
	return r.requestID
}

// Done is closed once the terminal action has been dispatched, or the
// invocation was skipped.
func (r *Result[R]) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the invocation settles and returns the terminal action.
//
// A rejected operation is not an error here: the Rejected action is returned
// with a nil error. Wait returns an error only when the invocation was skipped
// (ErrConditionNotMet), never executed (ErrNotExecuted), the terminal dispatch
// panicked (*PanicError), or ctx ended first.
func (r *Result[R]) Wait(ctx context.Context) (Action, error) {
	select {
	case <-r.done:
		return r.action, r.err
	case <-ctx.Done():
		return Action{}, ctx.Err()
	}
}

// Unwrap waits for the invocation and returns the fulfilled value or the rejection error.
func (r *Result[R]) Unwrap(ctx context.Context) (R, error) {
	var zero R

	action, err := r.Wait(ctx)
	if err != nil {
		return zero, err
	}

	meta, _ := MetaOf(action)
	if meta.RequestStatus == StatusRejected {
		if opErr, ok := action.Payload.(error); ok {
			return zero, opErr
		}
		return zero, errors.New("async thunk rejected")
	}

	value, _ := action.Payload.(R)
	return value, nil
}
