package reduce

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a dispatch target that runs thunks and records actions.
type recorder struct {
	mu      sync.Mutex
	actions []Action
	state   any
}

func (r *recorder) dispatch(ctx context.Context, cmd Command) any {
	switch c := cmd.(type) {
	case Thunk:
		return c(ctx, r.dispatch, r.getState)
	case Action:
		r.mu.Lock()
		r.actions = append(r.actions, c)
		r.mu.Unlock()
		return c
	}
	return nil
}

func (r *recorder) getState() any {
	return r.state
}

func (r *recorder) recorded() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Action(nil), r.actions...)
}

func TestCreateAsyncThunk_Tags(t *testing.T) {
	th := CreateAsyncThunk("users/fetch", func(ctx context.Context, id int) (string, error) {
		return "", nil
	})

	assert.Equal(t, "users/fetch", th.Type)
	assert.Equal(t, "users/fetch/pending", th.Pending.Type)
	assert.Equal(t, "users/fetch/fulfilled", th.Fulfilled.Type)
	assert.Equal(t, "users/fetch/rejected", th.Rejected.Type)
}

func TestAsyncThunk_Fulfilled(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	th := CreateAsyncThunk("answer", func(ctx context.Context, arg string) (int, error) {
		return 42, nil
	})

	res := th.Dispatch(ctx, rec.dispatch, "question")
	value, err := res.Unwrap(ctx)

	require.NoError(t, err)
	assert.Equal(t, 42, value)

	actions := rec.recorded()
	require.Len(t, actions, 2)
	assert.Equal(t, "answer/pending", actions[0].Type)
	assert.Nil(t, actions[0].Payload)
	assert.Equal(t, "answer/fulfilled", actions[1].Type)
	assert.Equal(t, 42, actions[1].Payload)

	pending, ok := MetaOf(actions[0])
	require.True(t, ok)
	fulfilled, ok := MetaOf(actions[1])
	require.True(t, ok)
	assert.Equal(t, StatusPending, pending.RequestStatus)
	assert.Equal(t, StatusFulfilled, fulfilled.RequestStatus)
	assert.Equal(t, "question", pending.Arg)
	assert.NotEmpty(t, pending.RequestID)
	assert.Equal(t, pending.RequestID, fulfilled.RequestID)
	assert.Equal(t, res.RequestID(), pending.RequestID)
}

func TestAsyncThunk_Rejected(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	boom := errors.New("boom")
	th := CreateAsyncThunk("fail", func(ctx context.Context, _ struct{}) (int, error) {
		return 0, boom
	})

	res := th.Dispatch(ctx, rec.dispatch, struct{}{})

	final, err := res.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fail/rejected", final.Type)
	assert.Equal(t, boom, final.Payload)

	_, err = res.Unwrap(ctx)
	assert.Same(t, boom, err)

	actions := rec.recorded()
	require.Len(t, actions, 2)
	assert.Equal(t, "fail/pending", actions[0].Type)
	meta, _ := MetaOf(actions[1])
	assert.Equal(t, StatusRejected, meta.RequestStatus)
}

func TestAsyncThunk_PendingIsDispatchedBeforeReturn(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	release := make(chan struct{})
	th := CreateAsyncThunk("slow", func(ctx context.Context, _ int) (int, error) {
		<-release
		return 1, nil
	})

	res := th.Dispatch(ctx, rec.dispatch, 0)

	actions := rec.recorded()
	require.Len(t, actions, 1)
	assert.Equal(t, "slow/pending", actions[0].Type)
	select {
	case <-res.Done():
		t.Fatal("result settled before the operation finished")
	default:
	}

	close(release)
	_, err := res.Unwrap(ctx)
	require.NoError(t, err)
	assert.Len(t, rec.recorded(), 2)
}

func TestAsyncThunk_Condition(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{state: "busy"}
	var calls atomic.Int32
	th := CreateAsyncThunk("guarded", func(ctx context.Context, _ int) (int, error) {
		calls.Add(1)
		return 1, nil
	}, WithCondition(func(arg any, getState func() any) bool {
		return getState() != "busy" && arg.(int) > 0
	}))

	_, err := th.Dispatch(ctx, rec.dispatch, 1).Wait(ctx)
	assert.ErrorIs(t, err, ErrConditionNotMet)
	assert.Empty(t, rec.recorded())

	rec.state = "idle"
	_, err = th.Dispatch(ctx, rec.dispatch, 0).Wait(ctx)
	assert.ErrorIs(t, err, ErrConditionNotMet)

	_, err = th.Dispatch(ctx, rec.dispatch, 1).Unwrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAsyncThunk_Retry(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	var calls atomic.Int32
	th := CreateAsyncThunk("flaky", func(ctx context.Context, _ int) (string, error) {
		if calls.Add(1) < 3 {
			return "", NewTransientError("try again", nil)
		}
		return "ok", nil
	}, WithRetry(RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}))

	value, err := th.Dispatch(ctx, rec.dispatch, 0).Unwrap(ctx)

	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, int32(3), calls.Load())
	assert.Len(t, rec.recorded(), 2)
}

func TestAsyncThunk_RetryStopsOnPermanentError(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	var calls atomic.Int32
	th := CreateAsyncThunk("broken", func(ctx context.Context, _ int) (string, error) {
		calls.Add(1)
		return "", NewPermanentError("bad input", nil)
	}, WithRetry(RetryConfig{MaxAttempts: 5, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}))

	_, err := th.Dispatch(ctx, rec.dispatch, 0).Unwrap(ctx)

	assert.True(t, IsPermanent(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestAsyncThunk_PanicBecomesRejection(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	th := CreateAsyncThunk("panicky", func(ctx context.Context, _ int) (int, error) {
		panic("kaboom")
	})

	_, err := th.Dispatch(ctx, rec.dispatch, 0).Unwrap(ctx)

	var perr *PanicError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "kaboom", perr.Value)

	actions := rec.recorded()
	require.Len(t, actions, 2)
	assert.Equal(t, "panicky/rejected", actions[1].Type)
}

func TestAsyncThunk_IDGenerator(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	th := CreateAsyncThunk("ids", func(ctx context.Context, _ int) (int, error) {
		return 0, nil
	}, WithIDGenerator(func() string { return "req-1" }))

	res := th.Dispatch(ctx, rec.dispatch, 0)
	_, err := res.Wait(ctx)

	require.NoError(t, err)
	assert.Equal(t, "req-1", res.RequestID())
}

func TestAsyncThunk_NotExecuted(t *testing.T) {
	ctx := context.Background()
	ignore := func(context.Context, Command) any { return nil }
	th := CreateAsyncThunk("ignored", func(ctx context.Context, _ int) (int, error) {
		return 0, nil
	})

	_, err := th.Dispatch(ctx, ignore, 0).Wait(ctx)

	assert.ErrorIs(t, err, ErrNotExecuted)
}

func TestAsyncThunk_ContextReachesPayloadCreator(t *testing.T) {
	rec := &recorder{}
	th := CreateAsyncThunk("cancellable", func(ctx context.Context, _ int) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	res := th.Dispatch(ctx, rec.dispatch, 0)
	cancel()

	_, err := res.Unwrap(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAsyncThunk_RunWithoutGetState(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	th := CreateAsyncThunk("nostate", func(ctx context.Context, _ int) (int, error) {
		return 7, nil
	}, WithCondition(func(_ any, getState func() any) bool {
		return getState() == nil
	}))

	res, ok := th.Run(0)(ctx, rec.dispatch, nil).(*Result[int])
	require.True(t, ok)

	value, err := res.Unwrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, value)
}

func TestAsyncThunk_ConcurrentInvocationsAreIndependent(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	const n = 8

	gate := make(chan struct{})
	var started sync.WaitGroup
	started.Add(n)
	th := CreateAsyncThunk("double", func(ctx context.Context, arg int) (int, error) {
		started.Done()
		<-gate
		return arg * 2, nil
	})

	results := make([]*Result[int], n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = th.Dispatch(ctx, rec.dispatch, i)
		}()
	}
	wg.Wait()
	started.Wait()
	close(gate)

	ids := make(map[string]bool, n)
	for i, res := range results {
		value, err := res.Unwrap(ctx)
		require.NoError(t, err)
		assert.Equal(t, i*2, value)
		assert.False(t, ids[res.RequestID()], "request id reused")
		ids[res.RequestID()] = true
	}

	actions := rec.recorded()
	require.Len(t, actions, 2*n)

	pendingAt := make(map[string]int)
	terminal := make(map[string]int)
	for idx, a := range actions {
		meta, ok := MetaOf(a)
		require.True(t, ok)
		switch meta.RequestStatus {
		case StatusPending:
			pendingAt[meta.RequestID] = idx
		case StatusFulfilled:
			terminal[meta.RequestID]++
			p, seen := pendingAt[meta.RequestID]
			require.True(t, seen, "terminal action before its pending action")
			assert.Less(t, p, idx)
			assert.Equal(t, meta.Arg.(int)*2, a.Payload)
		default:
			t.Fatalf("unexpected status %q", meta.RequestStatus)
		}
	}

	assert.Len(t, pendingAt, n)
	assert.Len(t, terminal, n)
	for id, count := range terminal {
		assert.True(t, ids[id])
		assert.Equal(t, 1, count)
	}
}

func TestAsyncThunk_CancelDuringBackoffRejectsWithOperationError(t *testing.T) {
	rec := &recorder{}
	flaky := NewTransientError("upstream busy", nil)
	th := CreateAsyncThunk("slow", func(ctx context.Context, _ int) (int, error) {
		return 0, flaky
	}, WithRetry(RetryConfig{MaxAttempts: 5, InitialDelay: time.Minute, MaxDelay: time.Minute, Multiplier: 1}))

	ctx, cancel := context.WithCancel(context.Background())
	res := th.Dispatch(ctx, rec.dispatch, 0)
	cancel()

	final, err := res.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "slow/rejected", final.Type)
	assert.Same(t, flaky, final.Payload)
}
