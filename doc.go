// Package reduce provides predictable state containers built from tagged
// actions and pure reducers.
//
// State changes are described by [Action] values and computed by reducers.
// Reducers written with [CreateReducer] or [CreateSlice] mutate a private
// draft of the state; the draft is committed copy-on-write, so unchanged
// subtrees keep their identity and an action that changes nothing returns the
// previous state itself.
//
// # Core Types
//
//   - [ActionCreator]: Builds actions carrying a fixed tag, optionally through a prepare function
//   - [Reducer]: Computes the next state from the current state and an action
//   - [Slice]: A namespaced reducer plus one action creator per case handler
//   - [AsyncThunk]: Sequences pending, fulfilled and rejected actions around a fallible operation
//
// A running container is assembled with the [github.com/spetersoncode/reduce/store]
// package, which serialises dispatch and runs the middleware from
// [github.com/spetersoncode/reduce/middleware].
//
// # Basic Usage
//
// Define a slice and dispatch its actions:
//
//	type Counter struct{ Value int }
//
//	counter := reduce.CreateSlice(reduce.SliceConfig[Counter]{
//	    Name:         "counter",
//	    InitialState: Counter{},
//	    Reducers: map[string]reduce.CaseHandler[Counter]{
//	        "increment": func(d *Counter, _ reduce.Action) { d.Value++ },
//	        "add": func(d *Counter, a reduce.Action) {
//	            n, _ := reduce.PayloadAs[int](a)
//	            d.Value += n
//	        },
//	    },
//	})
//
//	st := store.Configure[Counter](counter.Reducer)
//	st.Dispatch(ctx, counter.Actions["add"].Create(5))
//	fmt.Println(st.GetState().Value) // 5
//
// # Combining Reducers
//
// Independent slices are combined into a state map keyed by slice:
//
//	st := store.ConfigureCombined(map[string]reduce.Reducer[any]{
//	    "counter": reduce.Erase(counter.Reducer),
//	    "todos":   reduce.Erase(todos.Reducer),
//	})
//	c, _ := reduce.Select[Counter](st.GetState(), "counter")
//
// # Async Thunks
//
// An async thunk dispatches Pending synchronously, runs its operation on its
// own goroutine, and dispatches exactly one of Fulfilled or Rejected:
//
//	fetchUser := reduce.CreateAsyncThunk("users/fetch",
//	    func(ctx context.Context, id int) (User, error) {
//	        return api.User(ctx, id)
//	    },
//	    reduce.WithRetry(reduce.DefaultRetryConfig()),
//	)
//
//	users := reduce.CreateSlice(reduce.SliceConfig[Users]{
//	    Name: "users",
//	    ExtraReducers: map[string]reduce.CaseHandler[Users]{
//	        fetchUser.Pending.Type:   func(d *Users, _ reduce.Action) { d.Loading = true },
//	        fetchUser.Fulfilled.Type: func(d *Users, a reduce.Action) { ... },
//	        fetchUser.Rejected.Type:  func(d *Users, a reduce.Action) { ... },
//	    },
//	})
//
//	user, err := fetchUser.Dispatch(ctx, st.Dispatch, 42).Unwrap(ctx)
//
// The operation's error never escapes Dispatch; it becomes the Rejected
// payload and is returned by [Result.Unwrap].
//
// # Error Handling
//
// Payload creators may return a [CategorizedError] to steer retries:
//
//	return User{}, reduce.NewTransientErrorWithRetry("rate limited", time.Second, err)
//
// Panics in a payload creator are recovered into a [*PanicError] and reported
// as a rejection.
package reduce
