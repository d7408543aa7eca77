// Package store assembles reducers and middleware into a running state container.
//
// A Store owns the current state, serialises every dispatch, and notifies
// subscribers after each action has been reduced:
//
//	st := store.ConfigureCombined(map[string]reduce.Reducer[any]{
//	    "counter": reduce.Erase(counter.Reducer),
//	    "todos":   reduce.Erase(todos.Reducer),
//	})
//	unsubscribe := st.Subscribe(func() { fmt.Println(st.GetState()) })
//	defer unsubscribe()
//	st.Dispatch(ctx, counter.Actions["increment"].Create(nil))
//
// Unless WithMiddleware says otherwise the store runs middleware.Thunk, so
// async thunks can be dispatched directly.
package store
