package store

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/spetersoncode/reduce"
)

// Store holds the state of type S and applies dispatched actions to it.
// All methods are safe for concurrent use.
type Store[S any] struct {
	mu      sync.RWMutex
	reducer reduce.Reducer[S]
	state   S

	lmu       sync.Mutex
	listeners []listener
	nextID    uint64

	dispatch reduce.DispatchFunc
	logger   *slog.Logger
}

type listener struct {
	id uint64
	fn func()
}

// Configure creates a store driven by reducer.
//
// The initial state is the preloaded state if one was given and
// reducer.Initial() otherwise. reduce.ActionInit is then reduced once, without
// passing through middleware. It panics if the preloaded state is not an S.
func Configure[S any](reducer reduce.Reducer[S], opts ...Option) *Store[S] {
	o := ApplyOptions(opts...)

	state := reducer.Initial()
	if o.HasPreloadedState {
		preloaded, ok := o.PreloadedState.(S)
		if !ok {
			panic(fmt.Sprintf("store: preloaded state has type %T, want %T", o.PreloadedState, state))
		}
		state = preloaded
	}

	s := &Store[S]{
		reducer: reducer,
		state:   reducer.Reduce(state, reduce.Action{Type: reduce.ActionInit}),
		logger:  o.Logger,
	}

	s.dispatch = func(context.Context, reduce.Command) any {
		panic("store: dispatch called while constructing middleware")
	}
	api := reduce.MiddlewareAPI{
		Dispatch: func(ctx context.Context, cmd reduce.Command) any {
			return s.dispatch(ctx, cmd)
		},
		GetState: func() any {
			return s.GetState()
		},
	}
	s.dispatch = reduce.Chain(api, s.baseDispatch, o.Middleware...)

	return s
}

// ConfigureCombined creates a store over a map of independently reduced sub-states.
// A preloaded map[string]any overrides the defaults of the keys it contains.
func ConfigureCombined(reducers map[string]reduce.Reducer[any], opts ...Option) *Store[map[string]any] {
	root := reduce.Combine(reducers)

	o := ApplyOptions(opts...)
	if o.HasPreloadedState {
		preloaded, ok := o.PreloadedState.(map[string]any)
		if !ok {
			panic(fmt.Sprintf("store: preloaded state has type %T, want map[string]any", o.PreloadedState))
		}
		merged := root.Initial()
		maps.Copy(merged, preloaded)
		opts = append(opts, WithPreloadedState(merged))
	}

	return Configure[map[string]any](root, opts...)
}

// Dispatch sends cmd through the middleware chain.
//
// For an action that reaches the store the result is the action itself. For a
// thunk the result is whatever the thunk returns, such as the *reduce.Result
// of an async thunk. Reducer panics propagate and leave the state unchanged.
func (s *Store[S]) Dispatch(ctx context.Context, cmd reduce.Command) any {
	return s.dispatch(ctx, cmd)
}

// GetState returns the current state.
func (s *Store[S]) GetState() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to be called after every reduced action and returns
// a function that removes it. Calling the returned function more than once is
// harmless.
func (s *Store[S]) Subscribe(fn func()) func() {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			defer s.lmu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// ReplaceReducer swaps the root reducer and reduces reduce.ActionReplace with it.
func (s *Store[S]) ReplaceReducer(reducer reduce.Reducer[S]) {
	s.mu.Lock()
	s.reducer = reducer
	s.state = reducer.Reduce(s.state, reduce.Action{Type: reduce.ActionReplace})
	s.mu.Unlock()

	s.notify()
}

func (s *Store[S]) baseDispatch(ctx context.Context, cmd reduce.Command) any {
	action, ok := cmd.(reduce.Action)
	if !ok {
		s.logger.DebugContext(ctx, "command ignored by base dispatch; is the thunk middleware configured?",
			"command", fmt.Sprintf("%T", cmd))
		return nil
	}

	s.reduce(action)
	s.notify()
	return action
}

func (s *Store[S]) reduce(action reduce.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reducer.Reduce(s.state, action)
}

// notify calls the listeners registered at the time of the call, in order.
func (s *Store[S]) notify() {
	s.lmu.Lock()
	snapshot := make([]listener, len(s.listeners))
	copy(snapshot, s.listeners)
	s.lmu.Unlock()

	for _, l := range snapshot {
		l.fn()
	}
}
