package demo

import (
	"log/slog"

	"github.com/spetersoncode/reduce"
	"github.com/spetersoncode/reduce/event"
	"github.com/spetersoncode/reduce/middleware"
	"github.com/spetersoncode/reduce/store"
)

// App bundles the demo store with its slices and thunks.
type App struct {
	Store     *store.Store[map[string]any]
	Counter   *reduce.Slice[Counter]
	Todos     *reduce.Slice[Todos]
	LoadTodos *reduce.AsyncThunk[string, []Todo]

	// Events receives an ActionDispatched event for every reduced action.
	Events chan event.Event
}

// New assembles the demo application around loader.
func New(loader Loader, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	load := NewLoadTodos(loader, reduce.WithRetry(reduce.DefaultRetryConfig()))
	counter := NewCounterSlice()
	todos := NewTodosSlice(load)
	events := event.NewChannel()

	st := store.ConfigureCombined(map[string]reduce.Reducer[any]{
		"counter": reduce.Erase(counter.Reducer),
		"todos":   reduce.Erase(todos.Reducer),
	},
		store.WithLogger(logger),
		store.WithMiddleware(
			middleware.Recoverer(logger),
			middleware.Thunk(),
			middleware.Logger(logger),
			event.Tap(events),
		),
	)

	return &App{
		Store:     st,
		Counter:   counter,
		Todos:     todos,
		LoadTodos: load,
		Events:    events,
	}
}

// ActionCreators returns every action creator of the demo's slices.
func (a *App) ActionCreators() []reduce.ActionCreator {
	var creators []reduce.ActionCreator
	for _, ac := range a.Counter.Actions {
		creators = append(creators, ac)
	}
	for _, ac := range a.Todos.Actions {
		creators = append(creators, ac)
	}
	return creators
}
