package reduce

import "fmt"

// SliceConfig describes a namespaced piece of state.
type SliceConfig[S any] struct {
	// Name prefixes every generated tag as Name + "/" + key. Required.
	Name string

	// InitialState is the slice reducer's initial state.
	InitialState S

	// Reducers maps short handler names to case handlers. Each entry gets an
	// action creator in Slice.Actions under the same name.
	Reducers map[string]CaseHandler[S]

	// ExtraReducers maps tags produced elsewhere, such as AsyncThunk lifecycle
	// tags, to case handlers. Tags are used as is and get no action creator.
	ExtraReducers map[string]CaseHandler[S]
}

// Slice bundles a namespaced reducer with its action creators.
type Slice[S any] struct {
	Name    string
	Reducer *HandlerReducer[S]
	Actions map[string]ActionCreator
}

// CreateSlice derives tags, action creators and a reducer from cfg.
//
// It panics if cfg.Name is empty or an extra reducer tag collides with a
// generated tag; both are programming errors caught at composition time.
//
// Example:
//
//	counter := reduce.CreateSlice(reduce.SliceConfig[Counter]{
//	    Name:         "counter",
//	    InitialState: Counter{},
//	    Reducers: map[string]reduce.CaseHandler[Counter]{
//	        "increment": func(d *Counter, _ reduce.Action) { d.Value++ },
//	    },
//	})
//	counter.Actions["increment"].Type // "counter/increment"
func CreateSlice[S any](cfg SliceConfig[S]) *Slice[S] {
	if cfg.Name == "" {
		panic("reduce: CreateSlice requires a name")
	}

	actions := make(map[string]ActionCreator, len(cfg.Reducers))
	prefixed := make(HandlerMap[S], len(cfg.Reducers)+len(cfg.ExtraReducers))

	for key, h := range cfg.Reducers {
		tag := cfg.Name + "/" + key
		actions[key] = CreateAction(tag)
		prefixed[tag] = h
	}

	for tag, h := range cfg.ExtraReducers {
		if _, exists := prefixed[tag]; exists {
			panic(fmt.Sprintf("reduce: slice %q: extra reducer %q collides with a generated tag", cfg.Name, tag))
		}
		prefixed[tag] = h
	}

	return &Slice[S]{
		Name:    cfg.Name,
		Reducer: CreateReducer(cfg.InitialState, prefixed),
		Actions: actions,
	}
}

// Action returns the action creator registered under the short name.
func (s *Slice[S]) Action(name string) (ActionCreator, bool) {
	c, ok := s.Actions[name]
	return c, ok
}
