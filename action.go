package reduce

// Store-internal action tags. No handler should be registered for them.
const (
	// ActionInit is reduced once when a store is created so every reducer can
	// establish its initial state.
	ActionInit = "@@reduce/INIT"

	// ActionReplace is reduced after a store's root reducer is replaced.
	ActionReplace = "@@reduce/REPLACE"
)

// Action describes an intended state transition.
// Actions are values; treat them as immutable once constructed.
type Action struct {
	// Type is the tag reducers match on.
	Type string

	// Payload carries the data of the transition. For rejected lifecycle
	// actions it is the error returned by the operation.
	Payload any

	// Meta carries out-of-band information such as AsyncMeta.
	Meta any
}

func (Action) command() {}

// Prepared is the result of a PrepareFunc.
type Prepared struct {
	Payload any
	Meta    any
}

// PrepareFunc turns the raw input of ActionCreator.Create into a payload.
type PrepareFunc func(input any) Prepared

// ActionCreator builds actions carrying a fixed tag.
type ActionCreator struct {
	// Type is the tag of every action built by this creator.
	Type string

	prepare PrepareFunc
}

// ActionOption configures an ActionCreator.
type ActionOption func(*ActionCreator)

// WithPrepare routes the input of Create through fn before it becomes the payload.
func WithPrepare(fn PrepareFunc) ActionOption {
	return func(c *ActionCreator) {
		c.prepare = fn
	}
}

// CreateAction returns an ActionCreator for the given tag.
// Uniqueness of tag is not checked.
//
// Example:
//
//	increment := reduce.CreateAction("counter/increment")
//	a := increment.Create(2) // Action{Type: "counter/increment", Payload: 2}
func CreateAction(tag string, opts ...ActionOption) ActionCreator {
	c := ActionCreator{Type: tag}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Create builds a fresh action. A panicking prepare function propagates to the caller.
func (c ActionCreator) Create(payload any) Action {
	if c.prepare == nil {
		return Action{Type: c.Type, Payload: payload}
	}
	p := c.prepare(payload)
	return Action{Type: c.Type, Payload: p.Payload, Meta: p.Meta}
}

// Match reports whether a was built for this creator's tag.
func (c ActionCreator) Match(a Action) bool {
	return a.Type == c.Type
}

// String returns the tag.
func (c ActionCreator) String() string {
	return c.Type
}

// PayloadAs returns the payload of a as T.
// Returns the zero value and false if the payload is absent or of another type.
func PayloadAs[T any](a Action) (T, bool) {
	v, ok := a.Payload.(T)
	return v, ok
}
