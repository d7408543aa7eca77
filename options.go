package reduce

// AsyncOptions contains configuration for an async thunk.
type AsyncOptions struct {
	// Condition, when set, runs before anything is dispatched. Returning false
	// skips the invocation entirely.
	Condition func(arg any, getState func() any) bool

	// Retry, when set, retries transient payload creator failures before the
	// terminal action is dispatched.
	Retry *RetryConfig

	// IDGenerator produces request ids. Defaults to random UUIDs.
	IDGenerator func() string
}

// AsyncOption is a functional option for configuring async thunks.
type AsyncOption func(*AsyncOptions)

// WithCondition sets a guard evaluated with the argument and current state before each invocation.
func WithCondition(fn func(arg any, getState func() any) bool) AsyncOption {
	return func(o *AsyncOptions) {
		o.Condition = fn
	}
}

// WithRetry enables retries of transient payload creator failures.
func WithRetry(cfg RetryConfig) AsyncOption {
	return func(o *AsyncOptions) {
		o.Retry = &cfg
	}
}

// WithIDGenerator overrides how request ids are generated.
func WithIDGenerator(fn func() string) AsyncOption {
	return func(o *AsyncOptions) {
		o.IDGenerator = fn
	}
}

// ApplyAsyncOptions applies functional options to an AsyncOptions struct.
func ApplyAsyncOptions(opts ...AsyncOption) *AsyncOptions {
	o := &AsyncOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
