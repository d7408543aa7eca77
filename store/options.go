package store

import (
	"log/slog"

	"github.com/spetersoncode/reduce"
	"github.com/spetersoncode/reduce/middleware"
)

// Options holds the configuration for a store.
type Options struct {
	// Middleware is the dispatch chain, outermost first.
	Middleware []reduce.Middleware

	// PreloadedState seeds the store when HasPreloadedState is set.
	PreloadedState    any
	HasPreloadedState bool

	// Logger receives store diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Option is a functional option for configuring a store.
type Option func(*Options)

// WithMiddleware replaces the default middleware chain. The first middleware
// is outermost. Passing none leaves only the base dispatch, which cannot run thunks.
func WithMiddleware(mw ...reduce.Middleware) Option {
	return func(o *Options) {
		o.Middleware = mw
	}
}

// WithPreloadedState seeds the store with state instead of the reducer's
// initial state. For a combined store state must be a map[string]any, and
// only the keys it contains override the sub-reducer defaults.
func WithPreloadedState(state any) Option {
	return func(o *Options) {
		o.PreloadedState = state
		o.HasPreloadedState = true
	}
}

// WithLogger sets the logger used for store diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// ApplyOptions applies the given options over the defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		Middleware: []reduce.Middleware{middleware.Thunk()},
		Logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
