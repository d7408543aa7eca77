package event

import "log/slog"

// Options holds configuration for Watch.
type Options struct {
	// Logger receives encoding failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// Option is a functional option for Watch.
type Option func(*Options)

// WithLogger sets the logger used to report states that cannot be encoded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// ApplyOptions applies the given options over the defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{Logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
