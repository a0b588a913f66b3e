package store

import "errors"

// ErrStore reports a backend failure (connectivity, constraint violation).
// Implementations wrap it so callers can test with errors.Is without seeing
// driver detail.
var ErrStore = errors.New("store operation failed")

// Options is the resolved options bag for a single store call.
type Options struct {
	Protected bool
}

// Option customizes a single store call.
type Option func(*Options)

// Protected requests the redacted projection of the returned records.
func Protected() Option {
	return func(o *Options) { o.Protected = true }
}

// Resolve folds a call's options into an Options value.
func Resolve(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
