package listcrypt

import (
	"runtime"

	"github.com/rs/zerolog"
)

type options struct {
	workers int
	logger  zerolog.Logger
}

// Option configures a single Encrypt or Decrypt call.
type Option func(*options)

// WithWorkers sets the number of segments the data is split into. Segments run
// concurrently up to the number of CPUs. Values below one mean one.
// The default is runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(1, n)
	}
}

// WithLogger sets a logger for debug diagnostics. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{
		workers: runtime.NumCPU(),
		logger:  zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
