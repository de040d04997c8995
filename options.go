package fa

import (
	"io"
	"log/slog"
)

// DefaultDeterminizeWorkLimit is a sane limit for callers that want one but don't otherwise
// know what to specify.
const DefaultDeterminizeWorkLimit = 10000

type options struct {
	workLimit int
	logger    *slog.Logger
}

// Option configures Minimize and Determinize.
type Option func(*options)

// WithWorkLimit bounds the number of subsets the powerset construction may materialize.
// Zero or a negative value means unlimited.
func WithWorkLimit(limit int) Option {
	return func(o *options) {
		o.workLimit = limit
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return o
}
