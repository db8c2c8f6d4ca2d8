package analyzer

import "time"

// Option configures an analyzer.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used to compute window boundaries.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
