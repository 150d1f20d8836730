package snapshot

import (
	"io"
	"log/slog"
	"time"
)

// DefaultFanoutLimit bounds concurrent backend calls within one fan-out.
const DefaultFanoutLimit = 8

type options struct {
	logger      *slog.Logger
	fanoutLimit int
	now         func() time.Time
}

// Option configures an Exporter or Importer.
type Option func(*options)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFanoutLimit caps concurrent backend calls per fan-out. Values
// below one are ignored.
func WithFanoutLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.fanoutLimit = n
		}
	}
}

// WithClock overrides the export timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		fanoutLimit: DefaultFanoutLimit,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
