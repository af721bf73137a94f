package marquee

import (
	"io"
	"log/slog"
)

// Observer receives counts of what the actors did. Implementations must be
// safe for concurrent use.
type Observer interface {
	// Ticked is called after the engine publishes a frame.
	Ticked()
	// CommandHandled is called once per interpreted line. The label is a
	// command word or one of the fixed labels for data and unknown lines.
	CommandHandled(label string)
	// InputRejected is called when a speed value fails to parse.
	InputRejected(err error)
}

type nopObserver struct{}

func (nopObserver) Ticked()               {}
func (nopObserver) CommandHandled(string) {}
func (nopObserver) InputRejected(error)   {}

// Option configures an actor.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	observer Observer
}

func newOptions(opts []Option) options {
	o := options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for lifecycle and input events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the observer notified of ticks and commands.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}
