package ecs

import "github.com/rs/zerolog"

type options struct {
	logger   zerolog.Logger
	capacity int
	services any
	events   *Events
}

func defaultOptions() options {
	return options{
		logger:   zerolog.Nop(),
		capacity: MaxEntities,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a World, Scheduler or Engine. Options that do not apply
// to the value being built are ignored.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEntityCapacity sets how many entity slots every component store
// preallocates.
func WithEntityCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithServices attaches an opaque value handed to every system and state,
// typically the renderer and other frontend collaborators.
func WithServices(services any) Option {
	return func(o *options) {
		o.services = services
	}
}

// WithEvents makes a Scheduler share an existing application event registry.
func WithEvents(events *Events) Option {
	return func(o *options) {
		o.events = events
	}
}
