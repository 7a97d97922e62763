package ecs

import "github.com/rs/zerolog"

// UpdateFrame is what a system sees during Execute. The frame is reused
// between systems and ticks; do not retain it.
type UpdateFrame struct {
	DeltaTime float64
	World     *World
	Events    *Events
	Scheduler *Scheduler
	Services  any

	// Members is the executing system's matched entity set.
	Members *Matcher
	Logger  zerolog.Logger
}
