package ecs

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// InputSource returns the input events gathered since the previous call.
// It must not block.
type InputSource interface {
	Poll() ([]InputEvent, error)
}

// InputFunc adapts a function to InputSource.
type InputFunc func() ([]InputEvent, error)

// Poll calls f.
func (f InputFunc) Poll() ([]InputEvent, error) { return f() }

// Engine bundles a world, its scheduler, the application events and the
// state stack into a single game loop.
type Engine struct {
	World     *World
	Scheduler *Scheduler
	Events    *Events
	States    *StateStack

	logger zerolog.Logger
	ticks  uint64
}

// NewEngine creates an engine with an empty world and no systems.
func NewEngine(opts ...Option) *Engine {
	o := applyOptions(opts)
	events := o.events
	if events == nil {
		events = NewEvents()
	}

	world := NewWorld(WithLogger(o.logger), WithEntityCapacity(o.capacity))
	sched := NewScheduler(world,
		WithLogger(o.logger),
		WithEvents(events),
		WithServices(o.services),
	)

	return &Engine{
		World:     world,
		Scheduler: sched,
		Events:    events,
		States:    NewStateStack(sched, WithLogger(o.logger)),
		logger:    o.logger,
	}
}

// Register adds a system to the scheduler.
func (e *Engine) Register(system System) SystemId {
	return e.Scheduler.Register(system)
}

// Start pushes the first state and runs one state update so its systems are
// active before the first tick.
func (e *Engine) Start(first State) bool {
	e.States.Enqueue(first)
	return e.States.Update()
}

// Tick runs one frame: flush, systems, then the state stack. It returns
// false once no state remains.
func (e *Engine) Tick(dt float64) bool {
	e.ticks++
	e.Scheduler.Once(dt)
	return e.States.Update()
}

// Ticks returns the number of frames run.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Dispatch routes an input event to the current state and reports whether
// it asked to quit.
func (e *Engine) Dispatch(ev InputEvent) bool {
	return e.States.DispatchEvent(ev)
}

// Run ticks at a fixed interval, feeding input from poll to the current
// state, until a state asks to quit, the stack empties or ctx is cancelled.
// Cancellation is not an error.
func (e *Engine) Run(ctx context.Context, interval time.Duration, poll InputSource) error {
	if interval <= 0 {
		return eris.Errorf("engine: invalid tick interval %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			e.logger.Debug().Uint64("ticks", e.ticks).Msg("engine cancelled")
			return nil
		case now := <-ticker.C:
			if poll != nil {
				events, err := poll.Poll()
				if err != nil {
					return eris.Wrapf(err, "engine: polling input at tick %d", e.ticks)
				}
				for _, ev := range events {
					if e.Dispatch(ev) {
						e.logger.Debug().Uint64("ticks", e.ticks).Msg("quit requested")
						return nil
					}
				}
			}

			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if !e.Tick(dt) {
				e.logger.Debug().Uint64("ticks", e.ticks).Msg("state stack empty")
				return nil
			}
		}
	}
}
