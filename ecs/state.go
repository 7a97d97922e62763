package ecs

import (
	"fmt"

	"github.com/rs/zerolog"
)

// InputEvent is whatever the frontend's input source produces. The core
// only routes it to the current state.
type InputEvent = any

// State is an exclusive application mode such as playing or paused. Only
// the state on top of the stack is updated and receives input.
type State interface {
	// Systems lists the systems that must be active while the state is on
	// top.
	Systems() []SystemType

	// OnEnter is called when the state becomes the top. created is true the
	// first time, false when a state above it was popped.
	OnEnter(ctx *StateContext, created bool)

	// OnEvent receives input while the state is on top. Returning true asks
	// the application to terminate.
	OnEvent(ev InputEvent) bool

	// Update runs once per tick after the systems. Returning false finishes
	// the state and pops it.
	Update(ctx *StateContext) bool

	// OnLeave is called when another state is pushed on top (destroyed is
	// false) or when the state is popped (destroyed is true).
	OnLeave(ctx *StateContext, destroyed bool)
}

// StateContext is what states see in their callbacks.
type StateContext struct {
	World     *World
	Scheduler *Scheduler
	Events    *Events
	Services  any
	Logger    zerolog.Logger

	stack *StateStack
}

// Enqueue schedules next to be pushed at the start of the following
// StateStack.Update.
func (ctx *StateContext) Enqueue(next State) {
	ctx.stack.Enqueue(next)
}

type stackedState struct {
	state State
	mask  Mask
}

// StateStack drives state transitions and keeps the scheduler's active
// systems in line with the top state's system set.
type StateStack struct {
	sched   *Scheduler
	logger  zerolog.Logger
	states  []stackedState
	pending State
	ctx     StateContext
}

// NewStateStack creates an empty stack that toggles systems on sched.
func NewStateStack(sched *Scheduler, opts ...Option) *StateStack {
	o := applyOptions(opts)
	ss := &StateStack{
		sched:  sched,
		logger: o.logger,
	}
	ss.ctx = StateContext{
		World:     sched.world,
		Scheduler: sched,
		Events:    sched.events,
		Services:  sched.services,
		Logger:    o.logger,
		stack:     ss,
	}
	return ss
}

// Enqueue stores a pending transition. A later Enqueue before the next
// Update replaces it.
func (ss *StateStack) Enqueue(next State) {
	ss.pending = next
}

// Context returns the context handed to state callbacks.
func (ss *StateStack) Context() *StateContext {
	return &ss.ctx
}

// Len returns the number of stacked states.
func (ss *StateStack) Len() int {
	return len(ss.states)
}

// Top returns the current state, or nil if the stack is empty.
func (ss *StateStack) Top() State {
	if len(ss.states) == 0 {
		return nil
	}
	return ss.states[len(ss.states)-1].state
}

// Pending returns the enqueued state not yet pushed, or nil.
func (ss *StateStack) Pending() State {
	return ss.pending
}

// Update pushes a pending state, then updates the top state and pops it if
// it reports completion. A state that enqueues a successor and finishes in
// the same Update is replaced by it directly: the systems both share stay
// active and the state below is not resumed in between. Update returns false
// once the stack is empty, which callers treat as program exit.
func (ss *StateStack) Update() bool {
	if next := ss.pending; next != nil {
		ss.pending = nil
		ss.push(next)
	}

	if len(ss.states) == 0 {
		return false
	}

	top := ss.states[len(ss.states)-1]
	if !top.state.Update(&ss.ctx) {
		if next := ss.pending; next != nil {
			ss.pending = nil
			ss.replace(next)
		} else {
			ss.pop()
		}
	}
	return len(ss.states) > 0
}

func (ss *StateStack) push(next State) {
	mask := ss.maskOf(next)

	var prev Mask
	if n := len(ss.states); n > 0 {
		top := ss.states[n-1]
		top.state.OnLeave(&ss.ctx, false)
		prev = top.mask
	}

	ss.states = append(ss.states, stackedState{state: next, mask: mask})
	ss.apply(prev, mask)

	ss.logger.Debug().
		Str("state", stateName(next)).
		Int("depth", len(ss.states)).
		Stringer("systems", mask).
		Msg("state pushed")

	next.OnEnter(&ss.ctx, true)
}

func (ss *StateStack) replace(next State) {
	n := len(ss.states)
	done := ss.states[n-1]
	done.state.OnLeave(&ss.ctx, true)

	mask := ss.maskOf(next)
	ss.states[n-1] = stackedState{state: next, mask: mask}
	ss.apply(done.mask, mask)

	ss.logger.Debug().
		Str("state", stateName(next)).
		Str("replaced", stateName(done.state)).
		Int("depth", n).
		Stringer("systems", mask).
		Msg("state replaced")

	next.OnEnter(&ss.ctx, true)
}

func (ss *StateStack) pop() {
	n := len(ss.states)
	done := ss.states[n-1]
	ss.states[n-1] = stackedState{}
	ss.states = ss.states[:n-1]

	done.state.OnLeave(&ss.ctx, true)

	var next Mask
	if len(ss.states) > 0 {
		next = ss.states[len(ss.states)-1].mask
	}
	ss.apply(done.mask, next)

	ss.logger.Debug().
		Str("state", stateName(done.state)).
		Int("depth", len(ss.states)).
		Msg("state popped")

	if len(ss.states) > 0 {
		ss.states[len(ss.states)-1].state.OnEnter(&ss.ctx, false)
	}
}

// apply enables the systems in next but not prev and disables those in prev
// but not next. Systems present in both are left alone.
func (ss *StateStack) apply(prev, next Mask) {
	next.AndNot(prev).ForEach(func(id TypeId) {
		ss.sched.Enable(id)
	})
	prev.AndNot(next).ForEach(func(id TypeId) {
		ss.sched.Disable(id)
	})
}

func (ss *StateStack) maskOf(s State) Mask {
	var m Mask
	for _, st := range s.Systems() {
		id, ok := ss.sched.Lookup(st)
		if !ok {
			ss.logger.Warn().
				Str("state", stateName(s)).
				Stringer("system", st).
				Msg("state requires an unregistered system")
			continue
		}
		m.Set(id)
	}
	return m
}

// DispatchEvent routes ev to the top state. It returns true if the state
// asks the application to terminate.
func (ss *StateStack) DispatchEvent(ev InputEvent) bool {
	top := ss.Top()
	if top == nil {
		return false
	}
	return top.OnEvent(ev)
}

func stateName(s State) string {
	return fmt.Sprintf("%T", s)
}
