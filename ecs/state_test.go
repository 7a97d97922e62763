package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/maskecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedState struct {
	name    string
	systems []ecs.SystemType
	// updates left before the state reports completion; negative runs
	// forever
	updates int
	next    ecs.State
	quitOn  string
	log     *[]string
}

func (s *scriptedState) Systems() []ecs.SystemType { return s.systems }

func (s *scriptedState) OnEnter(ctx *ecs.StateContext, created bool) {
	*s.log = append(*s.log, fmt.Sprintf("%s enter %t", s.name, created))
}

func (s *scriptedState) OnEvent(ev ecs.InputEvent) bool {
	*s.log = append(*s.log, fmt.Sprintf("%s event %v", s.name, ev))
	return ev == s.quitOn
}

func (s *scriptedState) Update(ctx *ecs.StateContext) bool {
	if s.next != nil {
		ctx.Enqueue(s.next)
		s.next = nil
	}
	if s.updates == 0 {
		return false
	}
	s.updates--
	return true
}

func (s *scriptedState) OnLeave(ctx *ecs.StateContext, destroyed bool) {
	*s.log = append(*s.log, fmt.Sprintf("%s leave %t", s.name, destroyed))
}

func newStateFixture(t *testing.T) (*ecs.Scheduler, map[string]ecs.SystemId) {
	t.Helper()
	sched := ecs.NewScheduler(newTestWorld())
	ids := map[string]ecs.SystemId{
		"movement": sched.Register(&MovementSystem{}),
		"health":   sched.Register(&HealthSystem{}),
		"name":     sched.Register(&NameSystem{}),
	}
	return sched, ids
}

func systemStats(sched *ecs.Scheduler, id ecs.SystemId) ecs.SystemStats {
	for _, s := range sched.GetStats().Systems {
		if s.Id == id {
			return s
		}
	}
	return ecs.SystemStats{}
}

func TestStateStack(t *testing.T) {
	t.Run("transitions diff system sets", func(t *testing.T) {
		sched, ids := newStateFixture(t)
		stack := ecs.NewStateStack(sched)
		var log []string

		overlay := &scriptedState{
			name:    "overlay",
			systems: []ecs.SystemType{ecs.SystemOf[HealthSystem](), ecs.SystemOf[*NameSystem]()},
			updates: 1,
			log:     &log,
		}
		base := &scriptedState{
			name:    "base",
			systems: []ecs.SystemType{ecs.SystemOf[MovementSystem](), ecs.SystemOf[HealthSystem]()},
			updates: -1,
			next:    overlay,
			log:     &log,
		}

		stack.Enqueue(base)
		require.True(t, stack.Update())
		assert.True(t, sched.IsActive(ids["movement"]))
		assert.True(t, sched.IsActive(ids["health"]))
		assert.False(t, sched.IsActive(ids["name"]))
		assert.Same(t, overlay, stack.Pending())

		require.True(t, stack.Update())
		assert.Equal(t, 2, stack.Len())
		assert.Same(t, overlay, stack.Top())
		assert.False(t, sched.IsActive(ids["movement"]))
		assert.True(t, sched.IsActive(ids["health"]))
		assert.True(t, sched.IsActive(ids["name"]))

		require.True(t, stack.Update(), "overlay finishes, base remains")
		assert.Equal(t, 1, stack.Len())
		assert.Same(t, base, stack.Top())
		assert.True(t, sched.IsActive(ids["movement"]))
		assert.True(t, sched.IsActive(ids["health"]))
		assert.False(t, sched.IsActive(ids["name"]))

		shared := systemStats(sched, ids["health"])
		assert.Equal(t, int64(1), shared.EnableCount, "shared system is never re-enabled")
		assert.Equal(t, int64(0), shared.DisableCount, "shared system is never disabled")

		movement := systemStats(sched, ids["movement"])
		assert.Equal(t, int64(2), movement.EnableCount)
		assert.Equal(t, int64(1), movement.DisableCount)

		assert.Equal(t, []string{
			"base enter true",
			"base leave false",
			"overlay enter true",
			"overlay leave true",
			"base enter false",
		}, log)
	})

	t.Run("popping the last state disables its systems and ends", func(t *testing.T) {
		sched, ids := newStateFixture(t)
		stack := ecs.NewStateStack(sched)
		var log []string

		only := &scriptedState{
			name:    "only",
			systems: []ecs.SystemType{ecs.SystemOf[NameSystem]()},
			updates: 0,
			log:     &log,
		}
		stack.Enqueue(only)

		assert.False(t, stack.Update())
		assert.Equal(t, 0, stack.Len())
		assert.Nil(t, stack.Top())
		assert.False(t, sched.IsActive(ids["name"]))
		assert.Equal(t, []string{"only enter true", "only leave true"}, log)

		assert.False(t, stack.Update())
	})

	t.Run("finishing with a successor replaces the top in place", func(t *testing.T) {
		sched, ids := newStateFixture(t)
		stack := ecs.NewStateStack(sched)
		var log []string

		overlay := &scriptedState{
			name:    "overlay",
			systems: []ecs.SystemType{ecs.SystemOf[HealthSystem](), ecs.SystemOf[NameSystem]()},
			updates: 1,
			log:     &log,
		}
		base := &scriptedState{
			name:    "base",
			systems: []ecs.SystemType{ecs.SystemOf[MovementSystem]()},
			updates: -1,
			next:    overlay,
			log:     &log,
		}
		stack.Enqueue(base)
		require.True(t, stack.Update())
		require.True(t, stack.Update())
		require.Same(t, overlay, stack.Top())
		log = log[:0]

		successor := &scriptedState{
			name:    "successor",
			systems: []ecs.SystemType{ecs.SystemOf[HealthSystem]()},
			updates: -1,
			log:     &log,
		}
		overlay.next = successor

		require.True(t, stack.Update())
		assert.Equal(t, 2, stack.Len())
		assert.Same(t, successor, stack.Top())
		assert.Nil(t, stack.Pending())
		assert.Equal(t, []string{"overlay leave true", "successor enter true"}, log,
			"the state below is neither resumed nor paused again")

		assert.True(t, sched.IsActive(ids["health"]))
		assert.False(t, sched.IsActive(ids["name"]))
		assert.False(t, sched.IsActive(ids["movement"]))

		health := systemStats(sched, ids["health"])
		assert.Equal(t, int64(1), health.EnableCount)
		assert.Equal(t, int64(0), health.DisableCount)

		movement := systemStats(sched, ids["movement"])
		assert.Equal(t, int64(1), movement.EnableCount)
		assert.Equal(t, int64(1), movement.DisableCount)
	})

	t.Run("the last state hands over without an empty tick", func(t *testing.T) {
		sched, ids := newStateFixture(t)
		stack := ecs.NewStateStack(sched)
		var log []string

		first := &scriptedState{
			name:    "first",
			systems: []ecs.SystemType{ecs.SystemOf[HealthSystem](), ecs.SystemOf[MovementSystem]()},
			updates: 0,
			next: &scriptedState{
				name:    "second",
				systems: []ecs.SystemType{ecs.SystemOf[HealthSystem]()},
				updates: -1,
				log:     &log,
			},
			log: &log,
		}
		stack.Enqueue(first)

		require.True(t, stack.Update())
		require.Equal(t, 1, stack.Len())
		assert.Equal(t, "second", stack.Top().(*scriptedState).name)
		assert.Equal(t, []string{"first enter true", "first leave true", "second enter true"}, log)

		health := systemStats(sched, ids["health"])
		assert.Equal(t, int64(1), health.EnableCount)
		assert.Equal(t, int64(0), health.DisableCount)
		assert.False(t, sched.IsActive(ids["movement"]))
	})

	t.Run("events go to the top state only", func(t *testing.T) {
		sched, _ := newStateFixture(t)
		stack := ecs.NewStateStack(sched)
		var log []string

		assert.False(t, stack.DispatchEvent("q"), "empty stack ignores input")

		bottom := &scriptedState{name: "bottom", updates: -1, log: &log}
		top := &scriptedState{name: "top", updates: -1, quitOn: "q", log: &log}
		stack.Enqueue(bottom)
		stack.Update()
		stack.Enqueue(top)
		stack.Update()
		log = log[:0]

		assert.False(t, stack.DispatchEvent("x"))
		assert.True(t, stack.DispatchEvent("q"))
		assert.Equal(t, []string{"top event x", "top event q"}, log)
	})

	t.Run("unregistered systems are ignored", func(t *testing.T) {
		sched, _ := newStateFixture(t)
		stack := ecs.NewStateStack(sched)
		var log []string

		stack.Enqueue(&scriptedState{
			name:    "odd",
			systems: []ecs.SystemType{ecs.SystemOf[ReaperSystem]()},
			updates: -1,
			log:     &log,
		})
		assert.True(t, stack.Update())
		assert.True(t, sched.ActiveMask().Empty())
	})

	t.Run("context exposes the scheduler's world", func(t *testing.T) {
		sched, _ := newStateFixture(t)
		stack := ecs.NewStateStack(sched)

		ctx := stack.Context()
		assert.Same(t, sched, ctx.Scheduler)
		assert.Same(t, sched.World(), ctx.World)
		assert.Same(t, sched.Events(), ctx.Events)
	})
}
