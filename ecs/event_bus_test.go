package ecs_test

import (
	"runtime"
	"testing"

	"github.com/plus3/maskecs/ecs"
	"github.com/stretchr/testify/assert"
)

type Explosion struct {
	Radius int
}

type listener struct {
	name string
	seen []int
	log  *[]string
}

func (l *listener) OnEvent(ev Explosion) {
	l.seen = append(l.seen, ev.Radius)
	if l.log != nil {
		*l.log = append(*l.log, l.name)
	}
}

func TestEventBus(t *testing.T) {
	t.Run("delivers in subscription order", func(t *testing.T) {
		bus := ecs.NewEventBus[Explosion]()
		var order []string
		a := &listener{name: "a", log: &order}
		b := &listener{name: "b", log: &order}
		ecs.Subscribe(bus, a)
		ecs.Subscribe(bus, b)
		ecs.Subscribe(bus, a)

		assert.Equal(t, 2, bus.Notify(Explosion{Radius: 3}))
		assert.Equal(t, []string{"a", "b"}, order)
		assert.Equal(t, []int{3}, a.seen)
	})

	t.Run("unsubscribe by identity", func(t *testing.T) {
		bus := ecs.NewEventBus[Explosion]()
		a := &listener{name: "a"}
		b := &listener{name: "b"}
		ecs.Subscribe(bus, a)
		ecs.Subscribe(bus, b)

		assert.True(t, ecs.Unsubscribe(bus, a))
		assert.False(t, ecs.Unsubscribe(bus, a))

		bus.Notify(Explosion{Radius: 1})
		assert.Empty(t, a.seen)
		assert.Equal(t, []int{1}, b.seen)
	})

	t.Run("unsubscribe during notify", func(t *testing.T) {
		bus := ecs.NewEventBus[Explosion]()
		b := &listener{name: "b"}
		var fn ecs.ObserverFunc[Explosion] = func(Explosion) {
			ecs.Unsubscribe(bus, b)
		}
		ecs.Subscribe(bus, &fn)
		ecs.Subscribe(bus, b)

		assert.Equal(t, 1, bus.Notify(Explosion{}))
		assert.Empty(t, b.seen)
		assert.Equal(t, 1, bus.Len())
	})

	t.Run("expired subscribers are skipped and pruned", func(t *testing.T) {
		bus := ecs.NewEventBus[Explosion]()
		keep := &listener{name: "keep"}
		ecs.Subscribe(bus, keep)

		func() {
			gone := &listener{name: "gone"}
			ecs.Subscribe(bus, gone)
			assert.Equal(t, 2, bus.Notify(Explosion{Radius: 1}))
		}()

		runtime.GC()
		runtime.GC()

		assert.Equal(t, 1, bus.Notify(Explosion{Radius: 2}))
		assert.Equal(t, 1, bus.Len())
		assert.Equal(t, []int{1, 2}, keep.seen)
		runtime.KeepAlive(keep)
	})
}

func TestEvents(t *testing.T) {
	events := ecs.NewEvents()
	l := &listener{name: "l"}

	assert.Equal(t, 0, ecs.Emit(events, Explosion{Radius: 1}), "emitting with no listeners is fine")

	ecs.Listen[Explosion](events, l)
	assert.Equal(t, 1, ecs.Emit(events, Explosion{Radius: 2}))
	assert.Equal(t, 0, ecs.Emit(events, Score(5)), "buses are per event type")
	assert.Same(t, ecs.BusOf[Explosion](events), ecs.BusOf[Explosion](events))
	assert.Equal(t, 2, events.Registry().Len())

	assert.True(t, ecs.Unlisten[Explosion](events, l))
	assert.Equal(t, 0, ecs.Emit(events, Explosion{Radius: 3}))
	assert.Equal(t, []int{2}, l.seen)
}
