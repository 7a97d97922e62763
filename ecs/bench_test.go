package ecs_test

import (
	"testing"

	"github.com/plus3/maskecs/ecs"
)

func BenchmarkCreateEntity(b *testing.B) {
	w := ecs.NewWorld(ecs.WithEntityCapacity(b.N + 1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := w.CreateEntity()
		ecs.Add(w, e, Position{X: 1.0, Y: 2.0})
		ecs.Add(w, e, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkAddRemoveComponent(b *testing.B) {
	w := newTestWorld()
	sched := ecs.NewScheduler(w)
	sched.Register(&MovementSystem{})
	e := w.CreateEntity()
	ecs.Add(w, e, Position{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.Add(w, e, Velocity{DX: 1})
		w.Update()
		ecs.Remove[Velocity](w, e)
		w.Update()
	}
}

func BenchmarkGetComponent(b *testing.B) {
	w := newTestWorld()
	e := w.CreateEntity()
	ecs.Add(w, e, Position{X: 1.0, Y: 2.0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.GetMut[Position](w, e)
	}
}

func BenchmarkSchedulerOnce(b *testing.B) {
	w := ecs.NewWorld()
	sched := ecs.NewScheduler(w)
	sched.Enable(sched.Register(&MovementSystem{}))
	for range 5000 {
		e := w.CreateEntity()
		ecs.Add(w, e, Position{})
		ecs.Add(w, e, Velocity{DX: 1, DY: 1})
	}
	w.Update()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sched.Once(0.016)
	}
}

func BenchmarkMaskContains(b *testing.B) {
	entity := ecs.MaskOf(0, 3, 5, 64, 99)
	required := ecs.MaskOf(3, 64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = entity.Contains(required)
	}
}
