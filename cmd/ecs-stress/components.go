package main

import (
	"math/rand/v2"

	"github.com/plus3/maskecs/ecs"
)

// Field is a stress component. Every marker type gives a distinct component.
type Field[M any] struct {
	V float64
}

type (
	m0  struct{}
	m1  struct{}
	m2  struct{}
	m3  struct{}
	m4  struct{}
	m5  struct{}
	m6  struct{}
	m7  struct{}
	m8  struct{}
	m9  struct{}
	m10 struct{}
	m11 struct{}
)

type adder func(w *ecs.World, e ecs.EntityId, v float64)

func addField[M any](w *ecs.World, e ecs.EntityId, v float64) {
	ecs.Add(w, e, Field[M]{V: v})
}

var adders = []adder{
	addField[m0], addField[m1], addField[m2], addField[m3],
	addField[m4], addField[m5], addField[m6], addField[m7],
	addField[m8], addField[m9], addField[m10], addField[m11],
}

// componentCount is the number of distinct stress components.
var componentCount = len(adders)

// transfer moves a fraction of From into To on every matched entity.
type transfer[From, To any] struct {
	runs int
}

func (t *transfer[From, To]) Requires() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.Component[Field[From]](), ecs.Component[Field[To]]()}
}

func (t *transfer[From, To]) Execute(frame *ecs.UpdateFrame) {
	t.runs++
	for e := range frame.Members.Entities() {
		from := ecs.GetMut[Field[From]](frame.World, e)
		to := ecs.GetMut[Field[To]](frame.World, e)
		moved := from.V * frame.DeltaTime
		from.V -= moved
		to.V += moved
	}
}

// RegisterSystems registers a ring of transfers and enables all of them.
func RegisterSystems(sched *ecs.Scheduler) int {
	systems := []ecs.System{
		&transfer[m0, m1]{}, &transfer[m1, m2]{}, &transfer[m2, m3]{},
		&transfer[m3, m4]{}, &transfer[m4, m5]{}, &transfer[m5, m6]{},
		&transfer[m6, m7]{}, &transfer[m7, m8]{}, &transfer[m8, m9]{},
		&transfer[m9, m10]{}, &transfer[m10, m11]{}, &transfer[m11, m0]{},
		&transfer[m0, m6]{}, &transfer[m3, m9]{},
	}
	for _, s := range systems {
		sched.Enable(sched.Register(s))
	}
	return len(systems)
}

// SpawnRandomEntity creates an entity with n distinct random stress components.
func SpawnRandomEntity(w *ecs.World, rng *rand.Rand, n int) ecs.EntityId {
	e := w.CreateEntity()
	for _, i := range rng.Perm(len(adders))[:min(n, len(adders))] {
		adders[i](w, e, rng.Float64()*100)
	}
	return e
}
