package ecs_test

import (
	"github.com/plus3/maskecs/ecs"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Frozen struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

type movable struct {
	*Position
	*Velocity
}

type MovementSystem struct {
	view *ecs.View[movable]
	Runs int
}

func (s *MovementSystem) Requires() []ecs.ComponentType {
	return ecs.RequiresOf[movable]()
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.Runs++
	if s.view == nil {
		s.view = ecs.NewView[movable](frame.World)
	}
	for item := range s.view.Values(frame.Members.Entities()) {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Runs        int
	TotalHealth int
}

func (s *HealthSystem) Requires() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.Component[Health]()}
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.Runs++
	s.TotalHealth = 0
	for e := range frame.Members.Entities() {
		s.TotalHealth += ecs.GetMut[Health](frame.World, e).Current
	}
}

type NameSystem struct {
	Runs int
}

func (s *NameSystem) Requires() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.Component[Name]()}
}

func (s *NameSystem) Execute(frame *ecs.UpdateFrame) {
	s.Runs++
}

// NoopSystem requires nothing and therefore never has members.
type NoopSystem struct {
	Runs int
}

func (s *NoopSystem) Requires() []ecs.ComponentType { return nil }

func (s *NoopSystem) Execute(frame *ecs.UpdateFrame) {
	s.Runs++
}

type recorder struct {
	label  string
	events []ecs.ComponentEvent
}

func (r *recorder) OnEvent(ev ecs.ComponentEvent) {
	r.events = append(r.events, ev)
}

func newTestWorld(opts ...ecs.Option) *ecs.World {
	w := ecs.NewWorld(append([]ecs.Option{ecs.WithEntityCapacity(256)}, opts...)...)
	ecs.Register[Position](w.Components())
	ecs.Register[Velocity](w.Components())
	ecs.Register[Name](w.Components())
	ecs.Register[Health](w.Components())
	return w
}
