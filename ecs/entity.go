package ecs

// EntityId is an opaque handle to a bundle of components. Ids of destroyed
// entities are recycled, so holding one across ticks requires an IsAlive
// check.
type EntityId uint32

// EventKind distinguishes component attach and detach notifications.
type EventKind int16

const (
	Attached EventKind = 0
	Detached EventKind = 1
)

func (k EventKind) String() string {
	switch k {
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	}
	return "unknown"
}

// ComponentEvent reports that a component was attached to or detached from
// an entity. Component is AllComponents when the entity itself was destroyed.
type ComponentEvent struct {
	Component TypeId
	Entity    EntityId
	Kind      EventKind

	dir        *directory
	generation uint32
}

// Mask returns the entity's current component mask. The event only refers
// to the directory slot; if the entity has since been destroyed or its id
// recycled, ok is false and the mask is empty.
func (ev ComponentEvent) Mask() (Mask, bool) {
	if ev.dir == nil {
		return Mask{}, false
	}
	return ev.dir.maskAt(ev.Entity, ev.generation)
}
