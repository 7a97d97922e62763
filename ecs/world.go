package ecs

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"
)

// World owns entities, their component stores and the component event bus
// that keeps system matchers current. Structural changes that would disturb
// a running system (component detaches, entity removal) are queued and only
// applied by Update.
type World struct {
	components *TypeRegistry
	stores     []componentStorage
	dir        *directory
	bus        *EventBus[ComponentEvent]
	capacity   int
	logger     zerolog.Logger
}

// WorldStats is a point-in-time summary of a world.
type WorldStats struct {
	EntityCount        int
	Capacity           int
	FreeIds            int
	ComponentTypeCount int
	PendingAttach      int
	PendingDetach      int
	PendingRemove      int
	Subscribers        int
	ComponentBreakdown []ComponentStats
}

// ComponentStats counts the live entities carrying one component type.
type ComponentStats struct {
	Id          TypeId
	Name        string
	EntityCount int
}

// NewWorld creates an empty world.
func NewWorld(opts ...Option) *World {
	o := applyOptions(opts)
	return &World{
		components: NewTypeRegistry("component", MaxComponents),
		dir:        newDirectory(o.capacity),
		bus:        NewEventBus[ComponentEvent](),
		capacity:   o.capacity,
		logger:     o.logger,
	}
}

// CreateEntity returns a live entity with no components. Ids of entities
// removed by an earlier Update are reused first.
func (w *World) CreateEntity() EntityId {
	return w.dir.create()
}

// RemoveEntity queues e for destruction at the next Update. The entity and
// its components stay readable until then. Removing twice is a no-op.
func (w *World) RemoveEntity(e EntityId) {
	if !w.dir.isAlive(e) {
		return
	}
	w.dir.queueRemove(e)
}

// IsAlive reports whether e exists. Entities queued for removal are alive
// until the next Update.
func (w *World) IsAlive(e EntityId) bool {
	return w.dir.isAlive(e)
}

// PendingRemoval reports whether e is queued for destruction.
func (w *World) PendingRemoval(e EntityId) bool {
	return w.dir.pendingRemoval(e)
}

// Update is the flush point. It applies queued component detaches, delivers
// queued attach events and destroys queued entities, in that order. Call it
// exactly once per tick before any system runs; Scheduler.Once does.
func (w *World) Update() {
	res := w.dir.flush(w.notify)
	if res.Detached+res.Attached+res.Destroyed > 0 {
		w.logger.Trace().
			Int("detached", res.Detached).
			Int("attached", res.Attached).
			Int("destroyed", res.Destroyed).
			Msg("world flushed")
	}
}

func (w *World) notify(ev ComponentEvent) {
	w.bus.Notify(ev)
}

// Reset destroys every entity and discards all queued changes. Subscribed
// matchers receive one detach-all event per entity. Component stores keep
// their slots.
func (w *World) Reset() {
	n := w.dir.reset(w.notify)
	w.logger.Debug().Int("entities", n).Msg("world reset")
}

// Bus returns the component event bus. Matchers subscribe to it; other
// observers may too.
func (w *World) Bus() *EventBus[ComponentEvent] {
	return w.bus
}

// Components returns the component type registry.
func (w *World) Components() *TypeRegistry {
	return w.components
}

// Capacity returns the number of entity slots.
func (w *World) Capacity() int {
	return w.capacity
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.dir.live.Len()
}

// Entities returns the live entity ids in ascending order.
func (w *World) Entities() []EntityId {
	return w.dir.entities()
}

// MaskOf returns the component mask of e, or an empty mask if e is dead.
func (w *World) MaskOf(e EntityId) Mask {
	if !w.dir.isAlive(e) {
		return Mask{}
	}
	return w.dir.mask(e)
}

// ComponentTypes returns the ids of the components attached to e.
func (w *World) ComponentTypes(e EntityId) []TypeId {
	return w.MaskOf(e).Ids()
}

// ComponentValue returns a pointer to e's component with the given id as an
// interface value, or nil if e does not carry it.
func (w *World) ComponentValue(e EntityId, id TypeId) any {
	if !w.MaskOf(e).Has(id) || int(id) >= len(w.stores) || w.stores[id] == nil {
		return nil
	}
	return w.stores[id].ValueAt(e)
}

// CollectStats summarizes the world.
func (w *World) CollectStats() WorldStats {
	attach, detach, remove := w.dir.pending()
	stats := WorldStats{
		EntityCount:        w.dir.live.Len(),
		Capacity:           w.capacity,
		FreeIds:            len(w.dir.free),
		ComponentTypeCount: w.components.Len(),
		PendingAttach:      attach,
		PendingDetach:      detach,
		PendingRemove:      remove,
		Subscribers:        w.bus.Len(),
		ComponentBreakdown: make([]ComponentStats, w.components.Len()),
	}
	for i := range stats.ComponentBreakdown {
		stats.ComponentBreakdown[i] = ComponentStats{
			Id:   TypeId(i),
			Name: w.components.Name(TypeId(i)),
		}
	}
	for id := range w.dir.live.All() {
		w.dir.masks[id].ForEach(func(c TypeId) {
			if int(c) < len(stats.ComponentBreakdown) {
				stats.ComponentBreakdown[c].EntityCount++
			}
		})
	}
	return stats
}

func (w *World) requireAlive(e EntityId, op string, t reflect.Type) {
	if !w.dir.isAlive(e) {
		panic(fmt.Sprintf("ecs: %s %s on dead entity %d", op, typeName(t), e))
	}
}

// Add stores value as e's T component and marks it attached. Systems see the
// entity after the next Update. Adding a component e already has overwrites
// the value.
func Add[T any](w *World, e EntityId, value T) {
	w.requireAlive(e, "add", reflect.TypeFor[T]())
	store := Store[T](w)
	id := IdOf[T](w.components)
	store.Set(e, value)
	w.dir.attach(e, id)
}

// Remove queues the detach of e's T component for the next Update. The
// value stays readable until then. It is a no-op if e lacks T.
func Remove[T any](w *World, e EntityId) {
	if !Has[T](w, e) {
		return
	}
	id, _ := w.components.Lookup(reflect.TypeFor[T]())
	w.dir.queueDetach(e, id)
}

// Has reports whether e carries T.
func Has[T any](w *World, e EntityId) bool {
	id, ok := w.components.Lookup(reflect.TypeFor[T]())
	if !ok || !w.dir.isAlive(e) {
		return false
	}
	return w.dir.mask(e).Has(id)
}

// Get returns a copy of e's T component.
func Get[T any](w *World, e EntityId) (T, bool) {
	if p := GetMut[T](w, e); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer to e's T component, or nil if e lacks it.
func GetMut[T any](w *World, e EntityId) *T {
	store, id, ok := lookupStore[T](w)
	if !ok || !w.dir.isAlive(e) || !w.dir.mask(e).Has(id) {
		return nil
	}
	return store.Get(e)
}
