package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

type componentRemoval struct {
	entity    EntityId
	component TypeId
}

func (r componentRemoval) key() uint64 {
	return uint64(r.entity)<<32 | uint64(r.component)
}

// flushResult counts what a directory flush applied.
type flushResult struct {
	Detached  int
	Attached  int
	Destroyed int
}

// directory tracks live entity ids, their component masks and the queues of
// structural changes waiting for the next flush.
type directory struct {
	capacity    int
	live        *intmap.Set[EntityId]
	masks       []Mask
	generations []uint32
	free        []EntityId

	attachEvents []ComponentEvent
	spareEvents  []ComponentEvent

	detachQueue  []componentRemoval
	detachQueued *intmap.Set[uint64]

	removeQueue  []EntityId
	removeQueued *intmap.Set[EntityId]
}

func newDirectory(capacity int) *directory {
	return &directory{
		capacity:     capacity,
		live:         intmap.NewSet[EntityId](256),
		masks:        make([]Mask, capacity),
		generations:  make([]uint32, capacity),
		detachQueued: intmap.NewSet[uint64](64),
		removeQueued: intmap.NewSet[EntityId](64),
	}
}

func (d *directory) create() EntityId {
	var id EntityId
	if n := len(d.free); n > 0 {
		id = d.free[n-1]
		d.free = d.free[:n-1]
	} else {
		id = EntityId(d.live.Len())
	}
	assertEntity(id, d.capacity)

	d.masks[id].Reset()
	d.live.Add(id)
	return id
}

func (d *directory) isAlive(id EntityId) bool {
	return d.live.Has(id)
}

func (d *directory) mask(id EntityId) Mask {
	assertEntity(id, d.capacity)
	return d.masks[id]
}

// maskAt returns the mask of id if the slot still belongs to the entity
// generation the caller observed.
func (d *directory) maskAt(id EntityId, generation uint32) (Mask, bool) {
	if int(id) >= d.capacity || d.generations[id] != generation || !d.live.Has(id) {
		return Mask{}, false
	}
	return d.masks[id], true
}

func (d *directory) event(id EntityId, component TypeId, kind EventKind) ComponentEvent {
	return ComponentEvent{
		Component:  component,
		Entity:     id,
		Kind:       kind,
		dir:        d,
		generation: d.generations[id],
	}
}

// attach sets the component bit and queues the attach event for the next
// flush. A detach of the same component queued earlier in the tick is
// cancelled.
func (d *directory) attach(id EntityId, component TypeId) {
	assertEntity(id, d.capacity)
	d.masks[id].Set(component)
	d.detachQueued.Del(componentRemoval{entity: id, component: component}.key())
	d.attachEvents = append(d.attachEvents, d.event(id, component, Attached))
}

func (d *directory) queueDetach(id EntityId, component TypeId) {
	r := componentRemoval{entity: id, component: component}
	if d.detachQueued.Has(r.key()) {
		return
	}
	d.detachQueued.Add(r.key())
	d.detachQueue = append(d.detachQueue, r)
}

func (d *directory) queueRemove(id EntityId) {
	if d.removeQueued.Has(id) {
		return
	}
	d.removeQueued.Add(id)
	d.removeQueue = append(d.removeQueue, id)
}

func (d *directory) pendingRemoval(id EntityId) bool {
	return d.removeQueued.Has(id)
}

// flush applies queued changes in a fixed order: component detaches, then
// the attach events gathered since the last flush, then entity removals.
// Matchers therefore see an entity leave before its id can be recycled.
//
// Observers may queue more changes while events are delivered. Detaches and
// removals queued during their own phase are applied in the same flush;
// anything queued during a later phase waits for the next one.
func (d *directory) flush(notify func(ComponentEvent)) flushResult {
	var res flushResult

	for i := 0; i < len(d.detachQueue); i++ {
		r := d.detachQueue[i]
		if !d.detachQueued.Has(r.key()) {
			continue
		}
		d.detachQueued.Del(r.key())
		if !d.live.Has(r.entity) || !d.masks[r.entity].Has(r.component) {
			continue
		}
		d.masks[r.entity].Clear(r.component)
		notify(d.event(r.entity, r.component, Detached))
		res.Detached++
	}
	d.detachQueue = d.detachQueue[:0]

	events := d.attachEvents
	d.attachEvents = d.spareEvents[:0]
	for _, ev := range events {
		notify(ev)
		res.Attached++
	}
	d.spareEvents = events[:0]

	for i := 0; i < len(d.removeQueue); i++ {
		id := d.removeQueue[i]
		d.removeQueued.Del(id)
		if !d.live.Has(id) {
			continue
		}
		d.destroy(id)
		notify(d.event(id, AllComponents, Detached))
		res.Destroyed++
	}
	d.removeQueue = d.removeQueue[:0]

	return res
}

func (d *directory) destroy(id EntityId) {
	d.masks[id].Reset()
	d.generations[id]++
	d.live.Del(id)
	d.free = append(d.free, id)
}

// reset drops every queued change and every live entity. Each live entity
// produces one detach-all event so matchers empty their sets.
func (d *directory) reset(notify func(ComponentEvent)) int {
	d.attachEvents = d.attachEvents[:0]
	d.detachQueue = d.detachQueue[:0]
	d.detachQueued.Clear()
	d.removeQueue = d.removeQueue[:0]
	d.removeQueued.Clear()

	ids := d.entities()
	for _, id := range ids {
		d.masks[id].Reset()
		d.generations[id]++
		notify(d.event(id, AllComponents, Detached))
	}

	d.live.Clear()
	d.free = d.free[:0]
	return len(ids)
}

// entities returns the live ids in ascending order.
func (d *directory) entities() []EntityId {
	ids := make([]EntityId, 0, d.live.Len())
	for id := range d.live.All() {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (d *directory) pending() (attach, detach, remove int) {
	return len(d.attachEvents), d.detachQueued.Len(), len(d.removeQueue)
}
