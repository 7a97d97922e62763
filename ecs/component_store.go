package ecs

import (
	"fmt"
	"reflect"
	"unsafe"
)

// componentStorage is the type-erased view of a ComponentStore used by the
// world for bookkeeping and by debug tooling.
type componentStorage interface {
	Type() reflect.Type
	Capacity() int
	ValueAt(e EntityId) any
	pointerAt(e EntityId) unsafe.Pointer
}

// ComponentStore holds one slot of T per entity id. The backing array is
// allocated at full entity capacity and zero-filled when the store is created,
// so Set and Get never resize.
type ComponentStore[T any] struct {
	items []T
}

func newComponentStore[T any](capacity int) *ComponentStore[T] {
	return &ComponentStore[T]{
		items: make([]T, capacity),
	}
}

func (cs *ComponentStore[T]) check(e EntityId) {
	if cs == nil || cs.items == nil {
		panic(fmt.Sprintf("ecs: component store for %s used before initialization", reflect.TypeFor[T]()))
	}
	assertEntity(e, len(cs.items))
}

// Set overwrites the slot for e.
func (cs *ComponentStore[T]) Set(e EntityId, value T) {
	cs.check(e)
	cs.items[e] = value
}

// Get returns a pointer to the slot for e. The slot is returned whether or
// not the entity currently has the component; callers check the entity mask
// first.
func (cs *ComponentStore[T]) Get(e EntityId) *T {
	cs.check(e)
	return &cs.items[e]
}

// Capacity returns the number of slots.
func (cs *ComponentStore[T]) Capacity() int {
	return len(cs.items)
}

// Type returns the component type held by the store.
func (cs *ComponentStore[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// ValueAt returns a pointer to the slot for e as an interface value.
func (cs *ComponentStore[T]) ValueAt(e EntityId) any {
	return cs.Get(e)
}

func (cs *ComponentStore[T]) pointerAt(e EntityId) unsafe.Pointer {
	return unsafe.Pointer(cs.Get(e))
}

// Store returns the component store for T, creating and registering it on
// first use.
func Store[T any](w *World) *ComponentStore[T] {
	id := IdOf[T](w.components)
	if int(id) >= MaxComponents {
		panic(fmt.Sprintf("ecs: component id %d for %s exceeds MaxComponents %d", id, reflect.TypeFor[T](), MaxComponents))
	}

	for int(id) >= len(w.stores) {
		w.stores = append(w.stores, nil)
	}

	if w.stores[id] == nil {
		store := newComponentStore[T](w.capacity)
		w.stores[id] = store
		return store
	}

	return w.stores[id].(*ComponentStore[T])
}

// lookupStore returns the store for T without creating it.
func lookupStore[T any](w *World) (*ComponentStore[T], TypeId, bool) {
	id, ok := w.components.Lookup(reflect.TypeFor[T]())
	if !ok || int(id) >= len(w.stores) || w.stores[id] == nil {
		return nil, id, false
	}
	return w.stores[id].(*ComponentStore[T]), id, true
}
