package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View reads several components of an entity at once into a struct of
// component pointers. T must be a struct whose fields are pointers to
// component types, e.g.
//
//	struct {
//		*Transform
//		*Velocity
//		Sprite *Sprite `ecs:"optional"`
//	}
//
// Embedded fields are always required. Named fields can be marked optional
// with the `ecs:"optional"` tag and are nil when the entity lacks them. A
// field of type EntityId receives the entity id.
type View[T any] struct {
	world       *World
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	ids         []TypeId
	resolved    []bool
	idOffset    uintptr
	hasId       bool
}

// NewView creates a view over w. It panics if T is not a struct of
// component pointers.
func NewView[T any](w *World) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{world: w}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}

		v.types = append(v.types, fieldType.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	v.ids = make([]TypeId, len(v.types))
	v.resolved = make([]bool, len(v.types))
	return v
}

// Requires returns the required component types, suitable as a system's
// requirement list.
func (v *View[T]) Requires() []ComponentType {
	out := make([]ComponentType, 0, len(v.types))
	for i, t := range v.types {
		if !v.optional[i] {
			out = append(out, ComponentType{t: t})
		}
	}
	return out
}

// RequiresOf returns the required component types of the view struct T
// without needing a world.
func RequiresOf[T any]() []ComponentType {
	return NewView[T](nil).Requires()
}

func (v *View[T]) componentId(i int) (TypeId, bool) {
	if v.resolved[i] {
		return v.ids[i], true
	}
	id, ok := v.world.components.Lookup(v.types[i])
	if !ok {
		return 0, false
	}
	v.ids[i] = id
	v.resolved[i] = true
	return id, true
}

// Fill populates ptr with e's components. It returns false if e is dead or
// lacks a required component.
func (v *View[T]) Fill(e EntityId, ptr *T) bool {
	if !v.world.dir.isAlive(e) {
		return false
	}
	mask := v.world.dir.mask(e)
	structPtr := unsafe.Pointer(ptr)

	if v.hasId {
		*(*EntityId)(unsafe.Add(structPtr, v.idOffset)) = e
	}

	for i := range v.types {
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))

		id, ok := v.componentId(i)
		if !ok || !mask.Has(id) || int(id) >= len(v.world.stores) || v.world.stores[id] == nil {
			if !v.optional[i] {
				return false
			}
			*fieldPtr = nil
			continue
		}

		*fieldPtr = v.world.stores[id].pointerAt(e)
	}

	return true
}

// Get returns a populated view struct for e, or nil if e lacks a required
// component.
func (v *View[T]) Get(e EntityId) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// Iter yields the populated view struct for every entity in entities that
// has the required components. Pass a system's Matcher.Entities().
func (v *View[T]) Iter(entities iter.Seq[EntityId]) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var result T
		for e := range entities {
			if !v.Fill(e, &result) {
				continue
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values is Iter without the entity ids.
func (v *View[T]) Values(entities iter.Seq[EntityId]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter(entities) {
			if !yield(value) {
				return
			}
		}
	}
}

// All iterates every live entity of the world, for tools and tests that
// are not driven by a system.
func (v *View[T]) All() iter.Seq2[EntityId, T] {
	return v.Iter(func(yield func(EntityId) bool) {
		for _, e := range v.world.Entities() {
			if !yield(e) {
				return
			}
		}
	})
}
