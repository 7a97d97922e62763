package ecs

import "reflect"

// System is a unit of behavior run once per tick over the entities that
// carry every component it requires. Systems keep their own state between
// ticks; the matched entity set is handed to Execute through the frame.
type System interface {
	Requires() []ComponentType
	Execute(frame *UpdateFrame)
}

// SystemId identifies a system type within one Scheduler.
type SystemId = TypeId

// ComponentType names a component type in a system's requirement list.
type ComponentType struct {
	t reflect.Type
}

// Component returns the ComponentType for T.
func Component[T any]() ComponentType {
	return ComponentType{t: reflect.TypeFor[T]()}
}

// Type returns the underlying Go type.
func (c ComponentType) Type() reflect.Type { return c.t }

func (c ComponentType) String() string { return typeName(c.t) }

// SystemType names a system type, independent of whether it is registered
// by value or by pointer. States declare the systems they need with it.
type SystemType struct {
	t reflect.Type
}

// SystemOf returns the SystemType for S. SystemOf[Physics] and
// SystemOf[*Physics] are the same type.
func SystemOf[S any]() SystemType {
	return SystemType{t: elemType(reflect.TypeFor[S]())}
}

func systemTypeOf(s System) SystemType {
	return SystemType{t: elemType(reflect.TypeOf(s))}
}

// Type returns the underlying Go type with pointers stripped.
func (s SystemType) Type() reflect.Type { return s.t }

func (s SystemType) String() string { return typeName(s.t) }

func elemType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
