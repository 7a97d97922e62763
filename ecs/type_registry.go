package ecs

import (
	"fmt"
	"reflect"
	"sync"
)

// TypeId is a small integer identifying a type within one TypeRegistry.
type TypeId uint32

// AllComponents is the component id carried by the detach event emitted when
// an entity is destroyed. It stands for every component the entity had.
const AllComponents = ^TypeId(0)

// TypeRegistry assigns stable, dense ids to Go types. Each semantic domain
// (components, systems, events) owns its own registry so ids never collide
// across domains, and each World or Scheduler owns its registries so
// independent instances do not share counters.
type TypeRegistry struct {
	domain string
	limit  int

	mu    sync.RWMutex
	ids   map[reflect.Type]TypeId
	types []reflect.Type
}

// NewTypeRegistry creates a registry for the named domain that accepts at
// most limit distinct types.
func NewTypeRegistry(domain string, limit int) *TypeRegistry {
	return &TypeRegistry{
		domain: domain,
		limit:  limit,
		ids:    make(map[reflect.Type]TypeId),
	}
}

// IdOf returns the id of T in r, assigning the next free id the first time T
// is seen.
func IdOf[T any](r *TypeRegistry) TypeId {
	return r.IdFor(reflect.TypeFor[T]())
}

// Register assigns T an id up front. Registering every type during program
// init keeps id assignment independent of first-use order.
func Register[T any](r *TypeRegistry) TypeId {
	return IdOf[T](r)
}

// IdFor returns the id for t, assigning one on first use. Concurrent first
// calls for the same type observe a single assignment.
func (r *TypeRegistry) IdFor(t reflect.Type) TypeId {
	r.mu.RLock()
	id, ok := r.ids[t]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.ids[t]; ok {
		return id
	}

	if len(r.types) >= r.limit {
		panic(fmt.Sprintf("ecs: too many %s types (limit %d) registering %s", r.domain, r.limit, t))
	}

	id = TypeId(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	return id
}

// Lookup returns the id for t without assigning one.
func (r *TypeRegistry) Lookup(t reflect.Type) (TypeId, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[t]
	return id, ok
}

// TypeOf returns the type registered under id, or nil.
func (r *TypeRegistry) TypeOf(id TypeId) reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.types) {
		return nil
	}
	return r.types[id]
}

// Name returns a printable name for id.
func (r *TypeRegistry) Name(id TypeId) string {
	if id == AllComponents {
		return "*"
	}
	t := r.TypeOf(id)
	if t == nil {
		return fmt.Sprintf("%s#%d", r.domain, id)
	}
	return typeName(t)
}

// Len returns the number of registered types.
func (r *TypeRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Types returns the registered types in id order.
func (r *TypeRegistry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]reflect.Type, len(r.types))
	copy(out, r.types)
	return out
}

// Domain returns the registry's domain name.
func (r *TypeRegistry) Domain() string {
	return r.domain
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
