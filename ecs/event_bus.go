package ecs

import "weak"

// Observer receives events of type E.
type Observer[E any] interface {
	OnEvent(event E)
}

// ObserverFunc adapts a function to Observer. Subscribe a pointer to the
// value and keep that pointer reachable for as long as delivery is wanted.
type ObserverFunc[E any] func(event E)

// OnEvent calls f(event).
func (f *ObserverFunc[E]) OnEvent(event E) {
	(*f)(event)
}

type subscriber[E any] struct {
	key     any
	resolve func() Observer[E]
}

// EventBus delivers events of one type to its subscribers in subscription
// order. The bus only holds weak references: a subscriber that is no longer
// reachable elsewhere is skipped and dropped from the list, it never makes
// Notify fail.
type EventBus[E any] struct {
	subscribers []subscriber[E]
	notifying   int
	dirty       bool
}

// NewEventBus creates an empty bus.
func NewEventBus[E any]() *EventBus[E] {
	return &EventBus[E]{}
}

// Subscribe registers observer on bus. Subscribing the same pointer twice
// is a no-op.
func Subscribe[E any, O any, P interface {
	*O
	Observer[E]
}](bus *EventBus[E], observer P) {
	wp := weak.Make((*O)(observer))
	for _, sub := range bus.subscribers {
		if sub.key == any(wp) {
			return
		}
	}
	bus.subscribers = append(bus.subscribers, subscriber[E]{
		key: wp,
		resolve: func() Observer[E] {
			p := wp.Value()
			if p == nil {
				return nil
			}
			return P(p)
		},
	})
}

// Unsubscribe removes observer from bus by identity and reports whether it
// was subscribed.
func Unsubscribe[E any, O any, P interface {
	*O
	Observer[E]
}](bus *EventBus[E], observer P) bool {
	key := any(weak.Make((*O)(observer)))
	for i, sub := range bus.subscribers {
		if sub.key != key {
			continue
		}
		if bus.notifying > 0 {
			bus.subscribers[i].resolve = func() Observer[E] { return nil }
			bus.subscribers[i].key = nil
			bus.dirty = true
		} else {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
		}
		return true
	}
	return false
}

// Notify delivers event to every live subscriber and returns how many
// received it.
func (bus *EventBus[E]) Notify(event E) int {
	bus.notifying++
	delivered := 0
	for i := 0; i < len(bus.subscribers); i++ {
		obs := bus.subscribers[i].resolve()
		if obs == nil {
			bus.dirty = true
			continue
		}
		obs.OnEvent(event)
		delivered++
	}
	bus.notifying--

	if bus.notifying == 0 && bus.dirty {
		bus.prune()
	}
	return delivered
}

// Len returns the number of subscriber records, including expired ones not
// yet pruned.
func (bus *EventBus[E]) Len() int {
	return len(bus.subscribers)
}

func (bus *EventBus[E]) prune() {
	alive := bus.subscribers[:0]
	for _, sub := range bus.subscribers {
		if sub.resolve() != nil {
			alive = append(alive, sub)
		}
	}
	clear(bus.subscribers[len(alive):])
	bus.subscribers = alive
	bus.dirty = false
}
