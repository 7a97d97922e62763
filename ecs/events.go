package ecs

// Events keeps one EventBus per application event type. Buses are created
// the first time their event type is subscribed to or emitted.
type Events struct {
	registry *TypeRegistry
	buses    []any
}

// NewEvents creates an empty event registry.
func NewEvents() *Events {
	return &Events{
		registry: NewTypeRegistry("event", MaxEventTypes),
	}
}

// BusOf returns the bus for E, creating it on first use.
func BusOf[E any](events *Events) *EventBus[E] {
	id := IdOf[E](events.registry)
	for int(id) >= len(events.buses) {
		events.buses = append(events.buses, nil)
	}
	if events.buses[id] == nil {
		bus := NewEventBus[E]()
		events.buses[id] = bus
		return bus
	}
	return events.buses[id].(*EventBus[E])
}

// Listen subscribes observer to events of type E.
func Listen[E any, O any, P interface {
	*O
	Observer[E]
}](events *Events, observer P) {
	Subscribe[E, O, P](BusOf[E](events), observer)
}

// Unlisten removes observer from the subscribers of E.
func Unlisten[E any, O any, P interface {
	*O
	Observer[E]
}](events *Events, observer P) bool {
	return Unsubscribe[E, O, P](BusOf[E](events), observer)
}

// Emit delivers event to the live subscribers of E and returns how many
// received it.
func Emit[E any](events *Events, event E) int {
	return BusOf[E](events).Notify(event)
}

// Registry returns the type registry backing the event buses.
func (events *Events) Registry() *TypeRegistry {
	return events.registry
}
