package ecs

import "fmt"

// Capacity limits. Stores and masks are sized from these once and never
// grow, so exceeding one is a configuration error rather than a runtime
// condition.
const (
	// MaxEntities is the default number of entity slots preallocated in
	// every component store. Override per world with WithEntityCapacity.
	MaxEntities = 10000

	// MaxComponents is the number of distinct component types a world can
	// register. Every entity mask has at least this many bits.
	MaxComponents = 100

	// MaxSystems is the number of distinct system types a scheduler can
	// register. State system sets are masks over system ids.
	MaxSystems = maskBits

	// MaxEventTypes bounds the number of application event types.
	MaxEventTypes = 256
)

func assertEntity(e EntityId, capacity int) {
	if int(e) >= capacity {
		panic(fmt.Sprintf("ecs: entity %d exceeds capacity %d", e, capacity))
	}
}
