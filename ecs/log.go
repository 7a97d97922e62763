package ecs

import "github.com/rs/zerolog"

func componentsArray(w *World) *zerolog.Array {
	arr := zerolog.Arr()
	for i := range w.components.Len() {
		id := TypeId(i)
		arr = arr.Dict(zerolog.Dict().
			Int("component_id", int(id)).
			Str("component_name", w.components.Name(id)))
	}
	return arr
}

func systemsArray(sched *Scheduler) *zerolog.Array {
	arr := zerolog.Arr()
	for id := range sched.Systems() {
		e := sched.entries[id]
		arr = arr.Dict(zerolog.Dict().
			Int("system_id", int(id)).
			Str("system_name", e.name).
			Bool("active", e.active).
			Int("members", e.matcher.Len()).
			Stringer("mask", e.matcher.Mask()))
	}
	return arr
}

// LogWorld logs the registered components and, if sched is not nil, the
// registered systems in a single event.
func LogWorld(logger *zerolog.Logger, w *World, sched *Scheduler, level zerolog.Level) {
	ev := logger.WithLevel(level).
		Int("total_entities", w.EntityCount()).
		Int("total_components", w.components.Len()).
		Array("components", componentsArray(w))
	if sched != nil {
		ev = ev.Int("total_systems", sched.Len()).
			Array("systems", systemsArray(sched))
	}
	ev.Send()
}

// LogEntity logs the components attached to e.
func LogEntity(logger *zerolog.Logger, w *World, e EntityId, level zerolog.Level) {
	arr := zerolog.Arr()
	for _, id := range w.ComponentTypes(e) {
		arr = arr.Str(w.components.Name(id))
	}
	logger.WithLevel(level).
		Uint32("entity_id", uint32(e)).
		Bool("alive", w.IsAlive(e)).
		Array("components", arr).
		Send()
}
