package ecs

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	ActiveCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Id             SystemId
	Name           string
	Active         bool
	Members        int
	Required       Mask
	ExecutionCount int64
	EnableCount    int64
	DisableCount   int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	enableCount    int64
	disableCount   int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type systemEntry struct {
	id      SystemId
	name    string
	system  System
	matcher *Matcher
	logger  zerolog.Logger
	active  bool
	stats   systemStatsInternal
}

// Scheduler owns the registered systems and runs the active ones once per
// tick in registration order.
type Scheduler struct {
	world    *World
	events   *Events
	services any
	logger   zerolog.Logger

	registry    *TypeRegistry
	entries     []*systemEntry
	generations []uint32
	order       []SystemId
	running     []*systemEntry
	frame       UpdateFrame
}

// NewScheduler creates a scheduler for world. Pass WithEvents to share an
// application event registry and WithServices to hand frontends to systems.
func NewScheduler(world *World, opts ...Option) *Scheduler {
	o := applyOptions(opts)
	events := o.events
	if events == nil {
		events = NewEvents()
	}
	return &Scheduler{
		world:    world,
		events:   events,
		services: o.services,
		logger:   o.logger,
		registry: NewTypeRegistry("system", MaxSystems),
	}
}

// Register adds system and starts tracking the entities that satisfy its
// requirement. The system starts inactive; enable it directly or through a
// State. Registering a second system of the same type panics.
func (s *Scheduler) Register(system System) SystemId {
	st := systemTypeOf(system)
	id := s.registry.IdFor(st.t)
	s.grow(id)
	if s.entries[id] != nil {
		panic(fmt.Sprintf("ecs: system %s registered twice", st))
	}

	var required Mask
	for _, c := range system.Requires() {
		required.Set(s.world.components.IdFor(c.t))
	}

	name := st.String()
	entry := &systemEntry{
		id:      id,
		name:    name,
		system:  system,
		matcher: newMatcher(id, name, required),
		logger:  s.logger.With().Str("system", name).Logger(),
		stats:   systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
	seeded := entry.matcher.seed(s.world.dir)
	Subscribe(s.world.bus, entry.matcher)

	s.entries[id] = entry
	s.order = append(s.order, id)

	s.logger.Debug().
		Uint32("id", uint32(id)).
		Str("system", name).
		Stringer("mask", required).
		Int("seeded", seeded).
		Msg("system registered")
	return id
}

func (s *Scheduler) grow(id SystemId) {
	for int(id) >= len(s.entries) {
		s.entries = append(s.entries, nil)
		s.generations = append(s.generations, 0)
	}
}

func (s *Scheduler) entry(id SystemId) *systemEntry {
	if int(id) >= len(s.entries) {
		return nil
	}
	return s.entries[id]
}

// Unregister removes a system entirely. Its matcher stops observing and
// handles obtained earlier report the system as gone.
func (s *Scheduler) Unregister(id SystemId) bool {
	e := s.entry(id)
	if e == nil {
		return false
	}
	Unsubscribe(s.world.bus, e.matcher)
	e.active = false
	s.entries[id] = nil
	s.generations[id]++
	s.order = slices.DeleteFunc(s.order, func(o SystemId) bool { return o == id })
	s.logger.Debug().Str("system", e.name).Msg("system unregistered")
	return true
}

// Enable adds the system to the run list. Enabling an active system is a
// no-op. It reports whether id names a registered system.
func (s *Scheduler) Enable(id SystemId) bool {
	e := s.entry(id)
	if e == nil {
		return false
	}
	if !e.active {
		e.active = true
		e.stats.enableCount++
		s.logger.Debug().Str("system", e.name).Msg("system enabled")
	}
	return true
}

// Disable removes the system from the run list. Its matcher keeps tracking
// membership so the set is current when the system is enabled again.
func (s *Scheduler) Disable(id SystemId) bool {
	e := s.entry(id)
	if e == nil {
		return false
	}
	if e.active {
		e.active = false
		e.stats.disableCount++
		s.logger.Debug().Str("system", e.name).Msg("system disabled")
	}
	return true
}

// IsActive reports whether the system is in the run list.
func (s *Scheduler) IsActive(id SystemId) bool {
	e := s.entry(id)
	return e != nil && e.active
}

// ActiveMask returns the set of active system ids.
func (s *Scheduler) ActiveMask() Mask {
	var m Mask
	for _, id := range s.order {
		if s.entries[id].active {
			m.Set(id)
		}
	}
	return m
}

// Lookup returns the id of a registered system type.
func (s *Scheduler) Lookup(st SystemType) (SystemId, bool) {
	id, ok := s.registry.Lookup(st.t)
	if !ok || s.entry(id) == nil {
		return 0, false
	}
	return id, true
}

// SystemIdOf returns the id of the registered system of type S.
func SystemIdOf[S any](s *Scheduler) (SystemId, bool) {
	return s.Lookup(SystemOf[S]())
}

// System returns the registered system with the given id.
func (s *Scheduler) System(id SystemId) (System, bool) {
	e := s.entry(id)
	if e == nil {
		return nil, false
	}
	return e.system, true
}

// Systems iterates registered systems in registration order.
func (s *Scheduler) Systems() iter.Seq2[SystemId, System] {
	return func(yield func(SystemId, System) bool) {
		for _, id := range s.order {
			if !yield(id, s.entries[id].system) {
				return
			}
		}
	}
}

// Len returns the number of registered systems.
func (s *Scheduler) Len() int {
	return len(s.order)
}

// World returns the world the scheduler runs against.
func (s *Scheduler) World() *World { return s.world }

// Events returns the application event registry handed to systems.
func (s *Scheduler) Events() *Events { return s.events }

// Services returns the opaque services value handed to systems.
func (s *Scheduler) Services() any { return s.services }

// Registry returns the system type registry.
func (s *Scheduler) Registry() *TypeRegistry { return s.registry }

// Once flushes the world and then executes every active system once with
// the given delta time.
func (s *Scheduler) Once(dt float64) {
	s.world.Update()

	s.running = s.running[:0]
	for _, id := range s.order {
		if e := s.entries[id]; e.active {
			s.running = append(s.running, e)
		}
	}

	frame := &s.frame
	frame.DeltaTime = dt
	frame.World = s.world
	frame.Events = s.events
	frame.Scheduler = s
	frame.Services = s.services

	for _, e := range s.running {
		if !e.active {
			continue
		}
		frame.Members = e.matcher
		frame.Logger = e.logger

		start := time.Now()
		e.system.Execute(frame)
		duration := time.Since(start)

		stats := &e.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
	frame.Members = nil
	clear(s.running)
}

// Run executes Once repeatedly at the given interval until the context is
// cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.order),
		Systems:     make([]SystemStats, len(s.order)),
	}

	var totalExecs int64
	for i, id := range s.order {
		e := s.entries[id]
		internal := e.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Id:             id,
			Name:           e.name,
			Active:         e.active,
			Members:        e.matcher.Len(),
			Required:       e.matcher.Mask(),
			ExecutionCount: internal.executionCount,
			EnableCount:    internal.enableCount,
			DisableCount:   internal.disableCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		if e.active {
			stats.ActiveCount++
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}

// SystemHandle is a non-owning reference to a registered system's matched
// entity set. Once the system is unregistered the handle reports itself
// dead and empty instead of failing.
type SystemHandle struct {
	sched      *Scheduler
	id         SystemId
	generation uint32
}

// Handle returns a handle for the system with the given id.
func (s *Scheduler) Handle(id SystemId) (SystemHandle, bool) {
	if s.entry(id) == nil {
		return SystemHandle{}, false
	}
	return SystemHandle{sched: s, id: id, generation: s.generations[id]}, true
}

// HandleOf returns a handle for the registered system of type S.
func HandleOf[S any](s *Scheduler) (SystemHandle, bool) {
	id, ok := SystemIdOf[S](s)
	if !ok {
		return SystemHandle{}, false
	}
	return s.Handle(id)
}

// Id returns the system id the handle refers to.
func (h SystemHandle) Id() SystemId { return h.id }

// Matcher returns the system's matcher, or nil if the system is gone.
func (h SystemHandle) Matcher() *Matcher {
	if h.sched == nil || int(h.id) >= len(h.sched.entries) {
		return nil
	}
	e := h.sched.entries[h.id]
	if e == nil || h.sched.generations[h.id] != h.generation {
		return nil
	}
	return e.matcher
}

// Alive reports whether the system is still registered.
func (h SystemHandle) Alive() bool {
	return h.Matcher() != nil
}

// Len returns the number of entities the system currently matches.
func (h SystemHandle) Len() int {
	if m := h.Matcher(); m != nil {
		return m.Len()
	}
	return 0
}

// Has reports whether the system currently matches e.
func (h SystemHandle) Has(e EntityId) bool {
	if m := h.Matcher(); m != nil {
		return m.Has(e)
	}
	return false
}

// Entities iterates the system's matched entities.
func (h SystemHandle) Entities() iter.Seq[EntityId] {
	if m := h.Matcher(); m != nil {
		return m.Entities()
	}
	return func(func(EntityId) bool) {}
}
