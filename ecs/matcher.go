package ecs

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
)

// Matcher maintains the set of entities whose mask satisfies a system's
// requirement. It is driven entirely by ComponentEvents; it never scans the
// world after it has been seeded.
type Matcher struct {
	id       SystemId
	name     string
	required Mask
	members  *intmap.Set[EntityId]
}

func newMatcher(id SystemId, name string, required Mask) *Matcher {
	return &Matcher{
		id:       id,
		name:     name,
		required: required,
		members:  intmap.NewSet[EntityId](64),
	}
}

// OnEvent updates membership for a single attach or detach.
func (m *Matcher) OnEvent(ev ComponentEvent) {
	mask, alive := ev.Mask()

	switch ev.Kind {
	case Attached:
		if !alive || m.members.Has(ev.Entity) || !m.required.Has(ev.Component) {
			return
		}
		if mask.Contains(m.required) {
			m.members.Add(ev.Entity)
		}
	case Detached:
		if !m.members.Has(ev.Entity) {
			return
		}
		if ev.Component == AllComponents || !alive || !mask.Contains(m.required) {
			m.members.Del(ev.Entity)
		}
	}
}

// seed adds every live entity that already satisfies the requirement.
func (m *Matcher) seed(d *directory) int {
	if m.required.Empty() {
		return 0
	}
	for id := range d.live.All() {
		if d.masks[id].Contains(m.required) {
			m.members.Add(id)
		}
	}
	return m.members.Len()
}

// Id returns the id of the system the matcher belongs to.
func (m *Matcher) Id() SystemId { return m.id }

// Name returns the system's type name.
func (m *Matcher) Name() string { return m.name }

// Mask returns the required component mask.
func (m *Matcher) Mask() Mask { return m.required }

// Len returns the number of member entities.
func (m *Matcher) Len() int { return m.members.Len() }

// Has reports whether e is a member.
func (m *Matcher) Has(e EntityId) bool { return m.members.Has(e) }

// Entities iterates the members in no particular order. Membership only
// changes during World.Update, so removing entities or components while
// iterating is safe.
func (m *Matcher) Entities() iter.Seq[EntityId] {
	return m.members.All()
}

// Sorted returns the members in ascending id order.
func (m *Matcher) Sorted() []EntityId {
	ids := make([]EntityId, 0, m.members.Len())
	for id := range m.members.All() {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
