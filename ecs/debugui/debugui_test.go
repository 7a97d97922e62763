package debugui

import (
	"testing"

	"github.com/plus3/maskecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }

type moveSystem struct{}

func (moveSystem) Requires() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.Component[position](), ecs.Component[velocity]()}
}

func (moveSystem) Execute(*ecs.UpdateFrame) {}

func newDebugWorld(t *testing.T) (*ecs.World, *ecs.Scheduler) {
	t.Helper()
	w := ecs.NewWorld(ecs.WithEntityCapacity(64))
	ecs.Register[position](w.Components())
	ecs.Register[velocity](w.Components())
	return w, ecs.NewScheduler(w)
}

func TestBuildEntityInfos(t *testing.T) {
	w, _ := newDebugWorld(t)

	a := w.CreateEntity()
	ecs.Add(w, a, position{})
	b := w.CreateEntity()
	ecs.Add(w, b, position{})
	ecs.Add(w, b, velocity{})
	w.RemoveEntity(a)

	infos := buildEntityInfos(w, nil)
	require.Len(t, infos, 2)

	assert.Equal(t, a, infos[0].ID)
	assert.True(t, infos[0].Pending)
	assert.Equal(t, 1, infos[0].ComponentCount)

	assert.Equal(t, b, infos[1].ID)
	assert.False(t, infos[1].Pending)
	assert.Equal(t, []string{"position", "velocity"}, infos[1].ComponentTypes)
}

func TestFilterEntities(t *testing.T) {
	w, sched := newDebugWorld(t)
	sched.Register(moveSystem{})

	a := w.CreateEntity()
	ecs.Add(w, a, position{})
	b := w.CreateEntity()
	ecs.Add(w, b, position{})
	ecs.Add(w, b, velocity{})
	w.Update()

	infos := buildEntityInfos(w, nil)

	t.Run("no filter", func(t *testing.T) {
		assert.Len(t, filterEntities(infos, "", ecs.SystemHandle{}, false), 2)
	})

	t.Run("by component name", func(t *testing.T) {
		filtered := filterEntities(infos, "VELO", ecs.SystemHandle{}, false)
		require.Len(t, filtered, 1)
		assert.Equal(t, b, filtered[0].ID)
	})

	t.Run("by system members", func(t *testing.T) {
		handle, ok := ecs.HandleOf[moveSystem](sched)
		require.True(t, ok)

		filtered := filterEntities(infos, "", handle, true)
		require.Len(t, filtered, 1)
		assert.Equal(t, b, filtered[0].ID)
	})
}

func TestSystemInfos(t *testing.T) {
	w, sched := newDebugWorld(t)
	id := sched.Register(moveSystem{})
	sched.Enable(id)

	e := w.CreateEntity()
	ecs.Add(w, e, position{})
	ecs.Add(w, e, velocity{})
	sched.Once(0.1)

	rows := buildSystemInfos(sched, sched.GetStats())
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].ID)
	assert.True(t, rows[0].Active)
	assert.Equal(t, 1, rows[0].Members)
	assert.Equal(t, int64(1), rows[0].ExecutionCount)
	assert.Equal(t, []string{"position", "velocity"}, rows[0].Required)
}

func TestSortSystems(t *testing.T) {
	rows := []SystemInfo{
		{ID: 0, Members: 5},
		{ID: 1, Members: 1},
		{ID: 2, Members: 3},
	}

	sortSystems(rows, 3, true)
	assert.Equal(t, []ecs.SystemId{1, 2, 0}, []ecs.SystemId{rows[0].ID, rows[1].ID, rows[2].ID})

	sortSystems(rows, 0, true)
	assert.Equal(t, []ecs.SystemId{0, 1, 2}, []ecs.SystemId{rows[0].ID, rows[1].ID, rows[2].ID})
}

func TestMatchingEntities(t *testing.T) {
	w, _ := newDebugWorld(t)

	a := w.CreateEntity()
	ecs.Add(w, a, position{})
	b := w.CreateEntity()
	ecs.Add(w, b, position{})
	ecs.Add(w, b, velocity{})

	var mask ecs.Mask
	mask.Set(ecs.IdOf[position](w.Components()))
	assert.Equal(t, []ecs.EntityId{a, b}, MatchingEntities(w, mask))

	mask.Set(ecs.IdOf[velocity](w.Components()))
	assert.Equal(t, []ecs.EntityId{b}, MatchingEntities(w, mask))
}

func TestPerformanceStatsRecord(t *testing.T) {
	ps := NewPerformanceStatsComponent(4)

	assert.InDelta(t, 2.5, ps.record(0.010), 1e-4)
	assert.InDelta(t, 5.0, ps.record(0.010), 1e-4)
	ps.record(0.010)
	ps.record(0.010)
	assert.InDelta(t, 12.5, ps.record(0.020), 1e-4)
}

func TestSpawnDebugUI(t *testing.T) {
	w, sched := newDebugWorld(t)
	id := sched.Register(&ImguiSystem{})

	game := w.CreateEntity()
	ecs.Add(w, game, ImguiItem{Order: 0})

	e := SpawnDebugUI(sched)
	w.Update()

	assert.True(t, ecs.Has[EntityBrowserComponent](w, e))
	assert.True(t, ecs.Has[SystemViewerComponent](w, e))
	assert.True(t, ecs.Has[FrameTimer](w, e))

	handle, ok := sched.Handle(id)
	require.True(t, ok)

	items := collectItems(w, handle.Matcher(), nil)
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Order)
	assert.Equal(t, DebugOrder, items[1].Order)
	assert.NotNil(t, items[1].Render)
}
