package debugui

import (
	"github.com/plus3/maskecs/ecs"
)

// DebugOrder is the ImguiItem order used for the inspector panels so they draw after game windows.
const DebugOrder = 1000

// SpawnDebugUI creates one entity carrying every inspector panel and an ImguiItem that draws
// them. The panels read the scheduler's world, so the entity shows up in its own browser.
func SpawnDebugUI(sched *ecs.Scheduler) ecs.EntityId {
	w := sched.World()
	RegisterDebugUIComponents(w)

	e := w.CreateEntity()
	ecs.Add(w, e, NewEntityBrowserComponent(100))
	ecs.Add(w, e, NewComponentInspectorComponent())
	ecs.Add(w, e, NewSystemViewerComponent())
	ecs.Add(w, e, NewPerformanceStatsComponent(120))
	ecs.Add(w, e, NewQueryDebuggerComponent())
	ecs.Add(w, e, *NewFrameTimer())
	ecs.Add(w, e, ImguiItem{
		Order:  DebugOrder,
		Render: func() { renderPanels(sched, e) },
	})
	return e
}

func renderPanels(sched *ecs.Scheduler, e ecs.EntityId) {
	w := sched.World()
	if !w.IsAlive(e) {
		return
	}

	browser := ecs.GetMut[EntityBrowserComponent](w, e)
	inspector := ecs.GetMut[ComponentInspectorComponent](w, e)
	viewer := ecs.GetMut[SystemViewerComponent](w, e)
	perf := ecs.GetMut[PerformanceStatsComponent](w, e)
	query := ecs.GetMut[QueryDebuggerComponent](w, e)
	timer := ecs.GetMut[FrameTimer](w, e)
	if browser == nil || inspector == nil || viewer == nil || perf == nil || query == nil || timer == nil {
		return
	}

	browser.Render(sched)
	selected, ok := browser.GetSelectedEntity()
	inspector.Render(w, selected, ok)

	if clicked := viewer.Render(sched); clicked != nil {
		browser.FilterBySystem(clicked)
	}

	perf.Render(sched, timer.GetDeltaTime())
	query.Render(w)
}

func RegisterDebugUIComponents(w *ecs.World) {
	registry := w.Components()
	ecs.Register[ImguiItem](registry)
	ecs.Register[EntityBrowserComponent](registry)
	ecs.Register[ComponentInspectorComponent](registry)
	ecs.Register[SystemViewerComponent](registry)
	ecs.Register[PerformanceStatsComponent](registry)
	ecs.Register[QueryDebuggerComponent](registry)
	ecs.Register[FrameTimer](registry)
}
