package debugui

import (
	"slices"

	"github.com/plus3/maskecs/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	hasSelection       bool
	filterText         string
	filterSystem       *ecs.SystemId
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityId
}

type SystemViewerComponent struct {
	selectedSystem *ecs.SystemId
	sortColumn     int
	sortAscending  bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	selectedComponents ecs.Mask
}

// collectItems gathers the ImguiItems of entities, sorted by Order then entity id.
func collectItems(w *ecs.World, members *ecs.Matcher, into []*ImguiItem) []*ImguiItem {
	if members == nil {
		return into
	}
	for _, e := range members.Sorted() {
		if item := ecs.GetMut[ImguiItem](w, e); item != nil {
			into = append(into, item)
		}
	}
	slices.SortStableFunc(into, func(a, b *ImguiItem) int {
		return a.Order - b.Order
	})
	return into
}
