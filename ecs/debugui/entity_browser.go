package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/maskecs/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	Mask           ecs.Mask
	ComponentTypes []string
	ComponentCount int
	Pending        bool
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

// FilterBySystem restricts the browser to the members of a system, or lifts the restriction
// when id is nil.
func (eb *EntityBrowserComponent) FilterBySystem(id *ecs.SystemId) {
	eb.filterSystem = id
	eb.currentPage = 0
}

func (eb *EntityBrowserComponent) Render(sched *ecs.Scheduler) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	w := sched.World()
	eb.rebuildCache(w)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterSystem = nil
	}
	if eb.filterSystem != nil {
		if sys, ok := sched.Handle(*eb.filterSystem); ok {
			imgui.Text(fmt.Sprintf("Members of %s", sys.Matcher().Name()))
		}
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Mask")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		filteredEntities := eb.getFilteredEntities(sched)

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d", entity.ID)
			if entity.Pending {
				label += " (removing)"
			}
			isSelected := eb.hasSelection && eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(label, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
				eb.hasSelection = true
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Mask.String())

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	filteredEntities := eb.getFilteredEntities(sched)

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// rebuildCache refreshes the rows every frame; masks change without the entity count changing.
func (eb *EntityBrowserComponent) rebuildCache(w *ecs.World) {
	eb.cache.entities = buildEntityInfos(w, eb.cache.entities[:0])
	eb.sortEntities()

	if eb.hasSelection && !w.IsAlive(eb.selectedEntityId) {
		eb.hasSelection = false
	}
}

func buildEntityInfos(w *ecs.World, into []EntityInfo) []EntityInfo {
	components := w.Components()
	for _, id := range w.Entities() {
		mask := w.MaskOf(id)
		names := make([]string, 0, mask.Count())
		mask.ForEach(func(c ecs.TypeId) {
			names = append(names, components.Name(c))
		})
		into = append(into, EntityInfo{
			ID:             id,
			Mask:           mask,
			ComponentTypes: names,
			ComponentCount: len(names),
			Pending:        w.PendingRemoval(id),
		})
	}
	return into
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.Slice(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 0:
			less = a.ID < b.ID
		case 1:
			less = a.Mask.String() < b.Mask.String()
		case 2:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.ID < b.ID
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowserComponent) getFilteredEntities(sched *ecs.Scheduler) []EntityInfo {
	var members ecs.SystemHandle
	filterMembers := false
	if eb.filterSystem != nil {
		members, filterMembers = sched.Handle(*eb.filterSystem)
	}
	return filterEntities(eb.cache.entities, eb.filterText, members, filterMembers)
}

func filterEntities(entities []EntityInfo, text string, members ecs.SystemHandle, filterMembers bool) []EntityInfo {
	if text == "" && !filterMembers {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, entity := range entities {
		if filterMembers && !members.Has(entity.ID) {
			continue
		}

		if text != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// GetSelectedEntity returns the selected entity, if any.
func (eb *EntityBrowserComponent) GetSelectedEntity() (ecs.EntityId, bool) {
	return eb.selectedEntityId, eb.hasSelection
}
