package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/maskecs/ecs"
)

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{}
}

// Render lets a component mask be assembled from checkboxes and reports the live entities
// that carry every selected component.
func (qd *QueryDebuggerComponent) Render(w *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponents.Reset()
	}

	components := w.Components()
	for i := range components.Len() {
		id := ecs.TypeId(i)
		selected := qd.selectedComponents.Has(id)
		if imgui.Checkbox(components.Name(id), &selected) {
			if selected {
				qd.selectedComponents.Set(id)
			} else {
				qd.selectedComponents.Clear(id)
			}
		}
	}

	imgui.Separator()

	if qd.selectedComponents.Empty() {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := MatchingEntities(w, qd.selectedComponents)
	imgui.Text(fmt.Sprintf("Mask: %s", qd.selectedComponents))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entity Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, e := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", e))

				imgui.TableSetColumnIndex(1)
				names := make([]string, 0)
				w.MaskOf(e).ForEach(func(c ecs.TypeId) {
					names = append(names, components.Name(c))
				})
				imgui.Text(strings.Join(names, ", "))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// MatchingEntities returns the live entities, in ascending order, whose mask contains required.
func MatchingEntities(w *ecs.World, required ecs.Mask) []ecs.EntityId {
	var matching []ecs.EntityId
	for _, e := range w.Entities() {
		if w.MaskOf(e).Contains(required) {
			matching = append(matching, e)
		}
	}
	return matching
}
