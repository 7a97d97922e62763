package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/maskecs/ecs"
)

type SystemInfo struct {
	ID             ecs.SystemId
	Name           string
	Required       []string
	Active         bool
	Members        int
	ExecutionCount int64
	AvgMillis      float64
}

func NewSystemViewerComponent() SystemViewerComponent {
	return SystemViewerComponent{
		sortColumn:    0,
		sortAscending: true,
	}
}

// Render draws the registered systems and lets them be toggled. It returns the id of a system
// whose row was clicked this frame.
func (sv *SystemViewerComponent) Render(sched *ecs.Scheduler) *ecs.SystemId {
	if !imgui.BeginV("System Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	rows := buildSystemInfos(sched, sched.GetStats())
	sortSystems(rows, sv.sortColumn, sv.sortAscending)

	maxMembers := 0
	for _, row := range rows {
		maxMembers = max(maxMembers, row.Members)
	}

	var clicked *ecs.SystemId

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("SystemTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Requires")
		imgui.TableSetupColumn("Active")
		imgui.TableSetupColumn("Members")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg (ms)")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSystems(rows, sv.sortColumn, sv.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range rows {
			imgui.TableNextRow()

			imgui.TableSetColumnIndex(0)
			isSelected := sv.selectedSystem != nil && *sv.selectedSystem == row.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d %s", row.ID, row.Name), isSelected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				id := row.ID
				sv.selectedSystem = &id
				clicked = &id
			}

			imgui.TableSetColumnIndex(1)
			imgui.Text(strings.Join(row.Required, ", "))

			imgui.TableSetColumnIndex(2)
			active := row.Active
			if imgui.Checkbox(fmt.Sprintf("##active%d", row.ID), &active) {
				if active {
					sched.Enable(row.ID)
				} else {
					sched.Disable(row.ID)
				}
			}

			imgui.TableSetColumnIndex(3)
			imgui.Text(fmt.Sprintf("%d", row.Members))
			if maxMembers > 0 {
				barWidth := float32(row.Members) / float32(maxMembers) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableSetColumnIndex(4)
			imgui.Text(fmt.Sprintf("%d", row.ExecutionCount))

			imgui.TableSetColumnIndex(5)
			imgui.Text(fmt.Sprintf("%.3f", row.AvgMillis))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func buildSystemInfos(sched *ecs.Scheduler, stats *ecs.SchedulerStats) []SystemInfo {
	components := sched.World().Components()
	rows := make([]SystemInfo, 0, len(stats.Systems))
	for _, s := range stats.Systems {
		required := make([]string, 0, s.Required.Count())
		s.Required.ForEach(func(c ecs.TypeId) {
			required = append(required, components.Name(c))
		})
		rows = append(rows, SystemInfo{
			ID:             s.Id,
			Name:           s.Name,
			Required:       required,
			Active:         s.Active,
			Members:        s.Members,
			ExecutionCount: s.ExecutionCount,
			AvgMillis:      float64(s.AvgDuration.Microseconds()) / 1000.0,
		})
	}
	return rows
}

func sortSystems(rows []SystemInfo, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool

		switch column {
		case 1:
			less = strings.Join(a.Required, ",") < strings.Join(b.Required, ",")
		case 2:
			less = !a.Active && b.Active
		case 3:
			less = a.Members < b.Members
		case 4:
			less = a.ExecutionCount < b.ExecutionCount
		case 5:
			less = a.AvgMillis < b.AvgMillis
		default:
			less = a.ID < b.ID
		}

		if !ascending {
			return !less
		}
		return less
	})
}
