// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Render functions live on entities as ImguiItem components and are run by ImguiSystem, so the
// inspector panels are ordinary ECS citizens that states can switch on and off.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/maskecs/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Order  int
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem runs every ImguiItem render function, lowest Order first. It must execute between
// the backend's BeginFrame and EndFrame.
type ImguiSystem struct {
	Input ImguiInputState

	items []*ImguiItem
}

func (i *ImguiSystem) Requires() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.Component[ImguiItem]()}
}

// Execute updates the input state and renders all items.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	i.Input.WantCaptureMouse = io.WantCaptureMouse()
	i.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	i.items = collectItems(frame.World, frame.Members, i.items[:0])
	for _, item := range i.items {
		if item.Render != nil {
			item.Render()
		}
	}
	clear(i.items)
}
