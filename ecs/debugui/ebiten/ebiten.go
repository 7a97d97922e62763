// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/maskecs/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. imgui.ini persistence is disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Tick runs one scheduler-driven frame between BeginFrame and EndFrame, so any ImguiSystem
// the tick executes draws into the current ImGui frame.
func (b *ImguiBackend) Tick(tick func(dt float64) bool, dt float64) bool {
	b.BeginFrame()
	defer b.EndFrame()
	return tick(dt)
}

// Once is Tick for a bare scheduler.
func (b *ImguiBackend) Once(sched *ecs.Scheduler, dt float64) {
	b.Tick(func(dt float64) bool {
		sched.Once(dt)
		return true
	}, dt)
}

// Overlay draws the finished ImGui frame on top of screen.
func (b *ImguiBackend) Overlay(screen *ebiten.Image) {
	b.Draw(screen)
}
