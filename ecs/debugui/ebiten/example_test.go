package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/maskecs/ecs"
	"github.com/plus3/maskecs/ecs/debugui"
	debugui_ebiten "github.com/plus3/maskecs/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	scheduler    *ecs.Scheduler
	imguiBackend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Execute all ECS systems (including ImguiSystem) inside one ImGui frame
	g.imguiBackend.Once(g.scheduler, 1.0/60.0)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	g.imguiBackend.Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	// Create Ebiten window and ImGui backend
	imguiBackend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)

	// Create the world and register ImGui components
	world := ecs.NewWorld()
	debugui.RegisterDebugUIComponents(world)

	// Spawn an entity with an ImGui render function
	e := world.CreateEntity()
	ecs.Add(world, e, debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	// Create scheduler, register ImguiSystem, and add the inspector panels
	scheduler := ecs.NewScheduler(world)
	scheduler.Enable(scheduler.Register(&debugui.ImguiSystem{}))
	debugui.SpawnDebugUI(scheduler)

	game := &Game{
		scheduler:    scheduler,
		imguiBackend: imguiBackend,
	}

	// Run the game
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
