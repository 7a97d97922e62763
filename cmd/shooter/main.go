// Command shooter runs the shoot-'em-up in an Ebiten window. Set SHOOTER_DEBUG_UI=true for the
// ECS inspector overlay.
package main

import (
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/maskecs/ecs"
	"github.com/plus3/maskecs/ecs/debugui"
	debugui_ebiten "github.com/plus3/maskecs/ecs/debugui/ebiten"
	"github.com/plus3/maskecs/game"
	"github.com/rs/zerolog"
)

const CellSize = 12

var keymap = map[ebiten.Key]game.Key{
	ebiten.KeyArrowLeft:  game.KeyLeft,
	ebiten.KeyA:          game.KeyLeft,
	ebiten.KeyArrowRight: game.KeyRight,
	ebiten.KeyD:          game.KeyRight,
	ebiten.KeyArrowUp:    game.KeyUp,
	ebiten.KeyW:          game.KeyUp,
	ebiten.KeyArrowDown:  game.KeyDown,
	ebiten.KeyS:          game.KeyDown,
	ebiten.KeySpace:      game.KeyFire,
	ebiten.KeyP:          game.KeyPause,
	ebiten.KeyEnter:      game.KeyConfirm,
	ebiten.KeyEscape:     game.KeyEscape,
}

func main() {
	cfg, err := game.LoadConfig()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("failed to load config")
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(cfg.Level()).With().Timestamp().Logger()

	canvas := &game.Canvas{}
	g, err := game.New(cfg, canvas, nil, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create game")
	}
	defer g.Close()

	width, height := cfg.Width*CellSize, cfg.Height*CellSize
	shooter := &Shooter{game: g, canvas: canvas, logger: logger}

	if cfg.DebugUI {
		shooter.imgui = debugui_ebiten.NewImguiBackend("Shooter", width, height)
		debugui.RegisterDebugUIComponents(g.Engine.World)
		g.Engine.Scheduler.Enable(g.Engine.Register(&debugui.ImguiSystem{}))
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("Shooter")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TickRate)

	if !g.Start() {
		logger.Fatal().Msg("game did not start")
	}

	if err := ebiten.RunGame(shooter); err != nil {
		logger.Fatal().Err(err).Msg("game exited with an error")
	}
}

// Shooter adapts the game to ebiten.Game.
type Shooter struct {
	game   *game.Game
	canvas *game.Canvas
	imgui  *debugui_ebiten.ImguiBackend
	logger zerolog.Logger

	debugEntity ecs.EntityId
	hasDebug    bool
}

func (s *Shooter) Update() error {
	for key, mapped := range keymap {
		switch {
		case inpututil.IsKeyJustPressed(key):
			if s.game.Dispatch(game.KeyEvent{Key: mapped, Pressed: true}) {
				return ebiten.Termination
			}
		case inpututil.IsKeyJustReleased(key):
			s.game.Dispatch(game.KeyEvent{Key: mapped})
		}
	}

	s.canvas.Reset()

	var running bool
	if s.imgui != nil {
		s.ensureDebugUI()
		running = s.imgui.Tick(func(float64) bool { return s.game.Tick() }, s.game.Config.DeltaTime())
	} else {
		running = s.game.Tick()
	}
	if !running {
		s.logger.Info().Uint64("ticks", s.game.Engine.Ticks()).Msg("game over")
		return ebiten.Termination
	}
	return nil
}

// ensureDebugUI respawns the inspector after a restart has reset the world.
func (s *Shooter) ensureDebugUI() {
	w := s.game.Engine.World
	if s.hasDebug && w.IsAlive(s.debugEntity) && ecs.Has[debugui.ImguiItem](w, s.debugEntity) {
		return
	}
	s.debugEntity = debugui.SpawnDebugUI(s.game.Engine.Scheduler)
	s.hasDebug = true
}

func (s *Shooter) Draw(screen *ebiten.Image) {
	for _, d := range s.canvas.Frame() {
		switch {
		case d.Art != nil:
			x, y := float32(d.X*CellSize), float32(d.Y*CellSize)
			d.Art.Cells(func(cx, cy int) {
				vector.DrawFilledRect(screen,
					x+float32(cx*CellSize), y+float32(cy*CellSize),
					CellSize, CellSize, d.Art.Color, false)
			})
		case d.Text != "":
			ebitenutil.DebugPrintAt(screen, d.Text, int(d.X*CellSize), int(d.Y*CellSize))
		}
	}

	if s.imgui != nil {
		s.imgui.Overlay(screen)
	}
}

func (s *Shooter) Layout(outsideWidth, outsideHeight int) (int, int) {
	if s.imgui != nil {
		s.imgui.Layout(outsideWidth, outsideHeight)
	}
	cfg := s.game.Config
	return cfg.Width * CellSize, cfg.Height * CellSize
}
