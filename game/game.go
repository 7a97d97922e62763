// Package game is a small vertical shoot-'em-up built on the ecs package. It owns the
// components, systems and states; frontends supply a Renderer, an Audio sink and input events.
package game

import (
	"math/rand/v2"
	"time"

	"github.com/plus3/maskecs/ecs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Smallest playfield the waves are designed for.
const (
	MinWidth  = 40
	MinHeight = 20
)

// Game is an engine with the shooter's systems registered.
type Game struct {
	Engine   *ecs.Engine
	Services *Services
	Config   Config

	sounds *SoundBoard
}

// New builds a game. renderer and audio may be nil for headless runs.
func New(cfg Config, renderer Renderer, audio Audio, logger zerolog.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid config")
	}

	assets, err := LoadAssets(nil, "")
	if err != nil {
		return nil, eris.Wrap(err, "failed to load assets")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if audio == nil || cfg.Mute {
		audio = NopAudio{}
	}

	svc := &Services{
		Renderer: renderer,
		Audio:    audio,
		Assets:   assets,
		Rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Width:    float64(cfg.Width),
		Height:   float64(cfg.Height),
	}

	engine := ecs.NewEngine(
		ecs.WithLogger(logger),
		ecs.WithEntityCapacity(cfg.EntityCapacity),
		ecs.WithServices(svc),
	)
	RegisterComponents(engine.World)
	RegisterSystems(engine.Scheduler)

	ecs.LogWorld(&logger, engine.World, engine.Scheduler, zerolog.DebugLevel)
	logger.Debug().Uint64("seed", seed).Int("width", cfg.Width).Int("height", cfg.Height).Msg("game created")

	return &Game{
		Engine:   engine,
		Services: svc,
		Config:   cfg,
		sounds:   NewSoundBoard(engine.Events, audio),
	}, nil
}

// RegisterSystems registers the shooter's systems in execution order.
func RegisterSystems(sched *ecs.Scheduler) {
	sched.Register(&InputSystem{})
	sched.Register(&EnemyAISystem{})
	sched.Register(&PhysicsSystem{})
	sched.Register(&ShotSystem{})
	sched.Register(&HealthSystem{})
	sched.Register(LifetimeSystem{})
	sched.Register(NewSpawnerSystem(DefaultWaves()))
	sched.Register(&GraphicsSystem{})
}

// Start pushes a new game with the default waves.
func (g *Game) Start() bool {
	return g.Engine.Start(NewPlayingState(DefaultWaves()))
}

// Tick advances the game by one fixed step. It returns false once no state is left.
func (g *Game) Tick() bool {
	return g.Engine.Tick(g.Config.DeltaTime())
}

// Dispatch hands an input event to the current state and reports whether to quit.
func (g *Game) Dispatch(ev ecs.InputEvent) bool {
	return g.Engine.Dispatch(ev)
}

// Close detaches the sound board.
func (g *Game) Close() {
	g.sounds.Close(g.Engine.Events)
}
