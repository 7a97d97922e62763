package game

import (
	"fmt"
	"image/color"

	"github.com/plus3/maskecs/ecs"
	"github.com/rs/zerolog"
)

var (
	textColor   = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	accentColor = color.RGBA{R: 0xff, G: 0xd5, B: 0x4f, A: 0xff}
)

const hudLayer = 100

func servicesFrom(ctx *ecs.StateContext) *Services {
	svc, _ := ctx.Services.(*Services)
	return svc
}

func drawText(svc *Services, y float64, text string, c color.RGBA) {
	if svc == nil || svc.Renderer == nil {
		return
	}
	svc.Renderer.Push(Drawable{
		X:     (svc.Width - float64(len(text))) / 2,
		Y:     y,
		Text:  text,
		Color: c,
		Layer: hudLayer,
	})
}

func isQuit(ev ecs.InputEvent) bool {
	switch ev := ev.(type) {
	case QuitEvent:
		return true
	case KeyEvent:
		return ev.Key == KeyEscape && (ev.Pressed || ev.Tap)
	}
	return false
}

func pressed(ev ecs.InputEvent, keys ...Key) bool {
	k, ok := ev.(KeyEvent)
	if !ok || !(k.Pressed || k.Tap) {
		return false
	}
	for _, key := range keys {
		if k.Key == key {
			return true
		}
	}
	return false
}

// PlayingState is the main mode: the player flies, waves spawn, shots hit.
type PlayingState struct {
	waves    []Wave
	player   ecs.EntityId
	controls Controls
	pause    bool
	score    *ScoreKeeper
	spawner  *SpawnerSystem
}

func NewPlayingState(waves []Wave) *PlayingState {
	return &PlayingState{waves: waves}
}

func (s *PlayingState) Systems() []ecs.SystemType {
	return []ecs.SystemType{
		ecs.SystemOf[InputSystem](),
		ecs.SystemOf[EnemyAISystem](),
		ecs.SystemOf[PhysicsSystem](),
		ecs.SystemOf[ShotSystem](),
		ecs.SystemOf[HealthSystem](),
		ecs.SystemOf[LifetimeSystem](),
		ecs.SystemOf[SpawnerSystem](),
		ecs.SystemOf[GraphicsSystem](),
	}
}

// Score returns the running score keeper, nil before the state was entered.
func (s *PlayingState) Score() *ScoreKeeper {
	return s.score
}

// Player returns the player entity.
func (s *PlayingState) Player() ecs.EntityId {
	return s.player
}

func (s *PlayingState) OnEnter(ctx *ecs.StateContext, created bool) {
	if !created {
		s.controls.Release()
		return
	}

	svc := servicesFrom(ctx)
	factory := Factory{World: ctx.World, Assets: svc.Assets}
	w, h := factory.size(ArtPlayer)
	s.player = factory.Player((svc.Width-w)/2, svc.Height-h-1)

	s.score = &ScoreKeeper{}
	ecs.Listen[DeathEvent](ctx.Events, s.score)

	if id, ok := ctx.Scheduler.Lookup(ecs.SystemOf[SpawnerSystem]()); ok {
		if sys, ok := ctx.Scheduler.System(id); ok {
			s.spawner, _ = sys.(*SpawnerSystem)
		}
	}
	if s.spawner != nil {
		s.spawner.Reset(s.waves)
	}
	ctx.Logger.Info().Uint32("player", uint32(s.player)).Int("waves", len(s.waves)).Msg("game started")
	ecs.LogEntity(&ctx.Logger, ctx.World, s.player, zerolog.DebugLevel)
}

func (s *PlayingState) OnEvent(ev ecs.InputEvent) bool {
	if isQuit(ev) {
		return true
	}
	if pressed(ev, KeyPause) {
		s.pause = true
		return false
	}
	if k, ok := ev.(KeyEvent); ok {
		s.controls.Apply(k)
	}
	return false
}

func (s *PlayingState) Update(ctx *ecs.StateContext) bool {
	if s.pause {
		s.pause = false
		ctx.Enqueue(&PausedState{})
	}

	if !ctx.World.IsAlive(s.player) {
		ctx.Enqueue(NewGameOverState(*s.score, false, s.waves))
		return false
	}
	if s.spawner != nil && s.spawner.Done() {
		ctx.Enqueue(NewGameOverState(*s.score, true, s.waves))
		return false
	}

	player := ecs.GetMut[Player](ctx.World, s.player)
	if player != nil {
		player.Controls = s.controls.Snapshot()
	}

	svc := servicesFrom(ctx)
	hp := 0
	if health, ok := ecs.Get[Health](ctx.World, s.player); ok {
		hp = health.Points
	}
	wave := 0
	if s.spawner != nil {
		wave = s.spawner.Wave()
	}
	if svc != nil && svc.Renderer != nil {
		svc.Renderer.Push(Drawable{
			X:     1,
			Y:     0,
			Text:  fmt.Sprintf("SCORE %06d  HP %d  WAVE %d", s.score.Score, hp, wave),
			Color: textColor,
			Layer: hudLayer,
		})
	}
	return true
}

func (s *PlayingState) OnLeave(ctx *ecs.StateContext, destroyed bool) {
	if !destroyed {
		return
	}
	ecs.Unlisten[DeathEvent](ctx.Events, s.score)
	ctx.World.RemoveEntity(s.player)
	ctx.Logger.Info().Int("score", s.score.Score).Int("kills", s.score.Kills).Msg("game ended")
}

// PausedState freezes the game. Only GraphicsSystem keeps running so the scene stays visible.
type PausedState struct {
	resume bool
}

func (s *PausedState) Systems() []ecs.SystemType {
	return []ecs.SystemType{ecs.SystemOf[GraphicsSystem]()}
}

func (s *PausedState) OnEnter(ctx *ecs.StateContext, created bool) {
	ctx.Logger.Debug().Msg("game paused")
}

func (s *PausedState) OnEvent(ev ecs.InputEvent) bool {
	if isQuit(ev) {
		return true
	}
	if pressed(ev, KeyPause, KeyConfirm, KeyFire) {
		s.resume = true
	}
	return false
}

func (s *PausedState) Update(ctx *ecs.StateContext) bool {
	svc := servicesFrom(ctx)
	if svc != nil {
		drawText(svc, svc.Height/2-2, "PAUSED", accentColor)
		drawText(svc, svc.Height/2, "PRESS P OR SPACE TO RESUME", textColor)
	}
	return !s.resume
}

func (s *PausedState) OnLeave(ctx *ecs.StateContext, destroyed bool) {
	ctx.Logger.Debug().Bool("destroyed", destroyed).Msg("game resumed")
}

// GameOverState shows the final score while the remaining enemies fly off. Confirming starts
// a new game on a reset world.
type GameOverState struct {
	score   ScoreKeeper
	won     bool
	waves   []Wave
	restart bool
}

func NewGameOverState(score ScoreKeeper, won bool, waves []Wave) *GameOverState {
	return &GameOverState{score: score, won: won, waves: waves}
}

func (s *GameOverState) Systems() []ecs.SystemType {
	return []ecs.SystemType{
		ecs.SystemOf[EnemyAISystem](),
		ecs.SystemOf[PhysicsSystem](),
		ecs.SystemOf[LifetimeSystem](),
		ecs.SystemOf[GraphicsSystem](),
	}
}

func (s *GameOverState) OnEnter(ctx *ecs.StateContext, created bool) {
	ctx.Logger.Info().Bool("won", s.won).Int("score", s.score.Score).Msg("game over")
}

func (s *GameOverState) OnEvent(ev ecs.InputEvent) bool {
	if isQuit(ev) {
		return true
	}
	if pressed(ev, KeyConfirm, KeyFire) {
		s.restart = true
	}
	return false
}

func (s *GameOverState) Update(ctx *ecs.StateContext) bool {
	if s.restart {
		ctx.World.Reset()
		ctx.Enqueue(NewPlayingState(s.waves))
		return false
	}

	svc := servicesFrom(ctx)
	if svc != nil {
		title := "GAME OVER"
		if s.won {
			title = "YOU WIN"
		}
		drawText(svc, svc.Height/2-3, title, accentColor)
		drawText(svc, svc.Height/2-1, fmt.Sprintf("SCORE %d  KILLS %d", s.score.Score, s.score.Kills), textColor)
		drawText(svc, svc.Height/2+1, "PRESS ENTER TO PLAY AGAIN, ESC TO QUIT", textColor)
	}
	return true
}

func (s *GameOverState) OnLeave(ctx *ecs.StateContext, destroyed bool) {}
