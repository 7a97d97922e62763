package game_test

import (
	"bytes"
	"testing"

	"github.com/plus3/maskecs/ecs"
	"github.com/plus3/maskecs/game"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) (*game.Game, *game.Canvas, *recordingAudio) {
	t.Helper()

	cfg := game.DefaultConfig
	cfg.Seed = 7
	canvas := &game.Canvas{}
	audio := &recordingAudio{}

	g, err := game.New(cfg, canvas, audio, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g, canvas, audio
}

func active(g *game.Game, st ecs.SystemType) bool {
	id, ok := g.Engine.Scheduler.Lookup(st)
	return ok && g.Engine.Scheduler.IsActive(id)
}

func toggles(g *game.Game, st ecs.SystemType) (enabled, disabled int64) {
	id, _ := g.Engine.Scheduler.Lookup(st)
	for _, s := range g.Engine.Scheduler.GetStats().Systems {
		if s.Id == id {
			return s.EnableCount, s.DisableCount
		}
	}
	return 0, 0
}

func TestGame_Start(t *testing.T) {
	g, canvas, _ := newTestGame(t)

	require.True(t, g.Start())
	playing, ok := g.Engine.States.Top().(*game.PlayingState)
	require.True(t, ok)

	assert.True(t, g.Engine.World.IsAlive(playing.Player()))
	assert.True(t, active(g, ecs.SystemOf[game.InputSystem]()))
	assert.True(t, active(g, ecs.SystemOf[game.GraphicsSystem]()))

	canvas.Reset()
	require.True(t, g.Tick())

	frame := canvas.Frame()
	require.Len(t, frame, 2, "player sprite and HUD")
	assert.Equal(t, game.ArtPlayer, frame[0].Art.Name)
	assert.Contains(t, frame[1].Text, "SCORE 000000")
}

func TestGame_PauseAndResume(t *testing.T) {
	g, canvas, _ := newTestGame(t)
	require.True(t, g.Start())

	assert.False(t, g.Dispatch(game.KeyEvent{Key: game.KeyPause, Pressed: true}))
	require.True(t, g.Tick())
	require.True(t, g.Tick())

	_, paused := g.Engine.States.Top().(*game.PausedState)
	require.True(t, paused)
	assert.Equal(t, 2, g.Engine.States.Len())
	assert.True(t, active(g, ecs.SystemOf[game.GraphicsSystem]()))
	assert.False(t, active(g, ecs.SystemOf[game.InputSystem]()))
	assert.False(t, active(g, ecs.SystemOf[game.SpawnerSystem]()))

	canvas.Reset()
	require.True(t, g.Tick())
	texts := 0
	for _, d := range canvas.Frame() {
		if d.Text == "PAUSED" {
			texts++
		}
	}
	assert.Equal(t, 1, texts)

	assert.False(t, g.Dispatch(game.KeyEvent{Key: game.KeyPause, Pressed: true}))
	require.True(t, g.Tick())

	_, playing := g.Engine.States.Top().(*game.PlayingState)
	assert.True(t, playing)
	assert.True(t, active(g, ecs.SystemOf[game.InputSystem]()))
}

func TestGame_DeathAndRestart(t *testing.T) {
	g, canvas, audio := newTestGame(t)
	require.True(t, g.Start())
	playing := g.Engine.States.Top().(*game.PlayingState)
	w := g.Engine.World

	ecs.GetMut[game.Health](w, playing.Player()).Points = 0
	require.True(t, g.Tick())
	assert.Contains(t, audio.played, game.SoundPlayerDeath)

	require.True(t, g.Tick(), "the playing state hands over to game over")
	over, ok := g.Engine.States.Top().(*game.GameOverState)
	require.True(t, ok)
	assert.NotNil(t, over)
	assert.Equal(t, 1, g.Engine.States.Len())
	assert.True(t, active(g, ecs.SystemOf[game.EnemyAISystem]()))
	assert.True(t, active(g, ecs.SystemOf[game.GraphicsSystem]()))
	assert.False(t, active(g, ecs.SystemOf[game.ShotSystem]()))

	canvas.Reset()
	require.True(t, g.Tick())
	assert.NotEmpty(t, canvas.Frame(), "game over draws on the first tick after the hand-off")

	assert.False(t, g.Dispatch(game.KeyEvent{Key: game.KeyConfirm, Pressed: true}))
	require.True(t, g.Tick())
	again, ok := g.Engine.States.Top().(*game.PlayingState)
	require.True(t, ok)
	assert.NotSame(t, playing, again)
	assert.Equal(t, 1, w.EntityCount(), "the world was reset and a new player spawned")

	for _, st := range []ecs.SystemType{
		ecs.SystemOf[game.GraphicsSystem](),
		ecs.SystemOf[game.PhysicsSystem](),
		ecs.SystemOf[game.EnemyAISystem](),
		ecs.SystemOf[game.LifetimeSystem](),
	} {
		enabled, disabled := toggles(g, st)
		assert.Equal(t, int64(1), enabled, "%s", st)
		assert.Equal(t, int64(0), disabled, "%s", st)
	}
	enabled, disabled := toggles(g, ecs.SystemOf[game.ShotSystem]())
	assert.Equal(t, int64(2), enabled)
	assert.Equal(t, int64(1), disabled)
}

func TestGame_Quit(t *testing.T) {
	g, _, _ := newTestGame(t)
	require.True(t, g.Start())

	assert.False(t, g.Dispatch(game.KeyEvent{Key: game.KeyLeft, Pressed: true}))
	assert.True(t, g.Dispatch(game.KeyEvent{Key: game.KeyEscape, Pressed: true}))
	assert.True(t, g.Dispatch(game.QuitEvent{}))
}

func TestGame_PlaysWaves(t *testing.T) {
	g, _, audio := newTestGame(t)
	require.True(t, g.Start())

	// Two seconds are enough for the first wave to appear.
	for range 2 * g.Config.TickRate {
		require.True(t, g.Tick())
	}

	handle, ok := ecs.HandleOf[game.EnemyAISystem](g.Engine.Scheduler)
	require.True(t, ok)
	assert.Equal(t, game.DefaultWaves()[0].Count, handle.Len())
	assert.Contains(t, audio.played, game.SoundWave)
}

func TestGame_Logging(t *testing.T) {
	var buf bytes.Buffer
	cfg := game.DefaultConfig
	cfg.Seed = 1

	g, err := game.New(cfg, nil, nil, zerolog.New(&buf).Level(zerolog.DebugLevel))
	require.NoError(t, err)
	defer g.Close()
	require.True(t, g.Start())

	assert.Contains(t, buf.String(), `"message":"game created"`)
	assert.Contains(t, buf.String(), `"message":"game started"`)
	assert.Contains(t, buf.String(), `"system":"InputSystem"`)
	assert.Contains(t, buf.String(), `"total_systems":8`)
	assert.Contains(t, buf.String(), `"components":["Transform","Velocity","Health","Sprite","Player"]`)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := game.DefaultConfig
	cfg.TickRate = 0

	_, err := game.New(cfg, nil, nil, zerolog.Nop())
	assert.Error(t, err)
}
