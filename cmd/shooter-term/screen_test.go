package main

import (
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/maskecs/ecs"
	"github.com/plus3/maskecs/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 40)
	t.Cleanup(screen.Fini)
	return NewTerminal(screen, &game.Canvas{}), screen
}

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		name string
		key  tcell.Key
		r    rune
		want any
	}{
		{"arrow", tcell.KeyLeft, 0, game.KeyEvent{Key: game.KeyLeft, Tap: true}},
		{"vi", tcell.KeyRune, 'l', game.KeyEvent{Key: game.KeyRight, Tap: true}},
		{"fire", tcell.KeyRune, ' ', game.KeyEvent{Key: game.KeyFire, Tap: true}},
		{"pause", tcell.KeyRune, 'p', game.KeyEvent{Key: game.KeyPause, Pressed: true}},
		{"confirm", tcell.KeyEnter, 0, game.KeyEvent{Key: game.KeyConfirm, Pressed: true}},
		{"escape", tcell.KeyEscape, 0, game.QuitEvent{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok := translateKey(tcell.NewEventKey(tc.key, tc.r, tcell.ModNone))
			require.True(t, ok)
			assert.Equal(t, tc.want, ev)
		})
	}

	_, ok := translateKey(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	assert.False(t, ok)
}

func TestTerminalPoll(t *testing.T) {
	t.Run("draws the previous frame", func(t *testing.T) {
		term, screen := newSimTerminal(t)
		assets, err := game.LoadAssets(nil, "")
		require.NoError(t, err)

		term.canvas.Push(game.Drawable{X: 10, Y: 5, Art: assets.Art(game.ArtShotEnemy)})
		term.canvas.Push(game.Drawable{X: 0, Y: 0, Text: "HI", Color: color.RGBA{R: 255, A: 255}})

		events, err := term.Poll()
		require.NoError(t, err)
		assert.Empty(t, events)

		r, _, _, _ := screen.GetContent(10, 5)
		assert.Equal(t, '█', r)
		r, _, _, _ = screen.GetContent(1, 0)
		assert.Equal(t, 'I', r)
		assert.Empty(t, term.canvas.Frame())
	})

	t.Run("drains input", func(t *testing.T) {
		term, _ := newSimTerminal(t)
		term.events <- game.KeyEvent{Key: game.KeyFire, Tap: true}
		term.events <- game.QuitEvent{}

		events, err := term.Poll()
		require.NoError(t, err)
		assert.Len(t, events, 2)

		events, err = term.Poll()
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("quits when input closes", func(t *testing.T) {
		term, _ := newSimTerminal(t)
		close(term.events)

		events, err := term.Poll()
		require.NoError(t, err)
		assert.Equal(t, []ecs.InputEvent{game.QuitEvent{}}, events)
	})
}

func TestTerminalListen(t *testing.T) {
	t.Run("stop releases a blocked send", func(t *testing.T) {
		term, screen := newSimTerminal(t)
		term.events = make(chan ecs.InputEvent)

		returned := make(chan struct{})
		go func() {
			term.Listen()
			close(returned)
		}()

		screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
		term.Stop()

		select {
		case <-returned:
		case <-time.After(time.Second):
			t.Fatal("Listen did not return after Stop")
		}
	})

	t.Run("finalizing the screen closes the queue", func(t *testing.T) {
		screen := tcell.NewSimulationScreen("UTF-8")
		require.NoError(t, screen.Init())
		term := NewTerminal(screen, &game.Canvas{})
		go term.Listen()

		screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
		assert.Equal(t, game.KeyEvent{Key: game.KeyFire, Tap: true}, <-term.events)

		screen.Fini()
		_, open := <-term.events
		assert.False(t, open)
	})
}

func TestSweep(t *testing.T) {
	s := newSweep(tones[game.SoundShot])
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		for _, sample := range buf[:n] {
			assert.LessOrEqual(t, sample[0], 0.25)
			assert.GreaterOrEqual(t, sample[0], -0.25)
		}
		if !ok {
			break
		}
	}
	assert.Equal(t, sampleRate.N(tones[game.SoundShot].length), total)
}
