package main

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/maskecs/ecs"
	"github.com/plus3/maskecs/game"
)

// Terminal draws canvas frames on a tcell screen and turns key presses into game events.
type Terminal struct {
	screen tcell.Screen
	canvas *game.Canvas
	events chan ecs.InputEvent
	done   chan struct{}
}

func NewTerminal(screen tcell.Screen, canvas *game.Canvas) *Terminal {
	return &Terminal{
		screen: screen,
		canvas: canvas,
		events: make(chan ecs.InputEvent, 64),
		done:   make(chan struct{}),
	}
}

// Listen forwards terminal events until the screen is finalized or Stop is
// called.
func (t *Terminal) Listen() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			close(t.events)
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if mapped, ok := translateKey(ev); ok {
				select {
				case t.events <- mapped:
				case <-t.done:
					return
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// Stop releases a Listen blocked on a full queue once nothing polls anymore.
func (t *Terminal) Stop() {
	close(t.done)
}

// translateKey maps a key press. Terminals never report releases, so movement and fire are taps.
func translateKey(ev *tcell.EventKey) (ecs.InputEvent, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.QuitEvent{}, true
	case tcell.KeyLeft:
		return game.KeyEvent{Key: game.KeyLeft, Tap: true}, true
	case tcell.KeyRight:
		return game.KeyEvent{Key: game.KeyRight, Tap: true}, true
	case tcell.KeyUp:
		return game.KeyEvent{Key: game.KeyUp, Tap: true}, true
	case tcell.KeyDown:
		return game.KeyEvent{Key: game.KeyDown, Tap: true}, true
	case tcell.KeyEnter:
		return game.KeyEvent{Key: game.KeyConfirm, Pressed: true}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return game.KeyEvent{Key: game.KeyFire, Tap: true}, true
		case 'a', 'h':
			return game.KeyEvent{Key: game.KeyLeft, Tap: true}, true
		case 'd', 'l':
			return game.KeyEvent{Key: game.KeyRight, Tap: true}, true
		case 'w', 'k':
			return game.KeyEvent{Key: game.KeyUp, Tap: true}, true
		case 's', 'j':
			return game.KeyEvent{Key: game.KeyDown, Tap: true}, true
		case 'p':
			return game.KeyEvent{Key: game.KeyPause, Pressed: true}, true
		case 'q':
			return game.QuitEvent{}, true
		}
	}
	return nil, false
}

// Poll draws the frame the previous tick produced, then drains pending input. The engine polls
// at the start of every tick, so the screen trails the simulation by one tick.
func (t *Terminal) Poll() ([]ecs.InputEvent, error) {
	t.draw()
	t.canvas.Reset()

	var out []ecs.InputEvent
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				return append(out, game.QuitEvent{}), nil
			}
			out = append(out, ev)
		default:
			return out, nil
		}
	}
}

func (t *Terminal) draw() {
	t.screen.Clear()
	for _, d := range t.canvas.Frame() {
		x, y := int(d.X), int(d.Y)
		switch {
		case d.Art != nil:
			style := tcell.StyleDefault.Foreground(rgb(d.Art.Color))
			d.Art.Cells(func(cx, cy int) {
				t.screen.SetContent(x+cx, y+cy, '█', nil, style)
			})
		case d.Text != "":
			style := tcell.StyleDefault.Foreground(rgb(d.Color)).Bold(true)
			for i, r := range []rune(d.Text) {
				t.screen.SetContent(x+i, y, r, nil, style)
			}
		}
	}
	t.screen.Show()
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
