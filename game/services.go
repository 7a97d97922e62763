package game

import (
	"image/color"
	"math/rand/v2"
	"slices"
)

// Drawable is one item of a frame: either a sprite or a line of text.
type Drawable struct {
	X, Y  float64
	Art   *Art
	Text  string
	Color color.RGBA
	Layer int
}

// Renderer receives the frame's drawables. Frontends draw them after the tick.
type Renderer interface {
	Push(d Drawable)
}

// Sound is a short effect.
type Sound int

const (
	SoundShot Sound = iota
	SoundEnemyShot
	SoundExplosion
	SoundPlayerDeath
	SoundWave
)

// Audio plays sound effects. Implementations must not block the tick.
type Audio interface {
	Play(s Sound)
}

// NopAudio discards every sound.
type NopAudio struct{}

func (NopAudio) Play(Sound) {}

// Services is handed to every system and state through the engine.
type Services struct {
	Renderer Renderer
	Audio    Audio
	Assets   *Assets
	Rand     *rand.Rand
	Width    float64
	Height   float64
}

// Canvas is a Renderer that keeps the drawables of one frame, ordered by layer.
type Canvas struct {
	items []Drawable
}

func (c *Canvas) Push(d Drawable) {
	c.items = append(c.items, d)
}

// Frame returns the drawables pushed since the last Reset, lowest layer first.
func (c *Canvas) Frame() []Drawable {
	slices.SortStableFunc(c.items, func(a, b Drawable) int {
		return a.Layer - b.Layer
	})
	return c.items
}

func (c *Canvas) Reset() {
	clear(c.items)
	c.items = c.items[:0]
}
