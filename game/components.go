package game

import "github.com/plus3/maskecs/ecs"

// Transform places an entity on the playfield. X and Y are the top-left corner in cells.
type Transform struct {
	X, Y float64
	W, H float64
}

// Center returns the midpoint of the box.
func (t Transform) Center() (float64, float64) {
	return t.X + t.W/2, t.Y + t.H/2
}

// Overlaps reports whether two boxes intersect.
func (t Transform) Overlaps(o Transform) bool {
	return t.X < o.X+o.W && o.X < t.X+t.W &&
		t.Y < o.Y+o.H && o.Y < t.Y+t.H
}

// Velocity is in cells per second.
type Velocity struct {
	DX, DY float64
}

// Lifetime removes the entity once Remaining seconds have elapsed.
type Lifetime struct {
	Remaining float64
}

type Health struct {
	Points int
	Max    int
}

// Sprite names the art drawn at the entity's Transform.
type Sprite struct {
	Name  string
	Layer int
}

// Control is one of the player's digital inputs.
type Control int

const (
	ControlLeft Control = iota
	ControlRight
	ControlUp
	ControlDown
	ControlShoot
	ControlCount
)

type Player struct {
	Controls [ControlCount]bool
	Speed    float64
	Cooldown float64
}

// Waypoint is a point an enemy steers toward.
type Waypoint struct {
	X, Y float64
}

type Enemy struct {
	Path     []Waypoint
	Next     int
	Speed    float64
	FireRate float64
	Cooldown float64
	Points   int
}

// Faction tells player shots from enemy shots.
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

func (f Faction) String() string {
	if f == FactionPlayer {
		return "player"
	}
	return "enemy"
}

type Shot struct {
	Owner  Faction
	Damage int
}

// RegisterComponents registers every game component on w in a fixed order so ids are stable
// across runs.
func RegisterComponents(w *ecs.World) {
	r := w.Components()
	ecs.Register[Transform](r)
	ecs.Register[Velocity](r)
	ecs.Register[Lifetime](r)
	ecs.Register[Health](r)
	ecs.Register[Sprite](r)
	ecs.Register[Player](r)
	ecs.Register[Enemy](r)
	ecs.Register[Shot](r)
}
