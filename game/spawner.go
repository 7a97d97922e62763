package game

import (
	"math"

	"github.com/plus3/maskecs/ecs"
)

// Pattern is the shape of an enemy's flight path.
type Pattern int

const (
	PatternLine Pattern = iota
	PatternCircle
	PatternDiagonalLeft
	PatternDiagonalRight
)

func (p Pattern) String() string {
	switch p {
	case PatternLine:
		return "line"
	case PatternCircle:
		return "circle"
	case PatternDiagonalLeft:
		return "diagonal-left"
	case PatternDiagonalRight:
		return "diagonal-right"
	}
	return "unknown"
}

// Path returns the spawn point and waypoints of enemy i of n on a width x height playfield.
func (p Pattern) Path(i, n int, width, height float64) (Waypoint, []Waypoint) {
	const margin = 6.0
	n = max(n, 1)
	spread := (width - 2*margin) / float64(n)

	switch p {
	case PatternCircle:
		cx, cy := width/2, height/3
		radius := math.Min(width, height) / 4
		start := Waypoint{X: cx, Y: -3}
		var path []Waypoint
		offset := float64(i) * 2 * math.Pi / float64(n)
		for step := 0; step <= 12; step++ {
			angle := offset + float64(step)*math.Pi/6
			path = append(path, Waypoint{X: cx + radius*math.Cos(angle), Y: cy + radius*math.Sin(angle)})
		}
		return start, path

	case PatternDiagonalLeft, PatternDiagonalRight:
		x0 := width - margin - float64(i)*3
		x1 := margin + float64(i)*3
		if p == PatternDiagonalRight {
			x0, x1 = x1, x0
		}
		start := Waypoint{X: x0, Y: -3 - float64(i)*2}
		return start, []Waypoint{{X: x0, Y: 2}, {X: x1, Y: height * 0.6}}

	default:
		x := margin + spread*float64(i)
		row := height*0.15 + float64(i%2)*3
		start := Waypoint{X: x, Y: -3}
		return start, []Waypoint{
			{X: x, Y: row},
			{X: margin, Y: row},
			{X: width - margin, Y: row},
			{X: margin, Y: row},
			{X: x, Y: row},
		}
	}
}

// Wave is one group of enemies released together.
type Wave struct {
	Pattern  Pattern
	Count    int
	Speed    float64
	FireRate float64
	// Delay is how long to wait, once the previous wave is cleared, before this one appears.
	Delay float64
}

// DefaultWaves is the level played by a new game.
func DefaultWaves() []Wave {
	return []Wave{
		{Pattern: PatternLine, Count: 5, Speed: 12, FireRate: 2.5, Delay: 1},
		{Pattern: PatternDiagonalLeft, Count: 4, Speed: 16, FireRate: 2, Delay: 1.5},
		{Pattern: PatternDiagonalRight, Count: 4, Speed: 16, FireRate: 2, Delay: 1},
		{Pattern: PatternCircle, Count: 6, Speed: 14, FireRate: 1.8, Delay: 1.5},
		{Pattern: PatternLine, Count: 8, Speed: 18, FireRate: 1.5, Delay: 2},
	}
}

// SpawnerSystem releases waves one at a time. It has no component requirement; it watches
// the members of EnemyAISystem to know when a wave is cleared.
type SpawnerSystem struct {
	Waves []Wave

	next    int
	timer   float64
	enemies ecs.SystemHandle
	// released is set until the world flushes the enemies of the last release.
	released bool
}

func NewSpawnerSystem(waves []Wave) *SpawnerSystem {
	return &SpawnerSystem{Waves: waves}
}

func (s *SpawnerSystem) Requires() []ecs.ComponentType {
	return nil
}

// Reset rewinds to the first wave.
func (s *SpawnerSystem) Reset(waves []Wave) {
	s.Waves = waves
	s.next = 0
	s.timer = 0
	s.released = false
}

// Wave returns how many waves have been released.
func (s *SpawnerSystem) Wave() int {
	return s.next
}

// Done reports whether every wave was released and cleared.
func (s *SpawnerSystem) Done() bool {
	return s.next >= len(s.Waves) && !s.released && s.enemies.Len() == 0
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	s.released = false
	if !s.enemies.Alive() {
		handle, ok := ecs.HandleOf[EnemyAISystem](frame.Scheduler)
		if !ok {
			return
		}
		s.enemies = handle
	}

	if s.enemies.Len() > 0 || s.next >= len(s.Waves) {
		return
	}

	wave := s.Waves[s.next]
	s.timer += frame.DeltaTime
	if s.timer < wave.Delay {
		return
	}
	s.timer = 0
	s.next++
	s.released = true

	svc := servicesOf(frame)
	factory := factoryOf(frame)
	for i := range wave.Count {
		start, path := wave.Pattern.Path(i, wave.Count, svc.Width, svc.Height)
		factory.Enemy(start.X, start.Y, path, wave.Speed, wave.FireRate*(1+0.25*svc.Rand.Float64()))
	}

	frame.Logger.Info().
		Int("wave", s.next).
		Stringer("pattern", wave.Pattern).
		Int("enemies", wave.Count).
		Msg("wave released")
	ecs.Emit(frame.Events, WaveEvent{Wave: s.next, Enemies: wave.Count})
}
