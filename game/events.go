package game

import "github.com/plus3/maskecs/ecs"

// DeathEvent is emitted by the health system when an entity runs out of health.
type DeathEvent struct {
	Entity ecs.EntityId
	X, Y   float64
	Player bool
	Points int
}

// ShotFiredEvent is emitted whenever a shot entity is created.
type ShotFiredEvent struct {
	Owner ecs.EntityId
	Side  Faction
}

// WaveEvent is emitted when the spawner releases a wave.
type WaveEvent struct {
	Wave    int
	Enemies int
}

// ScoreKeeper accumulates points for every enemy death. Listeners are held weakly, so the
// owner must keep the ScoreKeeper alive.
type ScoreKeeper struct {
	Score int
	Kills int
}

func (s *ScoreKeeper) OnEvent(ev DeathEvent) {
	if ev.Player {
		return
	}
	s.Score += ev.Points
	s.Kills++
}
