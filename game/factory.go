package game

import (
	"github.com/plus3/maskecs/ecs"
)

// Tunables.
const (
	PlayerSpeed     = 30.0
	PlayerHealth    = 3
	PlayerCooldown  = 0.15
	PlayerShotSpeed = -45.0
	EnemyShotSpeed  = 25.0
	ShotLifetime    = 2.0
	ExplosionTime   = 0.3
	EnemyHealth     = 2
	EnemyPoints     = 100
)

// Factory creates the game's entity archetypes. Sizes come from the sprite art.
type Factory struct {
	World  *ecs.World
	Assets *Assets
}

func (f Factory) size(art string) (float64, float64) {
	a := f.Assets.Art(art)
	if a == nil {
		return 1, 1
	}
	return float64(a.Width()), float64(a.Height())
}

func (f Factory) Player(x, y float64) ecs.EntityId {
	w, h := f.size(ArtPlayer)
	e := f.World.CreateEntity()
	ecs.Add(f.World, e, Transform{X: x, Y: y, W: w, H: h})
	ecs.Add(f.World, e, Velocity{})
	ecs.Add(f.World, e, Health{Points: PlayerHealth, Max: PlayerHealth})
	ecs.Add(f.World, e, Sprite{Name: ArtPlayer, Layer: 2})
	ecs.Add(f.World, e, Player{Speed: PlayerSpeed})
	return e
}

// Enemy creates an enemy at (x, y) that follows path and fires every fireRate seconds.
func (f Factory) Enemy(x, y float64, path []Waypoint, speed, fireRate float64) ecs.EntityId {
	w, h := f.size(ArtEnemy)
	e := f.World.CreateEntity()
	ecs.Add(f.World, e, Transform{X: x, Y: y, W: w, H: h})
	ecs.Add(f.World, e, Velocity{})
	ecs.Add(f.World, e, Health{Points: EnemyHealth, Max: EnemyHealth})
	ecs.Add(f.World, e, Sprite{Name: ArtEnemy, Layer: 1})
	ecs.Add(f.World, e, Enemy{
		Path:     path,
		Speed:    speed,
		FireRate: fireRate,
		Cooldown: fireRate,
		Points:   EnemyPoints,
	})
	return e
}

// Shot creates a projectile centered on (cx, y).
func (f Factory) Shot(cx, y, dy float64, owner Faction) ecs.EntityId {
	art := ArtShotPlayer
	if owner == FactionEnemy {
		art = ArtShotEnemy
	}
	w, h := f.size(art)
	e := f.World.CreateEntity()
	ecs.Add(f.World, e, Transform{X: cx - w/2, Y: y, W: w, H: h})
	ecs.Add(f.World, e, Velocity{DY: dy})
	ecs.Add(f.World, e, Lifetime{Remaining: ShotLifetime})
	ecs.Add(f.World, e, Sprite{Name: art, Layer: 3})
	ecs.Add(f.World, e, Shot{Owner: owner, Damage: 1})
	return e
}

// Explosion creates a short-lived effect centered on (cx, cy).
func (f Factory) Explosion(cx, cy float64) ecs.EntityId {
	w, h := f.size(ArtExplosion)
	e := f.World.CreateEntity()
	ecs.Add(f.World, e, Transform{X: cx - w/2, Y: cy - h/2, W: w, H: h})
	ecs.Add(f.World, e, Lifetime{Remaining: ExplosionTime})
	ecs.Add(f.World, e, Sprite{Name: ArtExplosion, Layer: 4})
	return e
}
