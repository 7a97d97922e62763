package game

import (
	"math"

	"github.com/plus3/maskecs/ecs"
)

func servicesOf(frame *ecs.UpdateFrame) *Services {
	svc, _ := frame.Services.(*Services)
	return svc
}

func factoryOf(frame *ecs.UpdateFrame) Factory {
	return Factory{World: frame.World, Assets: servicesOf(frame).Assets}
}

type moving struct {
	*Transform
	*Velocity
}

// PhysicsSystem integrates velocities.
type PhysicsSystem struct {
	view *ecs.View[moving]
}

func (s *PhysicsSystem) Requires() []ecs.ComponentType {
	return ecs.RequiresOf[moving]()
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	if s.view == nil {
		s.view = ecs.NewView[moving](frame.World)
	}
	for m := range s.view.Values(frame.Members.Entities()) {
		m.Transform.X += m.Velocity.DX * frame.DeltaTime
		m.Transform.Y += m.Velocity.DY * frame.DeltaTime
	}
}

type pilot struct {
	Entity ecs.EntityId
	*Player
	*Transform
	*Velocity
}

// InputSystem turns the player's controls into movement and shots.
type InputSystem struct {
	view *ecs.View[pilot]
}

func (s *InputSystem) Requires() []ecs.ComponentType {
	return ecs.RequiresOf[pilot]()
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	if s.view == nil {
		s.view = ecs.NewView[pilot](frame.World)
	}
	svc := servicesOf(frame)

	for p := range s.view.Values(frame.Members.Entities()) {
		p.Transform.X = clamp(p.Transform.X, 0, svc.Width-p.Transform.W)
		p.Transform.Y = clamp(p.Transform.Y, 0, svc.Height-p.Transform.H)

		var dx, dy float64
		c := p.Player.Controls
		if c[ControlLeft] {
			dx--
		}
		if c[ControlRight] {
			dx++
		}
		if c[ControlUp] {
			dy--
		}
		if c[ControlDown] {
			dy++
		}
		factor := 1.0
		if dx != 0 && dy != 0 {
			factor = math.Sqrt2 / 2
		}
		p.Velocity.DX = dx * p.Player.Speed * factor
		p.Velocity.DY = dy * p.Player.Speed * factor

		p.Player.Cooldown = max(0, p.Player.Cooldown-frame.DeltaTime)
		if c[ControlShoot] && p.Player.Cooldown == 0 {
			p.Player.Cooldown = PlayerCooldown
			cx, _ := p.Transform.Center()
			factoryOf(frame).Shot(cx, p.Transform.Y-1, PlayerShotSpeed, FactionPlayer)
			ecs.Emit(frame.Events, ShotFiredEvent{Owner: p.Entity, Side: FactionPlayer})
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}

type projectile struct {
	Entity ecs.EntityId
	*Shot
	*Transform
}

// ShotSystem resolves hits against the entities tracked by HealthSystem.
type ShotSystem struct {
	view    *ecs.View[projectile]
	targets ecs.SystemHandle
}

func (s *ShotSystem) Requires() []ecs.ComponentType {
	return ecs.RequiresOf[projectile]()
}

func (s *ShotSystem) Execute(frame *ecs.UpdateFrame) {
	if s.view == nil {
		s.view = ecs.NewView[projectile](frame.World)
	}
	if !s.targets.Alive() {
		handle, ok := ecs.HandleOf[HealthSystem](frame.Scheduler)
		if !ok {
			return
		}
		s.targets = handle
	}

	w := frame.World
	svc := servicesOf(frame)

	for p := range s.view.Values(frame.Members.Entities()) {
		if w.PendingRemoval(p.Entity) {
			continue
		}
		if p.Transform.Y+p.Transform.H < 0 || p.Transform.Y > svc.Height {
			w.RemoveEntity(p.Entity)
			continue
		}

		for target := range s.targets.Entities() {
			if target == p.Entity || w.PendingRemoval(target) || !s.hostile(w, p.Shot.Owner, target) {
				continue
			}
			box := ecs.GetMut[Transform](w, target)
			if box == nil || !p.Transform.Overlaps(*box) {
				continue
			}
			if health := ecs.GetMut[Health](w, target); health != nil {
				health.Points -= p.Shot.Damage
			}
			w.RemoveEntity(p.Entity)
			break
		}
	}
}

func (s *ShotSystem) hostile(w *ecs.World, owner Faction, target ecs.EntityId) bool {
	if owner == FactionPlayer {
		return ecs.Has[Enemy](w, target)
	}
	return ecs.Has[Player](w, target)
}

type mortal struct {
	Entity ecs.EntityId
	*Health
	*Transform
	Enemy *Enemy `ecs:"optional"`
}

// HealthSystem removes entities whose health dropped to zero and announces their death.
type HealthSystem struct {
	view *ecs.View[mortal]
}

func (s *HealthSystem) Requires() []ecs.ComponentType {
	return ecs.RequiresOf[mortal]()
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	if s.view == nil {
		s.view = ecs.NewView[mortal](frame.World)
	}
	w := frame.World

	for _, e := range frame.Members.Sorted() {
		m := s.view.Get(e)
		if m == nil || m.Health.Points > 0 || w.PendingRemoval(e) {
			continue
		}

		cx, cy := m.Transform.Center()
		ev := DeathEvent{Entity: e, X: cx, Y: cy, Player: ecs.Has[Player](w, e)}
		if m.Enemy != nil {
			ev.Points = m.Enemy.Points
		}

		w.RemoveEntity(e)
		factoryOf(frame).Explosion(cx, cy)
		frame.Logger.Debug().Uint32("entity", uint32(e)).Bool("player", ev.Player).Msg("entity died")
		ecs.Emit(frame.Events, ev)
	}
}

// LifetimeSystem removes entities whose lifetime ran out.
type LifetimeSystem struct{}

func (LifetimeSystem) Requires() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.Component[Lifetime]()}
}

func (LifetimeSystem) Execute(frame *ecs.UpdateFrame) {
	for e := range frame.Members.Entities() {
		life := ecs.GetMut[Lifetime](frame.World, e)
		life.Remaining -= frame.DeltaTime
		if life.Remaining <= 0 {
			frame.World.RemoveEntity(e)
		}
	}
}

type drone struct {
	Entity ecs.EntityId
	*Enemy
	*Transform
	*Velocity
}

// waypointTolerance is how close, in cells, an enemy must get to a waypoint to move on.
const waypointTolerance = 0.5

// EnemyAISystem steers enemies along their paths and makes them fire.
type EnemyAISystem struct {
	view *ecs.View[drone]
}

func (s *EnemyAISystem) Requires() []ecs.ComponentType {
	return ecs.RequiresOf[drone]()
}

func (s *EnemyAISystem) Execute(frame *ecs.UpdateFrame) {
	if s.view == nil {
		s.view = ecs.NewView[drone](frame.World)
	}
	svc := servicesOf(frame)

	for d := range s.view.Values(frame.Members.Entities()) {
		steer(d.Enemy, d.Transform, d.Velocity)

		if d.Transform.Y > svc.Height {
			frame.World.RemoveEntity(d.Entity)
			continue
		}

		d.Enemy.Cooldown -= frame.DeltaTime
		if d.Enemy.FireRate > 0 && d.Enemy.Cooldown <= 0 && d.Transform.Y >= 0 {
			d.Enemy.Cooldown = d.Enemy.FireRate
			cx, _ := d.Transform.Center()
			factoryOf(frame).Shot(cx, d.Transform.Y+d.Transform.H, EnemyShotSpeed, FactionEnemy)
			ecs.Emit(frame.Events, ShotFiredEvent{Owner: d.Entity, Side: FactionEnemy})
		}
	}
}

// steer points the velocity at the next waypoint, or straight down once the path is done.
func steer(enemy *Enemy, t *Transform, v *Velocity) {
	for enemy.Next < len(enemy.Path) {
		target := enemy.Path[enemy.Next]
		dx, dy := target.X-t.X, target.Y-t.Y
		dist := math.Hypot(dx, dy)
		if dist <= waypointTolerance {
			enemy.Next++
			continue
		}
		v.DX = dx / dist * enemy.Speed
		v.DY = dy / dist * enemy.Speed
		return
	}
	v.DX, v.DY = 0, enemy.Speed
}

type visible struct {
	*Transform
	*Sprite
}

// GraphicsSystem pushes every sprite to the renderer.
type GraphicsSystem struct {
	view *ecs.View[visible]
}

func (s *GraphicsSystem) Requires() []ecs.ComponentType {
	return ecs.RequiresOf[visible]()
}

func (s *GraphicsSystem) Execute(frame *ecs.UpdateFrame) {
	svc := servicesOf(frame)
	if svc == nil || svc.Renderer == nil {
		return
	}
	if s.view == nil {
		s.view = ecs.NewView[visible](frame.World)
	}

	for _, e := range frame.Members.Sorted() {
		v := s.view.Get(e)
		if v == nil {
			continue
		}
		art := svc.Assets.Art(v.Sprite.Name)
		if art == nil {
			continue
		}
		svc.Renderer.Push(Drawable{
			X:     v.Transform.X,
			Y:     v.Transform.Y,
			Art:   art,
			Color: art.Color,
			Layer: v.Sprite.Layer,
		})
	}
}
