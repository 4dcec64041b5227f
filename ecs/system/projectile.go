package system

import (
	"log"

	"github.com/CosmicSlothOracle/HeMilch/ecs"
	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

const impactEffectTTL = 0.3

// SpawnProjectile fires the projectile configured for the owner's ranged
// action. A fighter with no spec for the action spawns nothing (missing-data
// failures never reach the tick loop).
func SpawnProjectile(w *ecs.World, owner ecs.Entity, action string) {
	stats, ok := ecs.Get(w, owner, component.FighterComponent)
	if !ok {
		return
	}
	var spec component.ProjectileSpec
	switch action {
	case "ranged1":
		spec = stats.Ranged1
	case "ranged2":
		spec = stats.Ranged2
	default:
		return
	}
	if spec.Speed == 0 && spec.Percent == 0 {
		log.Printf("projectile: %s has no %s spec, skipping spawn", stats.Name, action)
		return
	}
	t, ok := ecs.Get(w, owner, component.TransformComponent)
	if !ok {
		return
	}
	com, ok := ecs.Get(w, owner, component.CombatantComponent)
	if !ok {
		return
	}

	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{
		X: t.X + spec.OffsetX*com.Facing,
		Y: t.Y + spec.OffsetY,
	})
	_ = ecs.Add(w, e, component.ProjectileComponent, component.Projectile{
		Owner:           component.Entity(owner),
		VX:              spec.Speed * com.Facing,
		Gravity:         spec.Gravity,
		Life:            spec.Life,
		Percent:         spec.Percent,
		CausesKnockback: spec.Knockback,
		Width:           spec.Width,
		Height:          spec.Height,
	})
}

// SpawnImpactEffect places a short-lived blast at (x, y).
func SpawnImpactEffect(w *ecs.World, x, y float64) {
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y})
	_ = ecs.Add(w, e, component.TimedEffectComponent, component.TimedEffect{TTL: impactEffectTTL})
}

// ProjectileSystem advances projectiles: optional gravity arc, lifespan, and
// solid-surface impact. Actor hits are resolved by the combat pass.
type ProjectileSystem struct {
	arena *Arena
}

func NewProjectileSystem(arena *Arena) *ProjectileSystem {
	return &ProjectileSystem{arena: arena}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	dt := s.arena.Dt
	ecs.ForEach2(w, component.ProjectileComponent, component.TransformComponent, func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		p.Life -= dt
		if p.Life <= 0 {
			w.DestroyEntity(e)
			return
		}
		if p.Gravity != 0 {
			p.VY += p.Gravity * dt
		}
		t.X += p.VX * dt
		t.Y += p.VY * dt

		if s.arena.Solid(t.X, t.Y) {
			SpawnImpactEffect(w, t.X, t.Y)
			w.DestroyEntity(e)
		}
	})
}
