package system

import (
	"github.com/CosmicSlothOracle/HeMilch/ecs"
	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

// LifetimeSystem retires expired timed effects. Projectiles retire
// themselves on expiry/impact; this pass covers everything that only
// carries a ttl.
type LifetimeSystem struct {
	arena *Arena
}

func NewLifetimeSystem(arena *Arena) *LifetimeSystem {
	return &LifetimeSystem{arena: arena}
}

func (s *LifetimeSystem) Update(w *ecs.World) {
	dt := s.arena.Dt
	ecs.ForEach(w, component.TimedEffectComponent, func(e ecs.Entity, fx *component.TimedEffect) {
		fx.TTL -= dt
		if fx.TTL <= 0 {
			w.DestroyEntity(e)
		}
	})
}
