package system

import (
	"github.com/CosmicSlothOracle/HeMilch/ecs"
	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

const (
	gravityAccel = 2200.0
	maxFallSpeed = 1400.0

	// groundReleaseTicks is how many consecutive ticks of empty foot samples
	// it takes before a grounded fighter is dropped into free fall. The mask
	// can simply end under a fighter's feet, which solid geometry never did.
	groundReleaseTicks = 3
)

// PhysicsSystem integrates fighter motion against the opacity mask: gravity,
// position, then a downward foot scan that snaps onto the first solid row.
type PhysicsSystem struct {
	arena *Arena
}

func NewPhysicsSystem(arena *Arena) *PhysicsSystem {
	return &PhysicsSystem{arena: arena}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	dt := s.arena.Dt
	for _, e := range w.Query(
		component.CombatantComponent.ID(),
		component.TransformComponent.ID(),
		component.VelocityComponent.ID(),
		component.BodyComponent.ID(),
	) {
		com, _ := ecs.Get(w, e, component.CombatantComponent)
		if com.Freeze > 0 {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)
		v, _ := ecs.Get(w, e, component.VelocityComponent)
		body, _ := ecs.Get(w, e, component.BodyComponent)

		if !com.Flying && !com.Grounded {
			v.Y += gravityAccel * dt
			if v.Y > maxFallSpeed {
				v.Y = maxFallSpeed
			}
		}

		prevFootY := t.Y + body.Height
		t.X += v.X * dt
		t.Y += v.Y * dt
		footY := t.Y + body.Height

		if com.Grounded {
			s.checkGroundStillThere(com, t, body, footY)
			continue
		}

		// Only a downward mover can land; the scan runs from the previous
		// foot line to the current one so fast falls cannot tunnel through
		// a thin ledge.
		if !com.Flying && v.Y >= 0 {
			if row, ok := s.firstSolidBelow(t.X, prevFootY, footY); ok {
				t.Y = row - body.Height
				v.Y = 0
				com.Grounded = true
				com.Launched = false
				com.GroundMisses = 0
			}
		}
	}
}

func (s *PhysicsSystem) firstSolidBelow(x, y0, y1 float64) (float64, bool) {
	if s.arena == nil || s.arena.Surface == nil {
		return 0, false
	}
	return s.arena.Surface.FirstSolidBelow(x, y0, y1)
}

// checkGroundStillThere samples along the foot width one pixel under the
// foot line. When every sample misses for groundReleaseTicks consecutive
// ticks the fighter is released into free fall.
func (s *PhysicsSystem) checkGroundStillThere(com *component.Combatant, t *component.Transform, body *component.Body, footY float64) {
	half := body.Width / 2
	sampleY := footY + 1
	anySolid := s.arena.Solid(t.X-half, sampleY) ||
		s.arena.Solid(t.X, sampleY) ||
		s.arena.Solid(t.X+half, sampleY)
	if anySolid {
		com.GroundMisses = 0
		return
	}
	com.GroundMisses++
	if com.GroundMisses >= groundReleaseTicks {
		com.Grounded = false
		com.GroundMisses = 0
	}
}
