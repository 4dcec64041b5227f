package system

import (
	"github.com/jakecoffman/cp"

	"github.com/CosmicSlothOracle/HeMilch/ecs"
	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

// KnockbackSystem consumes the requests emitted by the combat pass and turns
// them into velocity impulses. Requests never survive the tick they were
// created in.
type KnockbackSystem struct{}

func NewKnockbackSystem() *KnockbackSystem { return &KnockbackSystem{} }

func (s *KnockbackSystem) Update(w *ecs.World) {
	ecz := w.Query(component.KnockbackRequestComponent.ID(), component.VelocityComponent.ID())
	for _, e := range ecz {
		req, _ := ecs.Get(w, e, component.KnockbackRequestComponent)
		v, _ := ecs.Get(w, e, component.VelocityComponent)

		if req.Launch {
			// Parabolic launch: the impulse grows over the 30..100 percent
			// interpolation and lifts the defender off the ground.
			speed := req.Magnitude * (0.6 + 0.4*req.Interp)
			impulse := cp.Vector{X: req.Dir * speed, Y: -speed * launchLift}
			v.X = impulse.X
			v.Y = impulse.Y
		} else {
			// Low-percent shove: a bounded horizontal impulse, no lift.
			impulse := cp.Vector{X: req.Dir * req.Magnitude}
			v.X += impulse.X
		}

		ecs.Remove(w, e, component.KnockbackRequestComponent)
	}
}
