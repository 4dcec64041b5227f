package component

// Projectile is a short-lived kinematic entity. Owner is a non-owning
// back-reference used to skip self-hits and attribute blast art.
type Projectile struct {
	Owner Entity

	VX float64
	VY float64
	// Gravity, when non-zero, accumulates into VY for an arcing shot.
	Gravity float64

	// Life is the remaining lifespan in seconds.
	Life float64

	Percent float64
	// CausesKnockback distinguishes launching shots from pure percent
	// chip damage.
	CausesKnockback bool

	Width  float64
	Height float64
}

var ProjectileComponent = NewComponent[Projectile]()
