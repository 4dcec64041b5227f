package component

// KnockbackRequest asks the knockback system to apply a velocity impulse to
// the entity. The combat pass emits these; the knockback system performs the
// impulse and removes the component, so a request never survives a tick.
type KnockbackRequest struct {
	Magnitude float64
	// Dir is the horizontal push sign, derived from the hit angle's cosine.
	Dir float64
	// Launch selects the parabolic-launch regime (percent >= 30).
	Launch bool
	// Interp is the clamped 30..100 percent interpolation factor.
	Interp float64
}

var KnockbackRequestComponent = NewComponent[KnockbackRequest]()
