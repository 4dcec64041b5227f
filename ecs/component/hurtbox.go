package component

// Hurtbox is a defensive AABB relative to the entity transform, smaller than
// the full sprite bounds.
type Hurtbox struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

var HurtboxComponent = NewComponent[[]Hurtbox]()
