package component

// Hitbox is an offensive AABB tied to one action state. Offsets are relative
// to the transform for a right-facing fighter and mirrored for left.
// The active window is elapsed time within the action, not an animation
// frame index, so resolution is independent of render pacing.
type Hitbox struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64

	// State names the action ("attack1", "attack2") this box belongs to.
	State string
	// From/To bound the active window in seconds within the action.
	From float64
	To   float64

	Percent   float64
	Knockback float64

	// HitSeq records, per target, the attack sequence that last resolved
	// against it. One press resolves at most once even when the overlap
	// persists across ticks.
	HitSeq map[Entity]uint64
}

// Entity mirrors ecs.Entity; declared here to keep component free of an
// import cycle with the ecs package.
type Entity = uint64

var HitboxComponent = NewComponent[[]Hitbox]()
