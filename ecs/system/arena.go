package system

import (
	"github.com/CosmicSlothOracle/HeMilch/surface"
)

// Arena bundles the per-match world geometry consumed by systems: the active
// solidity surface, canvas extents, the fall-out threshold, and the
// known-good platform used for emergency recovery. The orchestrator owns it
// and only swaps the surface between ticks.
type Arena struct {
	Surface *surface.Surface

	// Dt is the clamped tick delta in seconds, set by the orchestrator
	// before each scheduler pass.
	Dt float64

	Width  float64
	Height float64

	// FallOutY is the out-of-bounds threshold below the arena. Zero disables
	// fall-out handling; the emergency-recovery rule then catches runaway
	// falls instead.
	FallOutY float64

	// SafeX/SafeY is a known-good platform position for emergency recovery.
	SafeX float64
	SafeY float64
}

// Solid reports solidity; with no active surface everything reads open.
func (a *Arena) Solid(x, y float64) bool {
	if a == nil || a.Surface == nil {
		return false
	}
	return a.Surface.IsSolid(x, y)
}
