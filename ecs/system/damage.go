package system

import (
	"math"

	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

const (
	// launchThreshold splits the nudge regime from the parabolic launch.
	launchThreshold = 30.0

	// kbSoftening keeps the quadratic percent term from dominating until
	// high percent.
	kbSoftening = 90.0

	// kbDamping is a uniform damping multiplier keeping launches readable
	// inside a bounded arena.
	kbDamping = 0.85

	// nudgeMaxSpeed bounds the low-percent directional shove.
	nudgeMaxSpeed = 140.0

	launchLift = 0.9
)

// knockbackMagnitude evaluates the continuous knockback formula before the
// regime split: base + p*(6*strength) + p^2/(k+p), then global damping.
func knockbackMagnitude(percent, base, strength float64) float64 {
	scale := 6.0 * strength
	kb := base + percent*scale + percent*percent/(kbSoftening+percent)
	return kb * kbDamping
}

// pushDir derives the horizontal push sign from the hit angle's cosine: the
// attacker's side decides which way the defender flies.
func pushDir(angle float64) float64 {
	if math.Cos(angle) < 0 {
		return -1
	}
	return 1
}

// hitResult is what one resolved hit does to the defender, before any parry
// interposition.
type hitResult struct {
	knockback component.KnockbackRequest
	stun      float64
}

// applyHit accumulates damage on the defender and computes the knockback
// regime. Percent only ever grows; nothing here resets it.
func applyHit(com *component.Combatant, stats *component.Fighter, percent, baseKnockback, strength, angle float64, causesKnockback bool) hitResult {
	if percent > 0 {
		com.Percent += percent
	}
	if stats.HitPoints > 0 && com.Hits > 0 {
		com.Hits--
	}

	res := hitResult{}
	if !causesKnockback {
		// Chip damage: percent only, a minimal flinch.
		res.stun = stats.HurtShort
		return res
	}

	kb := knockbackMagnitude(com.Percent, baseKnockback, strength)
	dir := pushDir(angle)

	if com.Percent < launchThreshold {
		// Small bounded shove; the defender stays grounded.
		if kb > nudgeMaxSpeed {
			kb = nudgeMaxSpeed
		}
		res.knockback = component.KnockbackRequest{Magnitude: kb, Dir: dir}
		res.stun = stats.HurtShort
		return res
	}

	// Full parabolic launch, impulse growing over the 30..100 range.
	interp := (com.Percent - launchThreshold) / (100.0 - launchThreshold)
	if interp > 1 {
		interp = 1
	}
	com.Grounded = false
	com.Launched = true
	res.knockback = component.KnockbackRequest{
		Magnitude: kb,
		Dir:       dir,
		Launch:    true,
		Interp:    interp,
	}
	res.stun = stats.HurtLong
	return res
}
