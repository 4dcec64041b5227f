package system

import (
	"fmt"

	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

// Logical key names shared by behaviors and the agent merge.
const (
	KeyLeft    = "left"
	KeyRight   = "right"
	KeyUp      = "up"
	KeyDown    = "down"
	KeyDodge   = "dodge"
	KeyAttack1 = "attack1"
	KeyAttack2 = "attack2"
	KeyParry   = "parry"
	KeyRanged1 = "ranged1"
	KeyRanged2 = "ranged2"
)

// FighterView is a read-only snapshot of one fighter handed to behaviors.
type FighterView struct {
	X, Y     float64
	VX, VY   float64
	Facing   float64
	Percent  float64
	Grounded bool
	State    string
	Width    float64
	Height   float64
}

// ProjectileView is a read-only snapshot of one live projectile.
type ProjectileView struct {
	X, Y   float64
	VX, VY float64
}

// BehaviorContext is the read-only world slice a behavior decides on.
// Behaviors must treat everything here as advisory input; the controller
// re-applies its safety filters to whatever they return.
type BehaviorContext struct {
	Dt          float64
	Self        FighterView
	Opponent    FighterView
	HasOpponent bool
	Projectiles []ProjectileView

	Agent component.Agent

	Solid           func(x, y float64) bool
	FirstSolidBelow func(x, y0, y1 float64) (float64, bool)

	CanvasW float64
	CanvasH float64

	// LOSClear is the controller's line-of-sight probe result for this tick.
	LOSClear bool
}

// Behavior produces a partial key->bool intent map each tick. A nil map
// means no intent.
type Behavior interface {
	Step(ctx *BehaviorContext) map[string]bool
}

// BehaviorFactory builds a behavior instance from prefab config.
type BehaviorFactory func(cfg map[string]any) (Behavior, error)

// BehaviorRegistry maps behavior names to factories. It is built explicitly
// at startup and passed into NewAgentSystem; there is no ambient global
// registry.
type BehaviorRegistry map[string]BehaviorFactory

// DefaultBehaviors returns the built-in strategy set.
func DefaultBehaviors() BehaviorRegistry {
	return BehaviorRegistry{
		"patrol":           func(cfg map[string]any) (Behavior, error) { return &patrolBehavior{}, nil },
		"aggressive_melee": func(cfg map[string]any) (Behavior, error) { return &aggressiveMeleeBehavior{}, nil },
		"ranged_kite":      func(cfg map[string]any) (Behavior, error) { return &rangedKiteBehavior{}, nil },
		"defensive_evade":  func(cfg map[string]any) (Behavior, error) { return &defensiveEvadeBehavior{}, nil },
	}
}

// Resolve instantiates a named behavior, delegating script:* names to the
// tengo runtime.
func (r BehaviorRegistry) Resolve(name string, cfg map[string]any) (Behavior, error) {
	if isScriptBehavior(name) {
		return newScriptBehavior(name)
	}
	factory, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("behavior: unknown behavior %q", name)
	}
	return factory(cfg)
}

// patrolBehavior walks between the spawn anchor and spawn+patrolDistance,
// ignoring the opponent entirely.
type patrolBehavior struct {
	target float64
	inited bool
}

func (b *patrolBehavior) Step(ctx *BehaviorContext) map[string]bool {
	const tolerance = 6.0
	a := ctx.Agent
	if !b.inited {
		b.target = a.SpawnX + a.PatrolDistance
		b.inited = true
	}
	switch {
	case b.target > a.SpawnX && ctx.Self.X >= a.SpawnX+a.PatrolDistance-tolerance:
		b.target = a.SpawnX
	case b.target <= a.SpawnX && ctx.Self.X <= a.SpawnX+tolerance:
		b.target = a.SpawnX + a.PatrolDistance
	}
	if ctx.Self.X < b.target-tolerance {
		return map[string]bool{KeyRight: true}
	}
	if ctx.Self.X > b.target+tolerance {
		return map[string]bool{KeyLeft: true}
	}
	return nil
}

// aggressiveMeleeBehavior closes to melee range and swings on cooldown.
type aggressiveMeleeBehavior struct{}

func (b *aggressiveMeleeBehavior) Step(ctx *BehaviorContext) map[string]bool {
	if !ctx.HasOpponent {
		return nil
	}
	dx := ctx.Opponent.X - ctx.Self.X
	keys := map[string]bool{}
	reach := ctx.Agent.AttackRange
	if reach <= 0 {
		reach = 70
	}
	if dx > reach {
		keys[KeyRight] = true
	} else if dx < -reach {
		keys[KeyLeft] = true
	} else if ctx.Agent.CooldownLeft <= 0 {
		keys[KeyAttack1] = true
	}
	return keys
}

// rangedKiteBehavior keeps a standoff distance and fires while it holds.
type rangedKiteBehavior struct{}

func (b *rangedKiteBehavior) Step(ctx *BehaviorContext) map[string]bool {
	if !ctx.HasOpponent {
		return nil
	}
	const standoff = 260.0
	const slack = 40.0
	dx := ctx.Opponent.X - ctx.Self.X
	dist := dx
	if dist < 0 {
		dist = -dist
	}
	keys := map[string]bool{}
	switch {
	case dist < standoff-slack:
		// Too close: back away.
		if dx > 0 {
			keys[KeyLeft] = true
		} else {
			keys[KeyRight] = true
		}
	case dist > standoff+slack:
		if dx > 0 {
			keys[KeyRight] = true
		} else {
			keys[KeyLeft] = true
		}
	}
	if ctx.LOSClear && ctx.Agent.CooldownLeft <= 0 {
		keys[KeyRanged1] = true
	}
	return keys
}

// defensiveEvadeBehavior retreats from the opponent and parries incoming
// pressure.
type defensiveEvadeBehavior struct{}

func (b *defensiveEvadeBehavior) Step(ctx *BehaviorContext) map[string]bool {
	if !ctx.HasOpponent {
		return nil
	}
	dx := ctx.Opponent.X - ctx.Self.X
	dist := dx
	if dist < 0 {
		dist = -dist
	}
	keys := map[string]bool{}
	if dist < 120 {
		if ctx.Opponent.State == "attack1" || ctx.Opponent.State == "attack2" {
			keys[KeyParry] = true
		} else if dx > 0 {
			keys[KeyLeft] = true
		} else {
			keys[KeyRight] = true
		}
	}
	// Sidestep projectiles heading our way.
	for _, p := range ctx.Projectiles {
		heading := (p.VX > 0 && p.X < ctx.Self.X) || (p.VX < 0 && p.X > ctx.Self.X)
		if heading && absf(p.Y-ctx.Self.Y) < ctx.Self.Height {
			keys[KeyUp] = true
		}
	}
	return keys
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
