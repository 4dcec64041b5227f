package component

// Combatant is a fighter's mutable match state. The action state itself
// lives in StateMachine; everything here is orthogonal to it (timers, flags,
// accumulated damage).
type Combatant struct {
	// Facing is +1 (right) or -1 (left).
	Facing float64

	// Percent accumulates monotonically until defeat or respawn.
	Percent float64
	// Hits counts down in fixed-HP matchups. Ignored when the fighter's
	// HitPoints is zero.
	Hits   int
	Stocks int

	Grounded bool
	Launched bool
	Flying   bool

	// GroundMisses counts consecutive ticks the foot samples found no solid
	// pixels while grounded. At three the fighter is released into free fall.
	GroundMisses int

	// Freeze is the remaining hit-freeze, during which the fighter does not
	// advance at all.
	Freeze float64

	// Stun is the remaining hurt duration, set by the damage pass.
	Stun float64

	ParryCooldown float64
	// ParryConsumed flips when the active parry neutralizes a hit; a single
	// parry never absorbs a second one.
	ParryConsumed bool

	// AttackSeq increments on every attack entry. Hitboxes record which
	// sequence last hit a target, guaranteeing one resolution per press.
	AttackSeq uint64

	// DefeatDone is set once the defeat timeline has fully played out.
	DefeatDone bool
	// Removed tells the presentation layer to detach a defeated NPC.
	Removed bool
}

var CombatantComponent = NewComponent[Combatant]()
