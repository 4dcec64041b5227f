package component

// FighterState is one action state of the fighter state machine. States are
// stateless singletons; per-fighter data lives in StateMachine and
// Combatant. At most one exclusive action (attack, parry, ranged, hurt,
// defeat, fly) is active at a time because the machine holds exactly one
// state.
type FighterState interface {
	Name() string
	Enter(ctx *StateContext)
	Exit(ctx *StateContext)
	// HandleInput runs before Update each tick and may change state on
	// rising input edges.
	HandleInput(ctx *StateContext)
	Update(ctx *StateContext, dt float64)
}

// StateContext provides a state controlled access to the fighter through
// callbacks, keeping states decoupled from the ECS storage.
type StateContext struct {
	Input   *Intent
	Stats   *Fighter
	Com     *Combatant
	Machine *StateMachine

	GetVelocity func() (x, y float64)
	SetVelocity func(x, y float64)
	IsGrounded  func() bool
	SetFacing   func(facing float64)

	ChangeState     func(s FighterState)
	ChangeAnimation func(name string)

	// Derived computes the movement state (idle/walk/jump) from grounded
	// and horizontal velocity. Exclusive states return to it on expiry
	// instead of a hardcoded idle.
	Derived func() FighterState

	// SpawnProjectile fires the named ranged action's projectile.
	SpawnProjectile func(action string)
}

// StateMachine stores the active state and its elapsed time, plus the
// one-shot fired flag used by ranged states to spawn exactly once per
// scheduled point.
type StateMachine struct {
	State   FighterState
	Elapsed float64
	Fired   bool
	// NextFire schedules the next hold-loop re-fire for ranged2.
	NextFire float64
}

var StateMachineComponent = NewComponent[StateMachine]()
