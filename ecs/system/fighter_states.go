package system

import "github.com/CosmicSlothOracle/HeMilch/ecs/component"

// Fighter state singletons (avoid allocations on transitions).
var (
	stateIdle    component.FighterState = &idleState{}
	stateWalk    component.FighterState = &walkState{}
	stateJump    component.FighterState = &jumpState{}
	stateFly     component.FighterState = &flyState{}
	stateAttack1 component.FighterState = &attackState{name: "attack1"}
	stateAttack2 component.FighterState = &attackState{name: "attack2"}
	stateRanged1 component.FighterState = &rangedState{name: "ranged1"}
	stateRanged2 component.FighterState = &rangedState{name: "ranged2", hold: true}
	stateParry   component.FighterState = &parryState{}
	stateHurt    component.FighterState = &hurtState{}
	stateDefeat  component.FighterState = &defeatState{}
)

const walkEpsilon = 1.0

// deriveMovement computes the movement state from grounded and horizontal
// velocity. It is re-evaluated every tick it applies and is the landing
// point for every expiring exclusive action, so hurt overlapping a fall
// resolves to jump, not idle.
func deriveMovement(ctx *component.StateContext) component.FighterState {
	if ctx.IsGrounded == nil || !ctx.IsGrounded() {
		return stateJump
	}
	if ctx.GetVelocity != nil {
		if x, _ := ctx.GetVelocity(); x > walkEpsilon || x < -walkEpsilon {
			return stateWalk
		}
	}
	return stateIdle
}

// handleActionInputs starts exclusive actions on rising edges. Shared by the
// movement states; exclusive states never call it, which is what makes them
// exclusive.
func handleActionInputs(ctx *component.StateContext) bool {
	in := ctx.Input
	if in == nil || ctx.ChangeState == nil {
		return false
	}
	if in.Dodge {
		ctx.ChangeState(stateFly)
		return true
	}
	if in.ParryPressed && ctx.Com.ParryCooldown <= 0 {
		ctx.ChangeState(stateParry)
		return true
	}
	if in.Attack1Pressed {
		ctx.ChangeState(stateAttack1)
		return true
	}
	if in.Attack2Pressed {
		ctx.ChangeState(stateAttack2)
		return true
	}
	if in.Ranged1Pressed {
		ctx.ChangeState(stateRanged1)
		return true
	}
	if in.Ranged2Pressed {
		ctx.ChangeState(stateRanged2)
		return true
	}
	return false
}

// handleJumpInput starts a jump from a grounded movement state.
func handleJumpInput(ctx *component.StateContext) bool {
	in := ctx.Input
	if in == nil || !in.UpPressed {
		return false
	}
	if ctx.IsGrounded == nil || !ctx.IsGrounded() {
		return false
	}
	if ctx.GetVelocity != nil && ctx.SetVelocity != nil {
		x, _ := ctx.GetVelocity()
		ctx.SetVelocity(x, -ctx.Stats.JumpSpeed)
	}
	ctx.Com.Grounded = false
	ctx.ChangeState(stateJump)
	return true
}

func applyWalkControl(ctx *component.StateContext) {
	if ctx.Input == nil || ctx.GetVelocity == nil || ctx.SetVelocity == nil {
		return
	}
	moveX := ctx.Input.MoveX()
	_, y := ctx.GetVelocity()
	ctx.SetVelocity(moveX*ctx.Stats.MoveSpeed, y)
	if moveX > 0 {
		ctx.SetFacing(1)
	} else if moveX < 0 {
		ctx.SetFacing(-1)
	}
}

type idleState struct{}

func (idleState) Name() string                        { return "idle" }
func (idleState) Enter(ctx *component.StateContext)   { ctx.ChangeAnimation("idle") }
func (idleState) Exit(ctx *component.StateContext)    {}
func (idleState) HandleInput(ctx *component.StateContext) {
	if handleActionInputs(ctx) {
		return
	}
	handleJumpInput(ctx)
}
func (idleState) Update(ctx *component.StateContext, dt float64) {
	applyWalkControl(ctx)
	if next := deriveMovement(ctx); next != stateIdle && ctx.ChangeState != nil {
		ctx.ChangeState(next)
	}
}

type walkState struct{}

func (walkState) Name() string                      { return "walk" }
func (walkState) Enter(ctx *component.StateContext) { ctx.ChangeAnimation("walk") }
func (walkState) Exit(ctx *component.StateContext)  {}
func (walkState) HandleInput(ctx *component.StateContext) {
	if handleActionInputs(ctx) {
		return
	}
	handleJumpInput(ctx)
}
func (walkState) Update(ctx *component.StateContext, dt float64) {
	applyWalkControl(ctx)
	if next := deriveMovement(ctx); next != stateWalk && ctx.ChangeState != nil {
		ctx.ChangeState(next)
	}
}

type jumpState struct{}

func (jumpState) Name() string                      { return "jump" }
func (jumpState) Enter(ctx *component.StateContext) { ctx.ChangeAnimation("jump") }
func (jumpState) Exit(ctx *component.StateContext)  {}
func (jumpState) HandleInput(ctx *component.StateContext) {
	// Air attacks and parries are allowed; fly can also be engaged mid-air.
	handleActionInputs(ctx)
}
func (jumpState) Update(ctx *component.StateContext, dt float64) {
	// Air control, suppressed while a launch is carrying the fighter.
	if !ctx.Com.Launched {
		applyWalkControl(ctx)
	}
	if next := deriveMovement(ctx); next != stateJump && ctx.ChangeState != nil {
		ctx.ChangeState(next)
	}
}

// flyState suspends gravity and grants free two-axis movement at a fixed
// speed while the hold input is down. Release exits on the very next tick.
type flyState struct{}

func (flyState) Name() string { return "fly" }
func (flyState) Enter(ctx *component.StateContext) {
	ctx.ChangeAnimation("fly")
	ctx.Com.Flying = true
	ctx.Com.Grounded = false
}
func (flyState) Exit(ctx *component.StateContext) {
	ctx.Com.Flying = false
}
func (flyState) HandleInput(ctx *component.StateContext) {
	if ctx.Input != nil && !ctx.Input.Dodge && ctx.ChangeState != nil {
		ctx.ChangeState(deriveMovement(ctx))
	}
}
func (flyState) Update(ctx *component.StateContext, dt float64) {
	if ctx.Input == nil || ctx.SetVelocity == nil {
		return
	}
	moveX := ctx.Input.MoveX()
	moveY := ctx.Input.MoveY()
	ctx.SetVelocity(moveX*ctx.Stats.FlySpeed, moveY*ctx.Stats.FlySpeed)
	if moveX > 0 {
		ctx.SetFacing(1)
	} else if moveX < 0 {
		ctx.SetFacing(-1)
	}
}

// attackState covers attack1 and attack2: a fixed window during which the
// matching hitboxes are live. Entering bumps the attack sequence so the
// combat pass resolves this press at most once per target.
type attackState struct {
	name string
}

func (s *attackState) Name() string { return s.name }
func (s *attackState) Enter(ctx *component.StateContext) {
	ctx.ChangeAnimation(s.name)
	ctx.Com.AttackSeq++
}
func (s *attackState) Exit(ctx *component.StateContext)        {}
func (s *attackState) HandleInput(ctx *component.StateContext) {}
func (s *attackState) Update(ctx *component.StateContext, dt float64) {
	if ctx.IsGrounded != nil && ctx.IsGrounded() && ctx.GetVelocity != nil && ctx.SetVelocity != nil {
		_, y := ctx.GetVelocity()
		ctx.SetVelocity(0, y)
	}
	if ctx.Machine.Elapsed >= ctx.Stats.AttackDuration && ctx.ChangeState != nil {
		ctx.ChangeState(deriveMovement(ctx))
	}
}

// rangedState spawns its projectile at a scheduled elapsed-time offset, not
// on entry, keeping the mechanical spawn in sync with the wind-up. The hold
// variant (ranged2) loops past its window and re-fires periodically while
// the button stays down.
type rangedState struct {
	name string
	hold bool
}

func (s *rangedState) Name() string { return s.name }
func (s *rangedState) Enter(ctx *component.StateContext) {
	ctx.ChangeAnimation(s.name)
	ctx.Machine.Fired = false
	ctx.Machine.NextFire = 0
}
func (s *rangedState) Exit(ctx *component.StateContext)        {}
func (s *rangedState) HandleInput(ctx *component.StateContext) {}
func (s *rangedState) Update(ctx *component.StateContext, dt float64) {
	if ctx.IsGrounded != nil && ctx.IsGrounded() && ctx.GetVelocity != nil && ctx.SetVelocity != nil {
		_, y := ctx.GetVelocity()
		ctx.SetVelocity(0, y)
	}

	spawnAt := ctx.Stats.Ranged1SpawnAt
	if s.hold {
		spawnAt = ctx.Stats.Ranged2SpawnAt
	}
	if !ctx.Machine.Fired && ctx.Machine.Elapsed >= spawnAt {
		if ctx.SpawnProjectile != nil {
			ctx.SpawnProjectile(s.name)
		}
		ctx.Machine.Fired = true
	}

	if ctx.Machine.Elapsed < ctx.Stats.RangedDuration {
		return
	}

	if s.hold && ctx.Input != nil && ctx.Input.Ranged2 {
		// Hold loop: re-fire on the configured interval.
		if ctx.Machine.NextFire <= 0 {
			ctx.Machine.NextFire = ctx.Machine.Elapsed + ctx.Stats.Ranged2Interval
		}
		if ctx.Machine.Elapsed >= ctx.Machine.NextFire {
			if ctx.SpawnProjectile != nil {
				ctx.SpawnProjectile(s.name)
			}
			ctx.Machine.NextFire = ctx.Machine.Elapsed + ctx.Stats.Ranged2Interval
		}
		return
	}

	if ctx.ChangeState != nil {
		ctx.ChangeState(deriveMovement(ctx))
	}
}

// parryState opens the short deflect window. Starting it arms the long
// cooldown immediately, whether or not anything is deflected.
type parryState struct{}

func (parryState) Name() string { return "parry" }
func (parryState) Enter(ctx *component.StateContext) {
	ctx.ChangeAnimation("parry")
	ctx.Com.ParryCooldown = ctx.Stats.ParryCooldown
	ctx.Com.ParryConsumed = false
}
func (parryState) Exit(ctx *component.StateContext)        {}
func (parryState) HandleInput(ctx *component.StateContext) {}
func (parryState) Update(ctx *component.StateContext, dt float64) {
	if ctx.Machine.Elapsed >= ctx.Stats.ParryWindow && ctx.ChangeState != nil {
		ctx.ChangeState(deriveMovement(ctx))
	}
}

type hurtState struct{}

func (hurtState) Name() string                      { return "hurt" }
func (hurtState) Enter(ctx *component.StateContext) { ctx.ChangeAnimation("hurt") }
func (hurtState) Exit(ctx *component.StateContext)  {}
func (hurtState) HandleInput(ctx *component.StateContext) {}
func (hurtState) Update(ctx *component.StateContext, dt float64) {
	if ctx.Machine.Elapsed >= ctx.Com.Stun && ctx.ChangeState != nil {
		ctx.ChangeState(deriveMovement(ctx))
	}
}

// defeatState is terminal. The timeline plays to completion before the
// fighter is marked done; the terminal system decides between removal and a
// stock respawn.
type defeatState struct{}

func (defeatState) Name() string { return "defeat" }
func (defeatState) Enter(ctx *component.StateContext) {
	ctx.ChangeAnimation("defeat")
	if ctx.SetVelocity != nil {
		ctx.SetVelocity(0, 0)
	}
}
func (defeatState) Exit(ctx *component.StateContext)        {}
func (defeatState) HandleInput(ctx *component.StateContext) {}
func (defeatState) Update(ctx *component.StateContext, dt float64) {
	if ctx.Machine.Elapsed >= ctx.Stats.DefeatDuration {
		ctx.Com.DefeatDone = true
	}
}
