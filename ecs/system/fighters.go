package system

import (
	"github.com/CosmicSlothOracle/HeMilch/ecs"
	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

// FighterSystem drives every fighter's state machine: ticks the orthogonal
// timers, feeds input to the active state, and advances the animation clock.
// It runs after the agent pass (intents are final) and before physics.
type FighterSystem struct {
	arena *Arena
}

func NewFighterSystem(arena *Arena) *FighterSystem {
	return &FighterSystem{arena: arena}
}

func (s *FighterSystem) Update(w *ecs.World) {
	dt := s.arena.Dt
	for _, e := range w.Query(
		component.CombatantComponent.ID(),
		component.StateMachineComponent.ID(),
		component.FighterComponent.ID(),
		component.IntentComponent.ID(),
	) {
		com, _ := ecs.Get(w, e, component.CombatantComponent)
		machine, _ := ecs.Get(w, e, component.StateMachineComponent)

		// Cooldowns run even while frozen or hurt.
		if com.ParryCooldown > 0 {
			com.ParryCooldown -= dt
			if com.ParryCooldown < 0 {
				com.ParryCooldown = 0
			}
		}

		// Hit-freeze suspends the fighter entirely; only the freeze timer
		// advances.
		if com.Freeze > 0 {
			com.Freeze -= dt
			continue
		}

		ctx := s.stateContext(w, e)
		if machine.State == nil {
			machine.State = deriveMovement(ctx)
			machine.State.Enter(ctx)
		}

		machine.Elapsed += dt
		if anim, ok := ecs.Get(w, e, component.AnimationComponent); ok {
			anim.Elapsed += dt
		}

		machine.State.HandleInput(ctx)
		machine.State.Update(ctx, dt)
	}
}

// stateContext wires a fighter's components into the callback surface the
// states operate on.
func (s *FighterSystem) stateContext(w *ecs.World, e ecs.Entity) *component.StateContext {
	com, _ := ecs.Get(w, e, component.CombatantComponent)
	machine, _ := ecs.Get(w, e, component.StateMachineComponent)
	stats, _ := ecs.Get(w, e, component.FighterComponent)
	intent, _ := ecs.Get(w, e, component.IntentComponent)

	ctx := &component.StateContext{
		Input:   intent,
		Stats:   stats,
		Com:     com,
		Machine: machine,
	}
	ctx.GetVelocity = func() (float64, float64) {
		if v, ok := ecs.Get(w, e, component.VelocityComponent); ok {
			return v.X, v.Y
		}
		return 0, 0
	}
	ctx.SetVelocity = func(x, y float64) {
		if v, ok := ecs.Get(w, e, component.VelocityComponent); ok {
			v.X = x
			v.Y = y
		}
	}
	ctx.IsGrounded = func() bool { return com.Grounded }
	ctx.SetFacing = func(f float64) {
		if f > 0 {
			com.Facing = 1
		} else if f < 0 {
			com.Facing = -1
		}
	}
	ctx.ChangeState = func(next component.FighterState) {
		changeState(ctx, next)
	}
	ctx.ChangeAnimation = func(name string) {
		if anim, ok := ecs.Get(w, e, component.AnimationComponent); ok {
			if anim.Current != name {
				anim.Current = name
				anim.Elapsed = 0
			}
		}
	}
	ctx.Derived = func() component.FighterState { return deriveMovement(ctx) }
	ctx.SpawnProjectile = func(action string) {
		SpawnProjectile(w, e, action)
	}
	return ctx
}

// changeState swaps the machine's state, running exit/enter hooks and
// resetting the per-state clock and one-shot flags.
func changeState(ctx *component.StateContext, next component.FighterState) {
	m := ctx.Machine
	if m == nil || next == nil || m.State == next {
		return
	}
	if m.State != nil {
		m.State.Exit(ctx)
	}
	m.State = next
	m.Elapsed = 0
	m.Fired = false
	m.NextFire = 0
	next.Enter(ctx)
}

// forceState puts a fighter into an externally imposed state (hurt, defeat)
// from outside the fighter pass. Used by combat resolution and terminal
// checks.
func forceState(w *ecs.World, fighters *FighterSystem, e ecs.Entity, next component.FighterState) {
	ctx := fighters.stateContext(w, e)
	changeState(ctx, next)
}
