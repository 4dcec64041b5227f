package system

import (
	"testing"

	"github.com/CosmicSlothOracle/HeMilch/ecs"
	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

// newCombatRig puts an attacker and a defender in melee range on flat
// ground, attacker facing right at the defender.
func newCombatRig() (*ecs.World, *FighterSystem, *CombatSystem, ecs.Entity, ecs.Entity) {
	arena := testArena(400, 300, 250)
	w := ecs.NewWorld()
	attacker := addFighter(w, 180, 250, testStats())
	defender := addFighter(w, 210, 250, testStats())
	combatantOf(w, defender).Facing = -1
	fighters := NewFighterSystem(arena)
	combat := NewCombatSystem(arena, fighters)
	// Settle both machines into idle.
	tick(w, fighters)
	return w, fighters, combat, attacker, defender
}

func startAttack(w *ecs.World, fighters *FighterSystem, e ecs.Entity) {
	in := intentOf(w, e)
	in.Attack1 = true
	in.Attack1Pressed = true
	tick(w, fighters)
	in.Attack1Pressed = false
}

func TestMeleeHitResolvesOncePerAttackInstance(t *testing.T) {
	w, fighters, combat, attacker, defender := newCombatRig()
	startAttack(w, fighters, attacker)

	// The overlap persists for the whole active window; still one hit.
	for i := 0; i < 5; i++ {
		tick(w, combat)
	}
	dcom := combatantOf(w, defender)
	if dcom.Percent != 8 {
		t.Fatalf("percent = %v, want 8 (exactly one resolution)", dcom.Percent)
	}
	if got := stateName(w, defender); got != "hurt" {
		t.Fatalf("defender state = %q, want hurt", got)
	}

	// A fresh press is a fresh instance and hits again.
	for i := 0; i < 60; i++ {
		tick(w, fighters)
	}
	dcom.Stun = 0
	forceState(w, fighters, defender, stateIdle)
	startAttack(w, fighters, attacker)
	tick(w, combat)
	if dcom.Percent != 16 {
		t.Fatalf("percent = %v, want 16 after second instance", dcom.Percent)
	}
}

func TestRehitRestartsHurtClock(t *testing.T) {
	w, fighters, combat, attacker, defender := newCombatRig()
	startAttack(w, fighters, attacker)
	tick(w, combat)
	if got := stateName(w, defender); got != "hurt" {
		t.Fatalf("defender state = %q, want hurt", got)
	}

	// Ride most of the stun out, then land a second hit mid-hurt.
	for machineOf(w, defender).Elapsed < 0.25 {
		tick(w, fighters)
	}
	SpawnProjectile(w, attacker, "ranged1")
	pe, _ := w.First(component.ProjectileComponent.ID())
	tt := transformOf(w, defender)
	pt := transformOf(w, pe)
	pt.X = tt.X
	pt.Y = tt.Y + 20
	tick(w, combat)

	if got := machineOf(w, defender).Elapsed; got != 0 {
		t.Fatalf("second hit must restart the stun clock, elapsed = %v", got)
	}
	// The fresh stun runs its full course: a handful of ticks later the
	// stale clock would already have expired.
	for i := 0; i < 6; i++ {
		tick(w, fighters)
	}
	if got := stateName(w, defender); got != "hurt" {
		t.Fatalf("defender state = %q, want hurt for the full fresh stun", got)
	}
	for machineOf(w, defender).Elapsed <= combatantOf(w, defender).Stun {
		tick(w, fighters)
	}
	tick(w, fighters)
	if got := stateName(w, defender); got == "hurt" {
		t.Fatalf("restarted stun must still expire")
	}
}

func TestMeleeHitOnDefenderRightHalf(t *testing.T) {
	arena := testArena(400, 300, 250)
	w := ecs.NewWorld()
	defender := addFighter(w, 210, 250, testStats())
	attacker := addFighter(w, 241, 250, testStats())
	combatantOf(w, attacker).Facing = -1
	fighters := NewFighterSystem(arena)
	combat := NewCombatSystem(arena, fighters)
	tick(w, fighters)

	// The mirrored hitbox spans [211, 241]: it covers only the right half
	// of the defender's centered hurtbox [200, 220].
	startAttack(w, fighters, attacker)
	tick(w, combat)
	if p := combatantOf(w, defender).Percent; p != 8 {
		t.Fatalf("right-side overlap must resolve, percent = %v", p)
	}
}

func TestMeleeHitRequiresActiveWindow(t *testing.T) {
	w, fighters, combat, attacker, defender := newCombatRig()

	// Shift the hitbox window so the first ticks are wind-up.
	boxes, _ := ecs.Get(w, attacker, component.HitboxComponent)
	(*boxes)[0].From = 0.2
	(*boxes)[0].To = 0.4

	startAttack(w, fighters, attacker)
	tick(w, combat)
	if p := combatantOf(w, defender).Percent; p != 0 {
		t.Fatalf("wind-up must not hit, percent = %v", p)
	}

	// Advance into the window.
	for machineOf(w, attacker).Elapsed < 0.25 {
		tick(w, fighters)
	}
	tick(w, combat)
	if p := combatantOf(w, defender).Percent; p != 8 {
		t.Fatalf("active window must hit, percent = %v", p)
	}
}

func TestMeleeRangeAndFacing(t *testing.T) {
	w, fighters, combat, attacker, defender := newCombatRig()

	// Face away from the defender: the mirrored hitbox cannot reach.
	combatantOf(w, attacker).Facing = -1
	startAttack(w, fighters, attacker)
	tick(w, combat)
	if p := combatantOf(w, defender).Percent; p != 0 {
		t.Fatalf("attack away from target must miss, percent = %v", p)
	}
}

func TestMeleeHitWithoutAttackerStats(t *testing.T) {
	arena := testArena(400, 300, 250)
	w := ecs.NewWorld()
	defender := addFighter(w, 210, 250, testStats())
	fighters := NewFighterSystem(arena)
	combat := NewCombatSystem(arena, fighters)
	tick(w, fighters)

	// A bare attacker with no fighter stats, as a scripted hazard would
	// be. Strength falls back to 1 instead of dereferencing nil.
	attacker := w.CreateEntity()
	ecs.Add(w, attacker, component.TransformComponent, component.Transform{X: 180, Y: 200})
	ecs.Add(w, attacker, component.CombatantComponent, component.Combatant{Facing: 1})
	ecs.Add(w, attacker, component.StateMachineComponent, component.StateMachine{State: stateAttack1})
	ecs.Add(w, attacker, component.HitboxComponent, []component.Hitbox{
		{State: "attack1", From: 0, To: 0.5, Width: 30, Height: 20, OffsetX: 15, OffsetY: 10, Percent: 8, Knockback: 80},
	})

	tick(w, combat)
	if p := combatantOf(w, defender).Percent; p != 8 {
		t.Fatalf("hit without attacker stats must still resolve, percent = %v", p)
	}
}

func TestParryNeutralizesAndReflectsMelee(t *testing.T) {
	w, fighters, combat, attacker, defender := newCombatRig()

	in := intentOf(w, defender)
	in.ParryPressed = true
	tick(w, fighters)
	in.ParryPressed = false
	if got := stateName(w, defender); got != "parry" {
		t.Fatalf("defender state = %q, want parry", got)
	}

	startAttack(w, fighters, attacker)
	tick(w, combat)

	dcom := combatantOf(w, defender)
	acom := combatantOf(w, attacker)

	if dcom.Percent != 0 {
		t.Fatalf("parried melee must deal no damage, defender at %v%%", dcom.Percent)
	}
	if acom.Percent != parryReflectPercent {
		t.Fatalf("reflection must hit the attacker for %v%%, got %v%%", parryReflectPercent, acom.Percent)
	}
	if dcom.Freeze != hitFreezeDuration || acom.Freeze != hitFreezeDuration {
		t.Fatalf("both fighters must be hit-frozen, got %v / %v", dcom.Freeze, acom.Freeze)
	}
	if !dcom.ParryConsumed {
		t.Fatalf("parry must be consumed")
	}
	if got := stateName(w, attacker); got != "hurt" {
		t.Fatalf("attacker state = %q, want hurt", got)
	}
}

func TestParrySingleUse(t *testing.T) {
	w, fighters, combat, attacker, defender := newCombatRig()

	in := intentOf(w, defender)
	in.ParryPressed = true
	tick(w, fighters)
	in.ParryPressed = false

	// Mark the parry consumed, as if it already neutralized a hit.
	dcom := combatantOf(w, defender)
	dcom.ParryConsumed = true

	startAttack(w, fighters, attacker)
	tick(w, combat)

	if dcom.Percent == 0 {
		t.Fatalf("a consumed parry must not absorb a second hit")
	}
}

func TestProjectileHitAndOwnerImmunity(t *testing.T) {
	arena := testArena(400, 300, 250)
	w := ecs.NewWorld()
	owner := addFighter(w, 100, 250, testStats())
	target := addFighter(w, 300, 250, testStats())
	fighters := NewFighterSystem(arena)
	combat := NewCombatSystem(arena, fighters)
	tick(w, fighters)

	SpawnProjectile(w, owner, "ranged1")
	if projectileCount(w) != 1 {
		t.Fatalf("expected one projectile")
	}

	// While over the owner, nothing happens.
	tick(w, combat)
	if p := combatantOf(w, owner).Percent; p != 0 {
		t.Fatalf("projectile must never hit its owner, got %v%%", p)
	}

	// Drop it onto the target's hurtbox.
	pe, _ := w.First(component.ProjectileComponent.ID())
	pt := transformOf(w, pe)
	tt := transformOf(w, target)
	pt.X = tt.X
	pt.Y = tt.Y + 20
	tick(w, combat)

	if p := combatantOf(w, target).Percent; p != testStats().Ranged1.Percent {
		t.Fatalf("target percent = %v, want %v", p, testStats().Ranged1.Percent)
	}
	if projectileCount(w) != 0 {
		t.Fatalf("projectile must be destroyed on hit")
	}
	// Ranged1 is chip: no knockback request.
	if ecs.Has(w, target, component.KnockbackRequestComponent) {
		t.Fatalf("chip projectile must not request knockback")
	}
	if got := stateName(w, target); got != "hurt" {
		t.Fatalf("target state = %q, want hurt", got)
	}
}

func TestParryNegatesProjectileOutright(t *testing.T) {
	arena := testArena(400, 300, 250)
	w := ecs.NewWorld()
	owner := addFighter(w, 100, 250, testStats())
	target := addFighter(w, 300, 250, testStats())
	fighters := NewFighterSystem(arena)
	combat := NewCombatSystem(arena, fighters)
	tick(w, fighters)

	in := intentOf(w, target)
	in.ParryPressed = true
	tick(w, fighters)

	SpawnProjectile(w, owner, "ranged1")
	pe, _ := w.First(component.ProjectileComponent.ID())
	tt := transformOf(w, target)
	pt := transformOf(w, pe)
	pt.X = tt.X
	pt.Y = tt.Y + 20
	tick(w, combat)

	if p := combatantOf(w, target).Percent; p != 0 {
		t.Fatalf("parried projectile must deal nothing, got %v%%", p)
	}
	// Ranged parry reflects nothing onto the owner.
	if p := combatantOf(w, owner).Percent; p != 0 {
		t.Fatalf("ranged parry must not reflect, owner at %v%%", p)
	}
	if projectileCount(w) != 0 {
		t.Fatalf("parried projectile must be destroyed")
	}
	if combatantOf(w, owner).Freeze != hitFreezeDuration {
		t.Fatalf("owner must still receive the readability freeze")
	}
}

func TestFixedHPDefeat(t *testing.T) {
	arena := testArena(400, 300, 250)
	w := ecs.NewWorld()
	stats := testStats()
	stats.HitPoints = 1
	attacker := addFighter(w, 180, 250, testStats())
	defender := addFighter(w, 210, 250, stats)
	dcom := combatantOf(w, defender)
	dcom.Hits = 1
	dcom.Facing = -1

	fighters := NewFighterSystem(arena)
	combat := NewCombatSystem(arena, fighters)
	tick(w, fighters)

	startAttack(w, fighters, attacker)
	tick(w, combat)

	if got := stateName(w, defender); got != "defeat" {
		t.Fatalf("defender state = %q, want defeat", got)
	}
	found := false
	for _, evt := range w.Events().Pending() {
		if evt.Type == ecs.EventDefeated {
			found = true
		}
	}
	if !found {
		t.Fatalf("defeat must emit the defeated event")
	}

	// A defeated fighter absorbs no further hits.
	percentBefore := dcom.Percent
	startAttack(w, fighters, attacker)
	tick(w, combat)
	if dcom.Percent != percentBefore {
		t.Fatalf("defeated fighter must not take damage")
	}
}

func TestKnockbackRequestConsumed(t *testing.T) {
	w := ecs.NewWorld()
	e := addFighter(w, 200, 250, testStats())
	ecs.Add(w, e, component.KnockbackRequestComponent, component.KnockbackRequest{
		Magnitude: 100, Dir: 1,
	})

	tick(w, NewKnockbackSystem())

	if ecs.Has(w, e, component.KnockbackRequestComponent) {
		t.Fatalf("request must not survive the tick")
	}
	if vx := velocityOf(w, e).X; vx != 100 {
		t.Fatalf("nudge vx = %v, want 100", vx)
	}
}

func TestKnockbackLaunchImpulse(t *testing.T) {
	w := ecs.NewWorld()
	e := addFighter(w, 200, 250, testStats())
	ecs.Add(w, e, component.KnockbackRequestComponent, component.KnockbackRequest{
		Magnitude: 200, Dir: -1, Launch: true, Interp: 1,
	})

	tick(w, NewKnockbackSystem())

	v := velocityOf(w, e)
	if v.X >= 0 {
		t.Fatalf("launch must push left, vx = %v", v.X)
	}
	if v.Y >= 0 {
		t.Fatalf("launch must lift, vy = %v", v.Y)
	}
}
