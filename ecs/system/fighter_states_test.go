package system

import (
	"testing"

	"github.com/CosmicSlothOracle/HeMilch/ecs"
)

func newStateRig() (*ecs.World, *Arena, *FighterSystem, ecs.Entity) {
	arena := testArena(400, 300, 250)
	w := ecs.NewWorld()
	e := addFighter(w, 200, 250, testStats())
	return w, arena, NewFighterSystem(arena), e
}

func TestDerivedMovementStates(t *testing.T) {
	cases := []struct {
		name     string
		grounded bool
		vx       float64
		want     string
	}{
		{"grounded_still", true, 0, "idle"},
		{"grounded_moving", true, 120, "walk"},
		{"grounded_below_epsilon", true, 0.5, "idle"},
		{"airborne", false, 0, "jump"},
		{"airborne_moving", false, 120, "jump"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, _, fighters, e := newStateRig()
			combatantOf(w, e).Grounded = c.grounded
			velocityOf(w, e).X = c.vx
			if c.grounded {
				// Keep walk input consistent with the velocity so the walk
				// state does not immediately zero it.
				if c.vx > walkEpsilon {
					intentOf(w, e).Right = true
				}
			}
			tick(w, fighters)
			if got := stateName(w, e); got != c.want {
				t.Fatalf("derived state = %q, want %q", got, c.want)
			}
		})
	}
}

func TestMovementDerivationRerunsEveryTick(t *testing.T) {
	w, _, fighters, e := newStateRig()
	tick(w, fighters)
	if got := stateName(w, e); got != "idle" {
		t.Fatalf("initial state = %q, want idle", got)
	}

	intentOf(w, e).Right = true
	tick(w, fighters)
	if got := stateName(w, e); got != "walk" {
		t.Fatalf("after hold right = %q, want walk", got)
	}

	intentOf(w, e).Right = false
	tick(w, fighters)
	if got := stateName(w, e); got != "idle" {
		t.Fatalf("after release = %q, want idle", got)
	}
}

func TestJumpFromGround(t *testing.T) {
	w, _, fighters, e := newStateRig()
	tick(w, fighters)

	in := intentOf(w, e)
	in.Up = true
	in.UpPressed = true
	tick(w, fighters)

	if got := stateName(w, e); got != "jump" {
		t.Fatalf("state = %q, want jump", got)
	}
	if com := combatantOf(w, e); com.Grounded {
		t.Fatalf("jump must clear grounded")
	}
	if v := velocityOf(w, e); v.Y != -testStats().JumpSpeed {
		t.Fatalf("vy = %v, want %v", v.Y, -testStats().JumpSpeed)
	}

	// Airborne press must not double-jump.
	in.UpPressed = true
	vyBefore := velocityOf(w, e).Y
	tick(w, fighters)
	if velocityOf(w, e).Y != vyBefore {
		t.Fatalf("airborne up press must not change vy")
	}
}

func TestFlyHoldAndRelease(t *testing.T) {
	w, _, fighters, e := newStateRig()
	tick(w, fighters)

	in := intentOf(w, e)
	in.Dodge = true
	in.Right = true
	tick(w, fighters)

	if got := stateName(w, e); got != "fly" {
		t.Fatalf("state = %q, want fly", got)
	}
	com := combatantOf(w, e)
	if !com.Flying || com.Grounded {
		t.Fatalf("fly must set flying and clear grounded")
	}
	if v := velocityOf(w, e); v.X != testStats().FlySpeed {
		t.Fatalf("vx = %v, want fly speed %v", v.X, testStats().FlySpeed)
	}

	// Release exits on the next tick and re-derives.
	in.Dodge = false
	tick(w, fighters)
	if got := stateName(w, e); got != "jump" {
		t.Fatalf("state after release = %q, want jump", got)
	}
	if combatantOf(w, e).Flying {
		t.Fatalf("flying flag must clear on exit")
	}
}

func TestAttackLifecycle(t *testing.T) {
	w, _, fighters, e := newStateRig()
	tick(w, fighters)

	seqBefore := combatantOf(w, e).AttackSeq
	in := intentOf(w, e)
	in.Attack1 = true
	in.Attack1Pressed = true
	velocityOf(w, e).X = 100
	tick(w, fighters)
	in.Attack1Pressed = false

	if got := stateName(w, e); got != "attack1" {
		t.Fatalf("state = %q, want attack1", got)
	}
	if got := combatantOf(w, e).AttackSeq; got != seqBefore+1 {
		t.Fatalf("attack entry must bump sequence, got %d want %d", got, seqBefore+1)
	}
	if v := velocityOf(w, e); v.X != 0 {
		t.Fatalf("grounded attack must zero horizontal velocity, vx = %v", v.X)
	}

	// A second press mid-swing must not restart or re-bump.
	in.Attack1Pressed = true
	tick(w, fighters)
	in.Attack1Pressed = false
	if got := combatantOf(w, e).AttackSeq; got != seqBefore+1 {
		t.Fatalf("mid-swing press must not bump sequence")
	}

	for i := 0; i < 40; i++ {
		tick(w, fighters)
	}
	if got := stateName(w, e); got != "idle" {
		t.Fatalf("state after expiry = %q, want idle", got)
	}
}

func TestRangedSpawnsAtScheduledOffset(t *testing.T) {
	arena := testArena(400, 300, 250)
	w := ecs.NewWorld()
	e := addFighter(w, 200, 250, testStats())
	fighters := NewFighterSystem(arena)

	tick(w, fighters)
	in := intentOf(w, e)
	in.Ranged1 = true
	in.Ranged1Pressed = true
	tick(w, fighters)
	in.Ranged1Pressed = false

	if got := stateName(w, e); got != "ranged1" {
		t.Fatalf("state = %q, want ranged1", got)
	}

	// Ranged1SpawnAt is 0.4s; stay empty until then, spawn exactly once.
	for machineOf(w, e).Elapsed < testStats().Ranged1SpawnAt-2*testDt {
		tick(w, fighters)
		if projectileCount(w) != 0 {
			t.Fatalf("projectile spawned early at %vs", machineOf(w, e).Elapsed)
		}
	}
	for i := 0; i < 6; i++ {
		tick(w, fighters)
	}
	if got := projectileCount(w); got != 1 {
		t.Fatalf("want exactly one projectile, got %d", got)
	}

	// Let the action expire; still one.
	for i := 0; i < 60; i++ {
		tick(w, fighters)
	}
	if got := projectileCount(w); got != 1 {
		t.Fatalf("expiry must not spawn again, got %d", got)
	}
	if got := stateName(w, e); got != "idle" {
		t.Fatalf("state after expiry = %q, want idle", got)
	}
}

func TestRanged2HoldLoopRefires(t *testing.T) {
	arena := testArena(400, 300, 250)
	w := ecs.NewWorld()
	e := addFighter(w, 200, 250, testStats())
	fighters := NewFighterSystem(arena)

	tick(w, fighters)
	in := intentOf(w, e)
	in.Ranged2 = true
	in.Ranged2Pressed = true
	tick(w, fighters)
	in.Ranged2Pressed = false

	// Hold through the base window plus two refire intervals.
	stats := testStats()
	holdSeconds := stats.RangedDuration + 2*stats.Ranged2Interval + 0.1
	for i := 0; i < int(holdSeconds/testDt); i++ {
		tick(w, fighters)
	}
	if got := projectileCount(w); got != 3 {
		t.Fatalf("hold loop should have fired 3 times (1 scheduled + 2 refires), got %d", got)
	}
	if got := stateName(w, e); got != "ranged2" {
		t.Fatalf("state while held = %q, want ranged2", got)
	}

	in.Ranged2 = false
	tick(w, fighters)
	if got := stateName(w, e); got != "idle" {
		t.Fatalf("state after release = %q, want idle", got)
	}
}

func TestParryCooldownGatesEntry(t *testing.T) {
	w, _, fighters, e := newStateRig()
	tick(w, fighters)

	in := intentOf(w, e)
	in.ParryPressed = true
	tick(w, fighters)
	in.ParryPressed = false

	if got := stateName(w, e); got != "parry" {
		t.Fatalf("state = %q, want parry", got)
	}
	com := combatantOf(w, e)
	if com.ParryCooldown <= 0 {
		t.Fatalf("parry entry must arm the cooldown")
	}
	if com.ParryConsumed {
		t.Fatalf("fresh parry must not start consumed")
	}

	// Window expires, a press during cooldown is refused.
	for i := 0; i < 30; i++ {
		tick(w, fighters)
	}
	if got := stateName(w, e); got != "idle" {
		t.Fatalf("state after window = %q, want idle", got)
	}
	in.ParryPressed = true
	tick(w, fighters)
	in.ParryPressed = false
	if got := stateName(w, e); got == "parry" {
		t.Fatalf("parry must be refused while cooling down")
	}

	// After the full cooldown it works again.
	for i := 0; i < int(3.2/testDt); i++ {
		tick(w, fighters)
	}
	in.ParryPressed = true
	tick(w, fighters)
	if got := stateName(w, e); got != "parry" {
		t.Fatalf("state after cooldown = %q, want parry", got)
	}
}

func TestHurtReturnsToDerivedState(t *testing.T) {
	w, _, fighters, e := newStateRig()
	tick(w, fighters)

	// Airborne hurt must come back to jump, not idle.
	com := combatantOf(w, e)
	com.Grounded = false
	com.Stun = 0.3
	forceState(w, fighters, e, stateHurt)
	if got := stateName(w, e); got != "hurt" {
		t.Fatalf("state = %q, want hurt", got)
	}

	for i := 0; i < 30; i++ {
		tick(w, fighters)
	}
	if got := stateName(w, e); got != "jump" {
		t.Fatalf("airborne hurt must resolve to jump, got %q", got)
	}
}

func TestDefeatPlaysToCompletion(t *testing.T) {
	w, _, fighters, e := newStateRig()
	tick(w, fighters)

	forceState(w, fighters, e, stateDefeat)
	com := combatantOf(w, e)

	// Inputs are dead during defeat.
	in := intentOf(w, e)
	in.Attack1Pressed = true
	in.UpPressed = true

	half := int(testStats().DefeatDuration / 2 / testDt)
	for i := 0; i < half; i++ {
		tick(w, fighters)
	}
	if com.DefeatDone {
		t.Fatalf("defeat must not be done mid-timeline")
	}
	if got := stateName(w, e); got != "defeat" {
		t.Fatalf("state = %q, want defeat", got)
	}

	for i := 0; i < half+5; i++ {
		tick(w, fighters)
	}
	if !com.DefeatDone {
		t.Fatalf("defeat must complete after its duration")
	}
}

func TestHitFreezeSuspendsEverything(t *testing.T) {
	w, _, fighters, e := newStateRig()
	tick(w, fighters)

	com := combatantOf(w, e)
	com.Freeze = 0.15
	elapsedBefore := machineOf(w, e).Elapsed

	in := intentOf(w, e)
	in.Attack1Pressed = true
	tick(w, fighters)

	if got := stateName(w, e); got != "idle" {
		t.Fatalf("frozen fighter must not change state, got %q", got)
	}
	if machineOf(w, e).Elapsed != elapsedBefore {
		t.Fatalf("frozen fighter must not advance its state clock")
	}
	if com.Freeze >= 0.15 {
		t.Fatalf("freeze timer must tick down")
	}
}
