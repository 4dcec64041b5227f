package system

import (
	"github.com/CosmicSlothOracle/HeMilch/ecs"
	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
	"github.com/CosmicSlothOracle/HeMilch/surface"
)

const testDt = 1.0 / 60.0

// testSurface builds a w x h mask with a full-width floor from floorY down,
// minus the listed gap columns.
func testSurface(w, h, floorY int, gaps ...int) *surface.Surface {
	alpha := make([]uint8, w*h)
	gapSet := map[int]struct{}{}
	for _, g := range gaps {
		gapSet[g] = struct{}{}
	}
	for y := floorY; y < h; y++ {
		for x := 0; x < w; x++ {
			if _, gap := gapSet[x]; gap {
				continue
			}
			alpha[y*w+x] = 255
		}
	}
	return surface.FromAlpha(w, h, alpha)
}

func testArena(w, h, floorY int, gaps ...int) *Arena {
	return &Arena{
		Surface: testSurface(w, h, floorY, gaps...),
		Dt:      testDt,
		Width:   float64(w),
		Height:  float64(h),
	}
}

func testStats() component.Fighter {
	return component.Fighter{
		Name:      "test",
		MoveSpeed: 200,
		JumpSpeed: 700,
		FlySpeed:  150,

		AttackDuration:  0.5,
		ParryWindow:     0.2,
		ParryCooldown:   3.0,
		RangedDuration:  0.8,
		Ranged1SpawnAt:  0.4,
		Ranged2SpawnAt:  0.3,
		Ranged2Interval: 0.5,
		HurtShort:       0.3,
		HurtLong:        0.8,
		DefeatDuration:  1.0,

		Strength: 1,

		Ranged1: component.ProjectileSpec{Speed: 500, Life: 1, Percent: 5, Width: 10, Height: 6, OffsetX: 15, OffsetY: 10},
		Ranged2: component.ProjectileSpec{Speed: 300, Life: 1.5, Percent: 8, Knockback: true, Width: 12, Height: 12, OffsetX: 12, OffsetY: 8},
	}
}

// addFighter spawns a grounded fighter standing with its foot on floorY.
func addFighter(w *ecs.World, x, footY float64, stats component.Fighter) ecs.Entity {
	const bodyW, bodyH = 20.0, 50.0
	e := w.CreateEntity()
	ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: footY - bodyH})
	ecs.Add(w, e, component.VelocityComponent, component.Velocity{})
	ecs.Add(w, e, component.BodyComponent, component.Body{Width: bodyW, Height: bodyH})
	ecs.Add(w, e, component.FighterComponent, stats)
	ecs.Add(w, e, component.CombatantComponent, component.Combatant{
		Facing:   1,
		Grounded: true,
		Hits:     stats.HitPoints,
		Stocks:   3,
	})
	ecs.Add(w, e, component.IntentComponent, component.Intent{})
	ecs.Add(w, e, component.StateMachineComponent, component.StateMachine{})
	ecs.Add(w, e, component.AnimationComponent, component.Animation{})
	ecs.Add(w, e, component.HurtboxComponent, []component.Hurtbox{
		{Width: bodyW, Height: bodyH, OffsetX: 0, OffsetY: 0},
	})
	ecs.Add(w, e, component.HitboxComponent, []component.Hitbox{
		{State: "attack1", From: 0, To: 0.5, Width: 30, Height: 20, OffsetX: 15, OffsetY: 10, Percent: 8, Knockback: 80},
	})
	ecs.Add(w, e, component.SpawnPointComponent, component.SpawnPoint{X: x, Y: footY - bodyH})
	return e
}

func intentOf(w *ecs.World, e ecs.Entity) *component.Intent {
	in, _ := ecs.Get(w, e, component.IntentComponent)
	return in
}

func combatantOf(w *ecs.World, e ecs.Entity) *component.Combatant {
	c, _ := ecs.Get(w, e, component.CombatantComponent)
	return c
}

func machineOf(w *ecs.World, e ecs.Entity) *component.StateMachine {
	m, _ := ecs.Get(w, e, component.StateMachineComponent)
	return m
}

func velocityOf(w *ecs.World, e ecs.Entity) *component.Velocity {
	v, _ := ecs.Get(w, e, component.VelocityComponent)
	return v
}

func transformOf(w *ecs.World, e ecs.Entity) *component.Transform {
	t, _ := ecs.Get(w, e, component.TransformComponent)
	return t
}

func stateName(w *ecs.World, e ecs.Entity) string {
	m := machineOf(w, e)
	if m.State == nil {
		return ""
	}
	return m.State.Name()
}

// tick runs the listed systems once.
func tick(w *ecs.World, systems ...ecs.System) {
	for _, s := range systems {
		s.Update(w)
	}
}

func projectileCount(w *ecs.World) int {
	return len(w.Query(component.ProjectileComponent.ID()))
}
