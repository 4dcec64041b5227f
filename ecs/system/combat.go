package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/CosmicSlothOracle/HeMilch/ecs"
	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

const (
	// hitFreezeDuration is the readability freeze applied to both fighters
	// on a parry.
	hitFreezeDuration = 0.15

	// parryReflectPercent / parryReflectKnockback are the fixed melee
	// reflection values returned to the attacker.
	parryReflectPercent   = 10.0
	parryReflectKnockback = 60.0
)

// CombatSystem is the per-tick resolution pass: melee hitbox vs hurtbox,
// projectile vs hurtbox, parry interposition, then damage and knockback
// bookkeeping. Each attack instance resolves at most once per target no
// matter how many ticks the overlap persists.
type CombatSystem struct {
	arena    *Arena
	fighters *FighterSystem
}

func NewCombatSystem(arena *Arena, fighters *FighterSystem) *CombatSystem {
	return &CombatSystem{arena: arena, fighters: fighters}
}

func (s *CombatSystem) Update(w *ecs.World) {
	s.resolveMelee(w)
	s.resolveProjectiles(w)
}

// hurtboxBB computes a hurtbox's world AABB.
func hurtboxBB(t *component.Transform, hb *component.Hurtbox) cp.BB {
	l := t.X + hb.OffsetX - hb.Width/2
	top := t.Y + hb.OffsetY
	// cp.BB is min/max with B <= T in chipmunk's y-up convention; the
	// simulation is y-down, so only Intersects is used and B/T hold
	// top/bottom respectively.
	return cp.BB{L: l, B: top, R: l + hb.Width, T: top + hb.Height}
}

// hitboxBB computes a hitbox's world AABB, mirrored by facing.
func hitboxBB(t *component.Transform, facing float64, hb *component.Hitbox) cp.BB {
	cx := t.X + hb.OffsetX*facing
	l := cx - hb.Width/2
	top := t.Y + hb.OffsetY
	return cp.BB{L: l, B: top, R: l + hb.Width, T: top + hb.Height}
}

func bbOverlap(a, b cp.BB) bool {
	return a.L < b.R && a.R > b.L && a.B < b.T && a.T > b.B
}

func (s *CombatSystem) resolveMelee(w *ecs.World) {
	attackers := w.Query(
		component.HitboxComponent.ID(),
		component.TransformComponent.ID(),
		component.CombatantComponent.ID(),
		component.StateMachineComponent.ID(),
	)
	for _, attacker := range attackers {
		hitboxes, _ := ecs.Get(w, attacker, component.HitboxComponent)
		at, _ := ecs.Get(w, attacker, component.TransformComponent)
		acom, _ := ecs.Get(w, attacker, component.CombatantComponent)
		machine, _ := ecs.Get(w, attacker, component.StateMachineComponent)
		if acom.Freeze > 0 || machine.State == nil {
			continue
		}
		stateName := machine.State.Name()

		for i := range *hitboxes {
			hb := &(*hitboxes)[i]
			if hb.State != stateName {
				continue
			}
			if machine.Elapsed < hb.From || machine.Elapsed > hb.To {
				continue
			}
			box := hitboxBB(at, acom.Facing, hb)

			for _, target := range w.Query(
				component.HurtboxComponent.ID(),
				component.TransformComponent.ID(),
				component.CombatantComponent.ID(),
			) {
				if target == attacker {
					continue
				}
				if s.overlapsHurtbox(w, target, box) && s.freshHit(hb, target, acom.AttackSeq) {
					s.resolveMeleeHit(w, attacker, target, hb)
				}
			}
		}
	}
}

func (s *CombatSystem) overlapsHurtbox(w *ecs.World, target ecs.Entity, box cp.BB) bool {
	hurtboxes, ok := ecs.Get(w, target, component.HurtboxComponent)
	if !ok {
		return false
	}
	tt, ok := ecs.Get(w, target, component.TransformComponent)
	if !ok {
		return false
	}
	for i := range *hurtboxes {
		if bbOverlap(box, hurtboxBB(tt, &(*hurtboxes)[i])) {
			return true
		}
	}
	return false
}

// freshHit records the attack sequence against the target and reports
// whether this instance already resolved on it.
func (s *CombatSystem) freshHit(hb *component.Hitbox, target ecs.Entity, seq uint64) bool {
	if hb.HitSeq == nil {
		hb.HitSeq = map[component.Entity]uint64{}
	}
	key := component.Entity(target)
	if hb.HitSeq[key] == seq {
		return false
	}
	hb.HitSeq[key] = seq
	return true
}

func (s *CombatSystem) resolveMeleeHit(w *ecs.World, attacker, defender ecs.Entity, hb *component.Hitbox) {
	dcom, _ := ecs.Get(w, defender, component.CombatantComponent)
	acom, _ := ecs.Get(w, attacker, component.CombatantComponent)

	if s.tryParry(w, attacker, defender, true) {
		return
	}
	if dmachine, ok := ecs.Get(w, defender, component.StateMachineComponent); ok &&
		dmachine.State == stateDefeat {
		return
	}

	dstats, ok := ecs.Get(w, defender, component.FighterComponent)
	if !ok {
		return
	}
	strength := 1.0
	if astats, ok := ecs.Get(w, attacker, component.FighterComponent); ok {
		strength = astats.Strength
	}

	// The attacker's side decides the push direction.
	angle := 0.0
	if acom.Facing < 0 {
		angle = math.Pi
	}
	res := applyHit(dcom, dstats, hb.Percent, hb.Knockback, strength, angle, true)
	_ = ecs.Add(w, defender, component.KnockbackRequestComponent, res.knockback)
	s.enterHurt(w, defender, res.stun)
	s.checkHitDefeat(w, defender)
}

func (s *CombatSystem) resolveProjectiles(w *ecs.World) {
	ecs.ForEach2(w, component.ProjectileComponent, component.TransformComponent, func(pe ecs.Entity, p *component.Projectile, pt *component.Transform) {
		half := p.Width / 2
		box := cp.BB{L: pt.X - half, B: pt.Y - p.Height/2, R: pt.X + half, T: pt.Y + p.Height/2}

		for _, target := range w.Query(
			component.HurtboxComponent.ID(),
			component.TransformComponent.ID(),
			component.CombatantComponent.ID(),
		) {
			if component.Entity(target) == p.Owner {
				continue
			}
			if !s.overlapsHurtbox(w, target, box) {
				continue
			}

			owner := ecs.Entity(p.Owner)
			if s.tryParry(w, owner, target, false) {
				SpawnImpactEffect(w, pt.X, pt.Y)
				w.DestroyEntity(pe)
				return
			}
			if dmachine, ok := ecs.Get(w, target, component.StateMachineComponent); ok &&
				dmachine.State == stateDefeat {
				continue
			}

			dcom, _ := ecs.Get(w, target, component.CombatantComponent)
			dstats, ok := ecs.Get(w, target, component.FighterComponent)
			if !ok {
				continue
			}
			strength := 1.0
			if ostats, ok := ecs.Get(w, owner, component.FighterComponent); ok {
				strength = ostats.Strength
			}
			angle := 0.0
			if p.VX < 0 {
				angle = math.Pi
			}
			res := applyHit(dcom, dstats, p.Percent, p.Percent*2, strength, angle, p.CausesKnockback)
			if p.CausesKnockback {
				_ = ecs.Add(w, target, component.KnockbackRequestComponent, res.knockback)
			}
			s.enterHurt(w, target, res.stun)
			s.checkHitDefeat(w, target)

			SpawnImpactEffect(w, pt.X, pt.Y)
			w.DestroyEntity(pe)
			return
		}
	})
}

// tryParry interposes the defender's parry before any damage. Melee hits
// reflect a fixed percent/knockback back onto the attacker; ranged damage is
// negated outright. Both fighters receive a short hit-freeze. One parry
// neutralizes exactly one incoming hit.
func (s *CombatSystem) tryParry(w *ecs.World, attacker, defender ecs.Entity, melee bool) bool {
	dcom, ok := ecs.Get(w, defender, component.CombatantComponent)
	if !ok {
		return false
	}
	dmachine, ok := ecs.Get(w, defender, component.StateMachineComponent)
	if !ok || dmachine.State != stateParry || dcom.ParryConsumed {
		return false
	}
	dcom.ParryConsumed = true
	dcom.Freeze = hitFreezeDuration

	if acom, ok := ecs.Get(w, attacker, component.CombatantComponent); ok {
		acom.Freeze = hitFreezeDuration
		if melee {
			astats, ok := ecs.Get(w, attacker, component.FighterComponent)
			if ok {
				// The reflection pushes the attacker back the way they came.
				angle := 0.0
				if acom.Facing > 0 {
					angle = math.Pi
				}
				res := applyHit(acom, astats, parryReflectPercent, parryReflectKnockback, astats.Strength, angle, true)
				_ = ecs.Add(w, attacker, component.KnockbackRequestComponent, res.knockback)
				s.enterHurt(w, attacker, res.stun)
				s.checkHitDefeat(w, attacker)
			}
		}
	}
	return true
}

func (s *CombatSystem) enterHurt(w *ecs.World, e ecs.Entity, stun float64) {
	com, ok := ecs.Get(w, e, component.CombatantComponent)
	if !ok {
		return
	}
	com.Stun = stun
	// A hit landing mid-hurt restarts the stun clock; changeState would
	// no-op on a same-state transition and leave the old elapsed running.
	if m, ok := ecs.Get(w, e, component.StateMachineComponent); ok && m.State == stateHurt {
		m.Elapsed = 0
		return
	}
	forceState(w, s.fighters, e, stateHurt)
}

// checkHitDefeat flips a fixed-HP fighter into defeat when its hit count
// reaches zero.
func (s *CombatSystem) checkHitDefeat(w *ecs.World, e ecs.Entity) {
	com, ok := ecs.Get(w, e, component.CombatantComponent)
	if !ok {
		return
	}
	stats, ok := ecs.Get(w, e, component.FighterComponent)
	if !ok || stats.HitPoints <= 0 {
		return
	}
	if com.Hits <= 0 {
		forceState(w, s.fighters, e, stateDefeat)
		w.Events().Push(ecs.Event{Type: ecs.EventDefeated, Data: e})
	}
}
