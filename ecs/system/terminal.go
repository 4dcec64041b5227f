package system

import (
	"log"

	"github.com/CosmicSlothOracle/HeMilch/ecs"
	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

// emergencyMargin is how far below the canvas a fighter may fall before the
// recovery teleport fires, when no fall-out threshold is configured.
const emergencyMargin = 400.0

// TerminalSystem runs last in the tick: it evaluates fall-out against the
// arena threshold, finishes defeat timelines, and services respawn
// requests. The primary fighter respawns while stocks remain; everyone else
// is removed for good.
type TerminalSystem struct {
	arena    *Arena
	fighters *FighterSystem
}

func NewTerminalSystem(arena *Arena, fighters *FighterSystem) *TerminalSystem {
	return &TerminalSystem{arena: arena, fighters: fighters}
}

func (s *TerminalSystem) Update(w *ecs.World) {
	for _, e := range w.Query(component.CombatantComponent.ID(), component.TransformComponent.ID()) {
		com, _ := ecs.Get(w, e, component.CombatantComponent)
		if com.Removed {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)

		if s.arena.FallOutY > 0 {
			if t.Y > s.arena.FallOutY {
				s.fellOut(w, e, com)
				continue
			}
		} else if t.Y > s.arena.Height+emergencyMargin {
			// No fall-out threshold: a surface gap let the fighter drop off
			// the level art. Teleport to the known-good platform instead of
			// falling forever.
			s.emergencyRecover(w, e, com, t)
		}

		if com.DefeatDone {
			s.finishDefeat(w, e, com)
			continue
		}

		if ecs.Has(w, e, component.RespawnRequestComponent) {
			ecs.Remove(w, e, component.RespawnRequestComponent)
			s.respawn(w, e, com)
		}
	}
}

func (s *TerminalSystem) fellOut(w *ecs.World, e ecs.Entity, com *component.Combatant) {
	w.Events().Push(ecs.Event{Type: ecs.EventFellOut, Data: e})

	if !ecs.Has(w, e, component.PrimaryTagComponent) {
		s.remove(w, e, com)
		return
	}
	com.Stocks--
	if com.Stocks > 0 {
		s.respawn(w, e, com)
		return
	}
	// Out of stocks: the fall decided the match.
	com.DefeatDone = true
	com.Removed = true
	w.Events().Push(ecs.Event{Type: ecs.EventDefeated, Data: e})
}

// finishDefeat runs once the defeat timeline has fully played out. NPCs
// leave the live set; the primary fighter spends a stock or stays down.
func (s *TerminalSystem) finishDefeat(w *ecs.World, e ecs.Entity, com *component.Combatant) {
	if !ecs.Has(w, e, component.PrimaryTagComponent) {
		s.remove(w, e, com)
		return
	}
	com.Stocks--
	if com.Stocks > 0 {
		s.respawn(w, e, com)
		return
	}
	com.Removed = true
}

func (s *TerminalSystem) remove(w *ecs.World, e ecs.Entity, com *component.Combatant) {
	com.Removed = true
	w.DestroyEntity(e)
}

// respawn puts the fighter back at its spawn point with a clean slate:
// percent and hit count reset, all timers cleared, state machine back to
// idle.
func (s *TerminalSystem) respawn(w *ecs.World, e ecs.Entity, com *component.Combatant) {
	sp, ok := ecs.Get(w, e, component.SpawnPointComponent)
	if !ok {
		log.Printf("terminal: %v has no spawn point, leaving in place", e)
		return
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
		t.X = sp.X
		t.Y = sp.Y
	}
	if v, ok := ecs.Get(w, e, component.VelocityComponent); ok {
		v.X = 0
		v.Y = 0
	}

	com.Percent = 0
	if stats, ok := ecs.Get(w, e, component.FighterComponent); ok {
		com.Hits = stats.HitPoints
	}
	com.Grounded = false
	com.Launched = false
	com.Flying = false
	com.GroundMisses = 0
	com.Freeze = 0
	com.Stun = 0
	com.ParryCooldown = 0
	com.ParryConsumed = false
	com.DefeatDone = false

	forceState(w, s.fighters, e, stateIdle)
	w.Events().Push(ecs.Event{Type: ecs.EventRespawned, Data: e})
}

func (s *TerminalSystem) emergencyRecover(w *ecs.World, e ecs.Entity, com *component.Combatant, t *component.Transform) {
	t.X = s.arena.SafeX
	t.Y = s.arena.SafeY
	if v, ok := ecs.Get(w, e, component.VelocityComponent); ok {
		v.X = 0
		v.Y = 0
	}
	com.Launched = false
	com.Grounded = false
	log.Printf("terminal: emergency recovery for %v", e)
}
