// Package match is the simulation core: it owns the world, wires the tick
// pipeline, and exposes the narrow surface the shells need (intent in,
// status out). It never imports the renderer.
package match

import (
	"fmt"

	"github.com/CosmicSlothOracle/HeMilch/ecs"
	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
	"github.com/CosmicSlothOracle/HeMilch/ecs/system"
	"github.com/CosmicSlothOracle/HeMilch/level"
	"github.com/CosmicSlothOracle/HeMilch/prefabs"
	"github.com/CosmicSlothOracle/HeMilch/surface"
)

// maxTickDt clamps a stalled frame so physics never integrates a huge step.
const maxTickDt = 0.05

// FighterSetup configures one fighter slot.
type FighterSetup struct {
	// Prefab is the fighter's YAML file name in the prefab store.
	Prefab string
	// Override optionally names a variant from the prefab's override table.
	Override string
	// Primary marks the human-controlled fighter with stock respawn.
	Primary bool
	// Behavior overrides the prefab's agent behavior. Ignored for the
	// primary fighter.
	Behavior string
}

// Status is the read-only per-fighter view for HUD rendering.
type Status struct {
	Name    string
	X, Y    float64
	Facing  float64
	State   string
	Percent float64
	Hits    int
	Stocks  int
	Removed bool
}

// Match drives one round on one arena.
type Match struct {
	world     *ecs.World
	arena     *system.Arena
	scheduler *ecs.Scheduler

	fighters []ecs.Entity
	primary  ecs.Entity

	frozen         bool
	pendingSurface *surface.Surface

	roundOver bool
	winner    ecs.Entity
	elapsed   float64
}

// New builds a match on the given arena with the given fighter slots,
// assigned to the level's spawn points in order.
func New(lvl *level.Level, setups []FighterSetup, behaviors system.BehaviorRegistry) (*Match, error) {
	if len(setups) > len(lvl.Spec.Spawns) {
		return nil, fmt.Errorf("match: %d fighters but only %d spawns", len(setups), len(lvl.Spec.Spawns))
	}

	arena := &system.Arena{
		Surface:  lvl.Surface,
		Width:    float64(lvl.Spec.CanvasW),
		Height:   float64(lvl.Spec.CanvasH),
		FallOutY: lvl.Spec.FallOutY,
		SafeX:    lvl.Spec.Safe.X,
		SafeY:    lvl.Spec.Safe.Y,
	}

	w := ecs.NewWorld()
	fighterSys := system.NewFighterSystem(arena)
	m := &Match{
		world: w,
		arena: arena,
		scheduler: ecs.NewScheduler(
			system.NewAgentSystem(arena, behaviors),
			fighterSys,
			system.NewPhysicsSystem(arena),
			system.NewProjectileSystem(arena),
			system.NewCombatSystem(arena, fighterSys),
			system.NewKnockbackSystem(),
			system.NewLifetimeSystem(arena),
			system.NewTerminalSystem(arena, fighterSys),
		),
	}

	for i, setup := range setups {
		spawn := lvl.Spec.Spawns[i]
		e, err := m.spawnFighter(setup, spawn.X, spawn.Y)
		if err != nil {
			return nil, err
		}
		m.fighters = append(m.fighters, e)
		if setup.Primary {
			m.primary = e
		}
	}
	return m, nil
}

func (m *Match) spawnFighter(setup FighterSetup, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadFighterSpec(setup.Prefab)
	if err != nil {
		return 0, err
	}
	if setup.Override != "" {
		if err := spec.ApplyOverride(setup.Override); err != nil {
			return 0, err
		}
	}

	e := m.world.CreateEntity()
	facing := 1.0
	if x > m.arena.Width/2 {
		facing = -1
	}

	stats := spec.Fighter()
	ecs.Add(m.world, e, component.TransformComponent, component.Transform{X: x, Y: y})
	ecs.Add(m.world, e, component.VelocityComponent, component.Velocity{})
	ecs.Add(m.world, e, component.BodyComponent, component.Body{Width: spec.Body.Width, Height: spec.Body.Height})
	ecs.Add(m.world, e, component.FighterComponent, stats)
	ecs.Add(m.world, e, component.CombatantComponent, component.Combatant{
		Facing: facing,
		Hits:   stats.HitPoints,
		Stocks: spec.Stocks,
	})
	ecs.Add(m.world, e, component.IntentComponent, component.Intent{})
	ecs.Add(m.world, e, component.StateMachineComponent, component.StateMachine{})
	ecs.Add(m.world, e, component.AnimationComponent, component.Animation{})
	ecs.Add(m.world, e, component.HitboxComponent, spec.HitboxComponents())
	ecs.Add(m.world, e, component.HurtboxComponent, spec.HurtboxComponents())
	ecs.Add(m.world, e, component.SpawnPointComponent, component.SpawnPoint{X: x, Y: y})

	if setup.Primary {
		ecs.Add(m.world, e, component.PrimaryTagComponent, component.PrimaryTag{})
	} else {
		agent := spec.AgentComponent(x)
		if setup.Behavior != "" {
			agent.Behavior = setup.Behavior
		}
		ecs.Add(m.world, e, component.AgentTagComponent, component.AgentTag{})
		ecs.Add(m.world, e, component.AgentComponent, agent)
	}
	return e, nil
}

// Step advances the simulation by dt seconds. While frozen, nothing moves
// and no timers advance.
func (m *Match) Step(dt float64) {
	if m.frozen || m.roundOver {
		return
	}
	if dt > maxTickDt {
		dt = maxTickDt
	}
	if dt <= 0 {
		return
	}

	// Surface swaps land between ticks, never mid-pipeline.
	if m.pendingSurface != nil {
		m.arena.Surface = m.pendingSurface
		m.pendingSurface = nil
	}

	m.arena.Dt = dt
	m.elapsed += dt
	m.scheduler.Update(m.world)
	m.checkRoundOver()
}

// checkRoundOver ends the round when at most one fighter remains able to
// act.
func (m *Match) checkRoundOver() {
	var standing ecs.Entity
	count := 0
	for _, e := range m.fighters {
		if !m.world.IsAlive(e) {
			continue
		}
		com, ok := ecs.Get(m.world, e, component.CombatantComponent)
		if !ok || com.Removed {
			continue
		}
		standing = e
		count++
	}
	if count <= 1 {
		m.roundOver = true
		m.winner = standing
	}
}

// Freeze halts the simulation, used during level-section transitions and
// pause.
func (m *Match) Freeze()   { m.frozen = true }
func (m *Match) Unfreeze() { m.frozen = false }
func (m *Match) Frozen() bool {
	return m.frozen
}

// SetSurface queues a collision-surface swap for the next tick boundary.
func (m *Match) SetSurface(s *surface.Surface) {
	m.pendingSurface = s
}

func (m *Match) RoundOver() bool     { return m.roundOver }
func (m *Match) Winner() ecs.Entity  { return m.winner }
func (m *Match) Elapsed() float64    { return m.elapsed }
func (m *Match) Primary() ecs.Entity { return m.primary }
func (m *Match) World() *ecs.World   { return m.world }
func (m *Match) Arena() *system.Arena {
	return m.arena
}

// SetIntent overwrites a fighter's input intent for this tick. The shell
// calls it for the primary fighter before Step; agents write their own.
func (m *Match) SetIntent(e ecs.Entity, intent component.Intent) {
	if cur, ok := ecs.Get(m.world, e, component.IntentComponent); ok {
		*cur = intent
	}
}

// Statuses returns the HUD view of every fighter slot, in spawn order.
func (m *Match) Statuses() []Status {
	out := make([]Status, 0, len(m.fighters))
	for _, e := range m.fighters {
		st := Status{Removed: true}
		if m.world.IsAlive(e) {
			if stats, ok := ecs.Get(m.world, e, component.FighterComponent); ok {
				st.Name = stats.Name
			}
			if t, ok := ecs.Get(m.world, e, component.TransformComponent); ok {
				st.X, st.Y = t.X, t.Y
			}
			if com, ok := ecs.Get(m.world, e, component.CombatantComponent); ok {
				st.Facing = com.Facing
				st.Percent = com.Percent
				st.Hits = com.Hits
				st.Stocks = com.Stocks
				st.Removed = com.Removed
			}
			if machine, ok := ecs.Get(m.world, e, component.StateMachineComponent); ok && machine.State != nil {
				st.State = machine.State.Name()
			}
		}
		out = append(out, st)
	}
	return out
}
