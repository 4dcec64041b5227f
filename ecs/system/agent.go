package system

import (
	"log"

	"github.com/CosmicSlothOracle/HeMilch/ecs"
	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

const (
	// ledgeLookahead is how far ahead of the feet the ground is probed
	// before allowing a movement key.
	ledgeLookahead = 28.0
	// ledgeDropDepth is how far below the foot line the probe scans.
	ledgeDropDepth = 20.0

	patrolTolerance = 6.0
)

// AgentSystem produces an Intent for every agent-controlled fighter. Its
// output is shaped exactly like human input: held keys plus rising edges.
// Whatever a behavior proposes passes through two safety filters before it
// reaches the intent: the spawn clamp and the ledge guard.
type AgentSystem struct {
	arena    *Arena
	registry BehaviorRegistry

	behaviors map[ecs.Entity]Behavior
	lastKeys  map[ecs.Entity]map[string]bool
}

func NewAgentSystem(arena *Arena, registry BehaviorRegistry) *AgentSystem {
	return &AgentSystem{
		arena:     arena,
		registry:  registry,
		behaviors: map[ecs.Entity]Behavior{},
		lastKeys:  map[ecs.Entity]map[string]bool{},
	}
}

func (s *AgentSystem) Update(w *ecs.World) {
	dt := s.arena.Dt
	for _, e := range w.Query(
		component.AgentTagComponent.ID(),
		component.AgentComponent.ID(),
		component.IntentComponent.ID(),
		component.TransformComponent.ID(),
		component.CombatantComponent.ID(),
	) {
		agent, _ := ecs.Get(w, e, component.AgentComponent)
		intent, _ := ecs.Get(w, e, component.IntentComponent)

		// Reset our own keys first so nothing sticks from last tick.
		intent.Clear()

		if agent.CooldownLeft > 0 {
			agent.CooldownLeft -= dt
		}

		com, _ := ecs.Get(w, e, component.CombatantComponent)
		if machine, ok := ecs.Get(w, e, component.StateMachineComponent); ok && machine.State == stateDefeat {
			continue
		}
		if com.Freeze > 0 {
			continue
		}

		ctx := s.buildContext(w, e, dt)
		keys := s.decide(w, e, agent, ctx)
		keys = s.applyFilters(agent, ctx, keys)
		s.mergeIntent(e, agent, intent, keys)
	}
}

// decide runs the named behavior, or the built-in patrol-and-aggro logic
// when none is configured. A behavior fault is swallowed and reads as "no
// intent this tick".
func (s *AgentSystem) decide(w *ecs.World, e ecs.Entity, agent *component.Agent, ctx *BehaviorContext) (keys map[string]bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("agent: behavior %q fault: %v", agent.Behavior, r)
			keys = nil
		}
	}()

	if agent.Behavior == "" {
		return s.builtinStep(agent, ctx)
	}

	b, ok := s.behaviors[e]
	if !ok {
		var err error
		b, err = s.registry.Resolve(agent.Behavior, nil)
		if err != nil {
			log.Printf("agent: %v, falling back to built-in controller", err)
			b = nil
		}
		s.behaviors[e] = b
	}
	if b == nil {
		return s.builtinStep(agent, ctx)
	}
	return b.Step(ctx)
}

// builtinStep is the default patrol-and-aggro controller: oscillate around
// the spawn anchor, switch to aggro when the opponent is inside the radius
// with unobstructed line of sight, close in and attack on cooldown.
func (s *AgentSystem) builtinStep(agent *component.Agent, ctx *BehaviorContext) map[string]bool {
	keys := map[string]bool{}

	inAggro := false
	if ctx.HasOpponent {
		dist := absf(ctx.Opponent.X - ctx.Self.X)
		inAggro = dist <= agent.AggroRadius && ctx.LOSClear
	}

	if !inAggro {
		if agent.Mode != component.AgentPatrol {
			agent.Mode = component.AgentPatrol
			agent.TargetX = agent.SpawnX + agent.PatrolDistance
		}
		if agent.TargetX == 0 {
			agent.TargetX = agent.SpawnX + agent.PatrolDistance
		}
		// Swap the patrol target when close enough to the current one.
		if agent.TargetX > agent.SpawnX && ctx.Self.X >= agent.SpawnX+agent.PatrolDistance-patrolTolerance {
			agent.TargetX = agent.SpawnX
		} else if agent.TargetX <= agent.SpawnX && ctx.Self.X <= agent.SpawnX+patrolTolerance {
			agent.TargetX = agent.SpawnX + agent.PatrolDistance
		}
		if ctx.Self.X < agent.TargetX-patrolTolerance {
			keys[KeyRight] = true
		} else if ctx.Self.X > agent.TargetX+patrolTolerance {
			keys[KeyLeft] = true
		}
		return keys
	}

	agent.Mode = component.AgentAggro
	dx := ctx.Opponent.X - ctx.Self.X
	if absf(dx) > agent.AttackRange {
		if dx > 0 {
			keys[KeyRight] = true
		} else {
			keys[KeyLeft] = true
		}
	} else if agent.CooldownLeft <= 0 {
		keys[KeyAttack1] = true
	}
	return keys
}

// applyFilters re-applies the controller's two safety rules to whatever the
// behavior proposed: movement never exceeds spawnX ± spawnClamp, and a
// movement key is suppressed when the ground ahead at the lookahead point is
// missing. There is deliberately no jump-to-recover for the ledge case.
func (s *AgentSystem) applyFilters(agent *component.Agent, ctx *BehaviorContext, keys map[string]bool) map[string]bool {
	if len(keys) == 0 {
		return keys
	}
	if agent.SpawnClamp > 0 {
		if keys[KeyRight] && ctx.Self.X >= agent.SpawnX+agent.SpawnClamp {
			delete(keys, KeyRight)
		}
		if keys[KeyLeft] && ctx.Self.X <= agent.SpawnX-agent.SpawnClamp {
			delete(keys, KeyLeft)
		}
	}
	if ctx.Self.Grounded {
		if keys[KeyRight] && !s.groundAhead(ctx, 1) {
			delete(keys, KeyRight)
		}
		if keys[KeyLeft] && !s.groundAhead(ctx, -1) {
			delete(keys, KeyLeft)
		}
	}
	return keys
}

func (s *AgentSystem) groundAhead(ctx *BehaviorContext, dir float64) bool {
	if ctx.FirstSolidBelow == nil {
		return true
	}
	footY := ctx.Self.Y + ctx.Self.Height
	x := ctx.Self.X + dir*ledgeLookahead
	_, ok := ctx.FirstSolidBelow(x, footY-2, footY+ledgeDropDepth)
	return ok
}

// mergeIntent writes the filtered keys into the intent, deriving rising
// edges against the previous tick, and arms the attack cooldown whenever an
// attack edge fires.
func (s *AgentSystem) mergeIntent(e ecs.Entity, agent *component.Agent, intent *component.Intent, keys map[string]bool) {
	last := s.lastKeys[e]
	edge := func(key string) bool { return keys[key] && !last[key] }

	intent.Left = keys[KeyLeft]
	intent.Right = keys[KeyRight]
	intent.Up = keys[KeyUp]
	intent.Down = keys[KeyDown]
	intent.Dodge = keys[KeyDodge]
	intent.Attack1 = keys[KeyAttack1]
	intent.Attack2 = keys[KeyAttack2]
	intent.Parry = keys[KeyParry]
	intent.Ranged1 = keys[KeyRanged1]
	intent.Ranged2 = keys[KeyRanged2]

	intent.UpPressed = edge(KeyUp)
	intent.Attack1Pressed = edge(KeyAttack1)
	intent.Attack2Pressed = edge(KeyAttack2)
	intent.ParryPressed = edge(KeyParry)
	intent.Ranged1Pressed = edge(KeyRanged1)
	intent.Ranged2Pressed = edge(KeyRanged2)

	if intent.Attack1Pressed || intent.Attack2Pressed || intent.Ranged1Pressed || intent.Ranged2Pressed {
		agent.CooldownLeft = agent.AttackCooldown
	}

	if keys == nil {
		keys = map[string]bool{}
	}
	s.lastKeys[e] = keys
}

// buildContext snapshots the world slice a behavior may see. The line of
// sight probe runs here, shielded so a surface fault can never reach the
// frame loop.
func (s *AgentSystem) buildContext(w *ecs.World, self ecs.Entity, dt float64) *BehaviorContext {
	ctx := &BehaviorContext{Dt: dt}
	if s.arena != nil {
		ctx.CanvasW = s.arena.Width
		ctx.CanvasH = s.arena.Height
		ctx.Solid = s.arena.Solid
		ctx.FirstSolidBelow = func(x, y0, y1 float64) (float64, bool) {
			if s.arena.Surface == nil {
				return 0, false
			}
			return s.arena.Surface.FirstSolidBelow(x, y0, y1)
		}
	}

	ctx.Self = s.fighterView(w, self)
	if agent, ok := ecs.Get(w, self, component.AgentComponent); ok {
		ctx.Agent = *agent
	}

	if opp, ok := s.findOpponent(w, self); ok {
		ctx.Opponent = s.fighterView(w, opp)
		ctx.HasOpponent = true
		ctx.LOSClear = s.lineOfSight(ctx.Self, ctx.Opponent)
		if agent, ok := ecs.Get(w, self, component.AgentComponent); ok {
			agent.LOSClear = ctx.LOSClear
		}
	}

	ecs.ForEach2(w, component.ProjectileComponent, component.TransformComponent, func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		if component.Entity(self) == p.Owner {
			return
		}
		ctx.Projectiles = append(ctx.Projectiles, ProjectileView{X: t.X, Y: t.Y, VX: p.VX, VY: p.VY})
	})

	return ctx
}

func (s *AgentSystem) fighterView(w *ecs.World, e ecs.Entity) FighterView {
	v := FighterView{Facing: 1}
	if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
		v.X = t.X
		v.Y = t.Y
	}
	if vel, ok := ecs.Get(w, e, component.VelocityComponent); ok {
		v.VX = vel.X
		v.VY = vel.Y
	}
	if com, ok := ecs.Get(w, e, component.CombatantComponent); ok {
		v.Facing = com.Facing
		v.Percent = com.Percent
		v.Grounded = com.Grounded
	}
	if body, ok := ecs.Get(w, e, component.BodyComponent); ok {
		v.Width = body.Width
		v.Height = body.Height
	}
	if machine, ok := ecs.Get(w, e, component.StateMachineComponent); ok && machine.State != nil {
		v.State = machine.State.Name()
	}
	return v
}

// findOpponent picks the nearest other combatant that can still act.
func (s *AgentSystem) findOpponent(w *ecs.World, self ecs.Entity) (ecs.Entity, bool) {
	st, ok := ecs.Get(w, self, component.TransformComponent)
	if !ok {
		return 0, false
	}
	var best ecs.Entity
	bestDist := 0.0
	found := false
	for _, e := range w.Query(component.CombatantComponent.ID(), component.TransformComponent.ID()) {
		if e == self {
			continue
		}
		if machine, ok := ecs.Get(w, e, component.StateMachineComponent); ok && machine.State == stateDefeat {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)
		d := absf(t.X-st.X) + absf(t.Y-st.Y)
		if !found || d < bestDist {
			best = e
			bestDist = d
			found = true
		}
	}
	return best, found
}

// lineOfSight steps the solidity predicate along the segment between the
// two fighters' chest height.
func (s *AgentSystem) lineOfSight(self, opp FighterView) (clear bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("agent: line-of-sight probe fault: %v", r)
			clear = false
		}
	}()
	if s.arena == nil || s.arena.Surface == nil {
		return true
	}
	y0 := self.Y + self.Height/2
	y1 := opp.Y + opp.Height/2
	return s.arena.Surface.SegmentClear(self.X, y0, opp.X, y1)
}
