package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

const defaultFPS = 10.0

// FighterSpec is the YAML surface of one fighter prefab. Action timings are
// authored in animation frames at the prefab's fps and converted to seconds
// once at build time; the simulation never sees frame indices.
type FighterSpec struct {
	Name string  `yaml:"name"`
	FPS  float64 `yaml:"fps"`

	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
	FlySpeed  float64 `yaml:"fly_speed"`

	Strength  float64 `yaml:"strength"`
	HitPoints int     `yaml:"hit_points"`
	Stocks    int     `yaml:"stocks"`

	AttackFrames          int     `yaml:"attack_frames"`
	ParryWindowFrames     int     `yaml:"parry_window_frames"`
	ParryCooldown         float64 `yaml:"parry_cooldown"`
	RangedFrames          int     `yaml:"ranged_frames"`
	Ranged1SpawnFrame     int     `yaml:"ranged1_spawn_frame"`
	Ranged2SpawnFrame     int     `yaml:"ranged2_spawn_frame"`
	Ranged2IntervalFrames int     `yaml:"ranged2_interval_frames"`
	HurtShortFrames       int     `yaml:"hurt_short_frames"`
	HurtLongFrames        int     `yaml:"hurt_long_frames"`
	DefeatFrames          int     `yaml:"defeat_frames"`

	Body      BoxSpec        `yaml:"body"`
	Hurtboxes []HurtboxSpec  `yaml:"hurtboxes"`
	Hitboxes  []HitboxSpec   `yaml:"hitboxes"`
	Ranged1   ProjectileSpec `yaml:"ranged1"`
	Ranged2   ProjectileSpec `yaml:"ranged2"`

	Agent *AgentSpec `yaml:"agent"`

	Animations map[string]AnimationSpec `yaml:"animations"`

	// Overrides holds named variants of this fighter: alternate hitbox
	// grids, projectile tuning, stat tweaks. ApplyOverride merges one of
	// them over the base spec.
	Overrides map[string]OverrideSpec `yaml:"overrides"`
}

type BoxSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type HurtboxSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type HitboxSpec struct {
	State     string  `yaml:"state"`
	FromFrame int     `yaml:"from_frame"`
	ToFrame   int     `yaml:"to_frame"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	OffsetX   float64 `yaml:"offset_x"`
	OffsetY   float64 `yaml:"offset_y"`
	Percent   float64 `yaml:"percent"`
	Knockback float64 `yaml:"knockback"`
}

type ProjectileSpec struct {
	Speed     float64 `yaml:"speed"`
	Gravity   float64 `yaml:"gravity"`
	LifeTime  float64 `yaml:"life"`
	Percent   float64 `yaml:"percent"`
	Knockback bool    `yaml:"knockback"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	OffsetX   float64 `yaml:"offset_x"`
	OffsetY   float64 `yaml:"offset_y"`
}

type AgentSpec struct {
	Behavior       string  `yaml:"behavior"`
	PatrolDistance float64 `yaml:"patrol_distance"`
	SpawnClamp     float64 `yaml:"spawn_clamp"`
	AggroRadius    float64 `yaml:"aggro_radius"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
}

type AnimationSpec struct {
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
}

// OverrideSpec is a sparse variant of FighterSpec: nil scalar fields keep
// the base value, non-empty slices replace the base slice wholesale.
type OverrideSpec struct {
	MoveSpeed *float64 `yaml:"move_speed"`
	JumpSpeed *float64 `yaml:"jump_speed"`
	FlySpeed  *float64 `yaml:"fly_speed"`
	Strength  *float64 `yaml:"strength"`
	HitPoints *int     `yaml:"hit_points"`
	Stocks    *int     `yaml:"stocks"`

	Hitboxes  []HitboxSpec    `yaml:"hitboxes"`
	Hurtboxes []HurtboxSpec   `yaml:"hurtboxes"`
	Ranged1   *ProjectileSpec `yaml:"ranged1"`
	Ranged2   *ProjectileSpec `yaml:"ranged2"`
	Agent     *AgentSpec      `yaml:"agent"`
}

// LoadFighterSpec reads and decodes one fighter prefab.
func LoadFighterSpec(filename string) (*FighterSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	var spec FighterSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	if spec.FPS <= 0 {
		spec.FPS = defaultFPS
	}
	if spec.Stocks <= 0 {
		spec.Stocks = 1
	}
	return &spec, nil
}

// ApplyOverride merges the named variant over the base spec.
func (s *FighterSpec) ApplyOverride(name string) error {
	o, ok := s.Overrides[name]
	if !ok {
		return fmt.Errorf("prefabs: fighter %s has no override %q", s.Name, name)
	}
	if o.MoveSpeed != nil {
		s.MoveSpeed = *o.MoveSpeed
	}
	if o.JumpSpeed != nil {
		s.JumpSpeed = *o.JumpSpeed
	}
	if o.FlySpeed != nil {
		s.FlySpeed = *o.FlySpeed
	}
	if o.Strength != nil {
		s.Strength = *o.Strength
	}
	if o.HitPoints != nil {
		s.HitPoints = *o.HitPoints
	}
	if o.Stocks != nil {
		s.Stocks = *o.Stocks
	}
	if len(o.Hitboxes) > 0 {
		s.Hitboxes = o.Hitboxes
	}
	if len(o.Hurtboxes) > 0 {
		s.Hurtboxes = o.Hurtboxes
	}
	if o.Ranged1 != nil {
		s.Ranged1 = *o.Ranged1
	}
	if o.Ranged2 != nil {
		s.Ranged2 = *o.Ranged2
	}
	if o.Agent != nil {
		s.Agent = o.Agent
	}
	return nil
}

func (s *FighterSpec) seconds(frames int) float64 {
	return float64(frames) / s.FPS
}

// Fighter converts the prefab's tuning into the runtime stats component,
// folding all frame counts into seconds.
func (s *FighterSpec) Fighter() component.Fighter {
	return component.Fighter{
		Name:      s.Name,
		MoveSpeed: s.MoveSpeed,
		JumpSpeed: s.JumpSpeed,
		FlySpeed:  s.FlySpeed,

		AttackDuration:  s.seconds(s.AttackFrames),
		ParryWindow:     s.seconds(s.ParryWindowFrames),
		ParryCooldown:   s.ParryCooldown,
		RangedDuration:  s.seconds(s.RangedFrames),
		Ranged1SpawnAt:  s.seconds(s.Ranged1SpawnFrame),
		Ranged2SpawnAt:  s.seconds(s.Ranged2SpawnFrame),
		Ranged2Interval: s.seconds(s.Ranged2IntervalFrames),
		HurtShort:       s.seconds(s.HurtShortFrames),
		HurtLong:        s.seconds(s.HurtLongFrames),
		DefeatDuration:  s.seconds(s.DefeatFrames),

		Strength:  s.Strength,
		HitPoints: s.HitPoints,

		Ranged1: s.Ranged1.component(),
		Ranged2: s.Ranged2.component(),
	}
}

func (p ProjectileSpec) component() component.ProjectileSpec {
	return component.ProjectileSpec{
		Speed:     p.Speed,
		Gravity:   p.Gravity,
		Life:      p.LifeTime,
		Percent:   p.Percent,
		Knockback: p.Knockback,
		Width:     p.Width,
		Height:    p.Height,
		OffsetX:   p.OffsetX,
		OffsetY:   p.OffsetY,
	}
}

// HitboxComponents converts the prefab's hitbox grid, turning frame windows
// into elapsed-time windows.
func (s *FighterSpec) HitboxComponents() []component.Hitbox {
	out := make([]component.Hitbox, 0, len(s.Hitboxes))
	for _, h := range s.Hitboxes {
		out = append(out, component.Hitbox{
			Width:     h.Width,
			Height:    h.Height,
			OffsetX:   h.OffsetX,
			OffsetY:   h.OffsetY,
			State:     h.State,
			From:      s.seconds(h.FromFrame),
			To:        s.seconds(h.ToFrame),
			Percent:   h.Percent,
			Knockback: h.Knockback,
			HitSeq:    map[component.Entity]uint64{},
		})
	}
	return out
}

func (s *FighterSpec) HurtboxComponents() []component.Hurtbox {
	out := make([]component.Hurtbox, 0, len(s.Hurtboxes))
	for _, h := range s.Hurtboxes {
		out = append(out, component.Hurtbox{
			Width:   h.Width,
			Height:  h.Height,
			OffsetX: h.OffsetX,
			OffsetY: h.OffsetY,
		})
	}
	return out
}

// AgentComponent converts the prefab's agent section, anchored at the given
// spawn x.
func (s *FighterSpec) AgentComponent(spawnX float64) component.Agent {
	a := component.Agent{SpawnX: spawnX}
	if s.Agent == nil {
		return a
	}
	a.Behavior = s.Agent.Behavior
	a.PatrolDistance = s.Agent.PatrolDistance
	a.SpawnClamp = s.Agent.SpawnClamp
	a.AggroRadius = s.Agent.AggroRadius
	a.AttackRange = s.Agent.AttackRange
	a.AttackCooldown = s.Agent.AttackCooldown
	return a
}
