package component

// ProjectileSpec describes the projectile fired by one ranged action.
// Loaded from the fighter prefab.
type ProjectileSpec struct {
	Speed     float64
	Gravity   float64
	Life      float64
	Percent   float64
	Knockback bool
	Width     float64
	Height    float64
	OffsetX   float64
	OffsetY   float64
}

// Fighter holds a fighter's tuning values, loaded once from its prefab and
// never mutated at runtime. Durations and spawn offsets are in seconds;
// "spawn at" values are pre-converted from animation frame indices at load.
type Fighter struct {
	Name string

	MoveSpeed float64
	JumpSpeed float64
	FlySpeed  float64

	AttackDuration  float64
	ParryWindow     float64
	ParryCooldown   float64
	RangedDuration  float64
	Ranged1SpawnAt  float64
	Ranged2SpawnAt  float64
	Ranged2Interval float64
	HurtShort       float64
	HurtLong        float64
	DefeatDuration  float64

	// Strength scales the percent-proportional knockback term.
	Strength float64

	// HitPoints > 0 selects the fixed-HP matchup; zero selects percent mode
	// where only fall-out costs a stock.
	HitPoints int

	Ranged1 ProjectileSpec
	Ranged2 ProjectileSpec
}

var FighterComponent = NewComponent[Fighter]()
