package component

// AgentMode is the built-in controller's coarse mode.
type AgentMode int

const (
	AgentPatrol AgentMode = iota
	AgentAggro
)

// Agent holds the autonomous controller's state for one fighter. It produces
// an Intent each tick; it never moves the fighter directly.
type Agent struct {
	// Behavior names a registry entry; empty selects the built-in
	// patrol-and-aggro logic.
	Behavior string

	SpawnX         float64
	PatrolDistance float64
	// SpawnClamp bounds all movement to SpawnX ± SpawnClamp.
	SpawnClamp float64

	AggroRadius float64
	AttackRange float64

	AttackCooldown float64
	CooldownLeft   float64

	Mode    AgentMode
	TargetX float64

	// LOSClear caches the last line-of-sight probe result for debug views.
	LOSClear bool
}

var AgentComponent = NewComponent[Agent]()
