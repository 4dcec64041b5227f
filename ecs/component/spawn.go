package component

// SpawnPoint is a fighter's designated respawn position in canvas space.
type SpawnPoint struct {
	X float64
	Y float64
}

var SpawnPointComponent = NewComponent[SpawnPoint]()

// RespawnRequest marks a fighter for repositioning to its spawn point on the
// next terminal pass.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
