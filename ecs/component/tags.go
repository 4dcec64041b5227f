package component

// Tag components carry no data; presence is the signal.

type PrimaryTag struct{}

// PrimaryTagComponent marks the primary (stock-respawning) fighter.
var PrimaryTagComponent = NewComponent[PrimaryTag]()

type AgentTag struct{}

// AgentTagComponent marks agent-controlled fighters.
var AgentTagComponent = NewComponent[AgentTag]()
