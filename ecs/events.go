package ecs

// Event is a transient world event, drained by interested systems within the
// same tick and dropped at tick end.
type Event struct {
	Type string
	Data any
}

const (
	// EventDefeated fires when a combatant's defeat timeline completes.
	EventDefeated = "defeated"
	// EventFellOut fires when a combatant crosses the fall-out threshold.
	EventFellOut = "fell_out"
	// EventRespawned fires after a stock-consuming respawn.
	EventRespawned = "respawned"
)

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all pending events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Pending returns the events without clearing them.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
