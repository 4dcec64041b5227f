package ecs

import "github.com/CosmicSlothOracle/HeMilch/ecs/component"

// World owns entities, per-kind component stores, and the event queue.
// A World is single-owner: exactly one goroutine drives it.
type World struct {
	entities entityStore
	stores   map[component.ID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: map[component.ID]*SparseSet{}}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	return &w.events
}

func (w *World) store(id component.ID) *SparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// Query returns the entities holding every listed component kind, iterating
// the smallest store.
func (w *World) Query(ids ...component.ID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	smallest := w.store(ids[0])
	for _, id := range ids[1:] {
		if s := w.store(id); s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.Len())
outer:
	for _, e := range smallest.Entities() {
		for _, id := range ids {
			if !w.store(id).Has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns any one entity holding the component kind.
func (w *World) First(id component.ID) (Entity, bool) {
	s := w.store(id)
	if s.Len() == 0 {
		return 0, false
	}
	return s.Entities()[0], true
}
