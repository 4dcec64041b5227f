package ecs

import "github.com/CosmicSlothOracle/HeMilch/ecs/component"

// Components are stored boxed as *T so Get hands back a pointer systems can
// mutate in place without a copy-back dance.

func Add[T any](w *World, e Entity, h component.Handle[T], value T) error {
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(h.ID()).Set(e, &value)
	return nil
}

func Remove[T any](w *World, e Entity, h component.Handle[T]) bool {
	return w.store(h.ID()).Remove(e)
}

func Has[T any](w *World, e Entity, h component.Handle[T]) bool {
	return w.store(h.ID()).Has(e)
}

func Get[T any](w *World, e Entity, h component.Handle[T]) (*T, bool) {
	v := w.store(h.ID()).Get(e)
	if v == nil {
		return nil, false
	}
	cast, ok := v.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// ForEach visits every entity holding h. The value pointer is live storage;
// mutations stick without re-adding.
func ForEach[T any](w *World, h component.Handle[T], fn func(e Entity, v *T)) {
	s := w.store(h.ID())
	ents := append([]Entity(nil), s.Entities()...)
	for _, e := range ents {
		if v, ok := Get(w, e, h); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits every entity holding both components.
func ForEach2[A, B any](w *World, ha component.Handle[A], hb component.Handle[B], fn func(e Entity, a *A, b *B)) {
	sa := w.store(ha.ID())
	ents := append([]Entity(nil), sa.Entities()...)
	for _, e := range ents {
		a, ok := Get(w, e, ha)
		if !ok {
			continue
		}
		b, ok := Get(w, e, hb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}
