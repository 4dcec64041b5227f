package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive = errors.New("ecs: entity not alive")
	ErrNilComponent   = errors.New("ecs: component is nil")
)

// ID identifies a component kind. IDs are allocated once at package init via
// NewComponent and are dense enough to index a slice of stores.
type ID uint32

var nextID atomic.Uint32

// Handle is a typed component kind. Declaring one as a package-level var
// registers the component:
//
//	var TransformComponent = component.NewComponent[Transform]()
type Handle[T any] struct {
	id ID
}

func NewComponent[T any]() Handle[T] {
	return Handle[T]{id: ID(nextID.Add(1))}
}

func (h Handle[T]) ID() ID {
	return h.id
}

func (h Handle[T]) Valid() bool {
	return h.id != 0
}
