package ecs

// entityStore tracks slot generations and a free list.
type entityStore struct {
	nextID uint32
	gens   []uint32
	free   []uint32
}

func (s *entityStore) create() Entity {
	var id uint32
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.nextID++
		id = s.nextID
	}
	for uint32(len(s.gens)) < id {
		s.gens = append(s.gens, 0)
	}
	return makeEntity(id, s.gens[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	id := e.id()
	if id == 0 || id > uint32(len(s.gens)) {
		return false
	}
	if s.gens[id-1] != e.generation() {
		return false
	}
	s.gens[id-1]++
	s.free = append(s.free, id)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || id > uint32(len(s.gens)) {
		return false
	}
	return s.gens[id-1] == e.generation()
}
