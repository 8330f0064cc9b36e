package ecs

import "strconv"

// Entity is an opaque handle packing a 32-bit index and a generation so a
// recycled index can't be confused with its previous owner.
type Entity uint64

type entityIndex uint32
type generation uint32

const entityIndexBits = 32

func makeEntity(idx entityIndex, gen generation) Entity {
	return Entity(uint64(gen)<<entityIndexBits | uint64(idx))
}

func (e Entity) index() entityIndex {
	return entityIndex(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIndexBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e.index() > 0
}

// entityStore tracks generations and recycles freed indices.
type entityStore struct {
	next entityIndex
	gens []generation
	free []entityIndex
}

func (s *entityStore) create() Entity {
	var idx entityIndex
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.next++
		idx = s.next
		for int(idx) > len(s.gens) {
			s.gens = append(s.gens, 0)
		}
	}
	return makeEntity(idx, s.gens[idx-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.index()
	s.gens[idx-1]++
	s.free = append(s.free, idx)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	idx := e.index()
	if idx <= 0 || int(idx) > len(s.gens) {
		return false
	}
	return s.gens[idx-1] == e.generation()
}

func (s *entityStore) all() []Entity {
	freed := make(map[entityIndex]struct{}, len(s.free))
	for _, idx := range s.free {
		freed[idx] = struct{}{}
	}
	out := make([]Entity, 0, int(s.next))
	for i := entityIndex(1); i <= s.next; i++ {
		if _, dead := freed[i]; dead {
			continue
		}
		out = append(out, makeEntity(i, s.gens[i-1]))
	}
	return out
}
