package ecs

// sparseSet is cache-friendly component storage keyed by entity index.
// Values are stored as `any`; the generic accessors in world.go do the
// casting.
type sparseSet struct {
	denseIndices []int
	denseValues  []any
	sparse       []int
}

func (s *sparseSet) has(idx int) bool {
	if s == nil || idx <= 0 || idx-1 >= len(s.sparse) {
		return false
	}
	d := s.sparse[idx-1]
	return d >= 0 && d < len(s.denseIndices) && s.denseIndices[d] == idx
}

func (s *sparseSet) get(idx int) any {
	if !s.has(idx) {
		return nil
	}
	return s.denseValues[s.sparse[idx-1]]
}

func (s *sparseSet) set(idx int, v any) {
	if s == nil || idx <= 0 {
		return
	}
	for idx-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(idx) {
		s.denseValues[s.sparse[idx-1]] = v
		return
	}
	s.denseIndices = append(s.denseIndices, idx)
	s.denseValues = append(s.denseValues, v)
	s.sparse[idx-1] = len(s.denseIndices) - 1
}

func (s *sparseSet) remove(idx int) bool {
	if !s.has(idx) {
		return false
	}
	d := s.sparse[idx-1]
	last := len(s.denseIndices) - 1
	lastIdx := s.denseIndices[last]

	s.denseIndices[d] = lastIdx
	s.denseValues[d] = s.denseValues[last]
	s.sparse[lastIdx-1] = d

	s.denseIndices = s.denseIndices[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[idx-1] = -1
	return true
}

func (s *sparseSet) len() int {
	if s == nil {
		return 0
	}
	return len(s.denseIndices)
}
