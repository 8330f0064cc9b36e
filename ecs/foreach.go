package ecs

import (
	"github.com/renn8/worldshift/ecs/component"
)

// ForEach visits every live entity carrying the component. The callback
// receives a copy; write changes back with Add.
func ForEach[T any](w *World, h component.ComponentHandle[T], fn func(e Entity, v T)) {
	store := w.store(h.ID(), false)
	if store == nil {
		return
	}
	// snapshot so callbacks may add/remove safely
	indices := append([]int(nil), store.denseIndices...)
	for _, idx := range indices {
		e := makeEntity(entityIndex(idx), w.entities.gens[idx-1])
		if !w.IsAlive(e) {
			continue
		}
		v := store.get(idx)
		if v == nil {
			continue
		}
		cast, ok := v.(T)
		if !ok {
			continue
		}
		fn(e, cast)
	}
}

// ForEach2 visits entities carrying both components.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(e Entity, a A, b B)) {
	ForEach(w, ha, func(e Entity, a A) {
		b, ok := Get(w, e, hb)
		if !ok {
			return
		}
		fn(e, a, b)
	})
}

// ForEach3 visits entities carrying all three components.
func ForEach3[A, B, C any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], hc component.ComponentHandle[C], fn func(e Entity, a A, b B, c C)) {
	ForEach2(w, ha, hb, func(e Entity, a A, b B) {
		c, ok := Get(w, e, hc)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}
