package ecs

import (
	"github.com/renn8/worldshift/ecs/component"
)

// System updates a world once per fixed simulation step.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, and the system update order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*sparseSet
	systems  []System
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*sparseSet)}
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity kills an entity and drops all of its components. Physics
// shapes attached to the entity are released by the physics system on its
// next update.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, store := range w.stores {
		store.remove(int(e.index()))
	}
	return true
}

func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns all live entities.
func (w *World) Entities() []Entity {
	return w.entities.all()
}

func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once in registration order.
func (w *World) Update() {
	for _, s := range w.systems {
		s.Update(w)
	}
}

// Query returns live entities that carry every given component kind,
// iterating the smallest store.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	smallest := w.stores[kinds[0].ID()]
	for _, k := range kinds[1:] {
		store := w.stores[k.ID()]
		if store.len() < smallest.len() {
			smallest = store
		}
	}
	if smallest.len() == 0 {
		return nil
	}

	out := make([]Entity, 0, smallest.len())
outer:
	for _, idx := range smallest.denseIndices {
		for _, k := range kinds {
			if !w.stores[k.ID()].has(idx) {
				continue outer
			}
		}
		e := makeEntity(entityIndex(idx), w.entities.gens[idx-1])
		if w.IsAlive(e) {
			out = append(out, e)
		}
	}
	return out
}

// First returns an arbitrary live entity carrying the kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	store := w.stores[kind.ID()]
	if store == nil {
		return 0, false
	}
	for _, idx := range store.denseIndices {
		e := makeEntity(entityIndex(idx), w.entities.gens[idx-1])
		if w.IsAlive(e) {
			return e, true
		}
	}
	return 0, false
}

func (w *World) store(id component.ComponentID, create bool) *sparseSet {
	if s, ok := w.stores[id]; ok {
		return s
	}
	if !create {
		return nil
	}
	s := &sparseSet{}
	w.stores[id] = s
	return s
}

// Add attaches (or replaces) a component value on a live entity.
func Add[T any](w *World, e Entity, h component.ComponentHandle[T], v T) error {
	if !h.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(h.ID(), true).set(int(e.index()), v)
	return nil
}

// Get returns the component value for a live entity. Components are
// values; mutate a copy and write it back with Add.
func Get[T any](w *World, e Entity, h component.ComponentHandle[T]) (T, bool) {
	var zero T
	if !w.IsAlive(e) {
		return zero, false
	}
	store := w.store(h.ID(), false)
	if store == nil {
		return zero, false
	}
	v := store.get(int(e.index()))
	if v == nil {
		return zero, false
	}
	cast, ok := v.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

func Has[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	store := w.store(h.ID(), false)
	return store != nil && store.has(int(e.index()))
}

func Remove[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	store := w.store(h.ID(), false)
	if store == nil {
		return false
	}
	return store.remove(int(e.index()))
}
