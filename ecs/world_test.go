package ecs

import (
	"testing"

	"github.com/renn8/worldshift/ecs/component"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for a live entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if len(w.Entities()) != c.create-1 {
					t.Fatalf("expected %d live entities, got %d", c.create-1, len(w.Entities()))
				}
			}
		})
	}
}

func TestRecycledIndexGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	e1 := w.CreateEntity()
	if !w.DestroyEntity(e1) {
		t.Fatalf("destroy failed")
	}
	e2 := w.CreateEntity()
	if e1 == e2 {
		t.Fatalf("recycled entity handle must differ: %v == %v", e1, e2)
	}
	if w.IsAlive(e1) {
		t.Fatalf("stale handle reported alive")
	}
	if !w.IsAlive(e2) {
		t.Fatalf("recycled handle reported dead")
	}
}

func TestComponentsAndQueries(t *testing.T) {
	w := NewWorld()

	hInt := component.NewComponent[int]()
	hStr := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	if err := Add(w, e1, hInt, 10); err != nil {
		t.Fatalf("add int: %v", err)
	}
	if err := Add(w, e1, hStr, "a"); err != nil {
		t.Fatalf("add str: %v", err)
	}
	if err := Add(w, e2, hStr, "b"); err != nil {
		t.Fatalf("add str: %v", err)
	}

	if v, ok := Get(w, e1, hInt); !ok || v != 10 {
		t.Fatalf("Get int = %v %v, want 10 true", v, ok)
	}
	if Has(w, e2, hInt) {
		t.Fatalf("e2 should not carry int")
	}

	both := w.Query(hInt.Kind(), hStr.Kind())
	if len(both) != 1 || both[0] != e1 {
		t.Fatalf("query both = %v, want [e1]", both)
	}
	strs := w.Query(hStr.Kind())
	if len(strs) != 2 {
		t.Fatalf("query str = %v, want two entities", strs)
	}

	if !Remove(w, e1, hInt) {
		t.Fatalf("remove should report true")
	}
	if Remove(w, e1, hInt) {
		t.Fatalf("second remove should report false")
	}
	if len(w.Query(hInt.Kind(), hStr.Kind())) != 0 {
		t.Fatalf("query should be empty after removal")
	}
}

func TestAddToDeadEntityFails(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := w.CreateEntity()
	w.DestroyEntity(e)

	if err := Add(w, e, h, 1); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if _, ok := Get(w, e, h); ok {
		t.Fatalf("Get on dead entity should miss")
	}
}

func TestDestroyDropsComponents(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e := w.CreateEntity()
	if err := Add(w, e, h, 7); err != nil {
		t.Fatalf("add: %v", err)
	}
	w.DestroyEntity(e)

	// The recycled index must not inherit the old component.
	e2 := w.CreateEntity()
	if _, ok := Get(w, e2, h); ok {
		t.Fatalf("recycled entity inherited a component")
	}
}

func TestForEach(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "visits_only_holders",
			run: func(t *testing.T) {
				w := NewWorld()
				h := component.NewComponent[int]()
				e1 := w.CreateEntity()
				e2 := w.CreateEntity()
				e3 := w.CreateEntity()
				_ = Add(w, e1, h, 1)
				_ = Add(w, e3, h, 3)

				seen := map[Entity]int{}
				ForEach(w, h, func(e Entity, v int) { seen[e] = v })

				if len(seen) != 2 || seen[e1] != 1 || seen[e3] != 3 {
					t.Fatalf("seen = %v", seen)
				}
				if _, ok := seen[e2]; ok {
					t.Fatalf("did not expect e2")
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				h := component.NewComponent[int]()
				e := w.CreateEntity()
				_ = Add(w, e, h, 1)
				w.DestroyEntity(e)

				count := 0
				ForEach(w, h, func(Entity, int) { count++ })
				if count != 0 {
					t.Fatalf("visited %d dead entities", count)
				}
			},
		},
		{
			name: "missing_store_is_empty",
			run: func(t *testing.T) {
				w := NewWorld()
				h := component.NewComponent[int]()
				count := 0
				ForEach(w, h, func(Entity, int) { count++ })
				if count != 0 {
					t.Fatalf("visited %d on missing store", count)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestForEach3Intersection(t *testing.T) {
	w := NewWorld()
	ha := component.NewComponent[int]()
	hb := component.NewComponent[int]()
	hc := component.NewComponent[int]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	_ = Add(w, e1, ha, 1)
	_ = Add(w, e2, ha, 2)
	_ = Add(w, e2, hb, 3)
	_ = Add(w, e2, hc, 5)
	_ = Add(w, e3, hb, 4)

	var res []Entity
	ForEach3(w, ha, hb, hc, func(e Entity, _, _, _ int) { res = append(res, e) })
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("expected only e2, got %v", res)
	}
}
