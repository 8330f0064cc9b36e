package system

import (
	"testing"

	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
	"github.com/renn8/worldshift/shift"
)

func newPickupWorld(t *testing.T, maxCharges int) (*ecs.World, *shift.Authority, *PickupCollectSystem, ecs.Entity) {
	t.Helper()

	w := ecs.NewWorld()
	authority := shift.NewAuthority(shift.Config{
		Duration: 5, ExtendedDuration: 10, Cooldown: 0.5, Gauge: 1000, MaxCharges: maxCharges,
	})
	pickups := NewPickupCollectSystem(authority)

	player := w.CreateEntity()
	mustSet(t, w, player, component.TransformComponent, component.Transform{X: 100, Y: 100})
	mustSet(t, w, player, component.PhysicsBodyComponent, component.PhysicsBody{Width: 28, Height: 36, Role: component.RolePlayer})
	mustSet(t, w, player, component.PlayerTagComponent, component.PlayerTag{})

	pickup := w.CreateEntity()
	mustSet(t, w, pickup, component.TransformComponent, component.Transform{X: 105, Y: 110})
	mustSet(t, w, pickup, component.PickupComponent, component.Pickup{
		BobAmplitude: 4, BobSpeed: 2, Width: 18, Height: 18,
	})

	return w, authority, pickups, pickup
}

func TestPickupGrantsCharge(t *testing.T) {
	w, authority, pickups, pickup := newPickupWorld(t, 3)

	pickups.Update(w)

	if got := authority.Charges(); got != 1 {
		t.Fatalf("charges = %d, want 1", got)
	}
	if w.IsAlive(pickup) {
		t.Fatal("collected pickup still in the world")
	}
}

func TestPickupStaysAtFullInventory(t *testing.T) {
	w, authority, pickups, pickup := newPickupWorld(t, 1)

	if !authority.AddCharge() {
		t.Fatal("add charge rejected")
	}

	for i := 0; i < 30; i++ {
		pickups.Update(w)
	}

	if got := authority.Charges(); got != 1 {
		t.Fatalf("charges = %d, want 1", got)
	}
	if !w.IsAlive(pickup) {
		t.Fatal("pickup consumed at full inventory")
	}
}

func TestPickupBobsAroundBase(t *testing.T) {
	w, _, pickups, pickup := newPickupWorld(t, 0)

	base, _ := ecs.Get(w, pickup, component.TransformComponent)
	minY, maxY := base.Y, base.Y
	for i := 0; i < 300; i++ {
		pickups.Update(w)
		tr, _ := ecs.Get(w, pickup, component.TransformComponent)
		if tr.Y < minY {
			minY = tr.Y
		}
		if tr.Y > maxY {
			maxY = tr.Y
		}
	}

	if maxY-minY < 4 {
		t.Fatalf("pickup barely moved: span %.2f", maxY-minY)
	}
	if minY < base.Y-5 || maxY > base.Y+5 {
		t.Fatalf("bob left its band: [%.2f, %.2f] around %.2f", minY, maxY, base.Y)
	}
}
