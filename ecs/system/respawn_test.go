package system

import (
	"math"
	"testing"

	"github.com/renn8/worldshift/common"
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
	"github.com/renn8/worldshift/shift"
)

func TestRespawnReturnsToLastSafeSpotAndResetsShift(t *testing.T) {
	w := ecs.NewWorld()
	physics := NewPhysicsSystem(DefaultFloorRoles(), false)
	authority := shift.NewAuthority(shift.Config{
		Duration: 5, ExtendedDuration: 10, Cooldown: 0.5, Gauge: 1000, MaxCharges: 3,
	})
	respawn := NewRespawnSystem(authority)

	floor := w.CreateEntity()
	mustSet(t, w, floor, component.TransformComponent, component.Transform{X: 0, Y: 240})
	mustSet(t, w, floor, component.PhysicsBodyComponent, component.PhysicsBody{
		Width: 400, Height: 40, Role: component.RoleSolid, Static: true,
	})

	player := w.CreateEntity()
	mustSet(t, w, player, component.TransformComponent, component.Transform{X: 100, Y: 200})
	mustSet(t, w, player, component.PhysicsBodyComponent, component.PhysicsBody{
		Width: 28, Height: 36, Mass: 1, Friction: 0.6, Role: component.RolePlayer,
	})
	mustSet(t, w, player, component.PlayerTagComponent, component.PlayerTag{})
	mustSet(t, w, player, component.GroundContactComponent, component.GroundContact{})
	mustSet(t, w, player, component.SafeRespawnComponent, component.SafeRespawn{})

	step := func(n int) {
		for i := 0; i < n; i++ {
			physics.Update(w)
			authority.Update(common.Dt)
			respawn.Update(w)
		}
	}

	// land and record a safe spot
	step(120)
	safe, _ := ecs.Get(w, player, component.SafeRespawnComponent)
	if !safe.Initialized {
		t.Fatal("no safe spot recorded while standing")
	}

	// put the run into a dirty state, knock the player into the air,
	// then get hurt
	if !authority.AddCharge() {
		t.Fatal("add charge rejected")
	}
	if !authority.RequestManualShift() {
		t.Fatal("manual shift rejected")
	}
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent)
	body.Body.SetPosition(cpCenter(300, 60, 28, 36))
	// long enough for the grounded flag to reconcile mid-air
	step(reconcileCadence + 5)

	recorded, _ := ecs.Get(w, player, component.SafeRespawnComponent)
	mustSet(t, w, player, component.RespawnRequestComponent, component.RespawnRequest{})
	step(1)

	if ecs.Has(w, player, component.RespawnRequestComponent) {
		t.Fatal("respawn request not consumed")
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	if math.Abs(tr.X-recorded.X) > 12 || math.Abs(tr.Y-recorded.Y) > 12 {
		t.Fatalf("respawned at (%.1f, %.1f), want near (%.1f, %.1f)", tr.X, tr.Y, recorded.X, recorded.Y)
	}
	if authority.Mode() != shift.Calm {
		t.Fatalf("mode after respawn = %v, want calm", authority.Mode())
	}
	if authority.Charges() != 0 {
		t.Fatalf("charges after respawn = %d, want 0", authority.Charges())
	}
}
