package system

import (
	"testing"

	"github.com/renn8/worldshift/common"
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
	"github.com/renn8/worldshift/shift"
)

type crumbleRig struct {
	w         *ecs.World
	physics   *PhysicsSystem
	authority *shift.Authority
	crumble   *CrumbleSystem
	plat      ecs.Entity
	player    ecs.Entity
}

func newCrumbleRig(t *testing.T, singleUse bool) *crumbleRig {
	t.Helper()

	w := ecs.NewWorld()
	physics := NewPhysicsSystem(DefaultFloorRoles(), false)
	authority := shift.NewAuthority(shift.Config{
		Duration: 1, ExtendedDuration: 2, Cooldown: 0.2, Gauge: 1000, MaxCharges: 3,
	})
	crumble := NewCrumbleSystem(authority, physics)

	plat := w.CreateEntity()
	mustSet(t, w, plat, component.TransformComponent, component.Transform{X: 100, Y: 200})
	mustSet(t, w, plat, component.PhysicsBodyComponent, component.PhysicsBody{
		Width: 40, Height: 40, Role: component.RoleCrumble, Static: true,
	})
	mustSet(t, w, plat, component.CrumblePlatformComponent, component.CrumblePlatform{Delay: 0.2, SingleUse: singleUse})
	mustSet(t, w, plat, component.CrumbleStateComponent, component.CrumbleState{})

	// catch floor well below so the player has somewhere to land after
	// the platform gives way
	catcher := w.CreateEntity()
	mustSet(t, w, catcher, component.TransformComponent, component.Transform{X: 0, Y: 500})
	mustSet(t, w, catcher, component.PhysicsBodyComponent, component.PhysicsBody{
		Width: 400, Height: 40, Role: component.RoleSolid, Static: true,
	})

	player := w.CreateEntity()
	mustSet(t, w, player, component.TransformComponent, component.Transform{X: 106, Y: 160})
	mustSet(t, w, player, component.PhysicsBodyComponent, component.PhysicsBody{
		Width: 28, Height: 36, Mass: 1, Friction: 0.6, Role: component.RolePlayer,
	})
	mustSet(t, w, player, component.GroundContactComponent, component.GroundContact{})

	return &crumbleRig{w: w, physics: physics, authority: authority, crumble: crumble, plat: plat, player: player}
}

func mustSet[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v T) {
	t.Helper()
	if err := ecs.Add(w, e, h, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func (r *crumbleRig) step(n int) {
	for i := 0; i < n; i++ {
		r.physics.Update(r.w)
		r.crumble.Update(r.w)
		r.authority.Update(common.Dt)
	}
}

func (r *crumbleRig) phase(t *testing.T) component.CrumblePhase {
	t.Helper()
	state, ok := ecs.Get(r.w, r.plat, component.CrumbleStateComponent)
	if !ok {
		t.Fatal("crumble state missing")
	}
	return state.Phase
}

// stepUntil advances until the platform reaches the phase, failing after
// max steps.
func (r *crumbleRig) stepUntil(t *testing.T, want component.CrumblePhase, max int) {
	t.Helper()
	for i := 0; i < max; i++ {
		if r.phase(t) == want {
			return
		}
		r.step(1)
	}
	t.Fatalf("phase = %v after %d steps, want %v", r.phase(t), max, want)
}

func TestCrumbleCycle(t *testing.T) {
	r := newCrumbleRig(t, false)

	// land on the platform and trigger the warning
	r.stepUntil(t, component.CrumbleWarned, 120)

	// warning delay runs out
	r.stepUntil(t, component.CrumbleCollapsed, int(0.2/common.Dt)+10)
	if !r.physics.ShapeDetached(r.plat) {
		t.Fatal("collapsed platform still collides")
	}

	// entering the altered world reforms it synchronously
	if !r.authority.RequestManualShift() {
		t.Fatal("manual shift rejected")
	}
	if got := r.phase(t); got != component.CrumbleStable {
		t.Fatalf("phase right after the entered broadcast = %v, want stable", got)
	}
	if r.physics.ShapeDetached(r.plat) {
		t.Fatal("reformed platform has no collision")
	}
}

func TestCrumbleSingleUseStaysCollapsed(t *testing.T) {
	r := newCrumbleRig(t, true)

	r.stepUntil(t, component.CrumbleWarned, 120)
	r.stepUntil(t, component.CrumbleCollapsed, int(0.2/common.Dt)+10)

	state, _ := ecs.Get(r.w, r.plat, component.CrumbleStateComponent)
	if !state.Used {
		t.Fatal("single-use platform not marked used")
	}

	// repeated entered broadcasts must all be no-ops for this platform
	for i := 0; i < 3; i++ {
		if !r.authority.RequestManualShift() {
			t.Fatalf("manual shift %d rejected", i)
		}
		if got := r.phase(t); got != component.CrumbleCollapsed {
			t.Fatalf("single-use platform reformed on broadcast %d, phase = %v", i, got)
		}
		// ride the episode and cooldown out before the next shift
		r.step(int(1.3/common.Dt) + 5)
	}
	if r.physics.ShapeDetached(r.plat) != true {
		t.Fatal("single-use platform regained collision")
	}
}

func TestCrumbleRepeatableAcrossCycles(t *testing.T) {
	r := newCrumbleRig(t, false)

	r.stepUntil(t, component.CrumbleWarned, 120)
	r.stepUntil(t, component.CrumbleCollapsed, int(0.2/common.Dt)+10)

	if !r.authority.RequestManualShift() {
		t.Fatal("manual shift rejected")
	}
	if got := r.phase(t); got != component.CrumbleStable {
		t.Fatalf("phase after reform = %v, want stable", got)
	}
	state, _ := ecs.Get(r.w, r.plat, component.CrumbleStateComponent)
	if state.Used {
		t.Fatal("repeatable platform marked used")
	}

	// second qualifying contact starts the cycle again
	r.crumble.noteTouch(r.plat)
	r.step(1)
	if got := r.phase(t); got != component.CrumbleWarned {
		t.Fatalf("phase after second contact = %v, want warned", got)
	}
}
