package system

import (
	"math"

	"github.com/renn8/worldshift/common"
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
	"github.com/renn8/worldshift/shift"
)

// PickupCollectSystem bobs charge pickups in place and grants a charge
// when the player touches one. A pickup is only consumed if the charge
// actually fits; at full inventory it stays in the world.
type PickupCollectSystem struct {
	authority *shift.Authority
}

func NewPickupCollectSystem(authority *shift.Authority) *PickupCollectSystem {
	return &PickupCollectSystem{authority: authority}
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	player, playerOK := w.First(component.PlayerTagComponent.Kind())
	var playerTransform component.Transform
	var playerBody component.PhysicsBody
	if playerOK {
		playerTransform, playerOK = ecs.Get(w, player, component.TransformComponent)
	}
	if playerOK {
		playerBody, _ = ecs.Get(w, player, component.PhysicsBodyComponent)
	}

	ecs.ForEach2(w, component.PickupComponent, component.TransformComponent,
		func(e ecs.Entity, pickup component.Pickup, transform component.Transform) {
			if !pickup.Initialized {
				pickup.BaseY = transform.Y
				pickup.Initialized = true
			}

			pickup.BobPhase += pickup.BobSpeed * common.Dt
			transform.Y = pickup.BaseY + math.Sin(pickup.BobPhase)*pickup.BobAmplitude

			_ = ecs.Add(w, e, component.PickupComponent, pickup)
			_ = ecs.Add(w, e, component.TransformComponent, transform)

			if !playerOK {
				return
			}
			if !aabbOverlap(
				playerTransform.X, playerTransform.Y, playerBody.Width, playerBody.Height,
				transform.X, transform.Y, pickup.Width, pickup.Height,
			) {
				return
			}
			if s.authority.AddCharge() {
				w.DestroyEntity(e)
			}
		})
}
