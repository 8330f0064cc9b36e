package system

import (
	"log"

	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
	"github.com/renn8/worldshift/shift"
)

// RespawnSystem remembers the last position where an actor stood on solid
// ground and teleports it back there when something requested a respawn.
// A respawn also resets the whole shift state so the run restarts from a
// known baseline.
type RespawnSystem struct {
	authority *shift.Authority
}

func NewRespawnSystem(authority *shift.Authority) *RespawnSystem {
	return &RespawnSystem{authority: authority}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.SafeRespawnComponent, component.TransformComponent,
		func(e ecs.Entity, safe component.SafeRespawn, transform component.Transform) {
			if gc, ok := ecs.Get(w, e, component.GroundContactComponent); ok && gc.Grounded {
				safe.X = transform.X
				safe.Y = transform.Y
				safe.Initialized = true
				_ = ecs.Add(w, e, component.SafeRespawnComponent, safe)
			}

			if !ecs.Has(w, e, component.RespawnRequestComponent) {
				return
			}
			ecs.Remove(w, e, component.RespawnRequestComponent)
			if !safe.Initialized {
				log.Printf("respawn: entity %v has no recorded safe spot", e)
				return
			}

			transform.X = safe.X
			transform.Y = safe.Y
			_ = ecs.Add(w, e, component.TransformComponent, transform)

			if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && body.Body != nil {
				body.Body.SetPosition(cpCenter(safe.X, safe.Y, body.Width, body.Height))
				body.Body.SetVelocity(0, 0)
			}

			s.authority.ResetAll()
		})
}
