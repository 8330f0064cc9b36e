package system

import (
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
	"github.com/renn8/worldshift/shift"
)

// PlayerControllerSystem turns the sampled input state into player
// movement and shift requests. Jumps are allowed while grounded or within
// the short grace window after leaving a ledge; the grace never feeds any
// other gameplay rule.
type PlayerControllerSystem struct {
	authority *shift.Authority
}

func NewPlayerControllerSystem(authority *shift.Authority) *PlayerControllerSystem {
	return &PlayerControllerSystem{authority: authority}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	ecs.ForEach3(w, component.PlayerComponent, component.InputComponent, component.PhysicsBodyComponent,
		func(e ecs.Entity, player component.Player, input component.InputState, body component.PhysicsBody) {
			if body.Body == nil {
				return
			}

			v := body.Body.Velocity()
			v.X = input.MoveX * player.MoveSpeed

			gc, _ := ecs.Get(w, e, component.GroundContactComponent)
			if input.JumpPressed && (gc.Grounded || gc.Grace > 0) {
				v.Y = -player.JumpSpeed
			}
			// releasing jump early cuts the ascent short
			if !input.JumpHeld && v.Y < 0 {
				v.Y *= 0.5
			}
			body.Body.SetVelocity(v.X, v.Y)

			if input.ShiftPressed {
				s.authority.RequestManualShift()
			}
			if input.ExtendedPressed {
				s.authority.RequestExtendedShift()
			}
		})
}
