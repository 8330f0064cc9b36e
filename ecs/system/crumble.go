package system

import (
	"github.com/renn8/worldshift/common"
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
	"github.com/renn8/worldshift/shift"
)

// CrumbleSystem advances perforated platforms through their
// stable -> warned -> collapsed cycle. A platform starts its warning timer
// the moment a player's foot lands on it and drops its collision once the
// delay runs out. Collapsed platforms come back on the next entry into
// the altered world, unless they are single-use.
type CrumbleSystem struct {
	authority *shift.Authority
	physics   *PhysicsSystem
	touched   map[ecs.Entity]bool

	// last world seen by Update, so the entered broadcast can reform
	// synchronously
	w             *ecs.World
	reformPending bool
}

func NewCrumbleSystem(authority *shift.Authority, physics *PhysicsSystem) *CrumbleSystem {
	s := &CrumbleSystem{
		authority: authority,
		physics:   physics,
		touched:   make(map[ecs.Entity]bool),
	}
	physics.OnFloorTouched(s.noteTouch)
	authority.SubscribeEntered(s.onEnteredAltered)
	return s
}

// noteTouch runs from inside the physics step; the actual state change
// waits until Update so the whole sequencer advances in one place.
func (s *CrumbleSystem) noteTouch(floor ecs.Entity) {
	s.touched[floor] = true
}

func (s *CrumbleSystem) onEnteredAltered() {
	if s.w == nil {
		// first broadcast can land before the first Update; reform then
		s.reformPending = true
		return
	}
	s.reformAll(s.w)
}

func (s *CrumbleSystem) Update(w *ecs.World) {
	s.w = w
	if s.reformPending {
		s.reformPending = false
		s.reformAll(w)
	}

	ecs.ForEach2(w, component.CrumblePlatformComponent, component.CrumbleStateComponent,
		func(e ecs.Entity, plat component.CrumblePlatform, state component.CrumbleState) {
			switch state.Phase {
			case component.CrumbleStable:
				if !s.touched[e] || state.Used {
					break
				}
				state.Phase = component.CrumbleWarned
				state.DelayLeft = plat.Delay
				s.setDimmed(w, e, true)

			case component.CrumbleWarned:
				state.DelayLeft -= common.Dt
				if state.DelayLeft > 0 {
					break
				}
				state.Phase = component.CrumbleCollapsed
				if plat.SingleUse {
					state.Used = true
				}
				s.physics.DetachShape(e)
				s.setHidden(w, e, true)
			}

			_ = ecs.Add(w, e, component.CrumbleStateComponent, state)
		})

	for e := range s.touched {
		delete(s.touched, e)
	}
}

// reformAll puts every non-single-use platform back to stable. Reattaching
// also wakes bodies overlapping the platform so the engine generates
// fresh contacts for anything already resting inside its bounds.
func (s *CrumbleSystem) reformAll(w *ecs.World) {
	ecs.ForEach2(w, component.CrumblePlatformComponent, component.CrumbleStateComponent,
		func(e ecs.Entity, _ component.CrumblePlatform, state component.CrumbleState) {
			if state.Used || state.Phase == component.CrumbleStable {
				return
			}
			if state.Phase == component.CrumbleCollapsed {
				s.physics.ReattachShape(e)
			}
			state.Phase = component.CrumbleStable
			state.DelayLeft = 0
			s.setHidden(w, e, false)
			s.setDimmed(w, e, false)
			_ = ecs.Add(w, e, component.CrumbleStateComponent, state)
		})
}

func (s *CrumbleSystem) setDimmed(w *ecs.World, e ecs.Entity, dimmed bool) {
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent); ok {
		sprite.Dimmed = dimmed
		_ = ecs.Add(w, e, component.SpriteComponent, sprite)
	}
}

func (s *CrumbleSystem) setHidden(w *ecs.World, e ecs.Entity, hidden bool) {
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent); ok {
		sprite.Hidden = hidden
		_ = ecs.Add(w, e, component.SpriteComponent, sprite)
	}
}
