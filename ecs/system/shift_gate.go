package system

import (
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
	"github.com/renn8/worldshift/shift"
)

// ShiftGateSystem keeps mode-conditional scenery in sync with the
// authority's current mode. Gates either have their sprite and collision
// components removed outright, or, when PreserveBehavior is set, keep
// their body live and only stop colliding and rendering. The second form
// exists for objects whose behavior must keep advancing while absent,
// patrolling platforms chiefly.
type ShiftGateSystem struct {
	authority *shift.Authority
	physics   *PhysicsSystem
	w         *ecs.World
	dirty     bool
}

func NewShiftGateSystem(authority *shift.Authority, physics *PhysicsSystem) *ShiftGateSystem {
	s := &ShiftGateSystem{
		authority: authority,
		physics:   physics,
		dirty:     true,
	}
	authority.SubscribeEntered(s.onModeChanged)
	authority.SubscribeReturned(s.onModeChanged)
	return s
}

// onModeChanged re-evaluates inside the broadcast, so gate participation
// flips before the mutating call returns regardless of where in the tick
// the mode changed. A mode change that lands before the first Update is
// deferred to it.
func (s *ShiftGateSystem) onModeChanged() {
	if s.w == nil {
		s.dirty = true
		return
	}
	s.evaluate(s.w, true)
}

func (s *ShiftGateSystem) Update(w *ecs.World) {
	s.w = w
	s.evaluate(w, s.dirty)
	s.dirty = false
}

// evaluate walks every gate; when force is unset, gates with up-to-date
// runtimes are skipped and only late-spawned ones get initialized.
func (s *ShiftGateSystem) evaluate(w *ecs.World, force bool) {
	mode := s.authority.Mode()

	ecs.ForEach(w, component.ShiftGateComponent, func(e ecs.Entity, gate component.ShiftGate) {
		rt, _ := ecs.Get(w, e, component.ShiftGateRuntimeComponent)
		if !rt.Initialized {
			rt = s.initRuntime(w, e)
		} else if !force {
			return
		}

		want := gateParticipates(gate.Category, mode)
		if rt.Evaluated && rt.Participating == want {
			_ = ecs.Add(w, e, component.ShiftGateRuntimeComponent, rt)
			return
		}

		if gate.PreserveBehavior {
			s.applyPreserving(w, e, want)
		} else if want {
			s.restoreComponents(w, e, &rt)
		} else {
			s.removeComponents(w, e, &rt)
		}

		rt.Evaluated = true
		rt.Participating = want
		_ = ecs.Add(w, e, component.ShiftGateRuntimeComponent, rt)
	})
}

func gateParticipates(category component.GateCategory, mode shift.Mode) bool {
	switch category {
	case component.GateCalmOnly:
		return mode == shift.Calm
	case component.GateAlteredOnly:
		return mode == shift.Altered
	default:
		return true
	}
}

func (s *ShiftGateSystem) initRuntime(w *ecs.World, e ecs.Entity) component.ShiftGateRuntime {
	rt := component.ShiftGateRuntime{Initialized: true}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent); ok {
		rt.HasSprite = true
		rt.SpriteTemplate = sprite
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
		rt.HasPhysicsBody = true
		body.Body = nil
		body.Shape = nil
		rt.PhysicsTemplate = body
	}
	return rt
}

func (s *ShiftGateSystem) removeComponents(w *ecs.World, e ecs.Entity, rt *component.ShiftGateRuntime) {
	// refresh templates so edits made while participating survive a cycle
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent); ok {
		rt.HasSprite = true
		rt.SpriteTemplate = sprite
		ecs.Remove(w, e, component.SpriteComponent)
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
		rt.HasPhysicsBody = true
		body.Body = nil
		body.Shape = nil
		rt.PhysicsTemplate = body
		ecs.Remove(w, e, component.PhysicsBodyComponent)
	}
}

func (s *ShiftGateSystem) restoreComponents(w *ecs.World, e ecs.Entity, rt *component.ShiftGateRuntime) {
	if rt.HasSprite && !ecs.Has(w, e, component.SpriteComponent) {
		_ = ecs.Add(w, e, component.SpriteComponent, rt.SpriteTemplate)
	}
	if rt.HasPhysicsBody && !ecs.Has(w, e, component.PhysicsBodyComponent) {
		_ = ecs.Add(w, e, component.PhysicsBodyComponent, rt.PhysicsTemplate)
	}
}

func (s *ShiftGateSystem) applyPreserving(w *ecs.World, e ecs.Entity, participating bool) {
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent); ok {
		sprite.Hidden = !participating
		_ = ecs.Add(w, e, component.SpriteComponent, sprite)
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && body.Shape != nil {
		body.Shape.SetSensor(!participating)
		body.Sensor = !participating
		_ = ecs.Add(w, e, component.PhysicsBodyComponent, body)
	}
}
