package system

import (
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
)

// MoverSystem drives kinematic patrolling platforms back and forth along
// one axis. It runs every tick regardless of mode, so a platform that is
// currently gated out still keeps its patrol position and reappears where
// it would have been.
type MoverSystem struct{}

func NewMoverSystem() *MoverSystem {
	return &MoverSystem{}
}

func (s *MoverSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PatrolMoverComponent, component.PhysicsBodyComponent,
		func(e ecs.Entity, mover component.PatrolMover, body component.PhysicsBody) {
			if body.Body == nil {
				return
			}
			if mover.Dir == 0 {
				mover.Dir = 1
			}

			pos := body.Body.Position()
			if mover.Horizontal {
				center := mover.OriginX + body.Width/2
				if mover.Dir > 0 && pos.X >= center+mover.Range {
					mover.Dir = -1
				} else if mover.Dir < 0 && pos.X <= center-mover.Range {
					mover.Dir = 1
				}
				body.Body.SetVelocity(mover.Dir*mover.Speed, 0)
			} else {
				center := mover.OriginY + body.Height/2
				if mover.Dir > 0 && pos.Y >= center+mover.Range {
					mover.Dir = -1
				} else if mover.Dir < 0 && pos.Y <= center-mover.Range {
					mover.Dir = 1
				}
				body.Body.SetVelocity(0, mover.Dir*mover.Speed)
			}

			_ = ecs.Add(w, e, component.PatrolMoverComponent, mover)
		})
}
