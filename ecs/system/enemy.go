package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
	"github.com/renn8/worldshift/shift"
)

// EnemySystem drives hostile actors. In the calm mode they walk a patrol
// strip; in the altered mode they ignore gravity and home in on the
// player. Contact with a pursuing enemy sends the player back to the last
// safe spot, except during an extended shift, when enemies stay passive.
type EnemySystem struct {
	authority *shift.Authority
}

func NewEnemySystem(authority *shift.Authority) *EnemySystem {
	return &EnemySystem{authority: authority}
}

func (s *EnemySystem) Update(w *ecs.World) {
	player, playerOK := w.First(component.PlayerTagComponent.Kind())
	var playerTransform component.Transform
	var playerBody component.PhysicsBody
	if playerOK {
		playerTransform, playerOK = ecs.Get(w, player, component.TransformComponent)
	}
	if playerOK {
		playerBody, _ = ecs.Get(w, player, component.PhysicsBodyComponent)
	}

	pursuing := s.authority.Mode() == shift.Altered
	extended := s.authority.ExtendedActive()

	ecs.ForEach2(w, component.EnemyComponent, component.PhysicsBodyComponent,
		func(e ecs.Entity, enemy component.Enemy, body component.PhysicsBody) {
			if body.Body == nil {
				return
			}

			// Pursuers ignore gravity and phase through level geometry;
			// walkers are ordinary grounded actors.
			if pursuing && enemy.Phase != component.EnemyPursuing {
				enemy.Phase = component.EnemyPursuing
				body.Body.SetVelocityUpdateFunc(func(b *cp.Body, _ cp.Vector, damping, dt float64) {
					cp.BodyUpdateVelocity(b, cp.Vector{}, damping, dt)
				})
				if body.Shape != nil {
					body.Shape.SetSensor(true)
				}
			} else if !pursuing && enemy.Phase != component.EnemyWalking {
				enemy.Phase = component.EnemyWalking
				body.Body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)
				if body.Shape != nil {
					body.Shape.SetSensor(false)
				}
			}

			switch enemy.Phase {
			case component.EnemyPursuing:
				if playerOK {
					pos := body.Body.Position()
					target := cp.Vector{
						X: playerTransform.X + playerBody.Width/2,
						Y: playerTransform.Y + playerBody.Height/2,
					}
					delta := target.Sub(pos)
					dist := delta.Length()
					if dist > 1 {
						v := delta.Mult(enemy.PursuitSpeed / dist)
						body.Body.SetVelocity(v.X, v.Y)
					} else {
						body.Body.SetVelocity(0, 0)
					}
				} else {
					body.Body.SetVelocity(0, 0)
				}

			default:
				pos := body.Body.Position()
				if enemy.Dir >= 0 && pos.X >= enemy.PatrolMaxX {
					enemy.Dir = -1
				} else if enemy.Dir < 0 && pos.X <= enemy.PatrolMinX {
					enemy.Dir = 1
				}
				if enemy.Dir == 0 {
					enemy.Dir = 1
				}
				vy := body.Body.Velocity().Y
				body.Body.SetVelocity(enemy.Dir*enemy.WalkSpeed, vy)
			}

			// harm keys off the pursuer sub-state, not the mode, and is
			// suppressed for the whole extended-shift window
			if enemy.Phase == component.EnemyPursuing && !extended && playerOK &&
				s.overlapsPlayer(w, e, playerTransform, playerBody) {
				_ = ecs.Add(w, player, component.RespawnRequestComponent, component.RespawnRequest{})
			}

			_ = ecs.Add(w, e, component.EnemyComponent, enemy)
			_ = ecs.Add(w, e, component.PhysicsBodyComponent, body)
		})
}

func (s *EnemySystem) overlapsPlayer(w *ecs.World, e ecs.Entity, pt component.Transform, pb component.PhysicsBody) bool {
	et, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return false
	}
	eb, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
	if !ok {
		return false
	}
	return aabbOverlap(pt.X, pt.Y, pb.Width, pb.Height, et.X, et.Y, eb.Width, eb.Height)
}

func aabbOverlap(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	if aw <= 0 || ah <= 0 || bw <= 0 || bh <= 0 {
		return false
	}
	return math.Abs((ax+aw/2)-(bx+bw/2)) < (aw+bw)/2 &&
		math.Abs((ay+ah/2)-(by+bh/2)) < (ah+bh)/2
}
