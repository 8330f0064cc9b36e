package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/renn8/worldshift/common"
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeCalmSolid
	collisionTypeAlteredSolid
	collisionTypeCrumble
	collisionTypeHazard
	collisionTypePlayer
	collisionTypeEnemy
	collisionTypeFoot
)

// FloorCollisionTypes maps the level's floor-classification role names to
// Chipmunk collision types for the ground tracker.
func FloorCollisionTypes(roles []component.CollisionRole) []cp.CollisionType {
	out := make([]cp.CollisionType, 0, len(roles))
	for _, r := range roles {
		out = append(out, collisionTypeForRole(r))
	}
	return out
}

// DefaultFloorRoles is the floor classification used when the level file
// doesn't override it.
func DefaultFloorRoles() []component.CollisionRole {
	return []component.CollisionRole{
		component.RoleSolid,
		component.RoleCalmSolid,
		component.RoleAlteredSolid,
		component.RoleCrumble,
	}
}

func cpCenter(x, y, w, h float64) cp.Vector {
	return cp.Vector{X: x + w/2, Y: y + h/2}
}

// tagShape sets the collision type and mirrors it onto UserData; cp has
// a setter but no getter, so handlers read the tag back off UserData.
func tagShape(shape *cp.Shape, t cp.CollisionType) {
	shape.SetCollisionType(t)
	shape.UserData = t
}

func shapeType(shape *cp.Shape) cp.CollisionType {
	if shape == nil {
		return 0
	}
	t, _ := shape.UserData.(cp.CollisionType)
	return t
}

func collisionTypeForRole(role component.CollisionRole) cp.CollisionType {
	switch role {
	case component.RoleCalmSolid:
		return collisionTypeCalmSolid
	case component.RoleAlteredSolid:
		return collisionTypeAlteredSolid
	case component.RoleCrumble:
		return collisionTypeCrumble
	case component.RoleHazard:
		return collisionTypeHazard
	case component.RolePlayer:
		return collisionTypePlayer
	case component.RoleEnemy:
		return collisionTypeEnemy
	default:
		return collisionTypeSolid
	}
}

// PhysicsSystem owns the Chipmunk space: it creates bodies for
// PhysicsBody components, steps the simulation at the fixed dt, keeps
// grounded flags consistent through the ground tracker, and syncs body
// positions back to transforms. Contact notifications are fully delivered
// inside Step, before the shift authority's per-tick update runs.
type PhysicsSystem struct {
	space         *cp.Space
	tracker       *GroundTracker
	handlersReady bool

	entities      map[ecs.Entity]*bodyInfo
	shapeToEntity map[*cp.Shape]ecs.Entity
	footToEntity  map[*cp.Shape]ecs.Entity

	hazardHits map[ecs.Entity]bool
	floorTouch func(floor ecs.Entity)
}

type bodyInfo struct {
	body      *cp.Body
	mainShape *cp.Shape
	footShape *cp.Shape
	static    bool
	kinematic bool
	detached  bool
}

func NewPhysicsSystem(floorRoles []component.CollisionRole, debug bool) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	ps := &PhysicsSystem{
		space:         space,
		tracker:       NewGroundTracker(FloorCollisionTypes(floorRoles), debug),
		entities:      make(map[ecs.Entity]*bodyInfo),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
		footToEntity:  make(map[*cp.Shape]ecs.Entity),
		hazardHits:    make(map[ecs.Entity]bool),
	}
	return ps
}

func (ps *PhysicsSystem) Space() *cp.Space {
	return ps.space
}

// OnFloorTouched registers the crumble system's qualifying-contact hook:
// fn runs whenever a tracked foot begins contact with a floor entity.
func (ps *PhysicsSystem) OnFloorTouched(fn func(floor ecs.Entity)) {
	ps.floorTouch = fn
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w)

	ps.space.Step(common.Dt)
	ps.tracker.Step()

	ps.flushGroundContacts(w)
	ps.flushHazardHits(w)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	ps.tracker.InstallHandlers(ps.space, collisionTypeFoot)
	ps.tracker.OnFloorContact = func(_, floor *cp.Shape) {
		if ps.floorTouch == nil {
			return
		}
		if e, ok := ps.shapeToEntity[floor]; ok {
			ps.floorTouch(e)
		}
	}

	hazardHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeHazard)
	hazardHandler.UserData = ps
	hazardHandler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		a, b := arb.Shapes()
		if e, ok := sys.shapeToEntity[a]; ok && sys.isPlayer(a) {
			sys.hazardHits[e] = true
		} else if e, ok := sys.shapeToEntity[b]; ok && sys.isPlayer(b) {
			sys.hazardHits[e] = true
		}
		return true
	}

	// Player and enemy bodies never resolve against each other; harm is a
	// behavioral decision made by the enemy system, not the solver.
	peHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeEnemy)
	peHandler.PreSolveFunc = func(*cp.Arbiter, *cp.Space, interface{}) bool {
		return false
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) isPlayer(shape *cp.Shape) bool {
	return shapeType(shape) == collisionTypePlayer
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil || bodyComp.Shape == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.mainShape
				_ = ecs.Add(w, e, component.PhysicsBodyComponent, bodyComp)
			}
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}

		info := ps.createBodyInfo(transform, bodyComp)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		ps.shapeToEntity[info.mainShape] = e
		if info.footShape != nil {
			ps.footToEntity[info.footShape] = e
			ps.tracker.Track(info.footShape)
		}

		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
		_ = ecs.Add(w, e, component.PhysicsBodyComponent, bodyComp)
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		return nil
	}

	friction := bodyComp.Friction
	if friction == 0 {
		friction = 0.8
	}
	collisionType := collisionTypeForRole(bodyComp.Role)

	if bodyComp.Static {
		bb := cp.BB{L: transform.X, B: transform.Y, R: transform.X + width, T: transform.Y + height}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(friction)
		tagShape(shape, collisionType)
		shape.SetSensor(bodyComp.Sensor)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, mainShape: shape, static: true}
	}

	centerX := transform.X + width/2
	centerY := transform.Y + height/2

	var body *cp.Body
	if bodyComp.Kinematic {
		body = cp.NewKinematicBody()
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		// infinite moment keeps actors upright
		body = cp.NewBody(mass, math.Inf(1))
	}
	body.SetPosition(cp.Vector{X: centerX, Y: centerY})
	body.SetAngle(0)
	body.SetAngularVelocity(0)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(friction)
	tagShape(shape, collisionType)
	shape.SetSensor(bodyComp.Sensor)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info := &bodyInfo{body: body, mainShape: shape, kinematic: bodyComp.Kinematic}

	if bodyComp.Role == component.RolePlayer {
		footBB := cp.BB{
			L: -width * 0.45,
			B: height / 2.0,
			R: width * 0.45,
			T: height/2.0 + 2,
		}
		foot := cp.NewBox2(body, footBB, 0)
		foot.SetSensor(true)
		tagShape(foot, collisionTypeFoot)
		ps.space.AddShape(foot)
		info.footShape = foot
	}

	return info
}

// DetachShape pulls an entity's main shape out of the space without
// destroying the body bookkeeping; ReattachShape restores it. Used by the
// crumble sequencer for collapse and reform.
func (ps *PhysicsSystem) DetachShape(e ecs.Entity) {
	info := ps.entities[e]
	if info == nil || info.detached || info.mainShape == nil {
		return
	}
	ps.space.RemoveShape(info.mainShape)
	info.detached = true
}

// ReattachShape puts a detached shape back and wakes every body
// overlapping its bounds. Re-adding alone is not enough: a dynamic body
// already resting inside the bounds is treated as pre-penetrating and the
// engine generates no fresh contact until it is disturbed.
func (ps *PhysicsSystem) ReattachShape(e ecs.Entity) {
	info := ps.entities[e]
	if info == nil || !info.detached || info.mainShape == nil {
		return
	}
	ps.space.AddShape(info.mainShape)
	info.detached = false

	bb := info.mainShape.BB()
	grown := cp.BB{L: bb.L - 2, B: bb.B - 2, R: bb.R + 2, T: bb.T + 2}
	ps.space.BBQuery(grown, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if body := shape.Body(); body != nil {
			body.Activate()
		}
	}, nil)
}

// ShapeDetached reports whether the entity's collision is currently pulled
// out of the space.
func (ps *PhysicsSystem) ShapeDetached(e ecs.Entity) bool {
	info := ps.entities[e]
	return info != nil && info.detached
}

func (ps *PhysicsSystem) flushGroundContacts(w *ecs.World) {
	for foot, e := range ps.footToEntity {
		if !w.IsAlive(e) {
			continue
		}
		gc, ok := ecs.Get(w, e, component.GroundContactComponent)
		if !ok {
			continue
		}
		gc.Grounded = ps.tracker.Grounded(foot)
		gc.Grace = ps.tracker.Grace(foot)
		_ = ecs.Add(w, e, component.GroundContactComponent, gc)
	}
}

func (ps *PhysicsSystem) flushHazardHits(w *ecs.World) {
	for e := range ps.hazardHits {
		delete(ps.hazardHits, e)
		if !w.IsAlive(e) {
			continue
		}
		_ = ecs.Add(w, e, component.RespawnRequestComponent, component.RespawnRequest{})
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		info := ps.entities[e]
		if info == nil || info.static || info.body == nil {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X - bodyComp.Width/2
		transform.Y = pos.Y - bodyComp.Height/2
		_ = ecs.Add(w, e, component.TransformComponent, transform)
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}

		if info.mainShape != nil && !info.detached {
			ps.space.RemoveShape(info.mainShape)
		}
		if info.footShape != nil {
			ps.space.RemoveShape(info.footShape)
			ps.tracker.Untrack(info.footShape)
			delete(ps.footToEntity, info.footShape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.shapeToEntity, info.mainShape)
		delete(ps.entities, e)
	}
}
