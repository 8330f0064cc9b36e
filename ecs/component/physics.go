package component

import "github.com/jakecoffman/cp"

// CollisionRole classifies what a body is for collision handling and
// floor classification. The physics system maps roles onto Chipmunk
// collision types.
type CollisionRole int

const (
	RoleSolid CollisionRole = iota
	RoleCalmSolid
	RoleAlteredSolid
	RoleCrumble
	RoleHazard
	RolePlayer
	RoleEnemy
)

// PhysicsBody stores Chipmunk runtime handles and collider configuration.
// Body/Shape are nil until the physics system creates them; removing the
// component releases them from the space on the next physics update.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Width    float64
	Height   float64
	Mass     float64
	Friction float64
	Role     CollisionRole

	// Static bodies attach to the space's static body; Kinematic bodies
	// are moved by game logic (patrol movers) and push dynamic bodies.
	Static    bool
	Kinematic bool

	// Sensor marks the shape non-solid while still generating contact
	// events (the flag-toggle gating strategy and hazard volumes).
	Sensor bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
