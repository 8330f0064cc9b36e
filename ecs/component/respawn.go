package component

// RespawnRequest asks the respawn system to return the player to its safe
// point on its next update.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()

// SafeRespawn is the last safe position for an actor.
type SafeRespawn struct {
	X           float64
	Y           float64
	Initialized bool
}

var SafeRespawnComponent = NewComponent[SafeRespawn]()
