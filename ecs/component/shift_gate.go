package component

// GateCategory declares which mode an object participates in.
type GateCategory int

const (
	GateAlways GateCategory = iota
	GateCalmOnly
	GateAlteredOnly
)

// ShiftGate couples an object's solidity and visibility to the current
// mode. PreserveBehavior selects the flag-toggle strategy (sensor + hidden
// sprite) instead of full component removal; objects with independent
// motion, like patrol movers, must set it or their update logic freezes
// while gated out.
type ShiftGate struct {
	Category         GateCategory
	PreserveBehavior bool
}

// ShiftGateRuntime caches authored components so gated objects can be
// removed and restored without destroying the entity.
type ShiftGateRuntime struct {
	Initialized     bool
	HasSprite       bool
	SpriteTemplate  Sprite
	HasPhysicsBody  bool
	PhysicsTemplate PhysicsBody

	Evaluated     bool
	Participating bool
}

var ShiftGateComponent = NewComponent[ShiftGate]()
var ShiftGateRuntimeComponent = NewComponent[ShiftGateRuntime]()
