package component

// PatrolMover slides a kinematic platform back and forth along one axis.
// Movers gate with PreserveBehavior so their motion continues while
// non-solid; a fully removed mover would freeze mid-path.
type PatrolMover struct {
	OriginX float64
	OriginY float64
	// Horizontal when true, vertical otherwise.
	Horizontal bool
	Range      float64
	Speed      float64
	Dir        float64
}

var PatrolMoverComponent = NewComponent[PatrolMover]()
