package component

// GroundContact is the per-actor grounded state derived from physics
// contacts, reconciled by the ground tracker. Grace widens jump timing
// after walking off an edge; it never feeds back into Grounded itself.
type GroundContact struct {
	Grounded bool
	Grace    int
}

var GroundContactComponent = NewComponent[GroundContact]()
