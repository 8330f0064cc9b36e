package component

// Pickup is a shift-charge collectible with a bob animation. It stays in
// the world when the charge inventory is full.
type Pickup struct {
	BaseY        float64
	BobAmplitude float64
	BobSpeed     float64
	BobPhase     float64
	Width        float64
	Height       float64
	Initialized  bool
}

var PickupComponent = NewComponent[Pickup]()
