package component

// InputState is the per-frame sampled input, written by the input system
// and read by the player controller.
type InputState struct {
	MoveX           float64
	JumpPressed     bool
	JumpHeld        bool
	ShiftPressed    bool
	ExtendedPressed bool
}

var InputComponent = NewComponent[InputState]()
