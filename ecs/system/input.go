package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
)

// InputSystem samples keyboard and gamepad state once per tick and fans
// it out to every InputState holder. Bindings: A/D or arrows move, Space
// jumps, J requests a shift, K requests an extended shift. On a standard
// gamepad that is left stick, bottom face, left face and top face.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

const stickDeadzone = 0.2

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	state := component.InputState{
		MoveX:           keyboardAxis(),
		JumpHeld:        ebiten.IsKeyPressed(ebiten.KeySpace),
		JumpPressed:     inpututil.IsKeyJustPressed(ebiten.KeySpace),
		ShiftPressed:    inpututil.IsKeyJustPressed(ebiten.KeyJ),
		ExtendedPressed: inpututil.IsKeyJustPressed(ebiten.KeyK),
	}
	mergeGamepad(&state)

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, _ component.InputState) {
		_ = ecs.Add(w, e, component.InputComponent, state)
	})
}

func keyboardAxis() float64 {
	x := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		x -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		x += 1
	}
	return x
}

// mergeGamepad ORs the first connected pad into the keyboard state, so
// either device works without a settings screen.
func mergeGamepad(state *component.InputState) {
	pads := ebiten.GamepadIDs()
	if len(pads) == 0 {
		return
	}
	id := pads[0]

	if stick := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal); math.Abs(stick) > stickDeadzone {
		state.MoveX = stick
	}
	state.JumpHeld = state.JumpHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	state.JumpPressed = state.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	state.ShiftPressed = state.ShiftPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
	state.ExtendedPressed = state.ExtendedPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
}
