package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
)

// Input polls the keyboard and first gamepad into a fighter Intent. The
// agent layer writes the same component, so downstream systems never know
// which kind of controller produced it.
type Input struct{}

func NewInput() *Input { return &Input{} }

// Poll reads the devices and returns this frame's intent.
func (i *Input) Poll() component.Intent {
	var in component.Intent

	in.Left = ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft)
	in.Right = ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight)
	in.Up = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp)
	in.Down = ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown)
	in.Dodge = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	in.Attack1 = ebiten.IsKeyPressed(ebiten.KeyJ)
	in.Attack2 = ebiten.IsKeyPressed(ebiten.KeyK)
	in.Parry = ebiten.IsKeyPressed(ebiten.KeyL)
	in.Ranged1 = ebiten.IsKeyPressed(ebiten.KeyU)
	in.Ranged2 = ebiten.IsKeyPressed(ebiten.KeyI)

	in.UpPressed = inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyUp)
	in.Attack1Pressed = inpututil.IsKeyJustPressed(ebiten.KeyJ)
	in.Attack2Pressed = inpututil.IsKeyJustPressed(ebiten.KeyK)
	in.ParryPressed = inpututil.IsKeyJustPressed(ebiten.KeyL)
	in.Ranged1Pressed = inpututil.IsKeyJustPressed(ebiten.KeyU)
	in.Ranged2Pressed = inpututil.IsKeyJustPressed(ebiten.KeyI)

	ids := ebiten.GamepadIDs()
	if len(ids) == 0 {
		return in
	}
	gid := ids[0]

	leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
	if leftX < -0.3 {
		in.Left = true
	} else if leftX > 0.3 {
		in.Right = true
	}
	leftY := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
	if leftY > 0.5 {
		in.Down = true
	}

	held := func(b ebiten.StandardGamepadButton) bool {
		return ebiten.IsStandardGamepadButtonPressed(gid, b)
	}
	edge := func(b ebiten.StandardGamepadButton) bool {
		return inpututil.IsStandardGamepadButtonJustPressed(gid, b)
	}

	in.Up = in.Up || held(ebiten.StandardGamepadButtonRightBottom)
	in.UpPressed = in.UpPressed || edge(ebiten.StandardGamepadButtonRightBottom)
	in.Dodge = in.Dodge || held(ebiten.StandardGamepadButtonFrontBottomLeft)
	in.Attack1 = in.Attack1 || held(ebiten.StandardGamepadButtonRightLeft)
	in.Attack1Pressed = in.Attack1Pressed || edge(ebiten.StandardGamepadButtonRightLeft)
	in.Attack2 = in.Attack2 || held(ebiten.StandardGamepadButtonRightTop)
	in.Attack2Pressed = in.Attack2Pressed || edge(ebiten.StandardGamepadButtonRightTop)
	in.Parry = in.Parry || held(ebiten.StandardGamepadButtonFrontTopLeft)
	in.ParryPressed = in.ParryPressed || edge(ebiten.StandardGamepadButtonFrontTopLeft)
	in.Ranged1 = in.Ranged1 || held(ebiten.StandardGamepadButtonFrontTopRight)
	in.Ranged1Pressed = in.Ranged1Pressed || edge(ebiten.StandardGamepadButtonFrontTopRight)
	in.Ranged2 = in.Ranged2 || held(ebiten.StandardGamepadButtonFrontBottomRight)
	in.Ranged2Pressed = in.Ranged2Pressed || edge(ebiten.StandardGamepadButtonFrontBottomRight)

	return in
}
