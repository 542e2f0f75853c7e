// Package input turns devices into one Frame of named axes and buttons per tick.
package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type Button uint8

const (
	ButtonJump Button = 1 << iota
	ButtonAttack
	ButtonPause
)

// Frame is the input state for one tick.
type Frame struct {
	// Horizontal is in [-1,1], negative is left.
	Horizontal float64
	// Vertical is in [-1,1]: up or jump is positive, down is negative.
	Vertical float64

	held    Button
	pressed Button
}

func (f Frame) Pressed(b Button) bool     { return f.held&b != 0 }
func (f Frame) JustPressed(b Button) bool { return f.pressed&b != 0 }

// With returns f with b pressed, and just pressed when edge is true.
func (f Frame) With(b Button, edge bool) Frame {
	f.held |= b
	if edge {
		f.pressed |= b
	}
	return f
}

// Source produces one Frame per tick.
type Source interface {
	Poll() Frame
}

// Static always returns the same frame. Tests script it by replacing Frame.
type Static struct {
	Frame Frame
}

func (s *Static) Poll() Frame { return s.Frame }

const stickDeadzone = 0.2

// Ebiten reads the keyboard and the first standard gamepad.
type Ebiten struct{}

func NewEbiten() *Ebiten {
	return &Ebiten{}
}

func (Ebiten) Poll() Frame {
	var f Frame

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)
	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	attackPressed := inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	pausePressed := inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	if left {
		f.Horizontal -= 1
	}
	if right {
		f.Horizontal += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(lx) > stickDeadzone {
			f.Horizontal = lx
		}
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if ly > stickDeadzone*2 {
			down = true
		}
		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		attackPressed = attackPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		pausePressed = pausePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	switch {
	case up || jump:
		f.Vertical = 1
	case down:
		f.Vertical = -1
	}

	if jump || up {
		f = f.With(ButtonJump, jumpPressed)
	}
	if attackPressed {
		f = f.With(ButtonAttack, true)
	}
	if pausePressed {
		f = f.With(ButtonPause, true)
	}
	return f
}
