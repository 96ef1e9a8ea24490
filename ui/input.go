package ui

import (
	"snake-sim/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is one frame's worth of keyboard state
type Input struct {
	Axis   types.Axis
	Start  bool
	Grow   bool
	Faster bool
	Slower bool
}

// ReadInput samples held direction keys (arrows or WASD), Space, +/- for
// speed, and F when debug keys are enabled
func ReadInput(debug bool) Input {
	up := rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW)
	down := rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS)
	left := rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA)
	right := rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD)

	return Input{
		Axis:   AxisFromKeys(up, down, left, right),
		Start:  rl.IsKeyPressed(rl.KeySpace),
		Grow:   debug && rl.IsKeyPressed(rl.KeyF),
		Faster: rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd),
		Slower: rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract),
	}
}

// AxisFromKeys folds four held keys into a raw axis; opposite keys cancel
func AxisFromKeys(up, down, left, right bool) types.Axis {
	var a types.Axis
	if up {
		a.Y++
	}
	if down {
		a.Y--
	}
	if right {
		a.X++
	}
	if left {
		a.X--
	}
	return a
}
