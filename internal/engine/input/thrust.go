package input

import "github.com/Faultbox/alien-lander/pkg/math"

// Thrusters converts held keys into a thruster vector. Each axis is
// +magnitude, -magnitude or 0; opposing keys cancel.
func Thrusters(c Controls, magnitude float32) math.Vec4 {
	return math.Vec4{
		X: axis(c.Right, c.Left, magnitude),
		Y: axis(c.Forward, c.Back, magnitude),
		Z: axis(c.Up, c.Down, magnitude),
		W: axis(c.RotateCW, c.RotateCCW, magnitude),
	}
}

func axis(pos, neg bool, magnitude float32) float32 {
	var v float32
	if pos {
		v += magnitude
	}
	if neg {
		v -= magnitude
	}
	return v
}

// Level reports the overall thrust in [0,1] relative to magnitude, used
// to drive the engine rumble.
func Level(t math.Vec4, magnitude float32) float32 {
	if magnitude <= 0 {
		return 0
	}
	l := t.Length() / (2 * magnitude)
	if l > 1 {
		return 1
	}
	return l
}
