package flight

import (
	gomath "math"

	"github.com/Faultbox/alien-lander/pkg/math"
)

// Default physical constants, in per-tick units.
const (
	DefaultGravity = 0.00001
	DefaultDrag    = 500
)

// Integrator advances a State by one fixed step.
// It holds only constants, so one value can step any number of states.
type Integrator struct {
	Gravity float32 // downward pull on the altitude axis
	Drag    float32 // quadratic drag coefficient
}

// NewIntegrator returns an integrator with the given constants.
func NewIntegrator(gravity, drag float32) *Integrator {
	return &Integrator{Gravity: gravity, Drag: drag}
}

// Step applies gravity, heading-relative thrust and quadratic drag, then
// integrates with semi-implicit Euler. If the craft ends the step at or
// below the ground it is clamped to altitude 0 with zero velocity.
func (in *Integrator) Step(s *State) {
	heading := float64(s.Position.W)
	t := s.Thrusters

	acc := math.Vec4{Z: -in.Gravity}

	// In-plane thrust is craft relative; vertical and rotational are not.
	acc = acc.Add(math.Vec4{
		X: float32(gomath.Sin(heading)) * t.X,
		Y: float32(gomath.Cos(heading)) * t.Y,
		Z: t.Z,
		W: t.W,
	})

	v := s.Velocity.XYZ()
	drag := v.Scale(-v.LengthSq() * in.Drag)
	rotDrag := -s.Velocity.W * s.Velocity.W * s.Velocity.W * in.Drag
	acc = acc.Add(math.Vec4{X: drag.X, Y: drag.Y, Z: drag.Z, W: rotDrag})

	s.Acceleration = acc
	s.Velocity = s.Velocity.Add(acc)
	s.Position = s.Position.Add(s.Velocity)

	if s.Position.Z <= 0 {
		s.Velocity = math.Vec4{}
		s.Position.Z = 0
	}
}
