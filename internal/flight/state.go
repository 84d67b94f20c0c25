// Package flight models the lander's kinematics and advances them one tick
// at a time.
package flight

import "github.com/Faultbox/alien-lander/pkg/math"

// State is the craft's kinematic state plus the pilot's current input.
//
// All four vectors share the same axes:
//
//	X, Y  in-plane position over the height field (texture units)
//	Z     altitude, 0 is the ground
//	W     heading in radians
//
// Velocities and accelerations are per tick, not per second.
type State struct {
	Position     math.Vec4
	Velocity     math.Vec4
	Acceleration math.Vec4 // recomputed by every Step

	// Thrusters is written by input handling and only read by the Integrator.
	Thrusters math.Vec4
}

// NewState returns a craft hovering at the given altitude over the
// centre of the height field, at rest.
func NewState(altitude float32) *State {
	return &State{
		Position: math.Vec4{Z: altitude},
	}
}

// Altitude returns the current height above ground.
func (s *State) Altitude() float32 {
	return s.Position.Z
}

// Heading returns the current heading in radians.
func (s *State) Heading() float32 {
	return s.Position.W
}

// Landed reports whether the craft is resting on the ground.
// There is no stored flag: landed means zero altitude and zero velocity.
func (s *State) Landed() bool {
	return s.Position.Z == 0 && s.Velocity.IsZero()
}

// Telemetry returns a read-only snapshot for displays and exporters.
func (s *State) Telemetry() Telemetry {
	return Telemetry{
		Altitude:     s.Position.Z,
		Position:     s.Position,
		Velocity:     s.Velocity,
		Acceleration: s.Acceleration,
		Landed:       s.Landed(),
	}
}

// Telemetry is a copy of the values the readout displays each tick.
type Telemetry struct {
	Altitude     float32
	Position     math.Vec4
	Velocity     math.Vec4
	Acceleration math.Vec4
	Landed       bool
}
