package game

import (
	"github.com/Faultbox/alien-lander/internal/flight"
	"github.com/Faultbox/alien-lander/pkg/math"
)

// Autopilot is the scripted pilot used by the headless driver. It holds
// the descent rate proportional to altitude by firing the up thruster,
// and optionally yaws and drifts so the terrain window moves.
type Autopilot struct {
	Thrust  float32 // magnitude of each thruster
	Rate    float32 // allowed sink per tick per unit of altitude
	MinSink float32 // allowed sink per tick near the ground
	Yaw     bool    // hold the rotate thruster for the whole flight
	Forward bool    // hold the forward thruster for the whole flight
}

// NewAutopilot returns a pilot that touches down gently with the given
// thruster magnitude.
func NewAutopilot(thrust float32) *Autopilot {
	return &Autopilot{
		Thrust:  thrust,
		Rate:    0.004,
		MinSink: 0.0002,
	}
}

// Thrusters decides the input for the next tick from the last telemetry.
func (a *Autopilot) Thrusters(t flight.Telemetry) math.Vec4 {
	var out math.Vec4
	if a.Yaw {
		out.W = a.Thrust
	}
	if a.Forward {
		out.Y = a.Thrust
	}

	allowed := max(a.MinSink, a.Rate*t.Altitude)
	if -t.Velocity.Z > allowed {
		out.Z = a.Thrust
	}
	return out
}
