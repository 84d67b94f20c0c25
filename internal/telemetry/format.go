// Package telemetry turns flight snapshots into the pilot readout and
// Prometheus gauges.
package telemetry

import (
	"fmt"
	"strings"

	"github.com/Faultbox/alien-lander/internal/flight"
)

// LowFPSThreshold is the frame rate below which the FPS line is flagged.
const LowFPSThreshold = 50

// Lines is the four-line readout.
type Lines struct {
	Altitude     string
	FPS          string
	Velocity     string
	Acceleration string

	// LowFPS asks the display to tint the FPS line.
	LowFPS bool
}

// Format renders a snapshot with fixed widths so the readout does not
// jitter as values change sign or magnitude.
func Format(t flight.Telemetry, fps float64) Lines {
	v, a := t.Velocity, t.Acceleration
	return Lines{
		Altitude:     fmt.Sprintf("ALT %+07.5f", t.Altitude),
		FPS:          fmt.Sprintf("FPS %+08.4f", fps),
		Velocity:     fmt.Sprintf(" X %+08.4f  Y %+08.4f  R %+08.4f", v.X, v.Y, v.W),
		Acceleration: fmt.Sprintf("dX %+08.4f dY %+08.4f dR %+08.4f", a.X, a.Y, a.W),
		LowFPS:       fps < LowFPSThreshold,
	}
}

// All returns the lines top to bottom.
func (l Lines) All() []string {
	return []string{l.Altitude, l.FPS, l.Velocity, l.Acceleration}
}

// Title joins the readout into one line for a window title bar.
func (l Lines) Title() string {
	parts := l.All()
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, " | ")
}
