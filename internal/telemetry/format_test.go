package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/alien-lander/internal/flight"
	"github.com/Faultbox/alien-lander/pkg/math"
)

func TestFormat(t *testing.T) {
	tel := flight.Telemetry{
		Altitude:     0.5,
		Velocity:     math.Vec4{X: 0.001, Y: -0.002, W: 0.25},
		Acceleration: math.Vec4{X: -0.0001, Y: 0, W: 1.5},
	}

	lines := Format(tel, 60)

	assert.Equal(t, "ALT +0.50000", lines.Altitude)
	assert.Equal(t, "FPS +60.0000", lines.FPS)
	assert.Equal(t, " X +00.0010  Y -00.0020  R +00.2500", lines.Velocity)
	assert.Equal(t, "dX -00.0001 dY +00.0000 dR +01.5000", lines.Acceleration)
	assert.False(t, lines.LowFPS)
}

func TestFormatFixedWidth(t *testing.T) {
	slow := Format(flight.Telemetry{Velocity: math.Vec4{X: -3.25}}, 1)
	fast := Format(flight.Telemetry{Velocity: math.Vec4{X: 3.25}}, 99)

	assert.Len(t, slow.Velocity, len(fast.Velocity))
	assert.Len(t, slow.FPS, len(fast.FPS))
	assert.Equal(t, "FPS +01.0000", slow.FPS)
}

func TestFormatLowFPS(t *testing.T) {
	tests := []struct {
		fps  float64
		want bool
	}{
		{60, false},
		{50, false},
		{49.9, true},
		{0, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(flight.Telemetry{}, tt.fps).LowFPS, "fps %v", tt.fps)
	}
}

func TestLinesTitle(t *testing.T) {
	lines := Format(flight.Telemetry{Altitude: 1}, 60)

	assert.Len(t, lines.All(), 4)
	assert.Equal(t,
		"ALT +1.00000 | FPS +60.0000 | X +00.0000  Y +00.0000  R +00.0000 | dX +00.0000 dY +00.0000 dR +00.0000",
		lines.Title())
}
