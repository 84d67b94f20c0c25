package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/alien-lander/pkg/math"
)

func TestThrusters(t *testing.T) {
	const m = 0.5

	tests := []struct {
		name string
		keys Controls
		want math.Vec4
	}{
		{"idle", Controls{}, math.Vec4{}},
		{"forward", Controls{Forward: true}, math.Vec4{Y: m}},
		{"back", Controls{Back: true}, math.Vec4{Y: -m}},
		{"right", Controls{Right: true}, math.Vec4{X: m}},
		{"left", Controls{Left: true}, math.Vec4{X: -m}},
		{"up", Controls{Up: true}, math.Vec4{Z: m}},
		{"down", Controls{Down: true}, math.Vec4{Z: -m}},
		{"rotate cw", Controls{RotateCW: true}, math.Vec4{W: m}},
		{"rotate ccw", Controls{RotateCCW: true}, math.Vec4{W: -m}},
		{"opposing cancel", Controls{Forward: true, Back: true}, math.Vec4{}},
		{"combined", Controls{Forward: true, Left: true, Up: true}, math.Vec4{X: -m, Y: m, Z: m}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Thrusters(tt.keys, m))
		})
	}
}

func TestLevel(t *testing.T) {
	assert.Zero(t, Level(math.Vec4{}, 1))
	assert.Zero(t, Level(math.Vec4{Z: 1}, 0))
	assert.InDelta(t, 0.5, Level(math.Vec4{Z: 1}, 1), 1e-6)
	assert.Equal(t, float32(1), Level(math.Vec4{X: 1, Y: 1, Z: 1, W: 1}, 1))
}
