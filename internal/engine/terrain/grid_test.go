package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/alien-lander/pkg/math"
)

func TestBuildTwoByOne(t *testing.T) {
	g := Build(2, 1)

	require.Len(t, g.Profile, 2)
	require.Len(t, g.Mask, 4)
	assert.Equal(t, float32(1), g.Mask[0].Y)
	assert.Equal(t, float32(0), g.Mask[1].Y)
	assert.Equal(t, math.Vec3{X: 0.5, Y: 1, Z: 0}, g.Profile[1])
}

func TestBuildStreamInvariants(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 1}, {21, 40}, {76, 30}, {3, 7}}

	for _, sz := range sizes {
		p, r := sz[0], sz[1]
		g := Build(p, r)

		require.Len(t, g.Profile, p*r)
		require.Len(t, g.Mask, 2*p*r)
		require.NoError(t, g.Validate())

		for i, v := range g.Profile {
			assert.Equal(t, float32(1), v.Y)
			hi, lo := g.Mask[2*i], g.Mask[2*i+1]
			assert.Equal(t, v, hi, "elevated mask vertex %d", i)
			assert.Equal(t, float32(0), lo.Y)
			assert.Equal(t, hi.X, lo.X)
			assert.Equal(t, hi.Z, lo.Z)
		}
	}
}

func TestBuildRowMajor(t *testing.T) {
	g := Build(4, 3)

	for row := range 3 {
		first, count := g.ProfileRow(row)
		require.Equal(t, int32(4), count)
		for col := range 4 {
			v := g.Profile[int(first)+col]
			assert.Equal(t, float32(col)/4, v.X)
			assert.Equal(t, float32(row)/3, v.Z)
		}

		mFirst, mCount := g.MaskRow(row)
		assert.Equal(t, int32(row*8), mFirst)
		assert.Equal(t, int32(8), mCount)
	}
}

func TestBuildDegenerate(t *testing.T) {
	for _, sz := range [][2]int{{0, 0}, {0, 5}, {5, 0}, {-1, 3}} {
		g := Build(sz[0], sz[1])
		assert.True(t, g.Empty())
		assert.Empty(t, g.Profile)
		assert.Empty(t, g.Mask)
		assert.NoError(t, g.Validate())
	}
}

func TestNewGridRejectsMismatch(t *testing.T) {
	good := Build(3, 2)

	tests := []struct {
		name    string
		points  int
		rows    int
		profile []math.Vec3
		mask    []math.Vec3
	}{
		{"short mask", 3, 2, good.Profile, good.Mask[:len(good.Mask)-2]},
		{"wrong resolution", 4, 2, good.Profile, good.Mask},
		{"split pair", 3, 2, good.Profile, splitPair(good.Mask)},
		{"negative", -1, 2, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.points, tt.rows, tt.profile, tt.mask)
			assert.ErrorIs(t, err, ErrGridMismatch)
		})
	}
}

func splitPair(mask []math.Vec3) []math.Vec3 {
	out := append([]math.Vec3(nil), mask...)
	out[1].X += 0.5
	return out
}

func TestResolutionFor(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		layout        Layout
		wantP, wantR  int
	}{
		{"original window", 800, 800, DefaultLayout(), 76, 30},
		{"floor division", 1280, 720, DefaultLayout(), 124, 27},
		{"smaller than margins", 30, 30, DefaultLayout(), 0, 0},
		{"zero spacing", 800, 800, Layout{Margin: 20}, 0, 0},
		{"no margin", 100, 100, Layout{ColumnSpacing: 10, RowSpacing: 50}, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, r := ResolutionFor(tt.width, tt.height, tt.layout)
			assert.Equal(t, tt.wantP, p)
			assert.Equal(t, tt.wantR, r)
		})
	}
}
