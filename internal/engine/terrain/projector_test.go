package terrain

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/alien-lander/pkg/math"
)

func TestProjectIsPure(t *testing.T) {
	p := NewProjector(DefaultDepthScale)
	pos := math.Vec4{X: 0.13, Y: -0.4, Z: 0.66, W: 2.1}

	assert.Equal(t, p.Project(pos), p.Project(pos))
}

func TestProjectMatchesGLMComposition(t *testing.T) {
	p := NewProjector(DefaultDepthScale)
	pos := math.Vec4{X: 0.2, Y: 0.1, Z: 0.8, W: 0.9}

	want := mgl32.Translate3D(0.5, 0.5, 0).
		Mul4(mgl32.HomogRotate3DZ(pos.W)).
		Mul4(mgl32.Scale3D(pos.Z, pos.Z, DefaultDepthScale)).
		Mul4(mgl32.Translate3D(pos.X, pos.Y, 0)).
		Mul4(mgl32.Translate3D(-0.5, -0.5, 0))

	got := p.Project(pos)
	for i := range 16 {
		assert.InDelta(t, want[i], got[i], 1e-6, "element %d", i)
	}
}

func TestProjectIdentityAtRest(t *testing.T) {
	p := NewProjector(1)
	got := p.Project(math.Vec4{Z: 1})

	for i := range 16 {
		assert.InDelta(t, math.Identity()[i], got[i], 1e-7, "element %d", i)
	}
}

func TestProjectPivotsOnCentre(t *testing.T) {
	p := NewProjector(DefaultDepthScale)
	m := p.Project(math.Vec4{Z: 0.3, W: 1.7})

	c := m.TransformPoint(math.Vec3{X: 0.5, Y: 0.5})
	assert.InDelta(t, 0.5, c.X, 1e-6)
	assert.InDelta(t, 0.5, c.Y, 1e-6)
}

func TestProjectHeadingOnlyRotates(t *testing.T) {
	p := NewProjector(DefaultDepthScale)
	base := math.Vec4{X: 0.1, Y: 0.25, Z: 0.6}

	ref := p.Project(base)
	for _, heading := range []float32{0.3, 1.0, gomath.Pi, -2.2} {
		pos := base
		pos.W = heading
		m := p.Project(pos)

		// In-plane scale stays the altitude whatever the rotation.
		assert.InDelta(t, columnLen2(ref, 0), columnLen2(m, 0), 1e-6)
		assert.InDelta(t, columnLen2(ref, 1), columnLen2(m, 1), 1e-6)
		assert.InDelta(t, float64(base.Z), columnLen2(m, 0), 1e-6)

		// Depth scale is untouched.
		assert.Equal(t, ref[10], m[10])

		// Offset from the pivot keeps its length.
		assert.InDelta(t, pivotOffset(ref), pivotOffset(m), 1e-6)

		// Rotation sub-block is R(heading) * alt.
		c, s := gomath.Cos(float64(heading)), gomath.Sin(float64(heading))
		assert.InDelta(t, c*float64(base.Z), float64(m[0]), 1e-6)
		assert.InDelta(t, s*float64(base.Z), float64(m[1]), 1e-6)
	}
}

func TestProjectAltitudeScalesWindow(t *testing.T) {
	p := NewProjector(DefaultDepthScale)
	high := p.Project(math.Vec4{Z: 1})
	low := p.Project(math.Vec4{Z: 0.25})

	// Grid corner (0,0) samples closer to the centre when lower.
	h := high.TransformPoint(math.Vec3{})
	l := low.TransformPoint(math.Vec3{})
	assert.InDelta(t, 0, h.X, 1e-6)
	assert.InDelta(t, 0.375, l.X, 1e-6)
	assert.InDelta(t, 0.375, l.Y, 1e-6)

	// Shader height multiplier: Z of (x, z, 1, 1).
	hs := high.MulVec4(math.Vec4{X: 0.3, Y: 0.7, Z: 1, W: 1})
	assert.InDelta(t, DefaultDepthScale, hs.Z, 1e-7)
}

func columnLen2(m math.Mat4, col int) float64 {
	c := m.Column(col)
	return gomath.Hypot(float64(c.X), float64(c.Y))
}

func pivotOffset(m math.Mat4) float64 {
	tr := m.Column(3)
	return gomath.Hypot(float64(tr.X-0.5), float64(tr.Y-0.5))
}
