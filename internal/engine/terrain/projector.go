package terrain

import "github.com/Faultbox/alien-lander/pkg/math"

// DefaultDepthScale is the relief multiplier carried in the transform's
// Z column. The vertex shader reads it back as the height scale.
const DefaultDepthScale = 0.25

// Projector maps static grid coordinates into a window over the
// height-field texture. Moving the window instead of the geometry keeps
// vertex buffers constant; only one matrix uniform changes per frame.
type Projector struct {
	Center     math.Vec3 // rotation and scale pivot in texture space
	DepthScale float32
}

// NewProjector returns a projector pivoting on the texture centre.
func NewProjector(depthScale float32) *Projector {
	return &Projector{
		Center:     math.Vec3{X: 0.5, Y: 0.5},
		DepthScale: depthScale,
	}
}

// Project builds the texture matrix for a craft position
// (x, y, altitude, heading). The result is
//
//	T(c) * Rz(heading) * S(alt, alt, depth) * T(x, y, 0) * T(-c)
//
// so the window shrinks as the craft descends, turns with its heading and
// slides with its in-plane position.
func (p *Projector) Project(position math.Vec4) math.Mat4 {
	c := p.Center
	scale := position.Z

	m := math.Translate(c.X, c.Y, c.Z)
	m = m.Mul(math.RotateZ(position.W))
	m = m.Mul(math.Scale(scale, scale, p.DepthScale))
	m = m.Mul(math.Translate(position.X, position.Y, 0))
	return m.Mul(math.Translate(-c.X, -c.Y, -c.Z))
}
