// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/Faultbox/alien-lander/pkg/math"
)

// DescentCamera is a fixed-lens perspective camera whose eye height follows
// the craft's altitude. The terrain never moves or rescales; lowering the
// eye is what sells the descent.
type DescentCamera struct {
	FOV    float32 // vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32

	// Eye sits at (0, EyeHeight*altitude, EyeDepth) looking at Target.
	EyeHeight float32
	EyeDepth  float32
	Target    math.Vec3

	eye        math.Vec3
	projection math.Mat4
	view       math.Mat4
}

// NewDescentCamera creates a camera with the lander's default lens.
func NewDescentCamera() *DescentCamera {
	c := &DescentCamera{
		FOV:       40,
		Aspect:    1,
		Near:      0.5,
		Far:       3,
		EyeHeight: 1.5,
		EyeDepth:  1,
		Target:    math.Vec3{Y: 0.1},
	}
	c.Update(1)
	return c
}

// Update recomputes the projection and view for the given altitude.
// Altitude is clamped to [0,1] so the camera stops rising above full height.
func (c *DescentCamera) Update(altitude float32) {
	alt := max(0, min(1, altitude))

	c.projection = math.Perspective(math.Radians(c.FOV), c.Aspect, c.Near, c.Far)
	c.eye = math.Vec3{X: 0, Y: c.EyeHeight * alt, Z: c.EyeDepth}
	c.view = math.LookAt(c.eye, c.Target, math.Vec3{Y: 1})
}

// Eye returns the current eye position.
func (c *DescentCamera) Eye() math.Vec3 {
	return c.eye
}

// Projection returns the projection matrix from the last Update.
func (c *DescentCamera) Projection() math.Mat4 {
	return c.projection
}

// View returns the view matrix from the last Update.
func (c *DescentCamera) View() math.Mat4 {
	return c.view
}

// ViewProj returns Projection * View.
func (c *DescentCamera) ViewProj() math.Mat4 {
	return c.projection.Mul(c.view)
}
