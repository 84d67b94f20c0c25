package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	if result != m {
		t.Errorf("M * I should equal M, got %v", result)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"translate after scale", Translate(1, 0, 0).Mul(Scale(2, 2, 2)), Vec3{1, 1, 1}, Vec3{3, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.p); got != tt.want {
				t.Errorf("TransformPoint: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateZ90(t *testing.T) {
	m := RotateZ(float32(math.Pi / 2))
	result := m.TransformPoint(Vec3{1, 0, 0})

	// Counter-clockwise: +X goes to +Y
	if abs(result.X) > 0.001 || abs(result.Y-1) > 0.001 || abs(result.Z) > 0.001 {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", result)
	}
}

func TestMatchesMathGL(t *testing.T) {
	tests := []struct {
		name string
		got  Mat4
		want mgl32.Mat4
	}{
		{"perspective", Perspective(Radians(40), 1, 0.5, 3), mgl32.Perspective(mgl32.DegToRad(40), 1, 0.5, 3)},
		{"lookat", LookAt(Vec3{0, 1.5, 1}, Vec3{0, 0.1, 0}, Vec3{0, 1, 0}),
			mgl32.LookAtV(mgl32.Vec3{0, 1.5, 1}, mgl32.Vec3{0, 0.1, 0}, mgl32.Vec3{0, 1, 0})},
		{"rotate z", RotateZ(0.7), mgl32.HomogRotate3DZ(0.7)},
		{"chain", Translate(0.5, 0.5, 0).Mul(RotateZ(1.2)).Mul(Scale(0.3, 0.3, 0.25)),
			mgl32.Translate3D(0.5, 0.5, 0).Mul4(mgl32.HomogRotate3DZ(1.2)).Mul4(mgl32.Scale3D(0.3, 0.3, 0.25))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range 16 {
				if abs(tt.got[i]-tt.want[i]) > 1e-5 {
					t.Errorf("element %d: got %f, want %f", i, tt.got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestColumn(t *testing.T) {
	m := Translate(4, 5, 6)
	if got := m.Column(3); got != (Vec4{4, 5, 6, 1}) {
		t.Errorf("Column(3) = %v, want (4, 5, 6, 1)", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
