package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/alien-lander/internal/engine/camera"
	"github.com/Faultbox/alien-lander/internal/engine/terrain"
	"github.com/Faultbox/alien-lander/pkg/math"
)

type call struct {
	kind         string
	first, count int32
	color        Color
}

type recorder struct {
	uploads   int
	uploadErr error
	profile   []math.Vec3
	mask      []math.Vec3
	model     math.Mat4
	texture   math.Mat4
	calls     []call
}

func (r *recorder) UploadGrid(profile, mask []math.Vec3) error {
	if r.uploadErr != nil {
		return r.uploadErr
	}
	r.uploads++
	r.profile, r.mask = profile, mask
	return nil
}

func (r *recorder) BeginTerrain(viewProj, model, texture math.Mat4) {
	r.model, r.texture = model, texture
	r.calls = append(r.calls, call{kind: "begin"})
}

func (r *recorder) DrawMask(first, count int32, c Color) {
	r.calls = append(r.calls, call{"mask", first, count, c})
}

func (r *recorder) DrawProfile(first, count int32, c Color) {
	r.calls = append(r.calls, call{"profile", first, count, c})
}

func TestDrawOrderNearestFirst(t *testing.T) {
	rec := &recorder{}
	tr := NewTerrainRenderer(rec)
	require.NoError(t, tr.SetGrid(terrain.Build(4, 3)))

	rows := tr.Draw(camera.NewDescentCamera(), math.Identity())
	assert.Equal(t, 3, rows)

	want := []call{
		{kind: "begin"},
		{"mask", 16, 8, ColorBlack},
		{"profile", 8, 4, ColorBlue},
		{"mask", 8, 8, ColorBlack},
		{"profile", 4, 4, ColorBlue},
		{"mask", 0, 8, ColorBlack},
		{"profile", 0, 4, ColorBlue},
	}
	assert.Equal(t, want, rec.calls)
}

func TestDrawPassesTransforms(t *testing.T) {
	rec := &recorder{}
	tr := NewTerrainRenderer(rec)
	require.NoError(t, tr.SetGrid(terrain.Build(2, 2)))

	tex := math.Scale(2, 2, 0.25)
	tr.Draw(camera.NewDescentCamera(), tex)

	assert.Equal(t, tex, rec.texture)
	assert.Equal(t, math.Translate(-0.5, 0, -0.5), rec.model)
}

func TestDrawEmptyGrid(t *testing.T) {
	rec := &recorder{}
	tr := NewTerrainRenderer(rec)

	assert.Zero(t, tr.Draw(camera.NewDescentCamera(), math.Identity()), "no grid yet")

	require.NoError(t, tr.SetGrid(terrain.Build(0, 0)))
	assert.Zero(t, tr.Draw(camera.NewDescentCamera(), math.Identity()))
	assert.Empty(t, rec.calls)
}

func TestSetGridRejectsMismatch(t *testing.T) {
	rec := &recorder{}
	tr := NewTerrainRenderer(rec)

	good := terrain.Build(3, 2)
	require.NoError(t, tr.SetGrid(good))

	bad := &terrain.Grid{
		PointsPerRow: 3,
		RowCount:     2,
		Profile:      good.Profile,
		Mask:         good.Mask[:len(good.Mask)-1],
	}
	err := tr.SetGrid(bad)
	assert.ErrorIs(t, err, terrain.ErrGridMismatch)
	assert.ErrorIs(t, tr.SetGrid(nil), terrain.ErrGridMismatch)

	assert.Same(t, good, tr.Grid(), "previous grid kept")
	assert.Equal(t, 1, rec.uploads)
}

func TestSetGridUploadFailure(t *testing.T) {
	rec := &recorder{uploadErr: errors.New("out of memory")}
	tr := NewTerrainRenderer(rec)

	err := tr.SetGrid(terrain.Build(2, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uploading terrain grid")
	assert.Nil(t, tr.Grid())
}

func TestPaletteOverride(t *testing.T) {
	rec := &recorder{}
	tr := NewTerrainRenderer(rec)
	require.NoError(t, tr.SetGrid(terrain.Build(2, 1)))

	dark, red := Hex(0x1A3E5A), RGB(240, 0, 0)
	tr.SetPalette(Palette{Mask: dark, Profile: red})
	tr.Draw(camera.NewDescentCamera(), math.Identity())

	require.Len(t, rec.calls, 3)
	assert.Equal(t, dark, rec.calls[1].color)
	assert.Equal(t, red, rec.calls[2].color)
}

func TestHex(t *testing.T) {
	c := Hex(0x1A3E5A)
	assert.Equal(t, RGB(0x1A, 0x3E, 0x5A), c)
	assert.InDelta(t, 26.0/255.0, c.R, 1e-6)
	assert.Equal(t, float32(1), c.A)
}
