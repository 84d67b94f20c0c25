// Package scene draws the terrain as stacked profile lines with hidden-line
// removal done by draw order.
package scene

import (
	"fmt"

	"github.com/Faultbox/alien-lander/internal/engine/terrain"
	"github.com/Faultbox/alien-lander/pkg/math"
)

// Backend issues the actual draw calls. The GL implementation lives in the
// renderer package; tests use a recorder.
type Backend interface {
	// UploadGrid replaces the profile (line strip) and mask (triangle
	// strip) vertex buffers.
	UploadGrid(profile, mask []math.Vec3) error

	// BeginTerrain binds the terrain program and per-frame uniforms.
	BeginTerrain(viewProj, model, texture math.Mat4)

	// DrawMask draws count mask vertices starting at first as a triangle strip.
	DrawMask(first, count int32, c Color)

	// DrawProfile draws count profile vertices starting at first as a line strip.
	DrawProfile(first, count int32, c Color)
}

// Camera supplies the combined projection and view.
type Camera interface {
	ViewProj() math.Mat4
}

// Palette holds the two terrain tones.
type Palette struct {
	Mask    Color // opaque background the mask strips are filled with
	Profile Color // line colour
}

// DefaultPalette returns black mask strips under blue lines.
func DefaultPalette() Palette {
	return Palette{Mask: ColorBlack, Profile: ColorBlue}
}

// TerrainRenderer draws a terrain.Grid row by row, nearest row first.
//
// Each row paints its mask strip before its profile line. Because rows
// never overlap out of order, a row's mask hides the lines of every row
// behind it that is drawn later.
type TerrainRenderer struct {
	backend Backend
	grid    *terrain.Grid
	palette Palette
	model   math.Mat4
}

// NewTerrainRenderer creates a renderer drawing through b.
func NewTerrainRenderer(b Backend) *TerrainRenderer {
	return &TerrainRenderer{
		backend: b,
		palette: DefaultPalette(),
		// Centre the unit grid under the camera.
		model: math.Translate(-0.5, 0, -0.5),
	}
}

// SetPalette changes the terrain colours.
func (tr *TerrainRenderer) SetPalette(p Palette) {
	tr.palette = p
}

// SetGrid validates g, uploads its meshes and makes it the grid drawn from
// the next frame on. On error the previous grid stays in place.
func (tr *TerrainRenderer) SetGrid(g *terrain.Grid) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", terrain.ErrGridMismatch)
	}
	if err := g.Validate(); err != nil {
		return err
	}
	if err := tr.backend.UploadGrid(g.Profile, g.Mask); err != nil {
		return fmt.Errorf("uploading terrain grid: %w", err)
	}
	tr.grid = g
	return nil
}

// Grid returns the grid currently drawn, or nil.
func (tr *TerrainRenderer) Grid() *terrain.Grid {
	return tr.grid
}

// Draw renders one frame of terrain sampled through texture and returns
// the number of rows drawn.
func (tr *TerrainRenderer) Draw(cam Camera, texture math.Mat4) int {
	g := tr.grid
	if g == nil || g.Empty() {
		return 0
	}

	tr.backend.BeginTerrain(cam.ViewProj(), tr.model, texture)

	for row := g.RowCount - 1; row >= 0; row-- {
		first, count := g.MaskRow(row)
		tr.backend.DrawMask(first, count, tr.palette.Mask)

		first, count = g.ProfileRow(row)
		tr.backend.DrawProfile(first, count, tr.palette.Profile)
	}
	return g.RowCount
}
