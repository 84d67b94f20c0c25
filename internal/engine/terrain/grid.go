// Package terrain builds the static terrain meshes, projects the moving
// height-field window onto them and supplies the height field itself.
package terrain

import (
	"errors"
	"fmt"

	"github.com/Faultbox/alien-lander/pkg/math"
)

// ErrGridMismatch is returned when the profile and mask streams do not
// describe the same rows and columns.
var ErrGridMismatch = errors.New("terrain: profile and mask meshes do not match")

// Grid holds the two parallel vertex streams drawn row by row.
//
// Profile has one vertex per (row, column), row-major, with Y fixed at 1.
// The vertex shader displaces Y by the sampled height.
//
// Mask has two vertices per profile vertex, elevated (Y=1) then ground
// (Y=0), so each row forms a triangle strip hanging from the profile line
// down to the ground. Only the elevated member of each pair needs a
// texture lookup.
type Grid struct {
	PointsPerRow int
	RowCount     int
	Profile      []math.Vec3
	Mask         []math.Vec3
}

// Build creates the grid for the given logical resolution.
// Non-positive dimensions yield an empty grid.
func Build(pointsPerRow, rowCount int) *Grid {
	if pointsPerRow <= 0 || rowCount <= 0 {
		pointsPerRow, rowCount = 0, 0
	}

	profile := make([]math.Vec3, 0, pointsPerRow*rowCount)
	mask := make([]math.Vec3, 0, 2*pointsPerRow*rowCount)

	for z := range rowCount {
		for x := range pointsPerRow {
			vert := math.Vec3{
				X: float32(x) / float32(pointsPerRow),
				Y: 1,
				Z: float32(z) / float32(rowCount),
			}
			profile = append(profile, vert)

			mask = append(mask, vert)
			vert.Y = 0
			mask = append(mask, vert)
		}
	}

	g, err := NewGrid(pointsPerRow, rowCount, profile, mask)
	if err != nil {
		// Build always emits matching streams.
		panic(err)
	}
	return g
}

// NewGrid wraps prebuilt vertex streams, checking that they agree with the
// declared resolution and with each other.
func NewGrid(pointsPerRow, rowCount int, profile, mask []math.Vec3) (*Grid, error) {
	g := &Grid{
		PointsPerRow: pointsPerRow,
		RowCount:     rowCount,
		Profile:      profile,
		Mask:         mask,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks the mesh invariant: len(Mask) == 2*len(Profile) ==
// 2*PointsPerRow*RowCount, with every mask pair sharing its X/Z.
func (g *Grid) Validate() error {
	if g.PointsPerRow < 0 || g.RowCount < 0 {
		return fmt.Errorf("%w: negative resolution %dx%d", ErrGridMismatch, g.PointsPerRow, g.RowCount)
	}
	want := g.PointsPerRow * g.RowCount
	if len(g.Profile) != want {
		return fmt.Errorf("%w: %d profile vertices for %dx%d", ErrGridMismatch, len(g.Profile), g.PointsPerRow, g.RowCount)
	}
	if len(g.Mask) != 2*want {
		return fmt.Errorf("%w: %d mask vertices, want %d", ErrGridMismatch, len(g.Mask), 2*want)
	}
	for i := 0; i < len(g.Mask); i += 2 {
		hi, lo := g.Mask[i], g.Mask[i+1]
		if hi.X != lo.X || hi.Z != lo.Z {
			return fmt.Errorf("%w: mask pair %d is split", ErrGridMismatch, i/2)
		}
	}
	return nil
}

// Empty reports whether the grid has nothing to draw.
func (g *Grid) Empty() bool {
	return g.RowCount == 0 || g.PointsPerRow == 0
}

// ProfileRow returns the first vertex and vertex count of a row's line strip.
func (g *Grid) ProfileRow(row int) (first, count int32) {
	return int32(row * g.PointsPerRow), int32(g.PointsPerRow)
}

// MaskRow returns the first vertex and vertex count of a row's triangle strip.
func (g *Grid) MaskRow(row int) (first, count int32) {
	return int32(row * 2 * g.PointsPerRow), int32(2 * g.PointsPerRow)
}

// Layout is the pixel density used to derive grid resolution from the
// surface size.
type Layout struct {
	Margin        int // pixels left empty on each side
	ColumnSpacing int // pixels between points in a row
	RowSpacing    int // pixels between rows
}

// DefaultLayout returns the original lander's density.
func DefaultLayout() Layout {
	return Layout{
		Margin:        20,
		ColumnSpacing: 10,
		RowSpacing:    25,
	}
}

// ResolutionFor maps a surface size in pixels to a grid resolution.
func ResolutionFor(width, height int, l Layout) (pointsPerRow, rowCount int) {
	return cells(width, l.Margin, l.ColumnSpacing), cells(height, l.Margin, l.RowSpacing)
}

func cells(dim, margin, spacing int) int {
	if spacing <= 0 {
		return 0
	}
	n := (dim - 2*margin) / spacing
	if n < 0 {
		return 0
	}
	return n
}
