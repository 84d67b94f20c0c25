package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/alien-lander/internal/config"
	"github.com/Faultbox/alien-lander/internal/engine/camera"
	"github.com/Faultbox/alien-lander/internal/engine/scene"
	"github.com/Faultbox/alien-lander/internal/engine/terrain"
	"github.com/Faultbox/alien-lander/internal/flight"
	"github.com/Faultbox/alien-lander/internal/logger"
	"github.com/Faultbox/alien-lander/pkg/math"
)

// HeightfieldUploader is implemented by backends that keep the height
// field on the GPU.
type HeightfieldUploader interface {
	UploadHeightfield(hf *terrain.Heightfield) error
}

// Context owns everything one simulated flight needs. It has no GL or
// window dependency; all drawing goes through the scene backend.
type Context struct {
	state      *flight.State
	integrator *flight.Integrator
	projector  *terrain.Projector
	camera     *camera.DescentCamera
	layout     terrain.Layout

	backend     scene.Backend
	terrain     *scene.TerrainRenderer
	heightfield *terrain.Heightfield
	transform   math.Mat4

	ticks     uint64
	wasLanded bool
	log       *zap.Logger
}

// NewContext creates a flight from configuration. The grid stays empty
// until the first Resize.
func NewContext(cfg *config.Config, backend scene.Backend) *Context {
	cam := camera.NewDescentCamera()
	cam.FOV = cfg.Camera.FOV
	cam.Aspect = cfg.Camera.Aspect
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far
	cam.EyeHeight = cfg.Camera.EyeHeight
	cam.EyeDepth = cfg.Camera.EyeDepth

	c := &Context{
		state:      flight.NewState(cfg.Flight.StartAltitude),
		integrator: flight.NewIntegrator(cfg.Flight.Gravity, cfg.Flight.Drag),
		projector:  terrain.NewProjector(cfg.Terrain.DepthScale),
		camera:     cam,
		layout: terrain.Layout{
			Margin:        cfg.Terrain.Margin,
			ColumnSpacing: cfg.Terrain.ColumnSpacing,
			RowSpacing:    cfg.Terrain.RowSpacing,
		},
		backend: backend,
		terrain: scene.NewTerrainRenderer(backend),
		log:     logger.Named("flight"),
	}
	c.transform = c.projector.Project(c.state.Position)
	c.camera.Update(c.state.Altitude())
	c.wasLanded = c.state.Landed()
	return c
}

// SetThrusters replaces the thruster input applied from the next Tick.
func (c *Context) SetThrusters(t math.Vec4) {
	c.state.Thrusters = t
}

// Tick advances the flight by one step and returns the new telemetry.
func (c *Context) Tick() flight.Telemetry {
	c.integrator.Step(c.state)
	c.transform = c.projector.Project(c.state.Position)
	c.camera.Update(c.state.Altitude())
	c.ticks++

	tel := c.state.Telemetry()
	if tel.Landed && !c.wasLanded {
		c.log.Info("touchdown",
			zap.Uint64("tick", c.ticks),
			zap.Float32("x", tel.Position.X),
			zap.Float32("y", tel.Position.Y),
			zap.Float32("heading", tel.Position.W),
		)
	}
	c.wasLanded = tel.Landed
	return tel
}

// Resize rebuilds the grid for a drawable of width x height pixels and
// uploads it before returning.
func (c *Context) Resize(width, height int) error {
	points, rows := terrain.ResolutionFor(width, height, c.layout)
	if err := c.terrain.SetGrid(terrain.Build(points, rows)); err != nil {
		return fmt.Errorf("rebuilding grid for %dx%d: %w", width, height, err)
	}
	c.log.Debug("terrain grid rebuilt",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("points", points),
		zap.Int("rows", rows),
	)
	return nil
}

// SetHeightfield makes hf the terrain source, uploading it when the
// backend supports that.
func (c *Context) SetHeightfield(hf *terrain.Heightfield) error {
	if hf == nil || hf.Width <= 0 || hf.Height <= 0 {
		return fmt.Errorf("%w: empty height field", terrain.ErrUnsupportedImage)
	}
	if up, ok := c.backend.(HeightfieldUploader); ok {
		if err := up.UploadHeightfield(hf); err != nil {
			return fmt.Errorf("uploading height field: %w", err)
		}
	}
	c.heightfield = hf
	return nil
}

// Draw renders the terrain for the current tick and returns the rows drawn.
func (c *Context) Draw() int {
	return c.terrain.Draw(c.camera, c.transform)
}

// TerrainBelow returns the relief height under the centre of the view, in
// the same units as altitude. Zero without a height field.
func (c *Context) TerrainBelow() float32 {
	if c.heightfield == nil {
		return 0
	}
	tc := c.transform.MulVec4(math.Vec4{X: 0.5, Y: 0.5, Z: 1, W: 1})
	return c.heightfield.Sample(tc.X, tc.Y) * tc.Z
}

// State returns the flight state. Callers must not hold it across ticks.
func (c *Context) State() *flight.State {
	return c.state
}

// Transform returns the texture transform of the last tick.
func (c *Context) Transform() math.Mat4 {
	return c.transform
}

// Camera returns the camera as updated by the last tick.
func (c *Context) Camera() *camera.DescentCamera {
	return c.camera
}

// Grid returns the current terrain grid, or nil before the first Resize.
func (c *Context) Grid() *terrain.Grid {
	return c.terrain.Grid()
}

// Ticks returns the number of steps taken.
func (c *Context) Ticks() uint64 {
	return c.ticks
}

// LoadHeightfield returns the configured terrain: the image at
// cfg.Heightmap when set, procedural noise otherwise.
func LoadHeightfield(cfg config.TerrainConfig) (*terrain.Heightfield, error) {
	if cfg.Heightmap != "" {
		hf, err := terrain.LoadHeightfield(cfg.Heightmap)
		if err != nil {
			return nil, fmt.Errorf("loading heightmap %s: %w", cfg.Heightmap, err)
		}
		return hf, nil
	}
	return terrain.GenerateHeightfield(cfg.Size, cfg.Seed, cfg.Octaves), nil
}
