package config

import (
	"errors"
	"fmt"
)

// ErrInvalid marks a configuration value outside its allowed range.
var ErrInvalid = errors.New("invalid config")

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Graphics.Width > 0 && c.Graphics.Height > 0,
		"graphics size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	check(c.Graphics.FPSLimit >= 0, "graphics.fps_limit %d must not be negative", c.Graphics.FPSLimit)

	check(c.Flight.Gravity >= 0, "flight.gravity %g must not be negative", c.Flight.Gravity)
	check(c.Flight.Drag >= 0, "flight.drag %g must not be negative", c.Flight.Drag)
	check(c.Flight.Thrust >= 0, "flight.thrust %g must not be negative", c.Flight.Thrust)
	check(c.Flight.StartAltitude >= 0, "flight.start_altitude %g must not be negative", c.Flight.StartAltitude)

	check(c.Terrain.Margin >= 0, "terrain.margin %d must not be negative", c.Terrain.Margin)
	check(c.Terrain.ColumnSpacing > 0, "terrain.column_spacing %d must be positive", c.Terrain.ColumnSpacing)
	check(c.Terrain.RowSpacing > 0, "terrain.row_spacing %d must be positive", c.Terrain.RowSpacing)
	check(c.Terrain.DepthScale >= 0, "terrain.depth_scale %g must not be negative", c.Terrain.DepthScale)
	if c.Terrain.Heightmap == "" {
		check(c.Terrain.Size > 0, "terrain.size %d must be positive", c.Terrain.Size)
		check(c.Terrain.Octaves > 0, "terrain.octaves %d must be positive", c.Terrain.Octaves)
	}

	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov %g must be in (0, 180)", c.Camera.FOV)
	check(c.Camera.Aspect > 0, "camera.aspect %g must be positive", c.Camera.Aspect)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near,
		"camera near/far %g/%g must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume %g must be in [0, 1]", c.Audio.Volume)

	return errors.Join(errs...)
}
