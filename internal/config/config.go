// Package config handles lander configuration loading and management.
package config

// Config holds all lander settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Flight   FlightConfig   `yaml:"flight"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Camera   CameraConfig   `yaml:"camera"`
	Audio    AudioConfig    `yaml:"audio"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"` // 0 = uncapped
}

// FlightConfig holds the flight model constants. Units are per tick.
type FlightConfig struct {
	Gravity       float32 `yaml:"gravity"`
	Drag          float32 `yaml:"drag"`
	Thrust        float32 `yaml:"thrust"` // per-axis thruster magnitude
	StartAltitude float32 `yaml:"start_altitude"`
}

// TerrainConfig holds grid density and the height-field source.
type TerrainConfig struct {
	Margin        int     `yaml:"margin"`
	ColumnSpacing int     `yaml:"column_spacing"`
	RowSpacing    int     `yaml:"row_spacing"`
	DepthScale    float32 `yaml:"depth_scale"`

	// Heightmap is an image path. Empty selects procedural terrain.
	Heightmap string `yaml:"heightmap"`
	Seed      int64  `yaml:"seed"`
	Octaves   int32  `yaml:"octaves"`
	Size      int    `yaml:"size"`
}

// CameraConfig holds the chase camera lens and placement.
type CameraConfig struct {
	FOV       float32 `yaml:"fov"` // degrees
	Aspect    float32 `yaml:"aspect"`
	Near      float32 `yaml:"near"`
	Far       float32 `yaml:"far"`
	EyeHeight float32 `yaml:"eye_height"`
	EyeDepth  float32 `yaml:"eye_depth"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float32 `yaml:"volume"`
}

// MetricsConfig holds the Prometheus exporter settings.
type MetricsConfig struct {
	Listen string `yaml:"listen"` // e.g. ":9100"; empty disables
}

// DebugConfig holds developer tooling settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
		},
		Flight: FlightConfig{
			Gravity:       0.00001,
			Drag:          500,
			Thrust:        0.00002,
			StartAltitude: 1,
		},
		Terrain: TerrainConfig{
			Margin:        20,
			ColumnSpacing: 10,
			RowSpacing:    25,
			DepthScale:    0.25,
			Seed:          1,
			Octaves:       4,
			Size:          512,
		},
		Camera: CameraConfig{
			FOV:       40,
			Aspect:    1,
			Near:      0.5,
			Far:       3,
			EyeHeight: 1.5,
			EyeDepth:  1,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.8,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
