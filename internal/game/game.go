// Package game wires the flight simulation to the window, renderer and
// optional services, and runs the frame loop.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/alien-lander/internal/config"
	"github.com/Faultbox/alien-lander/internal/engine/audio"
	"github.com/Faultbox/alien-lander/internal/engine/debug"
	"github.com/Faultbox/alien-lander/internal/engine/input"
	"github.com/Faultbox/alien-lander/internal/engine/renderer"
	"github.com/Faultbox/alien-lander/internal/engine/scene"
	"github.com/Faultbox/alien-lander/internal/engine/terrain"
	"github.com/Faultbox/alien-lander/internal/engine/window"
	"github.com/Faultbox/alien-lander/internal/logger"
	"github.com/Faultbox/alien-lander/internal/telemetry"
)

// Title is the window title shown before the first readout.
const Title = "Alien Lander"

// titleInterval is how often the readout in the title bar is refreshed.
const titleInterval = 250 * time.Millisecond

// pickResult is a height-field path chosen in the file dialog.
type pickResult struct {
	path string
	err  error
}

// Game is the interactive lander.
type Game struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	flight   *Context
	log      *zap.Logger

	rumble      *audio.Rumble
	exporter    *telemetry.Exporter
	stopMetrics context.CancelFunc
	metricsDone <-chan error

	screenshots   *debug.ScreenshotCapture
	captureFrame  bool
	picked        chan pickResult
	dialogPending bool
}

// New creates the window, GL renderer and flight context.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:         cfg,
		log:         logger.Named("game"),
		screenshots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "lander"),
		picked:      make(chan pickResult, 1),
	}

	g.log.Info("initializing lander",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	hf, err := LoadHeightfield(cfg.Terrain)
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		Background: scene.ColorBlack,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.flight = NewContext(cfg, g.renderer.Terrain())
	if err := g.flight.SetHeightfield(hf); err != nil {
		g.Close()
		return nil, err
	}
	if err := g.flight.Resize(dw, dh); err != nil {
		g.Close()
		return nil, err
	}

	g.input = input.New()

	if cfg.Audio.Enabled {
		g.rumble = audio.NewRumble(float64(cfg.Audio.Volume), time.Now().UnixNano())
		if err := g.rumble.Init(); err != nil {
			g.log.Warn("audio unavailable, continuing silent", zap.Error(err))
			g.rumble = nil
		}
	}

	if cfg.Metrics.Listen != "" {
		g.startMetrics(cfg.Metrics.Listen)
	}

	g.log.Info("lander initialized")
	return g, nil
}

func (g *Game) startMetrics(addr string) {
	g.exporter = telemetry.NewExporter()
	ctx, cancel := context.WithCancel(context.Background())
	g.stopMetrics = cancel
	g.metricsDone = g.exporter.Start(ctx, addr, g.log)
}

// Run starts the main loop and returns when the window closes, Esc is
// pressed or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	g.running = true

	limiter := NewFPSLimiter(g.cfg.Graphics.FPSLimit)
	fps := NewFPSCounter(time.Second, time.Now())
	lastTitle := time.Time{}

	g.log.Info("starting loop")

	for g.running {
		if ctx.Err() != nil {
			break
		}

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			if err := g.handleEvent(event); err != nil {
				return err
			}
		}
		g.applyPickedHeightfield()

		// 2. Map held keys to thrusters and step the flight
		thrusters := input.Thrusters(g.input.Controls(), g.cfg.Flight.Thrust)
		g.flight.SetThrusters(thrusters)
		tel := g.flight.Tick()

		if g.rumble != nil {
			g.rumble.SetThrust(float64(input.Level(thrusters, g.cfg.Flight.Thrust)))
		}

		// 3. Readout and metrics
		now := time.Now()
		if fps.Frame(now) {
			lines := telemetry.Format(tel, fps.FPS())
			g.log.Debug("telemetry",
				zap.String("alt", lines.Altitude),
				zap.String("fps", lines.FPS),
				zap.String("vel", lines.Velocity),
				zap.String("acc", lines.Acceleration),
				zap.Float32("terrain", g.flight.TerrainBelow()),
			)
			if lines.LowFPS {
				g.log.Warn("frame rate below threshold", zap.Float64("fps", fps.FPS()))
			}
		}
		if now.Sub(lastTitle) >= titleInterval {
			g.window.SetTitle(Title + " | " + telemetry.Format(tel, fps.FPS()).Title())
			lastTitle = now
		}
		if g.exporter != nil {
			g.exporter.Update(tel, fps.FPS())
		}

		// 4. Render
		g.renderer.Begin()
		g.flight.Draw()
		g.renderer.End()

		if g.captureFrame {
			g.captureFrame = false
			g.saveScreenshot()
		}

		// 5. Present
		g.window.SwapBuffers()
		limiter.Wait()
	}

	g.log.Info("loop finished", zap.Uint64("ticks", g.flight.Ticks()))
	return nil
}

func (g *Game) handleEvent(event input.Event) error {
	switch event.Type {
	case input.EventQuit:
		g.running = false

	case input.EventWindowResize:
		w, h := g.window.DrawableSize()
		g.renderer.Resize(w, h)
		if err := g.flight.Resize(w, h); err != nil {
			return fmt.Errorf("resize: %w", err)
		}

	case input.EventScreenshot:
		g.captureFrame = true

	case input.EventOpenHeightmap:
		g.openHeightmapDialog()
	}
	return nil
}

// openHeightmapDialog shows a native file dialog without blocking the
// loop. The choice is applied at the start of a later frame.
func (g *Game) openHeightmapDialog() {
	if g.dialogPending {
		return
	}
	g.dialogPending = true

	go func() {
		path, err := dialog.File().
			Filter("Height maps", "png", "jpg", "jpeg", "bmp", "tga").
			Filter("All Files", "*").
			Title("Open Height Map").
			Load()
		g.picked <- pickResult{path: path, err: err}
	}()
}

func (g *Game) applyPickedHeightfield() {
	var res pickResult
	select {
	case res = <-g.picked:
	default:
		return
	}
	g.dialogPending = false

	if res.err != nil {
		if !errors.Is(res.err, dialog.ErrCancelled) {
			g.log.Warn("file dialog failed", zap.Error(res.err))
		}
		return
	}

	hf, err := terrain.LoadHeightfield(res.path)
	if err != nil {
		g.log.Warn("cannot use height map", zap.String("path", res.path), zap.Error(err))
		return
	}
	if err := g.flight.SetHeightfield(hf); err != nil {
		g.log.Warn("cannot use height map", zap.String("path", res.path), zap.Error(err))
		return
	}
	g.log.Info("height map loaded",
		zap.String("path", res.path),
		zap.Int("width", hf.Width),
		zap.Int("height", hf.Height),
	)
}

func (g *Game) saveScreenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing lander")

	if g.stopMetrics != nil {
		g.stopMetrics()
		<-g.metricsDone
		g.stopMetrics = nil
	}
	if g.rumble != nil {
		g.rumble.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
		g.renderer = nil
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
}
