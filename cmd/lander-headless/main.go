// Package main flies the lander without a window: a scripted pilot
// descends until touchdown while telemetry is logged and, optionally,
// exported to Prometheus.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/alien-lander/internal/config"
	"github.com/Faultbox/alien-lander/internal/engine/scene"
	"github.com/Faultbox/alien-lander/internal/game"
	"github.com/Faultbox/alien-lander/internal/logger"
	"github.com/Faultbox/alien-lander/internal/telemetry"
)

var (
	flagTicks    = flag.Int("ticks", 20000, "Maximum ticks to simulate")
	flagLogEvery = flag.Int("log-every", 60, "Log telemetry every N ticks")
	flagFreeFall = flag.Bool("free-fall", false, "Disable the autopilot")
	flagYaw      = flag.Bool("yaw", false, "Hold the rotate thruster")
	flagForward  = flag.Bool("forward", false, "Hold the forward thruster")
	flagRealtime = flag.Bool("realtime", false, "Pace ticks at graphics.fps_limit")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("headless run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Named("headless")

	hf, err := game.LoadHeightfield(cfg.Terrain)
	if err != nil {
		return err
	}

	flight := game.NewContext(cfg, scene.NopBackend{})
	if err := flight.SetHeightfield(hf); err != nil {
		return err
	}
	if err := flight.Resize(cfg.Graphics.Width, cfg.Graphics.Height); err != nil {
		return err
	}

	var exporter *telemetry.Exporter
	if cfg.Metrics.Listen != "" {
		exporter = telemetry.NewExporter()
		mctx, cancel := context.WithCancel(ctx)
		done := exporter.Start(mctx, cfg.Metrics.Listen, log)
		defer func() {
			cancel()
			<-done
		}()
	}

	var pilot *game.Autopilot
	if !*flagFreeFall {
		pilot = game.NewAutopilot(cfg.Flight.Thrust)
		pilot.Yaw = *flagYaw
		pilot.Forward = *flagForward
	}

	limiter := game.NewFPSLimiter(0)
	if *flagRealtime {
		limiter = game.NewFPSLimiter(cfg.Graphics.FPSLimit)
	}

	log.Info("headless flight started",
		zap.Int("points", flight.Grid().PointsPerRow),
		zap.Int("rows", flight.Grid().RowCount),
		zap.Bool("autopilot", pilot != nil),
	)

	start := time.Now()
	tel := flight.State().Telemetry()
	for tick := 1; tick <= *flagTicks; tick++ {
		if ctx.Err() != nil {
			log.Info("interrupted", zap.Int("tick", tick))
			break
		}

		if pilot != nil {
			flight.SetThrusters(pilot.Thrusters(tel))
		}
		tel = flight.Tick()
		flight.Draw()

		if exporter != nil {
			exporter.Update(tel, 0)
		}
		if *flagLogEvery > 0 && tick%*flagLogEvery == 0 {
			lines := telemetry.Format(tel, 0)
			log.Info("telemetry",
				zap.Int("tick", tick),
				zap.String("alt", lines.Altitude),
				zap.String("vel", lines.Velocity),
				zap.String("acc", lines.Acceleration),
				zap.Float32("terrain", flight.TerrainBelow()),
			)
		}
		if tel.Landed {
			break
		}
		limiter.Wait()
	}

	log.Info("headless flight finished",
		zap.Uint64("ticks", flight.Ticks()),
		zap.Bool("landed", tel.Landed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
