package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Faultbox/alien-lander/internal/flight"
	"github.com/Faultbox/alien-lander/internal/logger"
)

const namespace = "lander"

// Exporter publishes flight telemetry as Prometheus gauges. It owns its
// registry so several exporters can coexist in one process.
type Exporter struct {
	registry *prometheus.Registry

	altitude     prometheus.Gauge
	velocity     *prometheus.GaugeVec
	acceleration *prometheus.GaugeVec
	fps          prometheus.Gauge
	landed       prometheus.Gauge
	touchdowns   prometheus.Counter

	wasLanded bool
}

// NewExporter creates an exporter with all collectors registered.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		altitude: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "altitude",
			Help:      "Height above ground in texture units.",
		}),
		velocity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "velocity",
			Help:      "Velocity per tick by axis.",
		}, []string{"axis"}),
		acceleration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "acceleration",
			Help:      "Acceleration applied on the last tick by axis.",
		}, []string{"axis"}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fps",
			Help:      "Frames per second over the last sample window.",
		}),
		landed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "landed",
			Help:      "1 while the craft rests on the ground.",
		}),
		touchdowns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "touchdowns_total",
			Help:      "Transitions from flight to landed.",
		}),
	}

	e.registry.MustRegister(e.altitude, e.velocity, e.acceleration, e.fps, e.landed, e.touchdowns)
	return e
}

// Registry returns the exporter's registry.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Update records one snapshot. Call it from the tick loop only.
func (e *Exporter) Update(t flight.Telemetry, fps float64) {
	e.altitude.Set(float64(t.Altitude))
	setAxes(e.velocity, t.Velocity.X, t.Velocity.Y, t.Velocity.Z, t.Velocity.W)
	setAxes(e.acceleration, t.Acceleration.X, t.Acceleration.Y, t.Acceleration.Z, t.Acceleration.W)
	e.fps.Set(fps)

	if t.Landed {
		e.landed.Set(1)
		if !e.wasLanded {
			e.touchdowns.Inc()
		}
	} else {
		e.landed.Set(0)
	}
	e.wasLanded = t.Landed
}

func setAxes(g *prometheus.GaugeVec, x, y, z, r float32) {
	g.WithLabelValues("x").Set(float64(x))
	g.WithLabelValues("y").Set(float64(y))
	g.WithLabelValues("z").Set(float64(z))
	g.WithLabelValues("r").Set(float64(r))
}

// Handler returns the /metrics HTTP handler for this exporter's registry.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Serve listens on addr and serves /metrics until ctx is cancelled.
func (e *Exporter) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listen on %s: %w", addr, err)
	}
	return e.serve(ctx, ln)
}

// Start runs Serve in its own goroutine. A failure is logged on log. The
// returned channel receives Serve's result once it returns.
func (e *Exporter) Start(ctx context.Context, addr string, log *zap.Logger) <-chan error {
	done := make(chan error, 1)
	go func() {
		err := e.Serve(ctx, addr)
		if err != nil {
			log.Error("metrics endpoint stopped", zap.Error(err))
		}
		done <- err
	}()
	return done
}

func (e *Exporter) serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("metrics endpoint listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
