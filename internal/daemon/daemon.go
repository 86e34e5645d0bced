// Package daemon runs the publish pipeline on a schedule, exposing
// Prometheus metrics and optional NATS run notifications. One-shot use
// stays in the CLI; this exists for hosts that publish unattended.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/nnduc/blogpub/internal/config"
	"github.com/nnduc/blogpub/internal/logfields"
	"github.com/nnduc/blogpub/internal/metrics"
	"github.com/nnduc/blogpub/internal/pipeline"
)

// PublishFunc runs one publish and returns its report.
type PublishFunc func(ctx context.Context) (*pipeline.Report, error)

// Daemon schedules periodic publishes.
type Daemon struct {
	cfg      config.DaemonConfig
	publish  PublishFunc
	notifier *Notifier
	registry *prom.Registry
}

// New creates a daemon. notifier may be nil.
func New(cfg config.DaemonConfig, publish PublishFunc, notifier *Notifier, registry *prom.Registry) *Daemon {
	return &Daemon{cfg: cfg, publish: publish, notifier: notifier, registry: registry}
}

// Run blocks until ctx is canceled, publishing every configured interval.
// The pipeline's own lock file makes an overlapping manual run fail fast
// rather than corrupt the staging directory.
func (d *Daemon) Run(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(d.cfg.Interval.Std()),
		gocron.NewTask(d.runOnce, ctx),
		gocron.WithName("scheduled-publish"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              d.cfg.Listen,
		Handler:           d.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("Daemon metrics listening", slog.String("addr", d.cfg.Listen))
		if serr := srv.ListenAndServe(); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(serr))
		}
	}()

	scheduler.Start()
	slog.Info("Daemon started", slog.Duration("interval", d.cfg.Interval.Std()))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	d.notifier.Close()
	return scheduler.Shutdown()
}

func (d *Daemon) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(d.registry))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

func (d *Daemon) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	report, err := d.publish(ctx)
	if err != nil {
		slog.Error("Scheduled publish failed", logfields.Error(err))
	}
	if report != nil {
		d.notifier.NotifyRun(report)
	}
}
