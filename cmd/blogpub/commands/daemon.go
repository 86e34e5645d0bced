package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/nnduc/blogpub/internal/config"
	"github.com/nnduc/blogpub/internal/daemon"
	pubErrors "github.com/nnduc/blogpub/internal/errors"
	"github.com/nnduc/blogpub/internal/history"
	"github.com/nnduc/blogpub/internal/logfields"
	"github.com/nnduc/blogpub/internal/metrics"
	"github.com/nnduc/blogpub/internal/pipeline"
)

// DaemonCmd implements the 'daemon' command: scheduled publishing.
type DaemonCmd struct{}

func (d *DaemonCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForDeploy(); err != nil {
		return err
	}

	registry := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	var store *history.Store
	if !cfg.History.Disabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return pubErrors.Wrap(err, pubErrors.CategoryRuntime, pubErrors.SeverityFatal, "open history store")
		}
		defer store.Close()
	}

	var notifier *daemon.Notifier
	if cfg.Daemon.NATSURL != "" {
		notifier, err = daemon.NewNotifier(cfg.Daemon.NATSURL, cfg.Daemon.NATSSubject)
		if err != nil {
			return pubErrors.Wrap(err, pubErrors.CategoryDaemon, pubErrors.SeverityFatal, "connect NATS")
		}
	}

	publish := func(ctx context.Context) (*pipeline.Report, error) {
		p := newPublishPipeline(cfg, recorder)
		report, runErr := p.Run(ctx)
		if store != nil && report != nil {
			if rerr := store.Record(context.Background(), report); rerr != nil {
				slog.Warn("Failed to record publish run", logfields.Error(rerr))
			}
		}
		return report, runErr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dm := daemon.New(cfg.Daemon, publish, notifier, registry)
	if err := dm.Run(ctx); err != nil {
		return pubErrors.Wrap(err, pubErrors.CategoryDaemon, pubErrors.SeverityFatal, "daemon")
	}
	return nil
}
