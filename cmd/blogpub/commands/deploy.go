package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/nnduc/blogpub/internal/config"
	"github.com/nnduc/blogpub/internal/history"
	"github.com/nnduc/blogpub/internal/logfields"
)

// DeployCmd implements the 'deploy' command: the full publish pipeline.
type DeployCmd struct{}

func (d *DeployCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForDeploy(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := newPublishPipeline(cfg, nil)
	report, runErr := p.Run(ctx)

	if !cfg.History.Disabled && report != nil {
		if store, herr := history.Open(cfg.History.Path); herr != nil {
			slog.Warn("History store unavailable", logfields.Error(herr))
		} else {
			if rerr := store.Record(context.Background(), report); rerr != nil {
				slog.Warn("Failed to record publish run", logfields.Error(rerr))
			}
			_ = store.Close()
		}
	}

	if runErr != nil {
		return runErr
	}
	fmt.Printf("Published %s in %s (run %s)\n", cfg.Site.Title, report.Duration().Round(timeRound), report.RunID)
	return nil
}
