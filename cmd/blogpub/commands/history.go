package commands

import (
	"context"
	"fmt"

	"github.com/nnduc/blogpub/internal/config"
	pubErrors "github.com/nnduc/blogpub/internal/errors"
	"github.com/nnduc/blogpub/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Number of runs to show" default:"20"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if cfg.History.Disabled {
		return pubErrors.New(pubErrors.CategoryConfig, pubErrors.SeverityError, "history is disabled in configuration")
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return pubErrors.Wrap(err, pubErrors.CategoryRuntime, pubErrors.SeverityFatal, "open history store")
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return pubErrors.Wrap(err, pubErrors.CategoryRuntime, pubErrors.SeverityFatal, "read history")
	}
	if len(entries) == 0 {
		fmt.Println("No publish runs recorded yet.")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-8s  %s",
			e.StartedAt.Format("2006-01-02 15:04:05"),
			e.Outcome,
			e.RunID)
		if e.FailedStage != "" {
			line += fmt.Sprintf("  failed at %s", e.FailedStage)
		}
		if e.HeadCommit != "" {
			line += fmt.Sprintf("  @%.8s", e.HeadCommit)
		}
		fmt.Println(line)
	}
	return nil
}
