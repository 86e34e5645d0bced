package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/nnduc/blogpub/internal/config"
	pubErrors "github.com/nnduc/blogpub/internal/errors"
	"github.com/nnduc/blogpub/internal/generator"
	"github.com/nnduc/blogpub/internal/preview"
)

// ServeCmd implements the 'serve' command: local preview with rebuild on
// content changes.
type ServeCmd struct {
	Addr   string `short:"a" help:"Listen address" default:"127.0.0.1:4000"`
	Output string `short:"o" help:"Generated output directory to serve" default:"public"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := generator.NewCommandRunner(cfg.Generator.BuildCmd, cfg.Generator.DeployCmd, ".", true)
	rebuild := func(ctx context.Context) error {
		_, berr := runner.Build(ctx)
		return berr
	}

	fmt.Printf("Previewing %s at http://%s (Ctrl-C to stop)\n", cfg.Site.Title, s.Addr)
	server := preview.NewServer(cfg.Content.Dir, s.Output, s.Addr, rebuild)
	if err := server.Run(ctx); err != nil {
		return pubErrors.Wrap(err, pubErrors.CategoryRuntime, pubErrors.SeverityFatal, "preview server")
	}
	return nil
}
