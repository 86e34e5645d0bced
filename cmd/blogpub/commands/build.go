package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/nnduc/blogpub/internal/config"
	pubErrors "github.com/nnduc/blogpub/internal/errors"
	"github.com/nnduc/blogpub/internal/generator"
)

const timeRound = 10 * time.Millisecond

// BuildCmd implements the 'build' command: run the generator's build step
// against the content store, with no cloning and no deploy.
type BuildCmd struct{}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := generator.NewCommandRunner(cfg.Generator.BuildCmd, cfg.Generator.DeployCmd, ".", true)
	res, err := runner.Build(ctx)
	if err != nil {
		pe := pubErrors.GeneratorError("build", err)
		if res != nil {
			pe = pe.WithContext("exit_code", res.ExitCode)
		}
		return pe
	}
	fmt.Printf("Site built in %s\n", res.Duration.Round(timeRound))
	return nil
}
