package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/nnduc/blogpub/internal/config"
	"github.com/nnduc/blogpub/internal/generator"
	"github.com/nnduc/blogpub/internal/gitops"
	"github.com/nnduc/blogpub/internal/metrics"
	"github.com/nnduc/blogpub/internal/pipeline"
	"github.com/nnduc/blogpub/internal/staging"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"blogpub.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Deploy  DeployCmd  `cmd:"" help:"Publish the site: clean staging, clone the publishing branch, generate, deploy"`
	Build   BuildCmd   `cmd:"" help:"Run the generator's build step only, without deploying"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	New     NewCmd     `cmd:"" help:"Scaffold a new post in the content store"`
	List    ListCmd    `cmd:"" help:"List posts in the content store"`
	Check   CheckCmd   `cmd:"" help:"Lint the content store (frontmatter, dates, optionally links)"`
	Serve   ServeCmd   `cmd:"" help:"Preview the site locally, rebuilding on content changes"`
	History HistoryCmd `cmd:"" help:"Show recent publish runs"`
	Daemon  DaemonCmd  `cmd:"" help:"Publish on a schedule with metrics and optional notifications"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// newPublishPipeline assembles the real pipeline from configuration.
// The lock file lives next to the staging directory so concurrent manual
// and scheduled runs exclude each other.
func newPublishPipeline(cfg *config.Config, recorder metrics.Recorder) *pipeline.Pipeline {
	stager := staging.NewManager(cfg.Deploy.StagingDir)
	cloner := gitops.NewClient(true)
	runner := generator.NewCommandRunner(cfg.Generator.BuildCmd, cfg.Generator.DeployCmd, ".", true)
	lock := pipeline.NewLock(lockPath(cfg))

	opts := []pipeline.Option{pipeline.WithLock(lock)}
	if recorder != nil {
		opts = append(opts, pipeline.WithRecorder(recorder))
	}
	return pipeline.New(cfg.Deploy, stager, cloner, runner, opts...)
}

func lockPath(cfg *config.Config) string {
	return filepath.Clean(cfg.Deploy.StagingDir) + ".lock"
}
