package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/nnduc/blogpub/cmd/blogpub/commands"
	pubErrors "github.com/nnduc/blogpub/internal/errors"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("blogpub"),
		kong.Description("Publish a static blog: clean staging, clone the publishing branch, generate and deploy."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()})
	if err != nil {
		adapter := pubErrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		adapter.Report(err)
		os.Exit(adapter.ExitCodeFor(err))
	}
}
