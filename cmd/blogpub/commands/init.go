package commands

import (
	"fmt"

	"github.com/nnduc/blogpub/internal/config"
	pubErrors "github.com/nnduc/blogpub/internal/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return pubErrors.Wrap(err, pubErrors.CategoryConfig, pubErrors.SeverityFatal, "init config")
	}
	fmt.Printf("Created configuration file: %s\n", root.Config)
	fmt.Println("Edit deploy.remote_url before running 'blogpub deploy'.")
	return nil
}
