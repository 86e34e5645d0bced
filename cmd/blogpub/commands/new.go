package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nnduc/blogpub/internal/config"
	"github.com/nnduc/blogpub/internal/content"
	pubErrors "github.com/nnduc/blogpub/internal/errors"
)

// NewCmd implements the 'new' command: scaffold a post in the content store.
type NewCmd struct {
	Title  string `arg:"" help:"Post title"`
	Layout string `help:"Post layout" default:"post"`
}

func (n *NewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	relPath, doc, err := content.Scaffold(n.Title, n.Layout, time.Now())
	if err != nil {
		return pubErrors.Wrap(err, pubErrors.CategoryValidation, pubErrors.SeverityFatal, "scaffold post")
	}

	target := filepath.Join(cfg.Content.Dir, filepath.FromSlash(relPath))
	if _, err := os.Stat(target); err == nil {
		return pubErrors.New(pubErrors.CategoryValidation, pubErrors.SeverityFatal, "post already exists").
			WithContext("path", target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return pubErrors.Wrap(err, pubErrors.CategoryFileSystem, pubErrors.SeverityFatal, "create post directory")
	}
	if err := os.WriteFile(target, doc, 0o644); err != nil {
		return pubErrors.Wrap(err, pubErrors.CategoryFileSystem, pubErrors.SeverityFatal, "write post")
	}

	fmt.Printf("Created %s\n", target)
	return nil
}
