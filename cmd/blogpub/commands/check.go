package commands

import (
	"fmt"

	"github.com/nnduc/blogpub/internal/config"
	"github.com/nnduc/blogpub/internal/content"
	pubErrors "github.com/nnduc/blogpub/internal/errors"
	"github.com/nnduc/blogpub/internal/linkcheck"
)

// CheckCmd implements the 'check' command: content store linting.
type CheckCmd struct {
	Links bool `help:"Also verify relative links in post bodies"`
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	store := content.NewStore(cfg.Content.Dir, cfg.Content.ExcerptMarker)
	res, err := store.Scan()
	if err != nil {
		return pubErrors.ContentError(cfg.Content.Dir, err)
	}

	errors := 0
	warnings := 0

	for _, p := range res.Problems {
		fmt.Printf("ERROR  %s: %v\n", p.Path, p.Err)
		errors++
	}

	for _, post := range res.Posts {
		if post.Title == "" {
			fmt.Printf("ERROR  %s: missing title\n", post.Path)
			errors++
		}
		if post.Date.IsZero() {
			fmt.Printf("ERROR  %s: missing date\n", post.Path)
			errors++
		}
		// Path-year grouping is a convention, not a rule: mismatches warn.
		if y := post.PathYear(); y != 0 && !post.Date.IsZero() && y != post.Date.Year() {
			fmt.Printf("WARN   %s: stored under %d but dated %d\n", post.Path, y, post.Date.Year())
			warnings++
		}
		// Same for filenames: they follow the title slug unless renamed.
		if slug := post.Slug(); slug != "" && post.FileSlug() != slug {
			fmt.Printf("WARN   %s: filename diverges from title slug %q\n", post.Path, slug)
			warnings++
		}

		if c.Links {
			broken, lerr := linkcheck.VerifyPost(cfg.Content.Dir, post.Path, []byte(post.Body))
			if lerr != nil {
				fmt.Printf("ERROR  %s: %v\n", post.Path, lerr)
				errors++
				continue
			}
			for _, b := range broken {
				fmt.Printf("WARN   %s: broken link %s\n", b.Post, b.URL)
				warnings++
			}
		}
	}

	fmt.Printf("%d posts checked, %d errors, %d warnings\n", len(res.Posts), errors, warnings)
	if errors > 0 {
		return pubErrors.New(pubErrors.CategoryContent, pubErrors.SeverityError, "content check failed").
			WithContext("errors", errors)
	}
	return nil
}
