package commands

import (
	"fmt"
	"strings"

	"github.com/nnduc/blogpub/internal/config"
	"github.com/nnduc/blogpub/internal/content"
	pubErrors "github.com/nnduc/blogpub/internal/errors"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	Tag string `short:"t" help:"Only show posts with this tag"`
}

func (l *ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	store := content.NewStore(cfg.Content.Dir, cfg.Content.ExcerptMarker)
	res, err := store.Scan()
	if err != nil {
		return pubErrors.ContentError(cfg.Content.Dir, err)
	}

	shown := 0
	for _, post := range res.Posts {
		if l.Tag != "" && !hasTag(post.Tags, l.Tag) {
			continue
		}
		excerpt := " "
		if post.HasExcerpt {
			excerpt = "+"
		}
		tags := ""
		if len(post.Tags) > 0 {
			tags = "  [" + strings.Join(post.Tags, ", ") + "]"
		}
		fmt.Printf("%s %s  %s%s\n", excerpt, post.Date.Format("2006-01-02"), post.Title, tags)
		shown++
	}
	fmt.Printf("%d posts", shown)
	if len(res.Problems) > 0 {
		fmt.Printf(", %d files skipped (see 'blogpub check')", len(res.Problems))
	}
	fmt.Println()
	return nil
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}
