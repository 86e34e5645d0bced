package content

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nnduc/blogpub/internal/frontmatter"
)

// Scaffold composes the storage path and initial document for a new post:
// the file lives under the year-grouping convention with a filename derived
// from the title slug, and carries a frontmatter header dated now.
func Scaffold(title, layout string, now time.Time) (relPath string, doc []byte, err error) {
	slug := Slugify(title)
	if slug == "" {
		return "", nil, fmt.Errorf("title %q produces an empty slug", title)
	}

	header := struct {
		Layout string `yaml:"layout"`
		Title  string `yaml:"title"`
		Date   string `yaml:"date"`
	}{
		Layout: layout,
		Title:  title,
		Date:   now.Format("2006-01-02 15:04:05 -0700"),
	}
	fm, err := yaml.Marshal(header)
	if err != nil {
		return "", nil, fmt.Errorf("marshal frontmatter: %w", err)
	}

	relPath = fmt.Sprintf("%d/%s.md", now.Year(), slug)
	doc = frontmatter.Join(fm, []byte("\n"), frontmatter.Style{Newline: "\n"})
	return relPath, doc, nil
}
