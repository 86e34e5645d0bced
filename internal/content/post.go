// Package content models the content store: the directory tree of authored
// Markdown posts that is the input to the publishing pipeline. Posts are
// read-only here; the pipeline never mutates authored content.
package content

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/nnduc/blogpub/internal/frontmatter"
)

// DefaultExcerptMarker is the inline marker dividing a post's excerpt from
// the rest of its body.
const DefaultExcerptMarker = "<!-- more -->"

// Post is one authored document, identified by its path within the content
// store and its publication date.
type Post struct {
	// Path is relative to the content store root, slash-separated.
	Path   string
	Layout string
	Title  string
	Date   time.Time
	Tags   []string

	// Body is the full Markdown body. If HasExcerpt, Excerpt holds the
	// text before the inline marker.
	Body       string
	Excerpt    string
	HasExcerpt bool
}

// Slug returns the URL slug derived from the post title.
func (p *Post) Slug() string { return Slugify(p.Title) }

// FileSlug returns the post's filename without directories or extension.
// By convention it matches Slug; check reports a drift as a warning.
func (p *Post) FileSlug() string {
	base := path.Base(p.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

// PathYear returns the year encoded in the post's storage path prefix
// (e.g. "2019/swiftui-diffing.md" -> 2019), or 0 when the path has no
// year-based grouping. The convention is observed, never enforced: a
// mismatch with the frontmatter date is a lint warning, not an error.
func (p *Post) PathYear() int {
	first, _, found := strings.Cut(p.Path, "/")
	if !found {
		return 0
	}
	if len(first) != 4 {
		return 0
	}
	year, err := strconv.Atoi(first)
	if err != nil {
		return 0
	}
	return year
}

// Parse builds a Post from a raw document. relPath is the slash-separated
// path within the content store.
func Parse(relPath string, raw []byte, excerptMarker string) (*Post, error) {
	fm, body, had, _, err := frontmatter.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", relPath, err)
	}
	if !had {
		return nil, fmt.Errorf("%s: missing frontmatter header", relPath)
	}

	header, err := frontmatter.DecodeHeader(fm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", relPath, err)
	}

	if excerptMarker == "" {
		excerptMarker = DefaultExcerptMarker
	}

	post := &Post{
		Path:   relPath,
		Layout: header.Layout,
		Title:  header.Title,
		Date:   header.Date.Time,
		Tags:   header.Tags,
		Body:   string(body),
	}
	if excerpt, _, found := strings.Cut(post.Body, excerptMarker); found {
		post.Excerpt = strings.TrimSpace(excerpt)
		post.HasExcerpt = true
	}
	return post, nil
}
