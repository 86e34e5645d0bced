// Package linkcheck renders post bodies and verifies that their relative
// links resolve within the content store. External URLs are reported but
// never fetched.
package linkcheck

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
)

// Link represents a link extracted from rendered HTML.
type Link struct {
	URL        string // the href/src value as written
	Tag        string // HTML tag (a, img)
	IsRelative bool   // true when the link has no scheme or host
}

var renderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderMarkdown renders a Markdown body to HTML.
func RenderMarkdown(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderer.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("markdown render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// ExtractLinks parses HTML and returns all a/img link targets.
func ExtractLinks(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			var attr string
			switch n.Data {
			case "a":
				attr = "href"
			case "img":
				attr = "src"
			}
			if attr != "" {
				for _, a := range n.Attr {
					if a.Key != attr || a.Val == "" {
						continue
					}
					links = append(links, Link{
						URL:        a.Val,
						Tag:        n.Data,
						IsRelative: isRelative(a.Val),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func isRelative(raw string) bool {
	if strings.HasPrefix(raw, "#") || strings.HasPrefix(raw, "mailto:") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// ExtractFromMarkdown renders a Markdown body and extracts its links.
func ExtractFromMarkdown(body []byte) ([]Link, error) {
	rendered, err := RenderMarkdown(body)
	if err != nil {
		return nil, err
	}
	return ExtractLinks(bytes.NewReader(rendered))
}
