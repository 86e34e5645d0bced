package linkcheck

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// BrokenLink is a relative link whose target does not exist on disk.
type BrokenLink struct {
	Post string // post path within the content store
	URL  string
}

// VerifyPost checks the relative links of one post body against the
// content store on disk. postPath is slash-separated and relative to root.
func VerifyPost(root, postPath string, body []byte) ([]BrokenLink, error) {
	links, err := ExtractFromMarkdown(body)
	if err != nil {
		return nil, err
	}

	var broken []BrokenLink
	for _, l := range links {
		if !l.IsRelative {
			continue
		}
		target := l.URL
		if u, perr := url.Parse(target); perr == nil {
			target = u.Path
		}
		if target == "" || strings.HasPrefix(target, "/") {
			// Site-absolute paths resolve against the generated site, which
			// does not exist at check time.
			continue
		}

		resolved := filepath.Join(root, filepath.FromSlash(path.Join(path.Dir(postPath), target)))
		if _, statErr := os.Stat(resolved); statErr != nil {
			broken = append(broken, BrokenLink{Post: postPath, URL: l.URL})
		}
	}
	return broken, nil
}
