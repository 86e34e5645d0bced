package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nnduc/blogpub/internal/logfields"
)

// Store reads posts from a content directory.
type Store struct {
	dir           string
	excerptMarker string
}

// NewStore creates a content store reader rooted at dir.
func NewStore(dir, excerptMarker string) *Store {
	return &Store{dir: dir, excerptMarker: excerptMarker}
}

// Dir returns the content store root.
func (s *Store) Dir() string { return s.dir }

// ScanResult carries the posts that parsed plus per-file problems. A broken
// post never aborts the scan; callers decide how strict to be.
type ScanResult struct {
	Posts    []*Post
	Problems []Problem
}

// Problem is a per-file parse failure found during a scan.
type Problem struct {
	Path string
	Err  error
}

// Scan walks the content tree, parses every Markdown file, and returns
// posts sorted by publication date, newest first.
func (s *Store) Scan() (*ScanResult, error) {
	if _, err := os.Stat(s.dir); err != nil {
		return nil, fmt.Errorf("content directory not accessible: %w", err)
	}

	result := &ScanResult{}
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories like .git anywhere in the tree.
			if strings.HasPrefix(d.Name(), ".") && path != s.dir {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".md" && ext != ".markdown" {
			return nil
		}

		rel, relErr := filepath.Rel(s.dir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			result.Problems = append(result.Problems, Problem{Path: rel, Err: readErr})
			return nil
		}

		post, parseErr := Parse(rel, raw, s.excerptMarker)
		if parseErr != nil {
			slog.Debug("Skipping unparseable post", logfields.Post(rel), logfields.Error(parseErr))
			result.Problems = append(result.Problems, Problem{Path: rel, Err: parseErr})
			return nil
		}
		result.Posts = append(result.Posts, post)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk content directory: %w", err)
	}

	sort.SliceStable(result.Posts, func(i, j int) bool {
		return result.Posts[i].Date.After(result.Posts[j].Date)
	})
	return result, nil
}
