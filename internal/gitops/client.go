// Package gitops wraps the go-git operations the publish pipeline needs:
// a single-branch shallow clone of the publishing branch, and HEAD
// inspection for run reports.
package gitops

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/nnduc/blogpub/internal/logfields"
)

// Client performs git operations against the staging directory.
type Client struct {
	progress bool
}

// NewClient creates a git client. With progress enabled, transfer output
// goes to stdout the way the upstream git tools print it.
func NewClient(progress bool) *Client {
	return &Client{progress: progress}
}

// CloneBranch clones a single branch of remoteURL into dir with the given
// depth. Depth 1 fetches only the latest commit.
func (c *Client) CloneBranch(ctx context.Context, remoteURL, branch string, depth int, dir string) error {
	slog.Debug("Cloning publishing branch",
		logfields.URL(remoteURL), logfields.Branch(branch), logfields.Path(dir), slog.Int("depth", depth))

	opts := &git.CloneOptions{
		URL:           remoteURL,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
	}
	if depth > 0 {
		opts.Depth = depth
	}
	if c.progress {
		opts.Progress = os.Stdout
	}

	repo, err := git.PlainCloneContext(ctx, dir, false, opts)
	if err != nil {
		return classifyCloneError(remoteURL, err)
	}

	if ref, herr := repo.Head(); herr == nil {
		slog.Info("Publishing branch cloned",
			logfields.URL(remoteURL), logfields.Branch(branch),
			slog.String("commit", ref.Hash().String()[:8]))
	} else {
		slog.Info("Publishing branch cloned", logfields.URL(remoteURL), logfields.Branch(branch))
	}
	return nil
}

// HeadCommit returns the full HEAD commit hash of the repository at dir.
func (c *Client) HeadCommit(dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", dir, err)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD in %s: %w", dir, err)
	}
	return ref.Hash().String(), nil
}
