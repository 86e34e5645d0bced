package gitops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// setupRemote initializes a local repository with a single commit on the
// given branch, usable as a clone source without network access.
func setupRemote(t *testing.T, branch string) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>site</html>"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := w.Add("index.html"); err != nil {
		t.Fatalf("add: %v", err)
	}
	hash, err := w.Commit("publish site", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), hash)
	if err := repo.Storer.SetReference(ref); err != nil {
		t.Fatalf("set branch ref: %v", err)
	}
	// Point HEAD at the publishing branch so clones resolve it.
	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(branch))
	if err := repo.Storer.SetReference(head); err != nil {
		t.Fatalf("set HEAD: %v", err)
	}
	return dir
}

func TestCloneBranch(t *testing.T) {
	remote := setupRemote(t, "publishing")
	dest := filepath.Join(t.TempDir(), "staging")

	client := NewClient(false)
	if err := client.CloneBranch(context.Background(), remote, "publishing", 0, dest); err != nil {
		t.Fatalf("CloneBranch failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, ".git")); err != nil {
		t.Fatalf("clone should create .git: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "index.html")); err != nil {
		t.Fatalf("clone should check out index.html: %v", err)
	}

	head, err := client.HeadCommit(dest)
	if err != nil {
		t.Fatalf("HeadCommit failed: %v", err)
	}
	if len(head) != 40 {
		t.Errorf("expected full commit hash, got %q", head)
	}

	// Single-branch clone should only track the publishing branch.
	repo, err := git.PlainOpen(dest)
	if err != nil {
		t.Fatalf("open clone: %v", err)
	}
	remoteCfg, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		t.Fatalf("remote: %v", err)
	}
	fetchSpecs := remoteCfg.Config().Fetch
	if len(fetchSpecs) != 1 {
		t.Fatalf("expected one fetch refspec, got %v", fetchSpecs)
	}
	want := config.RefSpec("+refs/heads/publishing:refs/remotes/origin/publishing")
	if fetchSpecs[0] != want {
		t.Errorf("unexpected refspec %s", fetchSpecs[0])
	}
}

func TestCloneBranchMissingBranch(t *testing.T) {
	remote := setupRemote(t, "publishing")
	dest := filepath.Join(t.TempDir(), "staging")

	client := NewClient(false)
	err := client.CloneBranch(context.Background(), remote, "does-not-exist", 0, dest)
	if err == nil {
		t.Fatal("cloning a missing branch must fail")
	}
}

func TestCloneBranchUnreachableRemote(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "staging")
	client := NewClient(false)
	err := client.CloneBranch(context.Background(), filepath.Join(t.TempDir(), "no-such-repo"), "publishing", 1, dest)
	if err == nil {
		t.Fatal("cloning a nonexistent remote must fail")
	}
}

func TestHeadCommitNotARepo(t *testing.T) {
	client := NewClient(false)
	if _, err := client.HeadCommit(t.TempDir()); err == nil {
		t.Fatal("HeadCommit on a plain directory must fail")
	}
}
