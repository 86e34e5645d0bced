package staging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClearAbsentDirectoryIsSuccess(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "never-created"))

	if mgr.Exists() {
		t.Fatal("directory should not exist")
	}
	if err := mgr.Clear(); err != nil {
		t.Fatalf("Clear() on absent directory should succeed, got: %v", err)
	}
}

func TestClearRemovesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "staging")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("old"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	mgr := NewManager(dir)
	if err := mgr.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("staging directory still exists after Clear: %s", dir)
	}
}

func TestClearContentsKeepsGitMetadata(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{".git/refs", "css", "2019"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o750); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
	for _, f := range []string{".git/HEAD", "index.html", "2019/post.html"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}

	mgr := NewManager(dir)
	if !mgr.HasRepository() {
		t.Fatal("expected HasRepository to be true")
	}
	if err := mgr.ClearContents(); err != nil {
		t.Fatalf("ClearContents() failed: %v", err)
	}

	// .git survives with its contents
	if _, err := os.Stat(filepath.Join(dir, ".git", "HEAD")); err != nil {
		t.Errorf(".git/HEAD should survive ClearContents: %v", err)
	}
	// everything else is gone
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != ".git" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only .git to remain, got %v", names)
	}
}

func TestClearContentsMissingDirectoryErrors(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent"))
	if err := mgr.ClearContents(); err == nil {
		t.Fatal("ClearContents on a missing directory must error")
	}
}
