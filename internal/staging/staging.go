// Package staging owns the transient deployment-staging directory: the
// shallow clone of the publishing branch into which generated output is
// placed before being pushed.
package staging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nnduc/blogpub/internal/logfields"
)

// Manager handles staging directory operations. The directory is destroyed
// and recreated on every publish run; nothing persists across runs except
// the clone's own version-control metadata between the clone and deploy
// steps of a single run.
type Manager struct {
	dir string
}

// NewManager creates a staging manager for the given directory.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Path returns the staging directory path.
func (m *Manager) Path() string { return m.dir }

// Exists reports whether the staging directory currently exists.
func (m *Manager) Exists() bool {
	info, err := os.Stat(m.dir)
	return err == nil && info.IsDir()
}

// Clear removes the staging directory recursively. A directory that is
// already absent is success, not an error.
func (m *Manager) Clear() error {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		slog.Debug("Staging directory already absent", logfields.Path(m.dir))
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("failed to remove staging directory %s: %w", m.dir, err)
	}
	slog.Debug("Staging directory removed", logfields.Path(m.dir))
	return nil
}

// ClearContents removes every entry inside the staging directory except
// .git, keeping the clone's repository linkage intact so the later deploy
// step can push from it.
func (m *Manager) ClearContents() error {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("failed to read staging directory %s: %w", m.dir, err)
	}
	removed := 0
	for _, entry := range entries {
		if entry.Name() == ".git" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(m.dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	slog.Debug("Staging contents cleared", logfields.Path(m.dir), slog.Int("removed", removed))
	return nil
}

// HasRepository reports whether the staging directory holds a git clone.
func (m *Manager) HasRepository() bool {
	info, err := os.Stat(filepath.Join(m.dir, ".git"))
	return err == nil && info.IsDir()
}
