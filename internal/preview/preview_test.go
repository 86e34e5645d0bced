package preview

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInitialBuildFailureAborts(t *testing.T) {
	s := NewServer(t.TempDir(), t.TempDir(), "127.0.0.1:0", func(ctx context.Context) error {
		return os.ErrPermission
	})
	err := s.Run(context.Background())
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestWatchRebuildsOnContentChange(t *testing.T) {
	contentDir := t.TempDir()
	outputDir := t.TempDir()

	var builds atomic.Int32
	s := NewServer(contentDir, outputDir, "127.0.0.1:0", func(ctx context.Context) error {
		builds.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// Wait for the initial build before touching content.
	require.Eventually(t, func() bool { return builds.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "new-post.md"),
		[]byte("---\ntitle: New\ndate: 2024-01-01\n---\nbody\n"), 0o600))

	assert.Eventually(t, func() bool { return builds.Load() >= 2 }, 3*time.Second, 20*time.Millisecond,
		"a content write should trigger a rebuild")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("preview server did not shut down")
	}
}
