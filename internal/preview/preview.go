// Package preview serves the generated site locally and re-runs the
// generator's build when the content store changes. It never deploys.
package preview

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nnduc/blogpub/internal/logfields"
)

const debounceWindow = 300 * time.Millisecond

// RebuildFunc re-runs the generator build.
type RebuildFunc func(ctx context.Context) error

// Server is a local preview server with content watching.
type Server struct {
	contentDir string
	outputDir  string
	addr       string
	rebuild    RebuildFunc
}

// NewServer creates a preview server watching contentDir and serving outputDir.
func NewServer(contentDir, outputDir, addr string, rebuild RebuildFunc) *Server {
	return &Server{contentDir: contentDir, outputDir: outputDir, addr: addr, rebuild: rebuild}
}

// Run performs an initial build, then serves and watches until ctx is
// canceled. Rebuild failures keep the last good output on screen.
func (s *Server) Run(ctx context.Context) error {
	if err := s.rebuild(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := s.watchTree(watcher); err != nil {
		return err
	}

	go s.watchLoop(ctx, watcher)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           http.FileServer(http.Dir(s.outputDir)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Preview serving", slog.String("addr", s.addr), logfields.Path(s.outputDir))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// watchTree registers the content directory and all its subdirectories.
func (s *Server) watchTree(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(s.contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != s.contentDir {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	trigger := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceWindow, func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New directories must be added to the watch set.
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = watcher.Add(ev.Name)
				}
			}
			slog.Debug("Content changed", logfields.Path(ev.Name))
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-fire:
			if err := s.rebuild(ctx); err != nil {
				slog.Error("Rebuild failed, keeping previous output", logfields.Error(err))
			} else {
				slog.Info("Rebuilt after content change")
			}
		}
	}
}
