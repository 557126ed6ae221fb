package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Store holds the catalog currently served to pages.
type Store struct {
	mu      sync.RWMutex
	current *Catalog
	path    string
	logger  *slog.Logger
}

// NewStore loads the catalog at path, or the embedded default when path is
// empty.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{current: c, path: path, logger: logger}, nil
}

// Current returns the catalog in effect. Callers must not modify it.
func (s *Store) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload re-reads the file. On failure the previous catalog stays in place.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	c, err := Load(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
	return nil
}

// Watch reloads the catalog whenever its file changes, until ctx is done.
// The parent directory is watched because editors often replace files by
// renaming a temporary file over them.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return errors.New("catalog watch requires a file path")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go s.watchLoop(ctx, watcher)
	s.logger.Debug("Watching catalog for changes", "path", s.path)
	return nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()
	target := filepath.Clean(s.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Error("Catalog reload failed, keeping previous version", "path", s.path, "error", err)
				continue
			}
			s.logger.Info("Catalog reloaded", "path", s.path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("Catalog watcher error", "error", err)
		}
	}
}
