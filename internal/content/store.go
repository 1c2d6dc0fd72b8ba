package content

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 250 * time.Millisecond

// Store holds the current fallback document. Readers always see a complete
// document; reloads swap it atomically.
type Store struct {
	path    string
	current atomic.Pointer[Defaults]
	logger  *slog.Logger
}

// NewStore loads the fallback document from path, or the embedded document
// when path is empty.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	d, err := LoadDefaults(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, logger: logger}
	s.current.Store(d)
	return s, nil
}

// Current returns the fallback document in effect.
func (s *Store) Current() *Defaults {
	return s.current.Load()
}

// Reload rereads the document from disk. On error the previous document
// stays in effect.
func (s *Store) Reload() error {
	d, err := LoadDefaults(s.path)
	if err != nil {
		return err
	}
	s.current.Store(d)
	return nil
}

// Watch reloads the document whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are followed. Watching the embedded document is a no-op.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("defaults: watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("defaults: watch %s: %w", s.path, err)
	}

	go s.watchLoop(ctx, watcher)
	return nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(s.path)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				if err := s.Reload(); err != nil {
					s.logger.Error("defaults reload failed, keeping previous", "path", s.path, "error", err)
					return
				}
				s.logger.Info("defaults reloaded", "path", s.path)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("defaults watcher error", "error", err)
		}
	}
}
