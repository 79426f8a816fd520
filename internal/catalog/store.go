package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDebounce is how long the watcher waits for writes to settle
const reloadDebounce = 250 * time.Millisecond

// Store holds the current catalog snapshot for long-running processes.
// Readers always see a complete catalog; reloads swap it atomically.
type Store struct {
	path    string
	opts    Options
	current atomic.Pointer[Catalog]
	reloads atomic.Int64
}

// NewStore loads the catalog at path. When loading fails the store still
// serves an empty catalog and the load error is returned alongside it.
func NewStore(path string, opts Options) (*Store, error) {
	opts = opts.withDefaults()
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	s := &Store{path: abs, opts: opts}
	s.current.Store(Empty())
	if err := s.Reload(); err != nil {
		return s, err
	}
	return s, nil
}

// Catalog returns the current snapshot
func (s *Store) Catalog() *Catalog {
	return s.current.Load()
}

// Path returns the catalog file the store reads
func (s *Store) Path() string {
	return s.path
}

// Reloads returns how many successful loads the store has performed
func (s *Store) Reloads() int64 {
	return s.reloads.Load()
}

// Reload reads the catalog file again. On failure the previous snapshot is kept.
func (s *Store) Reload() error {
	c, err := Load(s.path, s.opts)
	if err != nil {
		return err
	}
	s.current.Store(c)
	s.reloads.Add(1)
	return nil
}

// Watch reloads the catalog whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file are seen.
func (s *Store) Watch(ctx context.Context) error {
	log := s.opts.Logger

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}
	log.Debug("watching catalog", zap.String("path", s.path))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := s.Reload(); err != nil {
				log.Warn("catalog reload failed, keeping previous snapshot", zap.Error(err))
				continue
			}
			log.Info("catalog reloaded", zap.Int("cards", s.Catalog().Len()))

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("catalog watcher error", zap.Error(err))
		}
	}
}
