// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs a callback when any of a fixed set of files
// changes. Each file's parent directory is watched so editors that save
// by rename are still seen.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 500 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Func receives the changed paths of one debounced burst, sorted.
type Func func(ctx context.Context, changed []string)

// Watcher watches a set of files. Create it with New and call Run once.
type Watcher struct {
	fs       *fsnotify.Watcher
	targets  map[string]bool
	debounce time.Duration
	log      *zap.Logger
}

// New starts watching the parent directories of paths.
func New(paths []string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("watch: no paths")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		targets:  make(map[string]bool),
		debounce: debounce,
		log:      log,
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run blocks until ctx is done, calling fn after each burst of changes
// settles for the debounce interval. The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, fn Func) error {
	defer w.fs.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			if !w.targets[name] || ev.Op&relevantOps == 0 {
				continue
			}
			w.log.Debug("file changed", zap.String("path", name), zap.String("op", ev.Op.String()))
			pending[name] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			fn(ctx, changed)
		}
	}
}

// Watch is New followed by Run.
func Watch(ctx context.Context, paths []string, debounce time.Duration, log *zap.Logger, fn Func) error {
	w, err := New(paths, debounce, log)
	if err != nil {
		return err
	}
	return w.Run(ctx, fn)
}
