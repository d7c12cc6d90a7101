// Package watch re-runs an action when report files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"numlens/internal/trace"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// Watcher observes a fixed set of files. Parent directories are watched
// so that files replaced by rename are still tracked.
type Watcher struct {
	w        *fsnotify.Watcher
	targets  map[string]struct{}
	debounce time.Duration
}

// New starts watching paths.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{w: w, targets: make(map[string]struct{}, len(paths)), debounce: debounce}
	if fw.debounce <= 0 {
		fw.debounce = DefaultDebounce
	}
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		fw.targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return fw, nil
}

// Close stops watching.
func (fw *Watcher) Close() error { return fw.w.Close() }

// Run calls fn with the sorted set of changed files after each quiet
// period. It returns when ctx is done, when the watcher is closed, or
// when fn fails.
func (fw *Watcher) Run(ctx context.Context, fn func(changed []string) error) error {
	tracer := trace.FromContext(ctx)
	pending := make(map[string]struct{})
	timer := time.NewTimer(fw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := fw.targets[name]; !ok {
				continue
			}
			pending[name] = struct{}{}
			timer.Reset(fw.debounce)
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			trace.Warn(tracer, "watch", err.Error())
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			slices.Sort(changed)
			clear(pending)
			trace.Point(tracer, trace.ScopeCommand, "change", fmt.Sprint(changed))
			if err := fn(changed); err != nil {
				return err
			}
		}
	}
}
