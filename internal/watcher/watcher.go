// Package watcher provides debounced file system watching for the data directory.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events produced by one atomic
// write (create temp, write, rename) into a single notification.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a directory for changes to a set of files and invokes a
// callback with debouncing. The directory is watched rather than the files
// because rename-over replaces the watched inode.
type Watcher struct {
	fsw      *fsnotify.Watcher
	names    []string
	delay    time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
}

// New creates a Watcher on dir that reacts to changes of the named files.
// An empty names list reacts to every file in dir.
func New(dir string, names []string, callback func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{
		fsw:      fsw,
		names:    names,
		delay:    DefaultDebounce,
		callback: callback,
	}, nil
}

// SetDebounce changes the quiet period. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.delay = d
}

// Run starts the watch loop. It blocks until the context is canceled or the
// watcher is closed. Errors from the underlying watcher are passed to the
// optional errFn callback.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.debounce()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return len(w.names) == 0 || slices.Contains(w.names, filepath.Base(event.Name))
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.callback)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
