// Package watch reports markdown files that are created or written on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// DefaultExtensions are the file extensions watched when none are given.
var DefaultExtensions = []string{".md", ".markdown"}

// Watcher wraps an fsnotify watcher with an extension and path filter.
type Watcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
	logger     *slog.Logger

	mu    sync.RWMutex
	dirs  map[string]bool // watched directories, every file counts
	files map[string]bool // watched single files
}

// New creates a Watcher for files with the given extensions.
func New(extensions []string, logger *slog.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		watcher:    w,
		extensions: extensions,
		logger:     logger,
		dirs:       make(map[string]bool),
		files:      make(map[string]bool),
	}, nil
}

// Watch starts monitoring paths, which may be files or directories, and sends
// the path of every matching file that is created or written. Watch may be
// called again to add paths while earlier calls are running. Single files
// are watched through their parent directory so that editors replacing the
// file are still seen. The channel is closed when ctx is done.
func (w *Watcher) Watch(ctx context.Context, paths ...string) (<-chan string, error) {
	for _, p := range paths {
		if err := w.add(p); err != nil {
			return nil, err
		}
	}

	events := make(chan string, 16)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if !w.matches(event.Name) {
					continue
				}
				select {
				case events <- event.Name:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watch error", "error", err)
			}
		}
	}()

	return events, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) add(path string) error {
	clean := filepath.Clean(path)
	info, err := os.Stat(clean)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	dir := clean
	w.mu.Lock()
	if info.IsDir() {
		w.dirs[clean] = true
	} else {
		dir = filepath.Dir(clean)
		w.files[clean] = true
	}
	w.mu.Unlock()
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	return nil
}

func (w *Watcher) matches(name string) bool {
	clean := filepath.Clean(name)
	if !slices.Contains(w.extensions, filepath.Ext(clean)) {
		return false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[clean] || w.dirs[filepath.Dir(clean)]
}
