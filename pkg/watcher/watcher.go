// Package watcher reloads the annotated photograph when it changes on
// disk, so re-exporting an image from an editor updates the session
// without restarting the annotator.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/posekit/gonio/pkg/log"
)

// FileWatcher watches a single file for changes and triggers a callback
// after a debounce interval. The parent directory is watched rather than
// the file itself, because editors commonly replace files on save, which
// would silently drop a watch on the old inode.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   log.Logger

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// New creates a watcher for the given file.
func New(path string, debounce time.Duration, logger log.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		logger:   logger,
	}, nil
}

// Start begins delivering change notifications. The callback receives the
// watched path and runs on the watcher's goroutine after the debounce
// interval has passed without further events.
func (fw *FileWatcher) Start(callback func(string)) {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if event.Name != fw.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				fw.logger.Debug("file event", log.String("path", event.Name), log.String("op", event.Op.String()))
				fw.schedule(callback)

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.logger.Warn("watcher error", log.Err(err))
			}
		}
	}()
}

// schedule restarts the debounce timer for a change burst.
func (fw *FileWatcher) schedule(callback func(string)) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return
	}
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, func() {
		callback(fw.path)
	})
}

// Close stops the watcher and cancels any pending notification.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	fw.closed = true
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}
