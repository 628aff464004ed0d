// Package watcher implements debounced file system watching for rebuilds.
package watcher

import (
	"context"
	"iter"
	"os"
	"path"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/unbundle/internal/adapters/fs"
	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// skippedDirectories are directory names that are never watched.
var skippedDirectories = map[string]bool{
	".git":               true,
	".jj":                true,
	domain.VendorDirName: true,
	domain.StateDirName:  true,
}

const batchChannelBuffer = 16

// DefaultDebounceWindow is the default quiet window before a batch is delivered.
const DefaultDebounceWindow = 100 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	walker    *fs.Walker
	logger    ports.Logger
	debouncer *Debouncer
	batches   chan []ports.WatchEvent
	closeOnce sync.Once
	done      chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewWatcher creates a new file system watcher delivering batches after window.
func NewWatcher(walker *fs.Walker, logger ports.Logger, window time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}
	w := &Watcher{
		fsWatcher: fsWatcher,
		walker:    walker,
		logger:    logger,
		batches:   make(chan []ports.WatchEvent, batchChannelBuffer),
		done:      make(chan struct{}),
	}
	w.debouncer = NewDebouncer(window, w.deliver)
	return w, nil
}

// Start begins watching root recursively. Events are processed until ctx is
// canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context, root string) error {
	if err := w.addRecursive(root); err != nil {
		return err
	}
	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	w.closeOnce.Do(func() { close(w.done) })
	return w.fsWatcher.Close()
}

// Batches returns an iterator of debounced change sets.
// It ends when the watcher stops.
func (w *Watcher) Batches() iter.Seq[[]ports.WatchEvent] {
	return func(yield func([]ports.WatchEvent) bool) {
		for batch := range w.batches {
			if !yield(batch) {
				return
			}
		}
	}
}

func (w *Watcher) addRecursive(root string) error {
	for dir := range w.walker.WalkDirs(root, shouldSkip) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
		}
	}
	return nil
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			watchEvent, ok := convertEvent(event)
			if !ok {
				continue
			}
			w.debouncer.Add(watchEvent)

			if watchEvent.Operation == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skippedDirectories[info.Name()] {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.Warn(err.Error())
					}
				}
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: file system error: " + err.Error())
		}
	}
}

// shutdown drops pending events and ends Batches.
func (w *Watcher) shutdown() {
	w.debouncer.Stop()
	w.closeOnce.Do(func() { close(w.done) })

	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	close(w.batches)
}

// deliver hands a batch to Batches unless the watcher has stopped.
func (w *Watcher) deliver(batch []ports.WatchEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.batches <- batch:
	case <-w.done:
	}
}

func shouldSkip(rel string) bool {
	return skippedDirectories[path.Base(rel)]
}

func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	switch {
	case event.Has(fsnotify.Write):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpWrite}, true
	case event.Has(fsnotify.Create):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpCreate}, true
	case event.Has(fsnotify.Remove):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpRemove}, true
	case event.Has(fsnotify.Rename):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpRename}, true
	default:
		return ports.WatchEvent{}, false
	}
}
