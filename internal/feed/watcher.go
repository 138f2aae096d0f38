package feed

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher delivers debounced change events for a set of files. Editors
// fire bursts of writes; only the settled state matters here.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	changes chan ChangeEvent
	mu      sync.RWMutex
	done    chan struct{}
}

func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		files:   make(map[string]bool),
		changes: make(chan ChangeEvent, 8),
		done:    make(chan struct{}),
	}

	go w.watch()
	return w, nil
}

func (w *Watcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[absPath] {
		return nil // already watching
	}
	if err := w.watcher.Add(absPath); err != nil {
		return err
	}
	w.files[absPath] = true
	return nil
}

// Changes returns the event channel. It never closes while the watcher
// is open; Close tears it down.
func (w *Watcher) Changes() <-chan ChangeEvent {
	return w.changes
}

func (w *Watcher) watch() {
	debounce := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if timer, exists := debounce[event.Name]; exists {
					timer.Stop()
				}

				debounce[event.Name] = time.AfterFunc(100*time.Millisecond, func() {
					w.mu.RLock()
					watching := w.files[event.Name]
					w.mu.RUnlock()

					if watching {
						select {
						case w.changes <- ChangeEvent{Path: event.Name, Timestamp: time.Now()}:
						case <-w.done:
						}
					}
				})
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Keep watching; a transient error on one file should not
			// kill change delivery for the rest.

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
