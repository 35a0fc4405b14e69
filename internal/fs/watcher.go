package fs

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/dragboard/internal/debug"
)

// DefaultDebounce is how long a directory must stay quiet before a change
// is reported.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports directories whose contents changed, once per burst of
// filesystem events.
type Watcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	watching map[string]bool
	notify   chan string
	done     chan struct{}
	debounce time.Duration
}

// NewWatcher starts a watcher. A non-positive debounce selects
// DefaultDebounce.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	dw := &Watcher{
		watcher:  w,
		watching: make(map[string]bool),
		notify:   make(chan string, 10),
		done:     make(chan struct{}),
		debounce: debounce,
	}
	go dw.run()
	return dw, nil
}

func (dw *Watcher) run() {
	lastEvent := make(map[string]time.Time)
	ticker := time.NewTicker(max(dw.debounce/2, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-dw.done:
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if !(event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Write)) {
				continue
			}

			// fsnotify reports the changed entry; map it to the watched directory
			parentDir := filepath.Dir(event.Name)
			dw.mu.Lock()
			switch {
			case dw.watching[parentDir]:
				lastEvent[parentDir] = time.Now()
			case dw.watching[event.Name]:
				lastEvent[event.Name] = time.Now()
			}
			dw.mu.Unlock()
			debug.Log(debug.FS, "Watcher: %s on %s", event.Op, event.Name)

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.FS, "Watcher error: %v", err)

		case now := <-ticker.C:
			for dir, at := range lastEvent {
				if now.Sub(at) < dw.debounce {
					continue
				}
				select {
				case dw.notify <- dir:
					debug.Log(debug.FS, "Watcher: change in %s", dir)
				default:
					// Channel full; the reader will rescan anyway
				}
				delete(lastEvent, dir)
			}
		}
	}
}

// Watch adds a directory to the watch list
func (dw *Watcher) Watch(path string) error {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	path = filepath.Clean(path)
	if dw.watching[path] {
		return nil
	}
	if err := dw.watcher.Add(path); err != nil {
		return err
	}
	dw.watching[path] = true
	debug.Log(debug.FS, "Watcher: watching %s", path)
	return nil
}

// Unwatch removes a directory from the watch list
func (dw *Watcher) Unwatch(path string) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	path = filepath.Clean(path)
	if !dw.watching[path] {
		return
	}
	if err := dw.watcher.Remove(path); err != nil {
		// The directory may already be gone
		debug.Log(debug.FS, "Watcher: unwatch %s: %v", path, err)
	}
	delete(dw.watching, path)
}

// UnwatchAll clears the watch list
func (dw *Watcher) UnwatchAll() {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	for path := range dw.watching {
		dw.watcher.Remove(path)
	}
	dw.watching = make(map[string]bool)
}

// Changes returns the channel that receives changed directory paths
func (dw *Watcher) Changes() <-chan string {
	return dw.notify
}

// Close shuts down the watcher
func (dw *Watcher) Close() error {
	close(dw.done)
	return dw.watcher.Close()
}
