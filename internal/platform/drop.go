// Package platform receives files dropped on the window by other programs.
package platform

import (
	"sync"

	"github.com/justyntemme/dragboard/internal/debug"
)

// DropHandler is called with the paths of an external drop. It may run on
// the window's thread and must not block.
type DropHandler func(paths []string)

var (
	dropMu      sync.Mutex
	dropHandler DropHandler
	pendingDrop []string
)

// SetDropHandler sets the callback for external drops. Drops that arrived
// before a handler was set are delivered to it at once.
func SetDropHandler(handler DropHandler) {
	dropMu.Lock()
	dropHandler = handler
	pending := pendingDrop
	if handler != nil {
		pendingDrop = nil
	}
	dropMu.Unlock()

	if handler != nil && len(pending) > 0 {
		debug.Log(debug.APP, "External drop: delivering %d queued paths", len(pending))
		handler(pending)
	}
}

// deliver hands paths to the handler, or queues them until one is set
func deliver(paths []string) {
	if len(paths) == 0 {
		return
	}
	dropMu.Lock()
	handler := dropHandler
	if handler == nil {
		pendingDrop = append(pendingDrop, paths...)
	}
	dropMu.Unlock()

	if handler != nil {
		handler(paths)
	}
}
