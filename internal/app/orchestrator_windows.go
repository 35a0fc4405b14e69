//go:build windows

package app

import (
	"gioui.org/app"

	"github.com/justyntemme/dragboard/internal/debug"
	"github.com/justyntemme/dragboard/internal/platform"
)

// handlePlatformEvent accepts external file drops once the window has an HWND
func (o *Orchestrator) handlePlatformEvent(e any) bool {
	evt, ok := e.(app.Win32ViewEvent)
	if !ok {
		return false
	}
	debug.Log(debug.APP, "Win32ViewEvent: Valid=%v HWND=%d", evt.Valid(), evt.HWND)
	if evt.Valid() {
		platform.SetupExternalDrop(evt.HWND)
	}
	return true
}
