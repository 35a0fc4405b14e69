//go:build !windows

package app

// handlePlatformEvent has no view events to handle on this platform
func (o *Orchestrator) handlePlatformEvent(e any) bool {
	return false
}
