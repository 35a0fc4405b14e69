//go:build !windows || arm64

package platform

// Supported reports whether external drops reach the window on this platform.
func Supported() bool { return false }

// SetupExternalDrop is a no-op where external drops are not wired up.
func SetupExternalDrop(handle uintptr) {}
