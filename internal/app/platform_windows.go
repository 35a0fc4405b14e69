//go:build windows

package app

import "os/exec"

// platformOpen opens path with its associated application.
func platformOpen(path string) error {
	// The empty argument is start's window title
	return exec.Command("cmd", "/c", "start", "", path).Start()
}
