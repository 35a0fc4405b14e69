//go:build !darwin && !windows

package app

import "os/exec"

// platformOpen opens path with the desktop's default application.
func platformOpen(path string) error {
	return exec.Command("xdg-open", path).Start()
}
