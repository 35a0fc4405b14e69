//go:build darwin

package app

import "os/exec"

// platformOpen opens path with its default application.
func platformOpen(path string) error {
	return exec.Command("open", path).Start()
}
