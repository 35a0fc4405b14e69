// Package trash moves items dropped on the board's trash target to the
// system trash.
package trash

import (
	"errors"
	"path/filepath"
)

// ErrUnavailable is returned where no system trash could be found.
var ErrUnavailable = errors.New("trash is not available")

// MoveToTrash moves path to the system trash. It returns the item's new
// path, or "" where the system does not expose one.
func MoveToTrash(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if !isAvailable() {
		return "", ErrUnavailable
	}
	return moveToTrash(abs)
}

// IsAvailable reports whether MoveToTrash can work on this system.
func IsAvailable() bool {
	return isAvailable()
}

// DisplayName returns what the system calls its trash: "Trash", or
// "Recycle Bin" on Windows.
func DisplayName() string {
	return displayName()
}
