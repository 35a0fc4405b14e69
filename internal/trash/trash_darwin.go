//go:build darwin

package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func getPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".Trash")
}

func isAvailable() bool {
	trashPath := getPath()
	if trashPath == "" {
		return false
	}
	info, err := os.Stat(trashPath)
	return err == nil && info.IsDir()
}

func moveToTrash(absPath string) (string, error) {
	baseName := filepath.Base(absPath)
	destPath := filepath.Join(getPath(), baseName)
	if _, err := os.Lstat(destPath); err == nil {
		// Finder's style: a timestamp before the extension
		ext := filepath.Ext(baseName)
		stamp := time.Now().Format("2006-01-02-150405.000")
		destPath = filepath.Join(getPath(), fmt.Sprintf("%s %s%s", strings.TrimSuffix(baseName, ext), stamp, ext))
	}

	// ~/.Trash only takes items from the boot volume
	if err := os.Rename(absPath, destPath); err != nil {
		return "", fmt.Errorf("cannot move to trash: %w", err)
	}
	return destPath, nil
}

func displayName() string {
	return "Trash"
}
