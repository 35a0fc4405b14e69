//go:build !darwin && !windows

package trash

// Freedesktop.org trash: $XDG_DATA_HOME/Trash/files holds the items and
// Trash/info a .trashinfo record for each.

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func getPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "Trash")
}

func isAvailable() bool {
	trashPath := getPath()
	if trashPath == "" {
		return false
	}
	for _, dir := range []string{"files", "info"} {
		if err := os.MkdirAll(filepath.Join(trashPath, dir), 0o700); err != nil {
			return false
		}
	}
	return true
}

func moveToTrash(absPath string) (string, error) {
	filesPath := filepath.Join(getPath(), "files")
	infoPath := filepath.Join(getPath(), "info")

	// A taken name gets a counter before the extension
	baseName := filepath.Base(absPath)
	destName := baseName
	for n := 1; ; n++ {
		_, errFile := os.Lstat(filepath.Join(filesPath, destName))
		_, errInfo := os.Lstat(filepath.Join(infoPath, destName+".trashinfo"))
		if os.IsNotExist(errFile) && os.IsNotExist(errInfo) {
			break
		}
		ext := filepath.Ext(baseName)
		destName = fmt.Sprintf("%s.%d%s", strings.TrimSuffix(baseName, ext), n, ext)
	}
	destPath := filepath.Join(filesPath, destName)

	info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		(&url.URL{Path: absPath}).EscapedPath(),
		time.Now().Format("2006-01-02T15:04:05"))
	infoFile := filepath.Join(infoPath, destName+".trashinfo")
	if err := os.WriteFile(infoFile, []byte(info), 0o600); err != nil {
		return "", fmt.Errorf("cannot create trashinfo file: %w", err)
	}

	if err := os.Rename(absPath, destPath); err != nil {
		os.Remove(infoFile)
		return "", fmt.Errorf("cannot move to trash: %w", err)
	}
	return destPath, nil
}

func displayName() string {
	return "Trash"
}
