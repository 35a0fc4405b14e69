package fs

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/dragboard/internal/debug"
	"github.com/justyntemme/dragboard/internal/trash"
)

// Transfer operations
const (
	OpMove = "move"
	OpCopy = "copy"
	OpLink = "link"

	// OpTrash moves the item to the system trash; the destination is
	// ignored
	OpTrash = "trash"
)

// Common file permission modes
const (
	DirPermission  = 0o755
	FilePermission = 0o644
)

var (
	ErrUnknownOperation = errors.New("unknown transfer operation")
	ErrSameLocation     = errors.New("item is already in the destination directory")
	ErrIntoSelf         = errors.New("cannot transfer a directory into itself")
)

func progressLabel(op string) string {
	switch op {
	case OpMove:
		return "Moving"
	case OpCopy:
		return "Copying"
	case OpLink:
		return "Linking"
	case OpTrash:
		return "Trashing"
	default:
		return op
	}
}

// CheckTransfer reports why src cannot be transferred into dstDir with op,
// or nil when it can. It only looks at paths.
func CheckTransfer(src, dstDir, op string) error {
	switch op {
	case OpMove, OpCopy, OpLink:
	case OpTrash:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}

	src = filepath.Clean(src)
	dstDir = filepath.Clean(dstDir)
	if op == OpMove && filepath.Dir(src) == dstDir {
		return ErrSameLocation
	}
	if dstDir == src || strings.HasPrefix(dstDir, src+string(filepath.Separator)) {
		return ErrIntoSelf
	}
	return nil
}

// Transfer moves, copies or links src into dstDir and returns the new path.
// A name already taken in dstDir gets a _copyN suffix.
func Transfer(src, dstDir, op string) (string, error) {
	return transfer(src, dstDir, op, nil)
}

// transfer reports copied bytes through progress(total, n) when non-nil.
func transfer(src, dstDir, op string, progress func(total, n int64)) (string, error) {
	if err := CheckTransfer(src, dstDir, op); err != nil {
		return "", err
	}

	srcInfo, err := os.Lstat(src)
	if err != nil {
		return "", err
	}
	if op == OpTrash {
		debug.Log(debug.FS, "transfer: trash %q", src)
		return trash.MoveToTrash(src)
	}
	if info, err := os.Stat(dstDir); err != nil {
		return "", err
	} else if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dstDir)
	}

	dst := uniquePath(dstDir, filepath.Base(src))
	debug.Log(debug.FS, "transfer: %s %q -> %q", op, src, dst)

	switch op {
	case OpLink:
		abs, err := filepath.Abs(src)
		if err != nil {
			return "", err
		}
		return dst, os.Symlink(abs, dst)

	case OpMove:
		if err := os.Rename(src, dst); err == nil {
			return dst, nil
		} else if _, statErr := os.Lstat(src); statErr != nil {
			return "", err
		}
		// Rename fails across devices: copy, then remove the source
		debug.Log(debug.FS, "transfer: rename failed, copying %q", src)
		if err := copyItem(src, dst, srcInfo, progress); err != nil {
			return "", err
		}
		return dst, os.RemoveAll(src)

	default:
		return dst, copyItem(src, dst, srcInfo, progress)
	}
}

// uniquePath returns dir/name, or dir/base_copyN.ext for the first free N
func uniquePath(dir, name string) string {
	dst := filepath.Join(dir, name)
	if !pathExists(dst) {
		return dst
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		dst = filepath.Join(dir, base+"_copy"+strconv.Itoa(i)+ext)
		if !pathExists(dst) {
			return dst
		}
	}
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func copyItem(src, dst string, info os.FileInfo, progress func(total, n int64)) error {
	if info.IsDir() {
		return copyDir(src, dst, progress)
	}
	var onWrite func(int64)
	if progress != nil {
		total := info.Size()
		onWrite = func(n int64) { progress(total, n) }
	}
	return copyFile(src, dst, onWrite)
}

// copyFile copies a single file, keeping its mode
func copyFile(src, dst string, onWrite func(int64)) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	var w io.Writer = dstFile
	if onWrite != nil {
		w = &progressWriter{w: dstFile, onWrite: onWrite}
	}
	if _, err := io.Copy(w, srcFile); err != nil {
		return err
	}

	return os.Chmod(dst, info.Mode())
}

// copyDir copies a directory recursively
func copyDir(src, dst string, progress func(total, n int64)) error {
	// Single pass with fastwalk: count total size while building the item list
	var totalSize atomic.Int64
	type copyEntry struct {
		srcPath string
		dstPath string
		isDir   bool
		mode    iofs.FileMode
	}
	var items []copyEntry
	var itemsMu sync.Mutex

	conf := &fastwalk.Config{Follow: true}
	srcLen := len(src)

	err := fastwalk.Walk(conf, src, func(fullPath string, d iofs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // Skip errors, continue walking
		}

		relPath := fullPath[srcLen:]
		if len(relPath) > 0 && (relPath[0] == '/' || relPath[0] == '\\') {
			relPath = relPath[1:]
		}
		if relPath == "" {
			return nil
		}

		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			return nil // Skip files we can't stat
		}
		debug.Log(debug.FS_WALK, "copyDir: %q", relPath)

		item := copyEntry{srcPath: fullPath, dstPath: filepath.Join(dst, relPath), isDir: info.IsDir(), mode: info.Mode()}
		if !item.isDir {
			totalSize.Add(info.Size())
		}
		itemsMu.Lock()
		items = append(items, item)
		itemsMu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, DirPermission); err != nil {
		return err
	}

	// Directories first, parents before children, then files
	sort.Slice(items, func(i, j int) bool {
		if items[i].isDir != items[j].isDir {
			return items[i].isDir
		}
		return len(items[i].dstPath) < len(items[j].dstPath)
	})

	var onWrite func(int64)
	if progress != nil {
		total := totalSize.Load()
		onWrite = func(n int64) { progress(total, n) }
	}
	for _, item := range items {
		if item.isDir {
			if err := os.MkdirAll(item.dstPath, item.mode.Perm()|0o700); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(item.srcPath, item.dstPath, onWrite); err != nil {
			return err
		}
	}
	return nil
}

// progressWriter wraps an io.Writer and calls onWrite after each write
type progressWriter struct {
	w       io.Writer
	onWrite func(int64)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	if n > 0 && pw.onWrite != nil {
		pw.onWrite(int64(n))
	}
	return n, err
}
