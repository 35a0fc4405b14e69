// Package fs lists board directories, applies drop transfers and watches
// the shown directory for changes.
package fs

import (
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/dragboard/internal/debug"
)

type OpType int

const (
	FetchDir OpType = iota
	TransferItem
)

type Request struct {
	Op           OpType
	Path         string // Directory to list, or the transfer source
	Dest         string // Transfer destination directory
	Operation    string // Transfer operation: move, copy or link
	ShowDotfiles bool
	Gen          int64 // Generation counter to track stale requests
}

type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

type Response struct {
	Op      OpType
	Path    string
	Dest    string // Final path of a transferred item
	Entries []Entry
	Err     error
	Gen     int64 // Generation counter from request
}

// Progress represents a progress update during long operations
type Progress struct {
	Gen     int64
	Current int64
	Total   int64
	Label   string
}

type System struct {
	RequestChan  chan Request
	ResponseChan chan Response
	ProgressChan chan Progress // Channel for progress updates
}

func NewSystem() *System {
	return &System{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
		ProgressChan: make(chan Progress, 100), // Buffered to avoid blocking
	}
}

// Start serves RequestChan until it is closed.
func (s *System) Start() {
	for req := range s.RequestChan {
		debug.Log(debug.FS, "Request: op=%d path=%q dest=%q gen=%d", req.Op, req.Path, req.Dest, req.Gen)

		switch req.Op {
		case FetchDir:
			resp := s.fetchDir(req.Path, req.ShowDotfiles)
			resp.Gen = req.Gen
			debug.Log(debug.FS, "FetchDir response: path=%q entries=%d gen=%d err=%v",
				resp.Path, len(resp.Entries), resp.Gen, resp.Err)
			s.ResponseChan <- resp

		case TransferItem:
			resp := s.transfer(req)
			debug.Log(debug.FS, "Transfer response: %q -> %q gen=%d err=%v", resp.Path, resp.Dest, resp.Gen, resp.Err)
			s.ResponseChan <- resp
		}
	}
}

func (s *System) transfer(req Request) Response {
	resp := Response{Op: TransferItem, Path: req.Path, Gen: req.Gen}
	label := progressLabel(req.Operation)

	var mu sync.Mutex
	var current int64
	progress := func(total, n int64) {
		mu.Lock()
		current += n
		p := Progress{Gen: req.Gen, Current: current, Total: total, Label: label + " " + req.Path}
		mu.Unlock()
		select {
		case s.ProgressChan <- p:
		default:
		}
	}

	resp.Dest, resp.Err = transfer(req.Path, req.Dest, req.Operation, progress)
	return resp
}

// Scan lists the direct children of dir, directories first and then by
// name. Dotfiles are skipped unless showDotfiles is set.
func Scan(dir string, showDotfiles bool) ([]Entry, error) {
	resp := (&System{}).fetchDir(dir, showDotfiles)
	return resp.Entries, resp.Err
}

func (s *System) fetchDir(path string, showDotfiles bool) Response {
	debug.Log(debug.FS, "fetchDir: reading %q", path)

	if info, err := os.Stat(path); err != nil {
		return Response{Op: FetchDir, Path: path, Err: err}
	} else if !info.IsDir() {
		return Response{Op: FetchDir, Path: path, Err: &fs.PathError{Op: "readdir", Path: path, Err: syscall.ENOTDIR}}
	}

	var result []Entry
	var mu sync.Mutex

	// Configure fastwalk for single directory (depth 1)
	conf := &fastwalk.Config{
		Follow: true, // Follow symlinks to get target info
	}

	pathLen := len(path)

	err := fastwalk.Walk(conf, path, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.FS_WALK, "fetchDir: walk error at %q: %v", fullPath, err)
			return nil // Skip errors, continue walking
		}

		if fullPath == path {
			return nil
		}

		// Only direct children: the remainder after the root has no separator
		relStart := pathLen
		if relStart < len(fullPath) && (fullPath[relStart] == '/' || fullPath[relStart] == '\\') {
			relStart++
		}
		rel := fullPath[relStart:]
		if strings.ContainsAny(rel, "/\\") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		if !showDotfiles && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			// Try lstat as fallback for broken symlinks
			info, err = os.Lstat(fullPath)
			if err != nil {
				debug.Log(debug.FS_WALK, "fetchDir: skipping %q: stat error: %v", d.Name(), err)
				return nil
			}
		}

		debug.Log(debug.FS_WALK, "fetchDir: %q isDir=%v size=%d", d.Name(), info.IsDir(), info.Size())

		mu.Lock()
		result = append(result, Entry{
			Name:    d.Name(),
			Path:    fullPath,
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		mu.Unlock()

		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})

	if err != nil {
		debug.Log(debug.FS, "fetchDir: walk error: %v", err)
		return Response{Op: FetchDir, Path: path, Err: err}
	}

	// fastwalk visits in parallel; give the board a stable order
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsDir != result[j].IsDir {
			return result[i].IsDir
		}
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})

	debug.Log(debug.FS, "fetchDir: returning %d entries", len(result))
	return Response{Op: FetchDir, Path: path, Entries: result}
}
