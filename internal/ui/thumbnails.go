package ui

import (
	"container/list"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gioui.org/op/paint"
	"golang.org/x/image/draw"

	"github.com/justyntemme/dragboard/internal/debug"
)

// Thumbnails is an LRU cache of scaled-down previews for image tiles,
// filled by a background loader. An entry is stale once the file's
// modification time changes.
type Thumbnails struct {
	mu         sync.Mutex
	cache      map[string]*thumbEntry
	lru        *list.List // front = most recent
	pending    map[string]bool
	maxEntries int
	maxPixels  int // Longest edge of a stored thumbnail

	loadChan chan thumbRequest
	stopChan chan struct{}
	onLoad   func() // Called from the loader after a thumbnail is cached
}

type thumbEntry struct {
	path    string
	modTime time.Time
	op      paint.ImageOp
	element *list.Element
}

type thumbRequest struct {
	path    string
	modTime time.Time
}

// NewThumbnails starts a loader keeping up to maxEntries thumbnails whose
// longest edge is at most maxPixels. onLoad may be nil.
func NewThumbnails(maxEntries, maxPixels int, onLoad func()) *Thumbnails {
	t := &Thumbnails{
		cache:      make(map[string]*thumbEntry),
		lru:        list.New(),
		pending:    make(map[string]bool),
		maxEntries: maxEntries,
		maxPixels:  maxPixels,
		loadChan:   make(chan thumbRequest, 100),
		stopChan:   make(chan struct{}),
		onLoad:     onLoad,
	}
	go t.loader()
	return t
}

// Get returns the thumbnail of path if one is cached for modTime.
func (t *Thumbnails) Get(path string, modTime time.Time) (paint.ImageOp, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.cache[path]
	if !ok || !e.modTime.Equal(modTime) {
		return paint.ImageOp{}, false
	}
	t.lru.MoveToFront(e.element)
	return e.op, true
}

// Request queues path for loading unless it is cached for modTime or
// already queued. A full queue drops the request; the next frame asks again.
func (t *Thumbnails) Request(path string, modTime time.Time) {
	t.mu.Lock()
	if e, ok := t.cache[path]; (ok && e.modTime.Equal(modTime)) || t.pending[path] {
		t.mu.Unlock()
		return
	}
	t.pending[path] = true
	t.mu.Unlock()

	select {
	case t.loadChan <- thumbRequest{path: path, modTime: modTime}:
	default:
		t.mu.Lock()
		delete(t.pending, path)
		t.mu.Unlock()
	}
}

// Len returns the number of cached thumbnails.
func (t *Thumbnails) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.cache)
}

// Stop shuts the loader down.
func (t *Thumbnails) Stop() {
	close(t.stopChan)
}

func (t *Thumbnails) loader() {
	for {
		select {
		case <-t.stopChan:
			return
		case req := <-t.loadChan:
			if t.load(req) && t.onLoad != nil {
				t.onLoad()
			}
		}
	}
}

func (t *Thumbnails) load(req thumbRequest) bool {
	defer func() {
		t.mu.Lock()
		delete(t.pending, req.path)
		t.mu.Unlock()
	}()

	f, err := os.Open(req.path)
	if err != nil {
		debug.Log(debug.UI, "Thumbnails: open %s: %v", req.path, err)
		return false
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		debug.Log(debug.UI, "Thumbnails: decode %s: %v", req.path, err)
		return false
	}
	thumb := scaleToFit(img, t.maxPixels)
	t.put(req, paint.NewImageOp(thumb))
	debug.Log(debug.UI, "Thumbnails: cached %s (%v -> %v)", req.path, img.Bounds().Size(), thumb.Bounds().Size())
	return true
}

func (t *Thumbnails) put(req thumbRequest, op paint.ImageOp) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.cache[req.path]; ok {
		e.op, e.modTime = op, req.modTime
		t.lru.MoveToFront(e.element)
		return
	}

	for t.lru.Len() >= t.maxEntries {
		oldest := t.lru.Back()
		if oldest == nil {
			break
		}
		old := t.lru.Remove(oldest).(*thumbEntry)
		delete(t.cache, old.path)
	}

	e := &thumbEntry{path: req.path, modTime: req.modTime, op: op}
	e.element = t.lru.PushFront(e)
	t.cache[req.path] = e
}

// scaleToFit shrinks src so its longest edge is at most max. Smaller images
// are returned as they are.
func scaleToFit(src image.Image, max int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return src
	}

	scale := float64(max) / float64(h)
	if w > h {
		scale = float64(max) / float64(w)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// isImage reports whether path has an extension the loader can decode
func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}
