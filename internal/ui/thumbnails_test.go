package ui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePNG(t *testing.T, path string, w, h int) time.Time {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return info.ModTime()
}

func TestScaleToFit(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{200, 100, 50, 50, 25},
		{100, 200, 50, 25, 50},
		{40, 30, 50, 40, 30},
		{64, 64, 64, 64, 64},
	}
	for _, tt := range tests {
		got := scaleToFit(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)), tt.max).Bounds()
		if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
			t.Errorf("scaleToFit(%dx%d, %d): got %dx%d, want %dx%d",
				tt.w, tt.h, tt.max, got.Dx(), got.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestIsImage(t *testing.T) {
	for path, want := range map[string]bool{
		"/a/photo.JPG":  true,
		"/a/icon.png":   true,
		"/a/anim.gif":   true,
		"/a/notes.txt":  false,
		"/a/photo.heic": false,
		"/a/png":        false,
	} {
		if got := isImage(path); got != want {
			t.Errorf("isImage(%q): got %v, want %v", path, got, want)
		}
	}
}

func TestThumbnails_LoadAndEvict(t *testing.T) {
	dir := t.TempDir()
	loaded := make(chan struct{}, 8)
	thumbs := NewThumbnails(2, 16, func() { loaded <- struct{}{} })
	defer thumbs.Stop()

	wait := func() {
		t.Helper()
		select {
		case <-loaded:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a thumbnail")
		}
	}

	var paths []string
	var mods []time.Time
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		p := filepath.Join(dir, name)
		paths = append(paths, p)
		mods = append(mods, writePNG(t, p, 64, 32))
	}

	if _, ok := thumbs.Get(paths[0], mods[0]); ok {
		t.Fatal("nothing should be cached before a request")
	}
	thumbs.Request(paths[0], mods[0])
	wait()

	op, ok := thumbs.Get(paths[0], mods[0])
	if !ok {
		t.Fatal("expected a cached thumbnail after loading")
	}
	if sz := op.Size(); sz.X != 16 || sz.Y != 8 {
		t.Errorf("thumbnail size: got %v, want 16x8", sz)
	}
	if _, ok := thumbs.Get(paths[0], mods[0].Add(time.Second)); ok {
		t.Error("a changed modification time should miss")
	}

	thumbs.Request(paths[1], mods[1])
	wait()
	thumbs.Request(paths[2], mods[2])
	wait()

	if n := thumbs.Len(); n != 2 {
		t.Errorf("cache should hold 2 entries, got %d", n)
	}
	if _, ok := thumbs.Get(paths[0], mods[0]); ok {
		t.Error("the least recently used thumbnail should be evicted")
	}
	if _, ok := thumbs.Get(paths[2], mods[2]); !ok {
		t.Error("the newest thumbnail should be cached")
	}
}

func TestThumbnails_UndecodableFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(p, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	thumbs := NewThumbnails(4, 16, nil)
	defer thumbs.Stop()

	ok := thumbs.load(thumbRequest{path: p})
	if ok {
		t.Error("load should fail for a file that is not an image")
	}
	if thumbs.Len() != 0 {
		t.Error("a failed load should not be cached")
	}
}
