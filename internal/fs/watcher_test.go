package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReportsDebouncedChange(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(50 * time.Millisecond)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	// Watching twice is a no-op
	if err := w.Watch(dir + "/"); err != nil {
		t.Fatalf("second Watch: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(dir, "f"+string(rune('a'+i))), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-w.Changes():
		if got != dir {
			t.Errorf("change: expected %q, got %q", dir, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}

	// The burst collapses into one notification
	select {
	case extra := <-w.Changes():
		t.Errorf("unexpected second notification for %q", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_Unwatch(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(20 * time.Millisecond)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := w.Watch(dir); err != nil {
		t.Fatal(err)
	}
	w.Unwatch(dir)
	w.Unwatch(dir)

	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-w.Changes():
		t.Errorf("unwatched directory reported a change: %q", got)
	case <-time.After(200 * time.Millisecond):
	}

	if err := w.Watch(filepath.Join(dir, "missing")); err == nil {
		t.Error("Watch on a missing directory: expected error")
	}
	w.UnwatchAll()
}
