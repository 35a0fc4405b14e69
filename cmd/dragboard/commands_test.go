package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/justyntemme/dragboard/internal/store"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestConfigInit_WritesAndBacksUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	out, err := runCmd(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote default config") {
		t.Errorf("config init output: got %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config at %s: %v", path, err)
	}

	out, err = runCmd(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("second config init: %v", err)
	}
	if !strings.Contains(out, "Backed up existing config") {
		t.Errorf("second config init should back up; got %q", out)
	}
}

func TestConfigShow_PrintsEffectiveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"board": {"tileSize": 120}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "config", "show", "--config", path, "--metrics-addr", "127.0.0.1:9999")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{`"tileSize": 120`, `"addr": "127.0.0.1:9999"`, filepath.Join(dir, "journal.db")} {
		if !strings.Contains(out, want) {
			t.Errorf("config show output missing %q; got:\n%s", want, out)
		}
	}
}

func TestJournal_ListsRecentGestures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	db := store.NewDB()
	if err := db.Open(filepath.Join(dir, "journal.db")); err != nil {
		t.Fatal(err)
	}
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	for i, g := range []store.Gesture{
		{Source: "/r/a.txt", Target: "/r/docs", Operation: "move", Outcome: store.OutcomeDropped},
		{Source: "/r/b.txt", Operation: "copy", Outcome: store.OutcomeCancelled},
		{Source: "/r/c.txt", Target: "/r/docs", Operation: "move", Outcome: store.OutcomeFailed, Error: "exists"},
	} {
		g.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := db.Record(g); err != nil {
			t.Fatal(err)
		}
	}
	db.Close()

	out, err := runCmd(t, "journal", "--config", path, "--limit", "2")
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	if !strings.Contains(out, "/r/c.txt") || !strings.Contains(out, "(exists)") {
		t.Errorf("journal should list the newest gesture with its error; got:\n%s", out)
	}
	if strings.Contains(out, "/r/a.txt") {
		t.Errorf("journal --limit 2 should skip the oldest gesture; got:\n%s", out)
	}

	out, err = runCmd(t, "journal", "--config", path, "--stats")
	if err != nil {
		t.Fatalf("journal --stats: %v", err)
	}
	for _, want := range []string{"cancelled", "dropped", "failed", "op:move"} {
		if !strings.Contains(out, want) {
			t.Errorf("journal --stats output missing %q; got:\n%s", want, out)
		}
	}
}

func TestJournal_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	out, err := runCmd(t, "journal", "--config", path)
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	if !strings.Contains(out, "No gestures recorded.") {
		t.Errorf("journal on an empty store: got %q", out)
	}
}

func TestRootCmd_RejectsExtraArgs(t *testing.T) {
	if _, err := runCmd(t, "tui", "a", "b"); err == nil {
		t.Error("tui with two directories should fail")
	}
}
