// Package store keeps the gesture journal: one row per finished drag, plus
// a small settings table, in a local SQLite file.
package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/dragboard/internal/debug"
)

type EventType int

const (
	RecordGesture EventType = iota
	FetchRecent
	FetchStats
	FetchSettings
	SaveSetting
)

// Outcome values stored for a gesture
const (
	OutcomeDropped   = "dropped"
	OutcomeCancelled = "cancelled"
	OutcomeEnded     = "ended" // released away from any target
	OutcomeFailed    = "failed"
)

// Gesture is one journaled drag
type Gesture struct {
	ID        string
	Source    string // Dragged path
	Target    string // Destination directory, empty when nothing took the drop
	ItemType  string
	Operation string
	Outcome   string
	Error     string
	CreatedAt time.Time
}

type Request struct {
	Op      EventType
	Gesture Gesture
	Limit   int
	Key     string
	Value   string
}

type Response struct {
	Op       EventType
	Gestures []Gesture
	Stats    map[string]int    // Outcome/operation -> count
	Settings map[string]string // Key-value settings
	Err      error
}

type DB struct {
	conn         *sql.DB
	RequestChan  chan Request
	ResponseChan chan Response
}

func NewDB() *DB {
	return &DB{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
	}
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return fmt.Errorf("journal_mode: %w", err)
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return fmt.Errorf("synchronous: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS gestures (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		target TEXT NOT NULL DEFAULT '',
		item_type TEXT NOT NULL,
		operation TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return fmt.Errorf("gestures schema: %w", err)
	}
	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS gestures_created ON gestures (created_at);"); err != nil {
		db.Close()
		return fmt.Errorf("gestures index: %w", err)
	}

	settingsQuery := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(settingsQuery); err != nil {
		db.Close()
		return fmt.Errorf("settings schema: %w", err)
	}

	d.conn = db
	debug.Log(debug.STORE, "Open: %s", dbPath)
	return nil
}

// Start serves RequestChan until it is closed. Writes answer with the
// refreshed data, like reads do.
func (d *DB) Start() {
	for req := range d.RequestChan {
		switch req.Op {
		case RecordGesture:
			d.handleRecord(req.Gesture)
		case FetchRecent:
			d.handleFetchRecent(req.Limit)
		case FetchStats:
			d.handleFetchStats()
		case FetchSettings:
			d.handleFetchSettings()
		case SaveSetting:
			d.handleSaveSetting(req.Key, req.Value)
		}
	}
}

func (d *DB) handleRecord(g Gesture) {
	saved, err := d.Record(g)
	if err != nil {
		log.Printf("Store Error: %v", err)
		d.ResponseChan <- Response{Op: RecordGesture, Err: err}
		return
	}
	d.ResponseChan <- Response{Op: RecordGesture, Gestures: []Gesture{saved}}
}

func (d *DB) handleFetchRecent(limit int) {
	gestures, err := d.Recent(limit)
	d.ResponseChan <- Response{Op: FetchRecent, Gestures: gestures, Err: err}
}

func (d *DB) handleFetchStats() {
	stats, err := d.Stats()
	d.ResponseChan <- Response{Op: FetchStats, Stats: stats, Err: err}
}

func (d *DB) handleFetchSettings() {
	settings, err := d.Settings()
	d.ResponseChan <- Response{Op: FetchSettings, Settings: settings, Err: err}
}

func (d *DB) handleSaveSetting(key, value string) {
	if err := d.SaveSetting(key, value); err != nil {
		log.Printf("Store Error saving setting: %v", err)
	}
	d.handleFetchSettings()
}

// Record inserts g and returns it as stored. A missing id or timestamp is
// filled in.
func (d *DB) Record(g Gesture) (Gesture, error) {
	if d.conn == nil {
		return g, fmt.Errorf("store not open")
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	_, err := d.conn.Exec(
		`INSERT INTO gestures (id, source, target, item_type, operation, outcome, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Source, g.Target, g.ItemType, g.Operation, g.Outcome, g.Error, g.CreatedAt.UnixNano(),
	)
	if err != nil {
		return g, fmt.Errorf("record gesture: %w", err)
	}
	debug.Log(debug.STORE, "Record: %s %s %s -> %s (%s)", g.ID, g.Operation, g.Source, g.Target, g.Outcome)
	return g, nil
}

// Recent returns up to limit gestures, newest first. limit <= 0 returns all.
func (d *DB) Recent(limit int) ([]Gesture, error) {
	if d.conn == nil {
		return nil, fmt.Errorf("store not open")
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := d.conn.Query(
		`SELECT id, source, target, item_type, operation, outcome, error, created_at
		 FROM gestures ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query gestures: %w", err)
	}
	defer rows.Close()

	var gestures []Gesture
	for rows.Next() {
		var g Gesture
		var created int64
		if err := rows.Scan(&g.ID, &g.Source, &g.Target, &g.ItemType, &g.Operation, &g.Outcome, &g.Error, &created); err != nil {
			return gestures, fmt.Errorf("scan gesture: %w", err)
		}
		g.CreatedAt = time.Unix(0, created)
		gestures = append(gestures, g)
	}
	return gestures, rows.Err()
}

// Stats counts gestures by outcome, and dropped gestures by operation under
// "op:<name>" keys.
func (d *DB) Stats() (map[string]int, error) {
	if d.conn == nil {
		return nil, fmt.Errorf("store not open")
	}
	rows, err := d.conn.Query(
		`SELECT outcome, COUNT(*) FROM gestures GROUP BY outcome
		 UNION ALL
		 SELECT 'op:' || operation, COUNT(*) FROM gestures WHERE outcome = ? GROUP BY operation`,
		OutcomeDropped)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return stats, fmt.Errorf("scan stats: %w", err)
		}
		stats[key] = n
	}
	return stats, rows.Err()
}

// Settings returns all stored settings
func (d *DB) Settings() (map[string]string, error) {
	if d.conn == nil {
		return nil, fmt.Errorf("store not open")
	}
	rows, err := d.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err == nil {
			settings[key] = value
		}
	}
	return settings, rows.Err()
}

// SaveSetting upserts one setting
func (d *DB) SaveSetting(key, value string) error {
	if d.conn == nil {
		return fmt.Errorf("store not open")
	}
	_, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	return err
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
