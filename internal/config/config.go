package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/justyntemme/dragboard/internal/dnd"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Board   BoardConfig   `json:"board"`
	Drag    DragConfig    `json:"drag"`
	Keys    KeysConfig    `json:"keys"`
	Store   StoreConfig   `json:"store"`
	Metrics MetricsConfig `json:"metrics"`
}

// BoardConfig holds what the board shows and how tiles are laid out
type BoardConfig struct {
	Root         string `json:"root"`         // Directory shown on start; empty = working directory
	Columns      int    `json:"columns"`      // Tiles per row; 0 = fit to window
	TileSize     int    `json:"tileSize"`     // Tile edge in dp
	ShowDotfiles bool   `json:"showDotfiles"`
	Theme        string `json:"theme"` // "light" or "dark"
	Trash        bool   `json:"trash"` // Show a drop target for the system trash
}

// DragConfig holds gesture settings
type DragConfig struct {
	DeadZone         float64           `json:"deadZone"`         // Pixels a press travels before it drags
	DefaultOperation string            `json:"defaultOperation"` // Used when no modifier entry matches
	Operations       map[string]string `json:"operations"`       // "Ctrl+Shift" -> "link"; "" is the default entry
}

// KeysConfig holds keyboard shortcuts, written like "Ctrl+R"
type KeysConfig struct {
	Cancel  string `json:"cancel"`
	Refresh string `json:"refresh"`
	Quit    string `json:"quit"`
}

// StoreConfig holds the gesture journal settings
type StoreConfig struct {
	Path    string `json:"path"`    // SQLite file; empty = next to config.json
	Enabled bool   `json:"enabled"`
}

// MetricsConfig holds the Prometheus endpoint settings
type MetricsConfig struct {
	Addr string `json:"addr"` // Listen address for /metrics; empty = disabled
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: DefaultConfig(),
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Board: BoardConfig{
			Columns:      0,
			TileSize:     96,
			ShowDotfiles: false,
			Theme:        "light",
			Trash:        true,
		},
		Drag: DragConfig{
			DeadZone:         4,
			DefaultOperation: "move",
			Operations:       DefaultOperations(),
		},
		Keys: DefaultKeys(),
		Store: StoreConfig{
			Enabled: true,
		},
	}
}

// ConfigPath returns the config file path: ~/.config/dragboard/config.json
// This is consistent across all platforms (Windows, macOS, Linux)
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dragboard", "config.json")
}

// Load reads the configuration from the default config path
func (m *Manager) Load() error {
	return m.LoadFrom(ConfigPath())
}

// LoadFrom reads the configuration from path
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) LoadFrom(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.path = path
	m.parseErr = nil

	// Ensure config directory exists
	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Printf("Config: failed to create directory %s: %v", configDir, err)
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		log.Printf("Config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", m.path, err)
		return err
	}

	// Start from defaults so sections missing from the file keep sane values
	cfg := DefaultConfig()
	cfg.Drag.Operations = nil
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Printf("Config: JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}
	if cfg.Drag.Operations == nil {
		cfg.Drag.Operations = DefaultOperations()
	}
	if _, err := cfg.Drag.OperationTable(); err != nil {
		log.Printf("Config: %v", err)
		m.parseErr = err
		cfg.Drag.Operations = DefaultOperations()
	}

	log.Printf("Config: loaded from %s", m.path)
	m.config = cfg
	return nil
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	if m.path == "" {
		return fmt.Errorf("config path not set")
	}
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Path returns the file the configuration was loaded from
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	cfg := *m.config
	cfg.Drag.Operations = make(map[string]string, len(m.config.Drag.Operations))
	for k, v := range m.config.Drag.Operations {
		cfg.Drag.Operations[k] = v
	}
	return cfg
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// SetShowDotfiles updates the show dotfiles setting
func (m *Manager) SetShowDotfiles(show bool) {
	m.mu.Lock()
	m.config.Board.ShowDotfiles = show
	m.mu.Unlock()
	m.Save()
}

// SetRoot remembers the directory shown on start
func (m *Manager) SetRoot(root string) {
	m.mu.Lock()
	m.config.Board.Root = root
	m.mu.Unlock()
	m.Save()
}

// SetOperation binds a modifier combination ("Ctrl+Shift") to an operation.
// An empty operation removes the binding.
func (m *Manager) SetOperation(mods, op string) error {
	parsed, ok := dnd.ParseModifiers(mods)
	if !ok {
		return fmt.Errorf("unknown modifier in %q", mods)
	}
	m.mu.Lock()
	if m.config.Drag.Operations == nil {
		m.config.Drag.Operations = make(map[string]string)
	}
	if op == "" {
		delete(m.config.Drag.Operations, parsed.String())
	} else {
		m.config.Drag.Operations[parsed.String()] = op
	}
	m.mu.Unlock()
	return m.Save()
}

// IsDarkMode returns true if dark mode is enabled
func (m *Manager) IsDarkMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.Board.Theme == "dark"
}

// OperationTable parses the operations map into a modifier table. A
// DefaultOperation fills the no-modifier entry when the map has none.
func (d DragConfig) OperationTable() (dnd.Operation, error) {
	keys := make([]string, 0, len(d.Operations))
	for k := range d.Operations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := make(dnd.Operation, len(d.Operations)+1)
	seen := make(map[dnd.Modifiers]string, len(d.Operations))
	for _, k := range keys {
		mods, ok := dnd.ParseModifiers(k)
		if !ok {
			return nil, fmt.Errorf("drag.operations: unknown modifier in %q", k)
		}
		if d.Operations[k] == "" {
			return nil, fmt.Errorf("drag.operations: empty operation for %q", k)
		}
		if prev, dup := seen[mods]; dup {
			return nil, fmt.Errorf("drag.operations: %q and %q name the same modifiers", prev, k)
		}
		seen[mods] = k
		table[mods] = d.Operations[k]
	}
	if _, ok := table[0]; !ok && d.DefaultOperation != "" {
		table[0] = d.DefaultOperation
	}
	return table, nil
}

// GenerateConfig backs up the config at the default path and writes a fresh
// default config
func GenerateConfig() (backupPath string, err error) {
	return GenerateConfigAt(ConfigPath())
}

// GenerateConfigAt backs up existing config at configPath and creates a fresh default config
// Returns the backup path if a backup was created, or empty string if no existing config
func GenerateConfigAt(configPath string) (backupPath string, err error) {
	if _, err := os.Stat(configPath); err == nil {
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(configPath), "config.backup."+timestamp+".json")

		data, err := os.ReadFile(configPath)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}

		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}

	return backupPath, nil
}

// StorePath returns the journal database path, defaulting to journal.db
// next to the config file
func (c Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(filepath.Dir(ConfigPath()), "journal.db")
}
