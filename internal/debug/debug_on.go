//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	// Core categories
	APP   Category = "APP"   // Board orchestration, rebuilds, transfers
	DND   Category = "DND"   // Interaction manager lifecycle and registration
	INPUT Category = "INPUT" // Gesture drivers (pointer, mouse, keys)
	FS    Category = "FS"    // Directory scans, watcher, transfers
	STORE Category = "STORE" // Gesture journal
	UI    Category = "UI"    // Rendering

	// Detailed subcategories (use sparingly - can be verbose)
	DND_HOVER Category = "DND_HOVER" // Hover recomputation on every drag step
	FS_WALK   Category = "FS_WALK"   // Individual walk entries
)

var (
	// enabledCategories controls which categories are active.
	// Main categories start enabled, verbose ones disabled.
	enabledCategories = map[Category]bool{
		APP:   true,
		DND:   true,
		INPUT: true,
		FS:    true,
		STORE: true,
		UI:    true,

		DND_HOVER: false,
		FS_WALK:   false,
	}
	categoryMu sync.RWMutex

	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	// DRAGBOARD_DEBUG=DND,INPUT or DRAGBOARD_DEBUG=all or DRAGBOARD_DEBUG=none
	if env := os.Getenv("DRAGBOARD_DEBUG"); env != "" {
		Configure(env)
	}
}

// Configure applies a category list in the DRAGBOARD_DEBUG format.
// "all" and "none" toggle everything; otherwise only the listed
// categories stay enabled.
func Configure(spec string) {
	categoryMu.Lock()
	defer categoryMu.Unlock()

	spec = strings.ToUpper(strings.TrimSpace(spec))
	switch spec {
	case "":
		return
	case "ALL":
		for cat := range enabledCategories {
			enabledCategories[cat] = true
		}
	case "NONE":
		for cat := range enabledCategories {
			enabledCategories[cat] = false
		}
	default:
		for cat := range enabledCategories {
			enabledCategories[cat] = false
		}
		for _, cat := range strings.Split(spec, ",") {
			cat = strings.TrimSpace(cat)
			if cat != "" {
				enabledCategories[Category(cat)] = true
			}
		}
	}
}

// SetOutput redirects debug output, e.g. to a log file while a terminal
// UI owns stderr.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}

	logger.Printf("[%s] %s", cat, fmt.Sprintf(format, args...))
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// ListEnabled returns the currently enabled categories, sorted
func ListEnabled() []Category {
	categoryMu.RLock()
	defer categoryMu.RUnlock()

	var enabled []Category
	for cat, on := range enabledCategories {
		if on {
			enabled = append(enabled, cat)
		}
	}
	sort.Slice(enabled, func(i, j int) bool { return enabled[i] < enabled[j] })
	return enabled
}
