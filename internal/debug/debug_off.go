//go:build !debug

// Package debug provides a centralized, categorized debug logging system.
// This is the no-op version for release builds.
package debug

import "io"

// Enabled indicates whether debug logging is active
const Enabled = false

// Category represents a debug logging category
type Category string

const (
	APP       Category = "APP"
	DND       Category = "DND"
	INPUT     Category = "INPUT"
	FS        Category = "FS"
	STORE     Category = "STORE"
	UI        Category = "UI"
	DND_HOVER Category = "DND_HOVER"
	FS_WALK   Category = "FS_WALK"
)

// Configure is a no-op in release builds
func Configure(spec string) {}

// SetOutput is a no-op in release builds
func SetOutput(w io.Writer) {}

// Log is a no-op in release builds
func Log(cat Category, format string, args ...interface{}) {}

// Enable is a no-op in release builds
func Enable(cat Category) {}

// Disable is a no-op in release builds
func Disable(cat Category) {}

// IsEnabled always returns false in release builds
func IsEnabled(cat Category) bool { return false }

// ListEnabled returns nil in release builds
func ListEnabled() []Category { return nil }
