//go:build !darwin

package config

// DefaultKeys returns the default keyboard shortcuts for Windows/Linux
func DefaultKeys() KeysConfig {
	return KeysConfig{
		Cancel:  "Escape",
		Refresh: "F5",
		Quit:    "Ctrl+Q",
	}
}

// DefaultOperations returns the Windows/Linux modifier conventions: Ctrl
// copies, Ctrl+Shift links
func DefaultOperations() map[string]string {
	return map[string]string{
		"":           "move",
		"Ctrl":       "copy",
		"Ctrl+Shift": "link",
	}
}
