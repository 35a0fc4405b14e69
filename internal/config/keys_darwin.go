//go:build darwin

package config

// DefaultKeys returns the default keyboard shortcuts for macOS
func DefaultKeys() KeysConfig {
	return KeysConfig{
		Cancel:  "Escape",
		Refresh: "Cmd+R",
		Quit:    "Cmd+Q",
	}
}

// DefaultOperations returns the macOS modifier conventions: Option copies,
// Cmd+Option makes an alias
func DefaultOperations() map[string]string {
	return map[string]string{
		"":         "move",
		"Alt":      "copy",
		"Meta+Alt": "link",
	}
}
