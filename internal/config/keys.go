package config

import (
	"strings"

	"gioui.org/io/event"
	"gioui.org/io/key"
)

// Hotkey represents a parsed keyboard shortcut
type Hotkey struct {
	Key       key.Name
	Modifiers key.Modifiers

	// Raw is the key part as written, for drivers that name keys differently
	Raw string
}

// ParseHotkey parses a hotkey string like "Ctrl+Shift+N" into a Hotkey struct
func ParseHotkey(s string) Hotkey {
	if s == "" {
		return Hotkey{}
	}

	var mods key.Modifiers
	var rawKeyPart string

	parts := strings.Split(s, "+")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "ctrl", "control":
			mods |= key.ModCtrl
		case "shift":
			mods |= key.ModShift
		case "alt", "option":
			mods |= key.ModAlt
		case "cmd", "command":
			mods |= key.ModCommand
		case "super", "meta", "win", "windows":
			mods |= key.ModSuper
		default:
			rawKeyPart = part
		}
	}

	return Hotkey{Key: parseKeyName(rawKeyPart), Modifiers: mods, Raw: rawKeyPart}
}

// parseKeyName converts a key string to Gio's key.Name
func parseKeyName(s string) key.Name {
	// Single letters are case insensitive, key.Name uses uppercase
	if len(s) == 1 {
		return key.Name(strings.ToUpper(s))
	}

	switch strings.ToLower(s) {
	case "f1":
		return key.NameF1
	case "f2":
		return key.NameF2
	case "f3":
		return key.NameF3
	case "f4":
		return key.NameF4
	case "f5":
		return key.NameF5
	case "f6":
		return key.NameF6
	case "f7":
		return key.NameF7
	case "f8":
		return key.NameF8
	case "f9":
		return key.NameF9
	case "f10":
		return key.NameF10
	case "f11":
		return key.NameF11
	case "f12":
		return key.NameF12

	case "enter", "return":
		return key.NameReturn
	case "tab":
		return key.NameTab
	case "space", "spacebar":
		return key.NameSpace
	case "backspace", "back":
		return key.NameDeleteBackward
	case "delete", "del":
		return key.NameDeleteForward
	case "escape", "esc":
		return key.NameEscape

	default:
		// Return as-is for unknown keys (supports custom key names)
		return key.Name(s)
	}
}

// Matches checks if a key event matches this hotkey exactly
func (h Hotkey) Matches(k key.Event) bool {
	if h.Key == "" {
		return false
	}
	return k.Name == h.Key && k.Modifiers == h.Modifiers
}

// IsEmpty returns true if the hotkey is not configured
func (h Hotkey) IsEmpty() bool {
	return h.Key == ""
}

// String returns a human-readable representation of the hotkey
func (h Hotkey) String() string {
	if h.Key == "" {
		return ""
	}

	var parts []string
	if h.Modifiers.Contain(key.ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if h.Modifiers.Contain(key.ModCommand) {
		parts = append(parts, "Cmd")
	}
	if h.Modifiers.Contain(key.ModShift) {
		parts = append(parts, "Shift")
	}
	if h.Modifiers.Contain(key.ModAlt) {
		parts = append(parts, "Alt")
	}
	if h.Modifiers.Contain(key.ModSuper) {
		parts = append(parts, "Super")
	}
	keyStr := h.Raw
	if keyStr == "" {
		keyStr = string(h.Key)
	}
	parts = append(parts, keyStr)
	return strings.Join(parts, "+")
}

// Filter returns a key.Filter that matches this hotkey
func (h Hotkey) Filter(focus event.Tag) key.Filter {
	return key.Filter{
		Focus:    focus,
		Name:     h.Key,
		Required: h.Modifiers,
	}
}

// HotkeyMatcher holds the parsed board shortcuts
type HotkeyMatcher struct {
	Cancel  Hotkey
	Refresh Hotkey
	Quit    Hotkey
}

// NewHotkeyMatcher creates a matcher from config
func NewHotkeyMatcher(cfg KeysConfig) *HotkeyMatcher {
	return &HotkeyMatcher{
		Cancel:  ParseHotkey(cfg.Cancel),
		Refresh: ParseHotkey(cfg.Refresh),
		Quit:    ParseHotkey(cfg.Quit),
	}
}
