package dnd

import (
	"math/bits"
	"strings"
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint32

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Contain reports whether m contains all modifiers in other.
func (m Modifiers) Contain(other Modifiers) bool {
	return m&other == other
}

// String returns the modifiers joined by "+", e.g. "Ctrl+Shift".
func (m Modifiers) String() string {
	var parts []string
	if m.Contain(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Contain(ModMeta) {
		parts = append(parts, "Meta")
	}
	if m.Contain(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Contain(ModAlt) {
		parts = append(parts, "Alt")
	}
	return strings.Join(parts, "+")
}

// ParseModifiers parses strings like "Ctrl+Shift". Unknown parts are
// reported through ok=false; the known parts are still returned.
func ParseModifiers(s string) (mods Modifiers, ok bool) {
	ok = true
	if strings.TrimSpace(s) == "" {
		return 0, true
	}
	for _, part := range strings.Split(s, "+") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "ctrl", "control":
			mods |= ModCtrl
		case "shift":
			mods |= ModShift
		case "alt", "option":
			mods |= ModAlt
		case "meta", "cmd", "command", "super", "win":
			mods |= ModMeta
		default:
			ok = false
		}
	}
	return mods, ok
}

// Operation maps modifier masks to operation names. The zero mask is the
// default entry.
type Operation map[Modifiers]string

// OperationOf returns an Operation that always resolves to op.
func OperationOf(op string) Operation {
	return Operation{0: op}
}

// Resolve picks the entry for the held modifiers: the most specific mask
// fully contained in held wins, ties go to the lower mask, and the default
// entry is used when nothing matches.
func (o Operation) Resolve(held Modifiers) string {
	best := Modifiers(0)
	bestBits := -1
	found := false
	for mask := range o {
		if mask == 0 || !held.Contain(mask) {
			continue
		}
		n := bits.OnesCount32(uint32(mask))
		if n > bestBits || (n == bestBits && mask < best) {
			best, bestBits, found = mask, n, true
		}
	}
	if found {
		return o[best]
	}
	return o[0]
}
