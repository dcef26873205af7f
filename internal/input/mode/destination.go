package mode

import "strings"

// Destination is the set of input surfaces currently receiving keys.
// Game is the empty set: keys go to gameplay only when no surface is up.
type Destination uint8

const (
	// Game routes keys to gameplay bindings.
	Game Destination = 0

	// Console routes keys to the console.
	Console Destination = 1 << iota

	// Message routes keys to chat/message entry.
	Message

	// Menu routes keys to the menu system.
	Menu
)

// Has reports whether d includes every surface in s.
func (d Destination) Has(s Destination) bool {
	return d&s == s && s != 0
}

// HasAny reports whether d includes any surface in s.
func (d Destination) HasAny(s Destination) bool {
	return d&s != 0
}

// IsGame reports whether no surface is up.
func (d Destination) IsGame() bool {
	return d == Game
}

// String returns a representation like "console+menu" or "game".
func (d Destination) String() string {
	if d == Game {
		return "game"
	}
	var parts []string
	if d&Console != 0 {
		parts = append(parts, "console")
	}
	if d&Message != 0 {
		parts = append(parts, "message")
	}
	if d&Menu != 0 {
		parts = append(parts, "menu")
	}
	return strings.Join(parts, "+")
}
