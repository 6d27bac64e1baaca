package actor

import (
	"strings"

	"spaceescape/pkg/engine/world"
)

// Intent is a requested player move: a cardinal direction or a teleport
type Intent string

// Intents
const (
	IntentNorth    Intent = "north"
	IntentSouth    Intent = "south"
	IntentEast     Intent = "east"
	IntentWest     Intent = "west"
	IntentTeleport Intent = "teleport"
)

// ParseIntent converts user input such as "n", "East" or "t" to an Intent
func ParseIntent(s string) (Intent, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if dir, ok := world.ParseDirection(s); ok {
		return FromDirection(dir), true
	}
	switch s {
	case "teleport", "t", "tp":
		return IntentTeleport, true
	}
	return "", false
}

// FromDirection returns the intent for a direction
func FromDirection(dir world.Direction) Intent {
	return Intent(dir.String())
}

// Direction returns the cardinal direction of a directed intent
func (i Intent) Direction() (world.Direction, bool) {
	if i == IntentTeleport {
		return 0, false
	}
	return world.ParseDirection(string(i))
}
