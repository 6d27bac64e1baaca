package actor

import (
	"spaceescape/pkg/engine/world"
)

// Reason explains why an action did or did not change state
type Reason int

// Reasons
const (
	ReasonOK Reason = iota
	ReasonNoLocation
	ReasonNoRoom
	ReasonLocked
	ReasonNotTeleporter
	ReasonLoneTeleporter
	ReasonUnknownIntent
	ReasonNoNeighbors
	ReasonNoItem
	ReasonDuplicateItem
	ReasonWrongRole
)

// String returns the string representation of a reason
func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonNoLocation:
		return "no-location"
	case ReasonNoRoom:
		return "no-room"
	case ReasonLocked:
		return "locked"
	case ReasonNotTeleporter:
		return "not-teleporter"
	case ReasonLoneTeleporter:
		return "lone-teleporter"
	case ReasonUnknownIntent:
		return "unknown-intent"
	case ReasonNoNeighbors:
		return "no-neighbors"
	case ReasonNoItem:
		return "no-item"
	case ReasonDuplicateItem:
		return "duplicate-item"
	case ReasonWrongRole:
		return "wrong-role"
	default:
		return "unknown"
	}
}

// Outcome is the result of a move. When Moved is false nothing changed.
type Outcome struct {
	Moved   bool
	From    *world.Room
	To      *world.Room
	Reason  Reason
	Message string
}

// Pickup is the result of a pickup attempt
type Pickup struct {
	Item    string
	Added   bool
	Reason  Reason
	Message string
}
