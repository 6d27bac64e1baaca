// Package world provides the ship grid: rooms, their name-addressed connections
// and the spatial queries the actors depend on.
package world

import (
	"fmt"
	"strings"
)

// None is the manifest sentinel for "no connection" and "no item"
const None = "None"

// TeleporterMarker marks a room name as a teleporter
const TeleporterMarker = "Teleporter"

// Kind classifies a room
type Kind int

// Room kinds
const (
	KindEmpty Kind = iota
	KindNormal
	KindTeleporter
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNormal:
		return "normal"
	case KindTeleporter:
		return "teleporter"
	default:
		return "unknown"
	}
}

// IsNone reports whether a manifest field holds no value
func IsNone(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == None
}

// Room is a single grid cell. Connections are stored as room names and
// resolved through the owning Grid.
type Room struct {
	x, y int

	name string
	item string
	kind Kind

	links    [4]string // indexed by Direction
	adjacent []string

	locked []*Room
}

func newRoom(x, y int) *Room {
	return &Room{x: x, y: y}
}

// X returns the room's x coordinate
func (r *Room) X() int { return r.x }

// Y returns the room's y coordinate
func (r *Room) Y() int { return r.y }

// Name returns the room name, empty when unoccupied
func (r *Room) Name() string { return r.name }

// Kind returns the room kind
func (r *Room) Kind() Kind { return r.kind }

// IsOccupied returns true if the room has been given a name
func (r *Room) IsOccupied() bool { return r.name != "" }

// IsTeleporter returns true if the room is a teleporter
func (r *Room) IsTeleporter() bool { return r.kind == KindTeleporter }

// Item returns the item in the room, or "" when there is none
func (r *Room) Item() string { return r.item }

// HasItem returns true if the room holds an item
func (r *Room) HasItem() bool { return r.item != "" }

// TakeItem removes and returns the room's item
func (r *Room) TakeItem() string {
	item := r.item
	r.item = ""
	return item
}

// Apply sets the room's identity, content and connections. Each direction
// that is not None becomes both a link and an entry of Adjacent. Calling it
// again with the same arguments leaves the room unchanged.
func (r *Room) Apply(name, item, north, south, east, west string) {
	r.name = strings.TrimSpace(name)
	r.item = ""
	if !IsNone(item) {
		r.item = strings.TrimSpace(item)
	}

	switch {
	case r.name == "":
		r.kind = KindEmpty
	case strings.Contains(r.name, TeleporterMarker):
		r.kind = KindTeleporter
	default:
		r.kind = KindNormal
	}

	r.links = [4]string{}
	r.adjacent = nil
	r.addAdjacent(north, south, east, west)
}

func (r *Room) addAdjacent(north, south, east, west string) {
	for dir, name := range [4]string{north, south, east, west} {
		if IsNone(name) {
			continue
		}
		name = strings.TrimSpace(name)
		r.links[dir] = name
		r.adjacent = append(r.adjacent, name)
	}
}

// Link returns the name linked in the given direction, or "" if none
func (r *Room) Link(dir Direction) string {
	if !dir.IsValid() {
		return ""
	}
	return r.links[dir]
}

// Adjacent returns the names of connected rooms in north, south, east, west order
func (r *Room) Adjacent() []string {
	out := make([]string, len(r.adjacent))
	copy(out, r.adjacent)
	return out
}

// LockedNeighbors returns the grid-adjacent cells that are not connected,
// empty cells included, as of the last Grid.Seal
func (r *Room) LockedNeighbors() []*Room {
	out := make([]*Room, len(r.locked))
	copy(out, r.locked)
	return out
}

// LockedRooms returns the occupied locked neighbours
func (r *Room) LockedRooms() []*Room {
	var out []*Room
	for _, n := range r.locked {
		if n.IsOccupied() {
			out = append(out, n)
		}
	}
	return out
}

// String converts the room to a multi-line description
func (r *Room) String() string {
	show := func(s string) string {
		if s == "" {
			return None
		}
		return s
	}
	return fmt.Sprintf("%s\nNorth: %s\nSouth: %s\nEast: %s\nWest: %s\nItem: %s",
		r.name, show(r.links[North]), show(r.links[South]), show(r.links[East]), show(r.links[West]), show(r.item))
}
