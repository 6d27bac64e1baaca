package world

import (
	"github.com/zyedidia/generic/mapset"
)

// DisplayState is how a room is shown on the player's chart
type DisplayState int

// Display states
const (
	StateUnknown DisplayState = iota
	StateCurrent
	StateAccessible
	StateLocked
	StateExplored
)

// String returns the string representation of a display state
func (s DisplayState) String() string {
	switch s {
	case StateCurrent:
		return "current"
	case StateAccessible:
		return "accessible"
	case StateLocked:
		return "locked"
	case StateExplored:
		return "explored"
	default:
		return "unknown"
	}
}

// Chart is the per-session presentation state of the ship: which rooms have
// been visited and how each one is displayed. It never affects movement.
type Chart struct {
	visited mapset.Set[*Room]
	states  map[*Room]DisplayState
}

// NewChart creates a chart with every room unknown
func NewChart() *Chart {
	return &Chart{
		visited: mapset.New[*Room](),
		states:  make(map[*Room]DisplayState),
	}
}

// Visited returns true if the room has been entered
func (c *Chart) Visited(r *Room) bool {
	return c.visited.Has(r)
}

// VisitedCount returns the number of rooms entered so far
func (c *Chart) VisitedCount() int {
	return c.visited.Size()
}

// State returns the display state of a room
func (c *Chart) State(r *Room) DisplayState {
	return c.states[r]
}

// Leave fades the room being left and its spatial neighbours: visited rooms
// become explored, the rest go back to unknown
func (c *Chart) Leave(g *Grid, r *Room) {
	if r == nil {
		return
	}
	c.states[r] = StateExplored
	for _, n := range g.GridNeighbors(r) {
		c.fade(n)
	}
}

// Enter marks r as visited and current, its connections accessible and its
// locked neighbours locked
func (c *Chart) Enter(g *Grid, r *Room) {
	if r == nil {
		return
	}
	c.visited.Put(r)
	c.states[r] = StateCurrent
	for _, n := range g.GraphAccessible(r) {
		if n != r {
			c.states[n] = StateAccessible
		}
	}
	for _, n := range g.GraphInaccessible(r) {
		if n != r {
			c.states[n] = StateLocked
		}
	}
}

func (c *Chart) fade(r *Room) {
	if c.visited.Has(r) {
		c.states[r] = StateExplored
	} else {
		c.states[r] = StateUnknown
	}
}
