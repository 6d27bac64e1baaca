package world

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// ErrGridTooSmall is returned when the requested interior has no cells
var ErrGridTooSmall = errors.New("grid interior must be at least 1x1")

// Grid owns every room of the ship. The allocated side is the interior size
// plus a one-cell border on each edge.
type Grid struct {
	rooms    []*Room
	roomDir  map[string]*Room
	side     int
	interior int

	teleporters []*Room
}

// NewGrid creates a grid of empty rooms around an interior of the given size
func NewGrid(interior int) (*Grid, error) {
	if interior < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrGridTooSmall, interior)
	}
	g := &Grid{}
	g.build(interior)
	return g, nil
}

func (g *Grid) build(interior int) {
	g.interior = interior
	g.side = interior + 2
	g.rooms = make([]*Room, g.side*g.side)
	g.roomDir = make(map[string]*Room)
	g.teleporters = nil

	for x := 0; x < g.side; x++ {
		for y := 0; y < g.side; y++ {
			g.rooms[x*g.side+y] = newRoom(x, y)
		}
	}
}

// Side returns the allocated side length, border included
func (g *Grid) Side() int {
	return g.side
}

// Interior returns the side length of the playable interior
func (g *Grid) Interior() int {
	return g.interior
}

// MaxStaticRooms is the number of rooms a static manifest can place:
// the full interior plus the start room on the border
func (g *Grid) MaxStaticRooms() int {
	return g.interior*g.interior + 1
}

// IsValidPosition checks if a position is within grid bounds
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.side && y >= 0 && y < g.side
}

// IsInterior checks if a position is inside the border
func (g *Grid) IsInterior(x, y int) bool {
	return x >= 1 && x < g.side-1 && y >= 1 && y < g.side-1
}

// IsOnPerimeter checks if a position is on the border
func (g *Grid) IsOnPerimeter(x, y int) bool {
	return g.IsValidPosition(x, y) && !g.IsInterior(x, y)
}

// Cell returns the cell at the given position whether occupied or not,
// or nil if out of bounds
func (g *Grid) Cell(x, y int) *Room {
	if !g.IsValidPosition(x, y) {
		return nil
	}
	return g.rooms[x*g.side+y]
}

// RoomAt returns the occupied room at the given position. Out of bounds and
// unoccupied cells both report false.
func (g *Grid) RoomAt(x, y int) (*Room, bool) {
	r := g.Cell(x, y)
	if r == nil || !r.IsOccupied() {
		return nil, false
	}
	return r, true
}

// FindRoom returns the room registered under name
func (g *Grid) FindRoom(name string) (*Room, bool) {
	if name == "" {
		return nil, false
	}
	r, ok := g.roomDir[name]
	return r, ok
}

// Relative returns the cell next to r in the given direction, or nil
func (g *Grid) Relative(r *Room, dir Direction) *Room {
	if r == nil || !dir.IsValid() {
		return nil
	}
	dx, dy := dir.Delta()
	return g.Cell(r.x+dx, r.y+dy)
}

// Place applies a manifest entry to the cell at (x, y). The first room placed
// under a name keeps that name in the index.
func (g *Grid) Place(x, y int, name, item, north, south, east, west string) (*Room, bool) {
	r := g.Cell(x, y)
	if r == nil {
		return nil, false
	}
	if old := r.name; old != "" && g.roomDir[old] == r {
		delete(g.roomDir, old)
	}
	r.Apply(name, item, north, south, east, west)
	if r.name != "" {
		if _, taken := g.roomDir[r.name]; !taken {
			g.roomDir[r.name] = r
		}
	}
	return r, true
}

// Connect sets r's connections from the names of its occupied spatial
// neighbours, keeping its name and item
func (g *Grid) Connect(r *Room) {
	if r == nil || !r.IsOccupied() {
		return
	}
	var names [4]string
	for _, dir := range AllDirections() {
		names[dir] = None
		if n := g.Relative(r, dir); n != nil && n.IsOccupied() {
			names[dir] = n.name
		}
	}
	r.links = [4]string{}
	r.adjacent = nil
	r.addAdjacent(names[North], names[South], names[East], names[West])
}

// GridNeighbors returns the in-bounds cells spatially adjacent to r, occupied
// or not, ignoring connections, in east, north, west, south order
func (g *Grid) GridNeighbors(r *Room) []*Room {
	if r == nil {
		return nil
	}
	var neighbors []*Room
	for _, dir := range []Direction{East, North, West, South} {
		if n := g.Relative(r, dir); n != nil {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// OccupiedNeighbors returns the grid neighbours of r that hold a room
func (g *Grid) OccupiedNeighbors(r *Room) []*Room {
	var rooms []*Room
	for _, n := range g.GridNeighbors(r) {
		if n.IsOccupied() {
			rooms = append(rooms, n)
		}
	}
	return rooms
}

// GraphAccessible resolves r's connections through the name index. Names that
// do not resolve are skipped.
func (g *Grid) GraphAccessible(r *Room) []*Room {
	if r == nil {
		return nil
	}
	seen := mapset.New[*Room]()
	var accessible []*Room
	for _, name := range r.adjacent {
		n, ok := g.FindRoom(name)
		if !ok || seen.Has(n) {
			continue
		}
		seen.Put(n)
		accessible = append(accessible, n)
	}
	return accessible
}

// GraphInaccessible returns the grid neighbours of r that are not among its
// resolved connections. Empty cells are always inaccessible.
func (g *Grid) GraphInaccessible(r *Room) []*Room {
	accessible := mapset.New[*Room]()
	for _, n := range g.GraphAccessible(r) {
		accessible.Put(n)
	}
	var locked []*Room
	for _, n := range g.GridNeighbors(r) {
		if !accessible.Has(n) {
			locked = append(locked, n)
		}
	}
	return locked
}

// CanPass returns true if to is one of from's resolved connections
func (g *Grid) CanPass(from, to *Room) bool {
	for _, n := range g.GraphAccessible(from) {
		if n == to {
			return true
		}
	}
	return false
}

// Seal recomputes every occupied room's locked neighbours and rebuilds the
// teleporter index. Call it once all rooms are placed and connected.
func (g *Grid) Seal() {
	g.teleporters = nil
	g.ForEachCell(func(x, y int, r *Room) {
		r.locked = nil
		if !r.IsOccupied() {
			return
		}
		r.locked = g.GraphInaccessible(r)
		if r.IsTeleporter() {
			g.teleporters = append(g.teleporters, r)
		}
	})
}

// Teleporters returns the teleporter index
func (g *Grid) Teleporters() []*Room {
	out := make([]*Room, len(g.teleporters))
	copy(out, g.teleporters)
	return out
}

// ResolveTeleport picks a random teleporter other than current. When current
// is not indexed or no other teleporter exists it returns current and false.
func (g *Grid) ResolveTeleport(rng *rand.Rand, current *Room) (*Room, bool) {
	indexed := false
	others := make([]*Room, 0, len(g.teleporters))
	for _, t := range g.teleporters {
		if t == current {
			indexed = true
			continue
		}
		others = append(others, t)
	}
	if !indexed || len(others) == 0 {
		return current, false
	}
	return others[rng.Intn(len(others))], true
}

// Distance returns the Manhattan distance between two rooms
func Distance(a, b *Room) int {
	dx := a.x - b.x
	dy := a.y - b.y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Reachable returns every room reachable from start by following connections
func (g *Grid) Reachable(start *Room) mapset.Set[*Room] {
	reachable := mapset.New[*Room]()
	if start == nil || !start.IsOccupied() {
		return reachable
	}
	queue := []*Room{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if reachable.Has(current) {
			continue
		}
		reachable.Put(current)

		for _, n := range g.GraphAccessible(current) {
			if !reachable.Has(n) {
				queue = append(queue, n)
			}
		}
	}
	return reachable
}

// ForEachCell iterates over every cell, occupied or not, x-major
func (g *Grid) ForEachCell(fn func(x, y int, r *Room)) {
	for x := 0; x < g.side; x++ {
		for y := 0; y < g.side; y++ {
			fn(x, y, g.rooms[x*g.side+y])
		}
	}
}

// Occupied returns all occupied rooms, x-major
func (g *Grid) Occupied() []*Room {
	var rooms []*Room
	g.ForEachCell(func(x, y int, r *Room) {
		if r.IsOccupied() {
			rooms = append(rooms, r)
		}
	})
	return rooms
}

// EmptyInterior returns all unoccupied interior cells, x-major
func (g *Grid) EmptyInterior() []*Room {
	var rooms []*Room
	for x := 1; x < g.side-1; x++ {
		for y := 1; y < g.side-1; y++ {
			if r := g.rooms[x*g.side+y]; !r.IsOccupied() {
				rooms = append(rooms, r)
			}
		}
	}
	return rooms
}

// EmptyInteriorNeighbors returns the unoccupied interior cells next to r in
// east, north, west, south order
func (g *Grid) EmptyInteriorNeighbors(r *Room) []*Room {
	var out []*Room
	for _, dir := range []Direction{East, North, West, South} {
		n := g.Relative(r, dir)
		if n != nil && g.IsInterior(n.x, n.y) && !n.IsOccupied() {
			out = append(out, n)
		}
	}
	return out
}

// InteriorCorners returns the four corner cells of the interior, starting with
// the one farthest from the origin
func (g *Grid) InteriorCorners() []*Room {
	last := g.side - 2
	candidates := []*Room{g.Cell(last, last), g.Cell(last, 1), g.Cell(1, last), g.Cell(1, 1)}
	seen := mapset.New[*Room]()
	var corners []*Room
	for _, c := range candidates {
		if !seen.Has(c) {
			seen.Put(c)
			corners = append(corners, c)
		}
	}
	return corners
}

// BorderCells returns the border cells, excluding the four grid corners
func (g *Grid) BorderCells() []*Room {
	var cells []*Room
	for y := 1; y < g.side-1; y++ {
		cells = append(cells, g.Cell(0, y), g.Cell(g.side-1, y))
	}
	for x := 1; x < g.side-1; x++ {
		cells = append(cells, g.Cell(x, 0), g.Cell(x, g.side-1))
	}
	return cells
}

// InteriorEdgeCells returns the cells on the outer ring of the interior:
// bottom and top rows first, then the left and right columns without corners
func (g *Grid) InteriorEdgeCells() []*Room {
	last := g.side - 2
	seen := mapset.New[*Room]()
	var cells []*Room
	add := func(r *Room) {
		if !seen.Has(r) {
			seen.Put(r)
			cells = append(cells, r)
		}
	}
	for x := 1; x <= last; x++ {
		add(g.Cell(x, 1))
		add(g.Cell(x, last))
	}
	for y := 2; y < last; y++ {
		add(g.Cell(1, y))
		add(g.Cell(last, y))
	}
	return cells
}

// Validate checks the grid invariants and returns the first violation found
func (g *Grid) Validate() error {
	if g.side != g.interior+2 || len(g.rooms) != g.side*g.side {
		return fmt.Errorf("grid dimensions inconsistent: side %d, interior %d", g.side, g.interior)
	}

	indexed := mapset.New[*Room]()
	for _, t := range g.teleporters {
		if !t.IsTeleporter() {
			return fmt.Errorf("teleporter index holds %q which is not a teleporter", t.name)
		}
		indexed.Put(t)
	}

	var err error
	var border *Room
	g.ForEachCell(func(x, y int, r *Room) {
		if err != nil {
			return
		}
		if r.IsOccupied() && g.IsOnPerimeter(x, y) {
			if border != nil {
				err = fmt.Errorf("rooms %q and %q both sit on the border", border.name, r.name)
				return
			}
			border = r
		}
		if r.IsTeleporter() && !indexed.Has(r) {
			err = fmt.Errorf("teleporter %q at (%d,%d) missing from index", r.name, x, y)
			return
		}
		for _, name := range r.adjacent {
			if _, ok := g.FindRoom(name); !ok {
				err = fmt.Errorf("room %q links to unknown room %q", r.name, name)
				return
			}
		}
	})
	return err
}
