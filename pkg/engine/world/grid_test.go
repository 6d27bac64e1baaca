package world

import (
	"errors"
	"math/rand"
	"testing"
)

// place is Grid.Place with an unlinked, itemless room
func place(g *Grid, x, y int, name string) *Room {
	r, _ := g.Place(x, y, name, None, None, None, None, None)
	return r
}

func TestNewGrid_Sizes(t *testing.T) {
	for _, interior := range []int{1, 3, 5, 10} {
		g, err := NewGrid(interior)
		if err != nil {
			t.Fatalf("NewGrid(%d): %v", interior, err)
		}
		if g.Side() != interior+2 {
			t.Errorf("NewGrid(%d).Side() = %d, want %d", interior, g.Side(), interior+2)
		}
		if g.MaxStaticRooms() != interior*interior+1 {
			t.Errorf("NewGrid(%d).MaxStaticRooms() = %d, want %d", interior, g.MaxStaticRooms(), interior*interior+1)
		}
		if n := len(g.Occupied()); n != 0 {
			t.Errorf("new grid has %d occupied rooms", n)
		}
		if n := len(g.EmptyInterior()); n != interior*interior {
			t.Errorf("EmptyInterior() = %d cells, want %d", n, interior*interior)
		}
		if err := g.Validate(); err != nil {
			t.Errorf("Validate(): %v", err)
		}
	}

	if _, err := NewGrid(0); !errors.Is(err, ErrGridTooSmall) {
		t.Errorf("NewGrid(0) error = %v, want ErrGridTooSmall", err)
	}
}

func TestGrid_Positions(t *testing.T) {
	g, _ := NewGrid(3)
	tests := []struct {
		x, y                        int
		valid, interior, perimeter bool
	}{
		{0, 0, true, false, true},
		{1, 0, true, false, true},
		{1, 1, true, true, false},
		{3, 3, true, true, false},
		{4, 2, true, false, true},
		{5, 2, false, false, false},
		{-1, 1, false, false, false},
	}
	for _, tt := range tests {
		if got := g.IsValidPosition(tt.x, tt.y); got != tt.valid {
			t.Errorf("IsValidPosition(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.valid)
		}
		if got := g.IsInterior(tt.x, tt.y); got != tt.interior {
			t.Errorf("IsInterior(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.interior)
		}
		if got := g.IsOnPerimeter(tt.x, tt.y); got != tt.perimeter {
			t.Errorf("IsOnPerimeter(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.perimeter)
		}
	}
}

func TestGrid_RoomAtAndFindRoom(t *testing.T) {
	g, _ := NewGrid(3)
	elevator := place(g, 1, 0, "Elevator")

	r, ok := g.RoomAt(1, 0)
	if !ok || r != elevator {
		t.Fatalf("RoomAt(1,0) = %v, %v; want Elevator", r, ok)
	}
	if r.Kind() != KindNormal {
		t.Errorf("Elevator kind = %s, want normal", r.Kind())
	}
	if found, ok := g.FindRoom("Elevator"); !ok || found != elevator {
		t.Errorf("FindRoom(Elevator) = %v, %v", found, ok)
	}

	// unoccupied and out of bounds look the same
	for _, pos := range [][2]int{{2, 2}, {-1, 0}, {9, 9}} {
		if r, ok := g.RoomAt(pos[0], pos[1]); ok || r != nil {
			t.Errorf("RoomAt(%d,%d) = %v, %v; want nil, false", pos[0], pos[1], r, ok)
		}
	}
	if g.Cell(2, 2) == nil {
		t.Error("Cell(2,2) = nil, want the empty cell")
	}
	if _, ok := g.FindRoom("Nowhere"); ok {
		t.Error("FindRoom(Nowhere) found a room")
	}
	if _, ok := g.FindRoom(""); ok {
		t.Error("FindRoom(\"\") found a room")
	}
}

func TestGrid_FirstNameWins(t *testing.T) {
	g, _ := NewGrid(3)
	first := place(g, 1, 1, "Storage")
	place(g, 2, 2, "Storage")

	if r, _ := g.FindRoom("Storage"); r != first {
		t.Errorf("FindRoom(Storage) = (%d,%d), want the first room placed", r.X(), r.Y())
	}

	// renaming the indexed room frees its name
	place(g, 1, 1, "Cargo")
	if _, ok := g.FindRoom("Cargo"); !ok {
		t.Error("FindRoom(Cargo) after rename not found")
	}
	if _, ok := g.FindRoom("Storage"); ok {
		t.Error("FindRoom(Storage) still resolves after the indexed room was renamed")
	}
}

// lockGrid builds a small ship where A and B lock each other, C links to A
// but A does not link back to C
//
//	y=2   C
//	y=1   A  B
func lockGrid(t *testing.T) (*Grid, *Room, *Room, *Room) {
	t.Helper()
	g, _ := NewGrid(3)
	a, _ := g.Place(1, 1, "A", None, None, None, None, None)
	b, _ := g.Place(2, 1, "B", None, None, None, None, None)
	c, _ := g.Place(1, 2, "C", None, None, "A", None, None)
	g.Seal()
	return g, a, b, c
}

func TestGrid_LockedNeighbors(t *testing.T) {
	g, a, b, c := lockGrid(t)

	contains := func(rooms []*Room, r *Room) bool {
		for _, x := range rooms {
			if x == r {
				return true
			}
		}
		return false
	}

	if !contains(a.LockedNeighbors(), b) || !contains(b.LockedNeighbors(), a) {
		t.Error("A and B should lock each other")
	}
	if !contains(a.LockedNeighbors(), c) {
		t.Error("A does not link to C, so C should be locked from A")
	}
	if contains(c.LockedNeighbors(), a) {
		t.Error("C links to A, so A should not be locked from C")
	}
	if !contains(a.LockedNeighbors(), g.Cell(0, 1)) || !contains(a.LockedNeighbors(), g.Cell(1, 0)) {
		t.Error("empty cells next to A should be locked")
	}
	if rooms := a.LockedRooms(); len(rooms) != 2 || rooms[0] != b || rooms[1] != c {
		t.Errorf("LockedRooms(A) = %v, want [B C]", rooms)
	}

	// locked = grid neighbours - accessible, for every room
	for _, r := range g.Occupied() {
		accessible := make(map[*Room]bool)
		for _, n := range g.GraphAccessible(r) {
			accessible[n] = true
		}
		var want []*Room
		for _, n := range g.GridNeighbors(r) {
			if !accessible[n] {
				want = append(want, n)
			}
		}
		got := r.LockedNeighbors()
		if len(got) != len(want) {
			t.Errorf("%s locked = %d rooms, want %d", r.Name(), len(got), len(want))
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s locked[%d] = %s, want %s", r.Name(), i, got[i].Name(), want[i].Name())
			}
		}
	}
}

func TestGrid_GridNeighborsOrder(t *testing.T) {
	g, _ := NewGrid(3)
	center := place(g, 2, 2, "Center")
	east := place(g, 3, 2, "East")
	north := place(g, 2, 3, "North")
	west := place(g, 1, 2, "West")
	south := place(g, 2, 1, "South")

	got := g.GridNeighbors(center)
	want := []*Room{east, north, west, south}
	if len(got) != len(want) {
		t.Fatalf("GridNeighbors = %d rooms, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GridNeighbors[%d] = %s, want %s", i, got[i].Name(), want[i].Name())
		}
	}

	// empty cells are neighbours too, occupied or not
	n := g.GridNeighbors(east)
	if len(n) != 4 || n[2] != center || n[0] != g.Cell(4, 2) || n[1] != g.Cell(3, 3) || n[3] != g.Cell(3, 1) {
		t.Errorf("GridNeighbors(East) = %v, want [(4,2) (3,3) Center (3,1)]", n)
	}
	if occ := g.OccupiedNeighbors(east); len(occ) != 1 || occ[0] != center {
		t.Errorf("OccupiedNeighbors(East) = %v, want [Center]", occ)
	}

	// a corner of the grid has two in-bounds neighbours
	if n := g.GridNeighbors(g.Cell(0, 0)); len(n) != 2 {
		t.Errorf("GridNeighbors(0,0) = %d cells, want 2", len(n))
	}
}

func TestGrid_EmptyCellsAreLocked(t *testing.T) {
	g, _ := NewGrid(3)
	elevator := place(g, 1, 0, "Elevator")
	a := place(g, 1, 1, "A")
	g.Seal()

	if n := len(g.GridNeighbors(a)); n != 4 {
		t.Errorf("GridNeighbors(A) = %d cells, want 4", n)
	}
	locked := a.LockedNeighbors()
	if len(locked) != 4 {
		t.Fatalf("LockedNeighbors(A) = %d cells, want 4", len(locked))
	}
	if rooms := a.LockedRooms(); len(rooms) != 1 || rooms[0] != elevator {
		t.Errorf("LockedRooms(A) = %v, want [Elevator]", rooms)
	}
	if rooms := elevator.LockedRooms(); len(rooms) != 1 || rooms[0] != a {
		t.Errorf("LockedRooms(Elevator) = %v, want [A]", rooms)
	}
}

func TestGrid_GraphAccessibleSkipsUnknownNames(t *testing.T) {
	g, _ := NewGrid(3)
	a, _ := g.Place(1, 1, "A", None, "B", "Ghost", None, "B")
	b := place(g, 1, 2, "B")

	got := g.GraphAccessible(a)
	if len(got) != 1 || got[0] != b {
		t.Errorf("GraphAccessible(A) = %v, want [B]", got)
	}
	if !g.CanPass(a, b) || g.CanPass(b, a) {
		t.Error("CanPass should follow A's links only")
	}
	if err := g.Validate(); err == nil {
		t.Error("Validate() should report the link to Ghost")
	}
}

func TestGrid_Connect(t *testing.T) {
	g, _ := NewGrid(3)
	start := place(g, 0, 2, "Start")
	a := place(g, 1, 2, "A")
	b := place(g, 1, 3, "B")
	for _, r := range g.Occupied() {
		g.Connect(r)
	}
	g.Seal()

	if start.Link(East) != "A" || a.Link(West) != "Start" || a.Link(North) != "B" || b.Link(South) != "A" {
		t.Errorf("unexpected links: start=%v a=%v b=%v", start.Adjacent(), a.Adjacent(), b.Adjacent())
	}
	for _, r := range g.Occupied() {
		if n := len(r.LockedRooms()); n != 0 {
			t.Errorf("%s has %d locked rooms after Connect", r.Name(), n)
		}
	}
	if got := g.Reachable(start).Size(); got != 3 {
		t.Errorf("Reachable(Start) = %d rooms, want 3", got)
	}
}

func TestGrid_ValidateSingleBorderRoom(t *testing.T) {
	g, _ := NewGrid(3)
	place(g, 1, 0, "Elevator")
	place(g, 2, 2, "Bridge")
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	place(g, 4, 2, "Airlock")
	if err := g.Validate(); err == nil {
		t.Error("Validate() should report a second room on the border")
	}
}

func TestGrid_TeleporterIndex(t *testing.T) {
	g, _ := NewGrid(3)
	t1 := place(g, 1, 1, "Teleporter 1")
	place(g, 2, 2, "Bridge")
	t2 := place(g, 3, 3, "Teleporter 2")
	g.Seal()

	tps := g.Teleporters()
	if len(tps) != 2 || tps[0] != t1 || tps[1] != t2 {
		t.Fatalf("Teleporters() = %v, want [Teleporter 1, Teleporter 2]", tps)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate(): %v", err)
	}

	// a teleporter placed after Seal is caught until the next Seal
	place(g, 1, 3, "Teleporter 3")
	if err := g.Validate(); err == nil {
		t.Error("Validate() should report the unindexed teleporter")
	}
	g.Seal()
	if len(g.Teleporters()) != 3 {
		t.Errorf("Teleporters() after reseal = %d, want 3", len(g.Teleporters()))
	}
}

func TestResolveTeleport_NeverReturnsCurrent(t *testing.T) {
	g, _ := NewGrid(4)
	names := []string{"Teleporter A", "Teleporter B", "Teleporter C", "Teleporter D"}
	var rooms []*Room
	for i, n := range names {
		rooms = append(rooms, place(g, i+1, 1, n))
	}
	g.Seal()

	rng := rand.New(rand.NewSource(11))
	current := rooms[0]
	seen := make(map[*Room]int)
	for i := 0; i < 300; i++ {
		next, ok := g.ResolveTeleport(rng, current)
		if !ok {
			t.Fatal("ResolveTeleport reported no other teleporter")
		}
		if next == current {
			t.Fatal("ResolveTeleport returned the current room")
		}
		seen[next]++
	}
	for _, r := range rooms[1:] {
		if seen[r] == 0 {
			t.Errorf("%s never chosen in 300 trials", r.Name())
		}
	}
}

func TestResolveTeleport_LoneTeleporter(t *testing.T) {
	g, _ := NewGrid(3)
	only := place(g, 2, 2, "Teleporter 1")
	g.Seal()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		next, ok := g.ResolveTeleport(rng, only)
		if ok || next != only {
			t.Fatalf("ResolveTeleport = %v, %v; want the same room and false", next.Name(), ok)
		}
	}

	place(g, 1, 1, "Teleporter 2")
	unindexed := place(g, 3, 3, "Teleporter 3")
	g.Seal()
	g.teleporters = g.teleporters[:2]
	if next, ok := g.ResolveTeleport(rng, unindexed); ok || next != unindexed {
		t.Errorf("ResolveTeleport from an unindexed room = %v, %v", next.Name(), ok)
	}
}

func TestGrid_CellSets(t *testing.T) {
	g, _ := NewGrid(3)

	corners := g.InteriorCorners()
	wantCorners := [][2]int{{3, 3}, {3, 1}, {1, 3}, {1, 1}}
	if len(corners) != len(wantCorners) {
		t.Fatalf("InteriorCorners() = %d cells, want 4", len(corners))
	}
	for i, c := range corners {
		if c.X() != wantCorners[i][0] || c.Y() != wantCorners[i][1] {
			t.Errorf("corner %d = (%d,%d), want %v", i, c.X(), c.Y(), wantCorners[i])
		}
	}

	border := g.BorderCells()
	if len(border) != 12 {
		t.Errorf("BorderCells() = %d cells, want 12", len(border))
	}
	for _, c := range border {
		if !g.IsOnPerimeter(c.X(), c.Y()) {
			t.Errorf("border cell (%d,%d) is not on the perimeter", c.X(), c.Y())
		}
		if (c.X() == 0 || c.X() == 4) && (c.Y() == 0 || c.Y() == 4) {
			t.Errorf("border cell (%d,%d) is a grid corner", c.X(), c.Y())
		}
	}

	edges := g.InteriorEdgeCells()
	if len(edges) != 8 {
		t.Errorf("InteriorEdgeCells() = %d cells, want 8", len(edges))
	}
	for _, c := range edges {
		if c.X() == 2 && c.Y() == 2 {
			t.Error("InteriorEdgeCells() includes the centre")
		}
	}

	small, _ := NewGrid(1)
	if n := len(small.InteriorCorners()); n != 1 {
		t.Errorf("1x1 interior has %d corners, want 1", n)
	}
	if n := len(small.InteriorEdgeCells()); n != 1 {
		t.Errorf("1x1 interior has %d edge cells, want 1", n)
	}
}

func TestGrid_EmptyInteriorNeighbors(t *testing.T) {
	g, _ := NewGrid(3)
	corner := place(g, 1, 1, "Corner")
	place(g, 2, 1, "Taken")

	got := g.EmptyInteriorNeighbors(corner)
	if len(got) != 1 || got[0].X() != 1 || got[0].Y() != 2 {
		t.Errorf("EmptyInteriorNeighbors(Corner) = %v, want [(1,2)]", got)
	}
}

func TestDistance(t *testing.T) {
	g, _ := NewGrid(3)
	tests := []struct {
		ax, ay, bx, by, want int
	}{
		{0, 2, 3, 3, 4},
		{0, 2, 1, 1, 2},
		{1, 1, 1, 1, 0},
		{4, 0, 0, 4, 8},
	}
	for _, tt := range tests {
		if got := Distance(g.Cell(tt.ax, tt.ay), g.Cell(tt.bx, tt.by)); got != tt.want {
			t.Errorf("Distance((%d,%d),(%d,%d)) = %d, want %d", tt.ax, tt.ay, tt.bx, tt.by, got, tt.want)
		}
	}
}
