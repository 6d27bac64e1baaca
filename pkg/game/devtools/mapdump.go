// Package devtools provides developer tools for inspecting generated ships.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"spaceescape/pkg/engine/world"
	"spaceescape/pkg/game/state"
)

const mapDumpFilename = "ship.txt"

// roomSymbol returns the single-character symbol for a room in the full layout
func roomSymbol(r *world.Room) rune {
	switch {
	case r == nil || !r.IsOccupied():
		return '#'
	case r.IsTeleporter():
		return 'T'
	case r.HasItem():
		return 'i'
	case len(r.LockedRooms()) > 0:
		return 'L'
	default:
		return '.'
	}
}

// writeLayout writes the grid with north at the top and player/adversary overlay
func writeLayout(w io.Writer, g *state.Game) {
	side := g.Grid.Side()
	for y := side - 1; y >= 0; y-- {
		for x := 0; x < side; x++ {
			r := g.Grid.Cell(x, y)
			switch {
			case r == g.Player.Location():
				fmt.Fprint(w, "@")
			case r == g.Adversary.Location():
				fmt.Fprint(w, "!")
			default:
				fmt.Fprintf(w, "%c", roomSymbol(r))
			}
		}
		fmt.Fprintln(w)
	}
}

func coords(r *world.Room) string {
	if r == nil {
		return "-1,-1"
	}
	return fmt.Sprintf("%d,%d", r.X(), r.Y())
}

func names(rooms []*world.Room) string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		if !r.IsOccupied() {
			out = append(out, "("+coords(r)+")")
			continue
		}
		out = append(out, r.Name())
	}
	return strings.Join(out, ", ")
}

// WriteDump writes a full debug dump of the session: metadata, legend, the
// player's chart, the full layout, every room and the generation report.
func WriteDump(w io.Writer, g *state.Game) error {
	if g.Grid == nil {
		return fmt.Errorf("no grid")
	}

	// --- Metadata ---
	fmt.Fprintln(w, "=== SHIP DUMP DEBUG (layout, connections, anchors) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "session: %s\n", g.ID)
	fmt.Fprintf(w, "seed: %d\n", g.Seed)
	if g.Ship != nil {
		fmt.Fprintf(w, "generator: %s\n", g.Ship.Report.Generator)
	}
	fmt.Fprintf(w, "grid_side: %d\n", g.Grid.Side())
	fmt.Fprintf(w, "grid_interior: %d\n", g.Grid.Interior())
	fmt.Fprintf(w, "coordinate_system: x,y (0-based, north = y+1, east = x+1)\n")
	fmt.Fprintf(w, "player_cell: %s\n", coords(g.Player.Location()))
	fmt.Fprintf(w, "adversary_cell: %s\n", coords(g.Adversary.Location()))
	fmt.Fprintf(w, "round: %d\n", g.Round)
	fmt.Fprintf(w, "items: %d/%d\n", g.Player.Inventory().Size(), g.RequiredItems)
	fmt.Fprintf(w, "result: %s\n", g.Result)
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend (layout symbols) ---")
	fmt.Fprintln(w, ". = room  # = empty  T = teleporter  i = item  L = has locked rooms  @ = player  ! = adversary")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Chart (player view) ---")
	fmt.Fprint(w, RenderChart(g, ChartOptions{Width: 80}))
	fmt.Fprintln(w, Legend())
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Layout (fully revealed) ---")
	writeLayout(w, g)
	fmt.Fprintln(w, "")

	// --- Rooms ---
	fmt.Fprintln(w, "--- Rooms ---")
	g.Grid.ForEachCell(func(x, y int, r *world.Room) {
		if !r.IsOccupied() {
			return
		}
		fmt.Fprintf(w, "  x: %d y: %d name: %q kind: %s item: %q links: [%s] locked: [%s]\n",
			x, y, r.Name(), r.Kind(), r.Item(),
			strings.Join(r.Adjacent(), ", "), names(r.LockedNeighbors()))
	})
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Teleporters:")
	for _, t := range g.Grid.Teleporters() {
		fmt.Fprintf(w, "  x: %d y: %d name: %q\n", t.X(), t.Y(), t.Name())
	}
	fmt.Fprintln(w, "")

	if g.Ship != nil {
		fmt.Fprintln(w, "--- Generation report ---")
		rep := g.Ship.Report
		fmt.Fprintf(w, "rooms: %d teleporters: %d hallways: %d unplaced: %d\n", rep.Rooms, rep.Teleporters, rep.Hallways, rep.Unplaced)
		for _, n := range rep.Notes {
			fmt.Fprintf(w, "  %s\n", n)
		}
	}
	return nil
}

// DumpToFile writes WriteDump output to ship.txt in dir (the working
// directory when empty) and returns the absolute path
func DumpToFile(g *state.Game, dir string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, mapDumpFilename))
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteDump(f, g); err != nil {
		return "", err
	}
	return absPath, nil
}
