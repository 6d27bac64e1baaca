package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"spaceescape/pkg/engine/telemetry"
	"spaceescape/pkg/engine/world"
	"spaceescape/pkg/game/manifest"
)

// MinProceduralInterior is the smallest interior the procedural generator accepts
const MinProceduralInterior = 3

// ErrInteriorTooSmall is returned when a procedural interior is below MinProceduralInterior
var ErrInteriorTooSmall = errors.New("procedural interior too small")

// maxEscapePods is the number of interior corners
const maxEscapePods = 4

// Procedural places manifest rows by keyword rather than file order. Only
// names and items are read from the manifest; connections come from
// adjacency, so every neighbouring pair of rooms is connected.
type Procedural struct {
	Interior int
	// Rand drives every random choice. A time-seeded source is used when nil.
	Rand *rand.Rand
	// Themes overrides DefaultThemes
	Themes []Theme
}

// Name returns the name of this generator
func (p *Procedural) Name() string {
	return "procedural"
}

// build carries the state of one generation run
type build struct {
	grid   *world.Grid
	rng    *rand.Rand
	pool   *rowPool
	report *Report
	span   trace.Span
}

// Generate builds a ship. Running out of rows, cells or capacity is reported in
// the ship's Report and never fails the run.
func (p *Procedural) Generate(ctx context.Context, rows []manifest.Row) (*Ship, error) {
	_, span := telemetry.Tracer("generator").Start(ctx, "ship.procedural")
	defer span.End()

	if p.Interior < MinProceduralInterior {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrInteriorTooSmall, p.Interior, MinProceduralInterior)
	}
	if err := manifest.CheckRows(rows); err != nil {
		return nil, err
	}
	grid, err := world.NewGrid(p.Interior)
	if err != nil {
		return nil, fmt.Errorf("procedural layout: %w", err)
	}

	rng := p.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	themes := p.Themes
	if themes == nil {
		themes = DefaultThemes
	}

	ship := &Ship{Grid: grid}
	ship.Report.Generator = p.Name()

	b := &build{
		grid:   grid,
		rng:    rng,
		pool:   newRowPool(rows),
		report: &ship.Report,
		span:   span,
	}
	rng.Shuffle(len(b.pool.rows), func(i, j int) {
		b.pool.rows[i], b.pool.rows[j] = b.pool.rows[j], b.pool.rows[i]
	})

	ship.Start = b.placeStart()
	ship.AdversaryStart = b.placeAdversaryStart(ship.Start)
	ship.EscapePods = b.placeEscapePods(ship.AdversaryStart)
	b.placeTeleporters(ship.EscapePods)
	generic := b.placeThemes(themes)
	b.placeGeneric(generic)
	ship.Report.Hallways = b.fillHallways()
	b.connect()

	ship.Report.Rooms = len(grid.Occupied())
	ship.Report.Teleporters = len(grid.Teleporters())
	span.SetAttributes(
		attribute.Int("ship.interior", p.Interior),
		attribute.Int("ship.rooms", ship.Report.Rooms),
		attribute.Int("ship.teleporters", ship.Report.Teleporters),
		attribute.Int("ship.hallways", ship.Report.Hallways),
		attribute.Int("ship.notes", len(ship.Report.Notes)),
	)
	return ship, nil
}

func (b *build) place(cell *world.Room, row manifest.GenRow) *world.Room {
	r, _ := b.grid.Place(cell.X(), cell.Y(), row.Name, row.Item, world.None, world.None, world.None, world.None)
	return r
}

func (b *build) phaseDone(phase Phase, placed int) {
	b.span.AddEvent(string(phase), trace.WithAttributes(attribute.Int("placed", placed)))
}

// placeStart puts the start room on a random border cell
func (b *build) placeStart() *world.Room {
	row, ok := b.pool.takeMatching(StartKeyword)
	if !ok {
		b.report.note(PhaseAnchors, "no %q row in manifest, ship has no start room", StartKeyword)
		b.phaseDone(PhaseAnchors, 0)
		return nil
	}
	border := b.grid.BorderCells()
	return b.place(border[b.rng.Intn(len(border))], row)
}

// placeAdversaryStart picks the interior corner farthest from start. The corner
// is returned even when no escape pod row is left to name it; a later phase
// fills it.
func (b *build) placeAdversaryStart(start *world.Room) *world.Room {
	var corner *world.Room
	best := -1
	for _, c := range b.grid.InteriorCorners() {
		d := 0
		if start != nil {
			d = world.Distance(start, c)
		}
		if d > best {
			best = d
			corner = c
		}
	}

	row, ok := b.pool.takeMatching(EscapePodKeyword)
	if !ok {
		b.report.note(PhaseAnchors, "no %q row in manifest for the adversary corner", EscapePodKeyword)
		b.phaseDone(PhaseAnchors, 1)
		return corner
	}
	b.phaseDone(PhaseAnchors, 2)
	return b.place(corner, row)
}

// placeEscapePods fills the remaining corners with escape pods while rows last
func (b *build) placeEscapePods(first *world.Room) []*world.Room {
	if first == nil || !containsKeyword(first.Name(), EscapePodKeyword) {
		b.report.note(PhaseEscapePods, "no escape pods placed")
		b.phaseDone(PhaseEscapePods, 0)
		return nil
	}

	pods := []*world.Room{first}
	var corners []*world.Room
	for _, c := range b.grid.InteriorCorners() {
		if !c.IsOccupied() {
			corners = append(corners, c)
		}
	}
	for len(pods) < maxEscapePods && len(corners) > 0 {
		row, ok := b.pool.takeMatching(EscapePodKeyword)
		if !ok {
			break
		}
		i := b.rng.Intn(len(corners))
		pods = append(pods, b.place(corners[i], row))
		corners = append(corners[:i], corners[i+1:]...)
	}
	if len(pods) < maxEscapePods && len(corners) > 0 {
		b.report.note(PhaseEscapePods, "only %d escape pod(s) in manifest", len(pods))
	}
	b.phaseDone(PhaseEscapePods, len(pods))
	return pods
}

// placeTeleporters places the teleporters and withholds the teleporter rows
// beyond the limit, so later phases never exceed it. Rows within the limit
// that found no edge cell go on to the generic phase.
func (b *build) placeTeleporters(pods []*world.Room) {
	placed, limit := b.spreadTeleporters(pods)
	room := limit - placed
	left := 0
	for i := 0; i < len(b.pool.rows); {
		if !b.pool.rows[i].Matches(TeleporterKeyword) {
			i++
			continue
		}
		if room > 0 {
			room--
			i++
			continue
		}
		b.pool.take(i)
		left++
	}
	if left > 0 {
		b.report.note(PhaseTeleporters, "%d teleporter row(s) left out", left)
	}
}

// spreadTeleporters puts one teleporter next to a random pod, then spreads the
// rest over the interior edge, each on the free edge cell farthest in total
// from those already placed. It returns the number placed and the limit.
func (b *build) spreadTeleporters(pods []*world.Room) (int, int) {
	limit := 4*b.grid.Side() - 12 - len(pods)
	if limit <= 0 {
		b.report.note(PhaseTeleporters, "no capacity for teleporters")
		b.phaseDone(PhaseTeleporters, 0)
		return 0, 0
	}
	if len(pods) == 0 {
		b.report.note(PhaseTeleporters, "no escape pods to anchor a teleporter")
		b.phaseDone(PhaseTeleporters, 0)
		return 0, limit
	}
	if b.pool.find(TeleporterKeyword) < 0 {
		b.report.note(PhaseTeleporters, "no teleporter rows in manifest")
		b.phaseDone(PhaseTeleporters, 0)
		return 0, limit
	}

	pod := pods[b.rng.Intn(len(pods))]
	options := b.grid.EmptyInteriorNeighbors(pod)
	if len(options) == 0 {
		b.report.note(PhaseTeleporters, "no free cell next to %s for a teleporter", pod.Name())
		b.phaseDone(PhaseTeleporters, 0)
		return 0, limit
	}
	row, _ := b.pool.takeMatching(TeleporterKeyword)
	teleporters := []*world.Room{b.place(options[b.rng.Intn(len(options))], row)}

	for len(teleporters) < limit {
		i := b.pool.find(TeleporterKeyword)
		if i < 0 {
			break
		}
		var cell *world.Room
		best := -1
		for _, c := range b.grid.InteriorEdgeCells() {
			if c.IsOccupied() {
				continue
			}
			total := 0
			for _, t := range teleporters {
				total += world.Distance(c, t)
			}
			if total > best {
				best = total
				cell = c
			}
		}
		if cell == nil {
			b.report.note(PhaseTeleporters, "no free edge cell for further teleporters")
			break
		}
		teleporters = append(teleporters, b.place(cell, b.pool.take(i)))
	}
	if len(teleporters) == limit && b.pool.find(TeleporterKeyword) >= 0 {
		b.report.note(PhaseTeleporters, "teleporter limit of %d reached", limit)
	}
	b.phaseDone(PhaseTeleporters, len(teleporters))
	return len(teleporters), limit
}

// placeThemes grows one cluster per theme, in random theme order, and returns
// the rows that were not placed together with the unthemed ones
func (b *build) placeThemes(themes []Theme) []manifest.GenRow {
	groups, generic := groupByTheme(b.pool.drain(), themes)

	placed := 0
	for len(groups) > 0 && len(b.grid.EmptyInterior()) > 0 {
		i := b.rng.Intn(len(groups))
		g := groups[i]
		groups = append(groups[:i], groups[i+1:]...)

		rest := b.growCluster(g.rows)
		if n := len(g.rows) - len(rest); n > 0 {
			placed += n
			b.report.note(PhaseThemes, "added %d %s room(s)", n, g.theme.Name)
		}
		generic = append(generic, rest...)
	}
	for _, g := range groups {
		if len(g.rows) > 0 {
			b.report.note(PhaseThemes, "no room left for the %s rooms", g.theme.Name)
			generic = append(generic, g.rows...)
		}
	}
	b.phaseDone(PhaseThemes, placed)
	return generic
}

// growCluster seeds a random empty cell and grows outward through a frontier of
// empty neighbours, returning the rows left when the frontier runs dry
func (b *build) growCluster(rows []manifest.GenRow) []manifest.GenRow {
	empty := b.grid.EmptyInterior()
	if len(rows) == 0 || len(empty) == 0 {
		return rows
	}

	seen := mapset.New[*world.Room]()
	var frontier []*world.Room
	extend := func(r *world.Room) {
		for _, n := range b.grid.EmptyInteriorNeighbors(r) {
			if !seen.Has(n) {
				seen.Put(n)
				frontier = append(frontier, n)
			}
		}
	}

	extend(b.place(empty[b.rng.Intn(len(empty))], rows[0]))
	rows = rows[1:]

	for len(rows) > 0 && len(frontier) > 0 {
		i := b.rng.Intn(len(frontier))
		cell := frontier[i]
		frontier = append(frontier[:i], frontier[i+1:]...)
		if cell.IsOccupied() {
			continue
		}
		extend(b.place(cell, rows[0]))
		rows = rows[1:]
	}
	return rows
}

// placeGeneric scatters the remaining rows over random empty cells
func (b *build) placeGeneric(rows []manifest.GenRow) {
	empty := b.grid.EmptyInterior()
	placed := 0
	for len(rows) > 0 && len(empty) > 0 {
		i := b.rng.Intn(len(empty))
		b.place(empty[i], rows[0])
		rows = rows[1:]
		empty = append(empty[:i], empty[i+1:]...)
		placed++
	}
	if len(rows) > 0 {
		b.report.Unplaced = len(rows)
		b.report.note(PhaseGeneric, "%d room(s) did not fit the grid", len(rows))
	}
	b.phaseDone(PhaseGeneric, placed)
}

// fillHallways names every remaining interior cell "Hallway N", skipping
// numbers whose name a manifest room already holds
func (b *build) fillHallways() int {
	n, next := 0, 0
	for _, cell := range b.grid.EmptyInterior() {
		var name string
		for {
			next++
			name = fmt.Sprintf("%s %d", HallwayPrefix, next)
			if _, taken := b.grid.FindRoom(name); !taken {
				break
			}
		}
		b.place(cell, manifest.GenRow{Name: name, Item: world.None})
		n++
	}
	b.phaseDone(PhaseHallways, n)
	return n
}

// connect links every occupied room to its occupied neighbours and seals the grid
func (b *build) connect() {
	rooms := b.grid.Occupied()
	for _, r := range rooms {
		b.grid.Connect(r)
	}
	b.grid.Seal()
	b.phaseDone(PhaseConnectivity, len(rooms))
}
