package generator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"spaceescape/pkg/engine/telemetry"
	"spaceescape/pkg/engine/world"
	"spaceescape/pkg/game/manifest"
)

// DefaultAdversaryRoom is where the adversary begins on a static ship
const DefaultAdversaryRoom = "Escape Pods 2"

// Static lays manifest rows out in file order. The first row becomes the
// start room on the south border at (1, 0); the rest fill the interior column
// by column from (1, 1). Connections are taken from the manifest as written.
type Static struct {
	Interior int
	// AdversaryRoom names the adversary's starting room, DefaultAdversaryRoom when empty
	AdversaryRoom string
}

// Name returns the name of this generator
func (s *Static) Name() string {
	return "static"
}

// Generate builds the grid from the manifest
func (s *Static) Generate(ctx context.Context, rows []manifest.Row) (*Ship, error) {
	_, span := telemetry.Tracer("generator").Start(ctx, "ship.static")
	defer span.End()

	if err := manifest.CheckRows(rows); err != nil {
		return nil, err
	}
	grid, err := world.NewGrid(s.Interior)
	if err != nil {
		return nil, fmt.Errorf("static layout: %w", err)
	}

	ship := &Ship{Grid: grid}
	ship.Report.Generator = s.Name()

	place := func(x, y int, row manifest.Row) *world.Room {
		st := row.Static()
		r, _ := grid.Place(x, y, st.Name, st.Item,
			st.Links[world.North], st.Links[world.South], st.Links[world.East], st.Links[world.West])
		return r
	}

	ship.Start = place(1, 0, rows[0])
	placed := 1
	next := 1
	for x := 1; x < grid.Side()-1; x++ {
		for y := 1; y < grid.Side()-1; y++ {
			if next >= len(rows) {
				break
			}
			if placed < grid.MaxStaticRooms() {
				place(x, y, rows[next])
				placed++
			}
			next++
		}
	}
	if extra := len(rows) - placed; extra > 0 {
		ship.Report.Unplaced = extra
		ship.Report.note(PhaseStatic, "%d manifest row(s) did not fit the grid", extra)
	}

	grid.Seal()

	adversary := s.AdversaryRoom
	if adversary == "" {
		adversary = DefaultAdversaryRoom
	}
	if r, ok := grid.FindRoom(adversary); ok {
		ship.AdversaryStart = r
	} else {
		ship.Report.note(PhaseAnchors, "adversary room %q not found", adversary)
	}
	var firstPod *world.Room
	if a := ship.AdversaryStart; a != nil && containsKeyword(a.Name(), EscapePodKeyword) {
		firstPod = a
	}
	ship.EscapePods = escapePods(grid, firstPod)
	ship.Report.Rooms = placed
	ship.Report.Teleporters = len(grid.Teleporters())

	span.SetAttributes(
		attribute.Int("ship.interior", s.Interior),
		attribute.Int("ship.rooms", placed),
		attribute.Int("ship.unplaced", ship.Report.Unplaced),
	)
	return ship, nil
}
