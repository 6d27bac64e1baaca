// Package generator lays manifest rows out on a ship grid, either in file order
// or procedurally by keyword.
package generator

import (
	"context"
	"fmt"

	"spaceescape/pkg/engine/world"
	"spaceescape/pkg/game/i18n"
	"spaceescape/pkg/game/manifest"
)

// ShipGenerator builds a ship grid from manifest rows
type ShipGenerator interface {
	Generate(ctx context.Context, rows []manifest.Row) (*Ship, error)
	Name() string
}

// Keywords that identify the anchor rooms in a manifest
const (
	StartKeyword      = "Planetary Elevator"
	EscapePodKeyword  = "Escape Pods"
	TeleporterKeyword = world.TeleporterMarker
	HallwayPrefix     = "Hallway"
)

// Ship is a generated grid together with its anchor rooms
type Ship struct {
	Grid *world.Grid

	// Start is where the player begins
	Start *world.Room
	// AdversaryStart is where the adversary begins
	AdversaryStart *world.Room
	// EscapePods are the placed escape pod rooms, adversary start first
	EscapePods []*world.Room

	Report Report
}

// Phase names a construction step in a Report
type Phase string

// Construction phases
const (
	PhaseStatic       Phase = "static"
	PhaseAnchors      Phase = "anchors"
	PhaseEscapePods   Phase = "escape-pods"
	PhaseTeleporters  Phase = "teleporters"
	PhaseThemes       Phase = "themes"
	PhaseGeneric      Phase = "generic"
	PhaseHallways     Phase = "hallways"
	PhaseConnectivity Phase = "connectivity"
)

// Note is one line of a generation report
type Note struct {
	Phase   Phase
	Message string
}

// String returns the note as "phase: message"
func (n Note) String() string {
	return fmt.Sprintf("%s: %s", n.Phase, n.Message)
}

// Report records what a generator did, including every step it had to skip
type Report struct {
	Generator   string
	Notes       []Note
	Rooms       int
	Teleporters int
	Hallways    int
	Unplaced    int
}

func (r *Report) note(phase Phase, msgid string, vars ...interface{}) {
	r.Notes = append(r.Notes, Note{Phase: phase, Message: i18n.T(msgid, vars...)})
}

// Messages returns the report notes as plain strings
func (r Report) Messages() []string {
	out := make([]string, 0, len(r.Notes))
	for _, n := range r.Notes {
		out = append(out, n.Message)
	}
	return out
}

// escapePods collects the occupied rooms whose name marks them as escape pods
func escapePods(g *world.Grid, first *world.Room) []*world.Room {
	var pods []*world.Room
	if first != nil {
		pods = append(pods, first)
	}
	for _, r := range g.Occupied() {
		if r != first && containsKeyword(r.Name(), EscapePodKeyword) {
			pods = append(pods, r)
		}
	}
	return pods
}
