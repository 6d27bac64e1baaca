// Package actor moves the player and the adversary around the ship grid.
// Both are the same record; the Role decides which moves are allowed.
package actor

import (
	"math/rand"

	"spaceescape/pkg/engine/world"
	"spaceescape/pkg/game/i18n"
)

// Role selects an actor's movement policy
type Role int

// Roles
const (
	// RolePlayer moves in a chosen direction through connections, or teleports
	RolePlayer Role = iota
	// RoleAdversary wanders to a random occupied neighbour, ignoring locks
	RoleAdversary
)

// String returns the string representation of a role
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleAdversary:
		return "adversary"
	default:
		return "unknown"
	}
}

// Actor is a character on the grid
type Actor struct {
	Name string
	Role Role

	grid      *world.Grid
	location  *world.Room
	inventory *world.Inventory
	chart     *world.Chart
}

// New creates an actor on grid and moves it to the named room. An unknown
// name leaves the actor without a location.
func New(grid *world.Grid, name string, role Role, start string) *Actor {
	a := &Actor{
		Name:      name,
		Role:      role,
		grid:      grid,
		inventory: world.NewInventory(),
	}
	if role == RolePlayer {
		a.chart = world.NewChart()
	}
	a.MoveTo(start)
	return a
}

// Location returns the current room, nil when undefined
func (a *Actor) Location() *world.Room {
	return a.location
}

// Inventory returns the actor's items
func (a *Actor) Inventory() *world.Inventory {
	return a.inventory
}

// Chart returns the player's chart, nil for the adversary
func (a *Actor) Chart() *world.Chart {
	return a.chart
}

// MoveTo relocates the actor to the named room. An unknown name leaves the
// actor without a location and returns false.
func (a *Actor) MoveTo(name string) bool {
	r, ok := a.grid.FindRoom(name)
	if !ok {
		a.location = nil
		return false
	}
	a.enter(r)
	return true
}

func (a *Actor) enter(r *world.Room) {
	if a.chart != nil {
		a.chart.Leave(a.grid, a.location)
		a.chart.Enter(a.grid, r)
	}
	a.location = r
}

// CanEnter checks if the actor may step from its room into r
func (a *Actor) CanEnter(r *world.Room) bool {
	if a.location == nil || r == nil || !r.IsOccupied() {
		return false
	}
	if a.Role == RoleAdversary {
		for _, n := range a.grid.OccupiedNeighbors(a.location) {
			if n == r {
				return true
			}
		}
		return false
	}
	return a.grid.CanPass(a.location, r)
}

// AttemptMove tries a player move. A failed move changes nothing and reports why.
func (a *Actor) AttemptMove(rng *rand.Rand, intent Intent) Outcome {
	out := Outcome{From: a.location}
	switch {
	case a.Role != RolePlayer:
		out.Reason = ReasonWrongRole
		out.Message = i18n.T("%s cannot be steered.", a.Name)
		return out
	case a.location == nil:
		out.Reason = ReasonNoLocation
		out.Message = i18n.T("%s is nowhere on the ship.", a.Name)
		return out
	}

	if intent == IntentTeleport {
		return a.teleport(rng, out)
	}

	dir, ok := intent.Direction()
	if !ok {
		out.Reason = ReasonUnknownIntent
		out.Message = i18n.T("%q is not a direction.", string(intent))
		return out
	}

	target := a.grid.Relative(a.location, dir)
	if target == nil || !target.IsOccupied() {
		out.Reason = ReasonNoRoom
		out.Message = i18n.T("There is no accessible room to the %s.", dir.String())
		return out
	}
	if !a.CanEnter(target) {
		out.Reason = ReasonLocked
		out.Message = i18n.T("The way %s to %s is locked.", dir.String(), target.Name())
		return out
	}

	a.enter(target)
	out.Moved = true
	out.To = target
	out.Message = i18n.T("Moved to %s.", target.Name())
	return out
}

func (a *Actor) teleport(rng *rand.Rand, out Outcome) Outcome {
	if !a.location.IsTeleporter() {
		out.Reason = ReasonNotTeleporter
		out.Message = i18n.T("There is no teleporter in %s.", a.location.Name())
		return out
	}
	target, ok := a.grid.ResolveTeleport(rng, a.location)
	if !ok {
		out.Reason = ReasonLoneTeleporter
		out.Message = i18n.T("No remaining teleporters, staying in %s.", a.location.Name())
		return out
	}

	a.enter(target)
	out.Moved = true
	out.To = target
	out.Message = i18n.T("Teleported to %s.", target.Name())
	return out
}

// Wander moves the adversary to a random occupied neighbour. Locks are
// ignored and teleporters are never used.
func (a *Actor) Wander(rng *rand.Rand) Outcome {
	out := Outcome{From: a.location}
	switch {
	case a.Role != RoleAdversary:
		out.Reason = ReasonWrongRole
		out.Message = i18n.T("%s does not wander.", a.Name)
		return out
	case a.location == nil:
		out.Reason = ReasonNoLocation
		out.Message = i18n.T("%s is nowhere on the ship.", a.Name)
		return out
	}

	neighbors := a.grid.OccupiedNeighbors(a.location)
	if len(neighbors) == 0 {
		out.Reason = ReasonNoNeighbors
		out.Message = i18n.T("%s move failed: no adjacent rooms.", a.Name)
		return out
	}

	target := neighbors[rng.Intn(len(neighbors))]
	a.enter(target)
	out.Moved = true
	out.To = target
	out.Message = i18n.T("%s moved to %s.", a.Name, target.Name())
	return out
}

// PickUp takes the item in the current room unless it is already held
func (a *Actor) PickUp() Pickup {
	if a.location == nil {
		return Pickup{Reason: ReasonNoLocation, Message: i18n.T("%s is nowhere on the ship.", a.Name)}
	}
	item := a.location.Item()
	switch {
	case item == "":
		return Pickup{Reason: ReasonNoItem, Message: i18n.T("There is no item in this room.")}
	case a.inventory.Has(item):
		return Pickup{Item: item, Reason: ReasonDuplicateItem, Message: i18n.T("%s was already in your inventory.", item)}
	}

	a.inventory.Add(a.location.TakeItem())
	return Pickup{Item: item, Added: true, Message: i18n.T("Picked up %s.", item)}
}

// Meets reports whether both actors stand in the same room
func (a *Actor) Meets(other *Actor) bool {
	return a.location != nil && other != nil && a.location == other.location
}
