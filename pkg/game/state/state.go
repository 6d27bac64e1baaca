// Package state holds a game session: the ship, the two actors, the round
// counter and the encounter rule.
package state

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"spaceescape/pkg/engine/world"
	"spaceescape/pkg/game/actor"
	"spaceescape/pkg/game/config"
	"spaceescape/pkg/game/generator"
	"spaceescape/pkg/game/i18n"
	"spaceescape/pkg/game/manifest"
)

// Result is the state of the encounter
type Result int

// Results
const (
	ResultOngoing Result = iota
	ResultWon
	ResultLost
	ResultQuit
)

// String returns the string representation of a result
func (r Result) String() string {
	switch r {
	case ResultOngoing:
		return "ongoing"
	case ResultWon:
		return "won"
	case ResultLost:
		return "lost"
	case ResultQuit:
		return "quit"
	default:
		return "unknown"
	}
}

const maxMessages = 5

// Game represents the state of one session
type Game struct {
	ID   uuid.UUID
	Seed int64

	Ship *generator.Ship
	Grid *world.Grid

	Player    *actor.Actor
	Adversary *actor.Actor

	Round         int
	RequiredItems int
	GraceRounds   int

	Messages []string

	Result Result

	rng *rand.Rand
}

// Rules are the per-session settings that do not affect the ship layout
type Rules struct {
	RequiredItems int
	GraceRounds   int
	PlayerName    string
	AdversaryName string
	// StartRoom places the player by name instead of on the ship's start room
	StartRoom string
}

// NewGame loads the manifest, builds the ship and places both actors
func NewGame(ctx context.Context, cfg *config.Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rows, err := manifest.Load(cfg.Ship.ManifestPath)
	if err != nil {
		return nil, err
	}

	seed := cfg.Ship.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ship, err := NewShipGenerator(cfg.Ship, rng).Generate(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build ship: %w", err)
	}

	g, err := New(ship, rng, Rules{
		RequiredItems: cfg.Game.RequiredItems,
		GraceRounds:   cfg.Game.GraceRounds,
		PlayerName:    cfg.Game.PlayerName,
		AdversaryName: cfg.Game.AdversaryName,
		StartRoom:     cfg.Ship.StartRoom,
	})
	if err != nil {
		return nil, err
	}
	g.Seed = seed
	return g, nil
}

// NewShipGenerator returns the generator for the configured layout mode
func NewShipGenerator(cfg config.ShipConfig, rng *rand.Rand) generator.ShipGenerator {
	if cfg.Mode == config.ModeStatic {
		return &generator.Static{Interior: cfg.Interior, AdversaryRoom: cfg.AdversaryRoom}
	}
	return &generator.Procedural{Interior: cfg.Interior, Rand: rng}
}

// New starts a session on an already built ship. It fails when either actor
// has nowhere to start.
func New(ship *generator.Ship, rng *rand.Rand, rules Rules) (*Game, error) {
	start := ship.Start
	if rules.StartRoom != "" {
		r, ok := ship.Grid.FindRoom(rules.StartRoom)
		if !ok {
			return nil, fmt.Errorf("start room %q not found", rules.StartRoom)
		}
		start = r
	}
	if start == nil {
		return nil, fmt.Errorf("ship has no start room")
	}
	if ship.AdversaryStart == nil || !ship.AdversaryStart.IsOccupied() {
		return nil, fmt.Errorf("ship has no adversary start room")
	}

	g := &Game{
		ID:            uuid.New(),
		Ship:          ship,
		Grid:          ship.Grid,
		RequiredItems: rules.RequiredItems,
		GraceRounds:   rules.GraceRounds,
		Messages:      make([]string, 0),
		rng:           rng,
	}
	g.Player = actor.New(ship.Grid, rules.PlayerName, actor.RolePlayer, start.Name())
	g.Adversary = actor.New(ship.Grid, rules.AdversaryName, actor.RoleAdversary, ship.AdversaryStart.Name())
	return g, nil
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	if msg == "" {
		return
	}
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// Over returns true once the encounter has been decided or the player quit
func (g *Game) Over() bool {
	return g.Result != ResultOngoing
}

// Move plays one turn. The round only advances when the player actually
// moved; after the grace rounds the adversary then wanders, and meeting it
// ends the game.
func (g *Game) Move(intent actor.Intent) actor.Outcome {
	if g.Over() {
		out := actor.Outcome{From: g.Player.Location(), Message: i18n.T("The game is over.")}
		g.AddMessage(out.Message)
		return out
	}

	out := g.Player.AttemptMove(g.rng, intent)
	g.AddMessage(out.Message)
	if !out.Moved {
		return out
	}

	g.Round++
	if g.Round > g.GraceRounds {
		g.AddMessage(g.Adversary.Wander(g.rng).Message)
	}
	g.resolveEncounter()
	return out
}

// PickUp takes the item in the player's room
func (g *Game) PickUp() actor.Pickup {
	res := g.Player.PickUp()
	g.AddMessage(res.Message)
	return res
}

// Quit ends the session without an encounter
func (g *Game) Quit() {
	if !g.Over() {
		g.Result = ResultQuit
	}
}

func (g *Game) resolveEncounter() {
	if !g.Player.Meets(g.Adversary) {
		return
	}
	if g.Player.Inventory().Size() >= g.RequiredItems {
		g.Result = ResultWon
		g.AddMessage(i18n.T("You shut %s down with your equipment. The ship is saved!", g.Adversary.Name))
	} else {
		g.Result = ResultLost
		g.AddMessage(i18n.T("%s caught you without enough equipment. Game over!", g.Adversary.Name))
	}
}

// Status is a snapshot of the session for display
type Status struct {
	Location      string
	Accessible    []string
	Inventory     []string
	Round         int
	RequiredItems int
	Result        Result
}

// Status returns the player's current situation
func (g *Game) Status() Status {
	s := Status{
		Inventory:     g.Player.Inventory().Items(),
		Round:         g.Round,
		RequiredItems: g.RequiredItems,
		Result:        g.Result,
	}
	if loc := g.Player.Location(); loc != nil {
		s.Location = loc.Name()
		for _, r := range g.Grid.GraphAccessible(loc) {
			s.Accessible = append(s.Accessible, r.Name())
		}
	}
	return s
}
