// Package main is the entry point for shipgen: it builds a ship from a
// manifest, optionally replays a list of moves, and prints or dumps the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/joho/godotenv"

	"spaceescape/pkg/engine/telemetry"
	"spaceescape/pkg/engine/terminal"
	"spaceescape/pkg/game/actor"
	"spaceescape/pkg/game/config"
	"spaceescape/pkg/game/devtools"
	"spaceescape/pkg/game/i18n"
	"spaceescape/pkg/game/state"
)

func main() {
	// Not fatal - settings may come from the environment or flags
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	manifestPath := flag.String("manifest", cfg.Ship.ManifestPath, "room manifest (.csv, .yaml); empty uses the built-in ship")
	interior := flag.Int("size", cfg.Ship.Interior, "interior side length")
	mode := flag.String("mode", string(cfg.Ship.Mode), "layout mode: static or procedural")
	seed := flag.Int64("seed", cfg.Ship.Seed, "random seed, 0 for a time-based seed")
	moves := flag.String("moves", "", "comma-separated moves to replay, e.g. n,e,pickup,t")
	reveal := flag.Bool("reveal", false, "show the full layout instead of the player's chart")
	dump := flag.String("dump", "", "write a debug dump (ship.txt) into this directory")
	noColor := flag.Bool("no-color", false, "disable coloured output")
	flag.Parse()

	cfg.Ship.ManifestPath = *manifestPath
	cfg.Ship.Interior = *interior
	cfg.Ship.Mode = config.Mode(strings.ToLower(*mode))
	cfg.Ship.Seed = *seed

	i18n.Configure(cfg.Locale.Dir, cfg.Locale.Lang)

	ctx := context.Background()
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	g, err := state.NewGame(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build ship: %v", err)
	}

	if *moves != "" {
		replay(g, *moves)
	}

	interactive := terminal.IsInteractive(os.Stdout)
	color.Enable = interactive && !*noColor

	fmt.Printf("Ship %s (%s, seed %d)\n\n", g.ID, g.Ship.Report.Generator, g.Seed)
	fmt.Print(devtools.RenderChart(g, devtools.ChartOptions{
		Reveal: *reveal,
		Color:  color.Enable,
		Width:  terminal.Width(os.Stdout),
	}))
	fmt.Println(devtools.Legend())
	fmt.Println()

	st := g.Status()
	fmt.Printf("Location: %s\n", st.Location)
	fmt.Printf("Accessible: %s\n", strings.Join(st.Accessible, ", "))
	fmt.Printf("Inventory: %d/%d %v\n", len(st.Inventory), st.RequiredItems, st.Inventory)
	fmt.Printf("Round: %d  Result: %s\n", st.Round, st.Result)
	for _, msg := range g.Messages {
		fmt.Println(msg)
	}
	for _, n := range g.Ship.Report.Notes {
		log.Printf("generator: %s", n)
	}

	if *dump != "" {
		path, err := devtools.DumpToFile(g, *dump)
		if err != nil {
			log.Fatalf("Failed to write dump: %v", err)
		}
		fmt.Printf("Dump written to %s\n", path)
	}
}

// replay plays a comma-separated list of moves and pickups until the game ends
func replay(g *state.Game, moves string) {
	for _, m := range strings.Split(moves, ",") {
		if g.Over() {
			return
		}
		m = strings.TrimSpace(m)
		switch strings.ToLower(m) {
		case "":
			continue
		case "pickup", "p", "item":
			g.PickUp()
			continue
		case "quit", "q":
			g.Quit()
			return
		}
		intent, ok := actor.ParseIntent(m)
		if !ok {
			g.AddMessage(i18n.T("Unknown move %q.", m))
			continue
		}
		g.Move(intent)
	}
}
