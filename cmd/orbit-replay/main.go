// cmd/orbit-replay/main.go

// orbit-replay is a headless companion tool: it loads a save file (or
// runs a small scripted demo), optionally advances the simulation, and
// prints each player's trajectory to stdout. Useful for checking a save
// without starting the GUI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/opd-ai/go-orbit/pkg/config"
	"github.com/opd-ai/go-orbit/pkg/engine"
	"github.com/opd-ai/go-orbit/pkg/event"
	"github.com/opd-ai/go-orbit/pkg/logging"
	"github.com/opd-ai/go-orbit/pkg/physics"
	"github.com/opd-ai/go-orbit/pkg/save"
)

func main() {
	savePath := flag.String("save", "", "Save file to replay (empty runs the scripted demo)")
	steps := flag.Int("steps", 0, "Extra physics steps to run for the active player")
	flag.Parse()

	logger := logging.NewLoggerWithOutput(os.Stderr)
	eventBus := event.NewEventBus()

	var game *engine.Game
	var err error
	if *savePath != "" {
		game, err = loadGame(*savePath, eventBus, logger)
	} else {
		game, err = demoGame(eventBus, logger)
	}
	if err != nil {
		log.Fatalf("orbit-replay: %v", err)
	}

	for i := 0; i < *steps; i++ {
		if err := game.Step(); err != nil {
			log.Fatalf("orbit-replay: step %d: %v", i+1, err)
		}
	}

	report(game)
}

// loadGame builds a game shaped like the save file and restores into it
func loadGame(path string, bus *event.Bus, logger *logging.Logger) (*engine.Game, error) {
	f, err := save.Read(path)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	cfg.GridExtent = f.Payload.Settings.GridExtent
	cfg.Players = len(f.Payload.Players)
	cfg.GravityEnabled = f.Payload.Settings.GravityEnabled
	cfg.Attractor = config.AttractorConfig{
		X: f.Payload.Settings.Attractor.X,
		Y: f.Payload.Settings.Attractor.Y,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	game, err := engine.New(cfg, bus, logger)
	if err != nil {
		return nil, err
	}
	if err := save.Restore(f, game); err != nil {
		return nil, err
	}
	return game, nil
}

// demoGame runs a short scripted game: one player placed above the
// attractor with a diagonal throw, gravity on.
func demoGame(bus *event.Bus, logger *logging.Logger) (*engine.Game, error) {
	cfg := config.DefaultConfig()
	cfg.Players = 1

	game, err := engine.New(cfg, bus, logger)
	if err != nil {
		return nil, err
	}

	game.SetPointer(physics.GridVector{X: 0, Y: 8})
	if err := game.Place(); err != nil {
		return nil, err
	}
	if err := game.BeginVector(); err != nil {
		return nil, err
	}
	game.SetPointer(physics.GridVector{X: 3, Y: 9})
	if err := game.ConfirmVector(); err != nil {
		return nil, err
	}
	for i := 0; i < 6; i++ {
		if err := game.Step(); err != nil {
			return nil, err
		}
	}
	return game, nil
}

// report prints each player's trajectory up to its play-head
func report(game *engine.Game) {
	snap := game.Snapshot()
	fmt.Printf("grid %dx%d, gravity %v, attractor (%d,%d)\n",
		game.Config().GridExtent, game.Config().GridExtent,
		snap.GravityEnabled, snap.Attractor.X, snap.Attractor.Y)

	for _, p := range snap.Players {
		fmt.Printf("\nplayer %d (%s)", p.ID, p.State)
		if p.ID == snap.ActiveID {
			fmt.Printf(" [active]")
		}
		fmt.Println()

		if !p.HasAnchor {
			fmt.Println("  not placed")
			continue
		}
		fmt.Printf("  anchor (%d,%d), %d confirmed turns\n", p.Anchor.X, p.Anchor.Y, len(p.Turns))

		for i, rec := range p.Turns {
			start, _ := rec.Initial.Start()
			end, _ := rec.Initial.End()
			final, _ := rec.Final.End()
			fmt.Printf("  %3d: (%d,%d)->(%d,%d)  force (%d,%d)  => (%d,%d)\n",
				i, start.X, start.Y, end.X, end.Y,
				rec.Force.X, rec.Force.Y, final.X, final.Y)
		}
		if p.HasPosition {
			fmt.Printf("  position (%d,%d)\n", p.Position.X, p.Position.Y)
		}
	}
}
