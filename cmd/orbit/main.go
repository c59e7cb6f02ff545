// cmd/orbit/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-orbit/pkg/config"
	"github.com/opd-ai/go-orbit/pkg/engine"
	"github.com/opd-ai/go-orbit/pkg/event"
	"github.com/opd-ai/go-orbit/pkg/logging"
	engorender "github.com/opd-ai/go-orbit/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file (JSON or YAML)")
	players := flag.Int("players", 0, "Number of players (overrides config)")
	extent := flag.Int("grid", 0, "Grid extent (overrides config)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	flag.Parse()

	// Load configuration
	var gameConfig *config.GameConfig

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		log.Printf("Configuration file not found, using default configuration")
		gameConfig = config.DefaultConfig()
	} else {
		var err error
		gameConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	if err := config.ApplyEnvOverrides(gameConfig); err != nil {
		log.Fatalf("Invalid environment override: %v", err)
	}

	// Command-line flags win over both the file and the environment.
	if *players > 0 {
		gameConfig.Players = *players
	}
	if *extent > 0 {
		gameConfig.GridExtent = *extent
	}
	if *width > 0 {
		gameConfig.Window.Width = *width
	}
	if *height > 0 {
		gameConfig.Window.Height = *height
	}
	if *fullscreen {
		gameConfig.Window.Fullscreen = true
	}
	if err := gameConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.NewLoggerWithOutput(os.Stderr)
	eventBus := event.NewEventBus()

	game, err := engine.New(gameConfig, eventBus, logger)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	ctx := logging.WithCorrelationID(context.Background(), "")
	logger.Info(ctx, "starting orbit",
		"grid", gameConfig.GridExtent,
		"players", gameConfig.Players,
		"gravity", gameConfig.GravityEnabled,
	)

	scene := engorender.NewGameScene(game, eventBus, logger)
	opts := engo.RunOptions{
		Title:      gameConfig.Window.Title,
		Width:      gameConfig.Window.Width,
		Height:     gameConfig.Window.Height,
		Fullscreen: gameConfig.Window.Fullscreen,
		VSync:      true,
	}
	engo.Run(opts, scene)
}
