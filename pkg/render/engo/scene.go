// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbit/pkg/engine"
	"github.com/opd-ai/go-orbit/pkg/event"
	"github.com/opd-ai/go-orbit/pkg/logging"
)

// GameScene is the single Engo scene: it owns the ECS world and wires
// the board renderer, the input system, and the HUD around the game.
// All game mutation goes through the input system; the renderer and HUD
// only read snapshots.
type GameScene struct {
	world *ecs.World

	game   *engine.Game
	bus    *event.Bus
	logger *logging.Logger

	board *BoardRenderer
	input *InputSystem
	hud   *HUDSystem
}

// NewGameScene creates the scene around an already-built game
func NewGameScene(game *engine.Game, bus *event.Bus, logger *logging.Logger) *GameScene {
	return &GameScene{
		game:   game,
		bus:    bus,
		logger: logger,
		world:  &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	preloadHUDFont()
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	scene.world = &ecs.World{}

	scene.world.AddSystem(&common.RenderSystem{})
	scene.world.AddSystem(&common.MouseSystem{})

	SetupInputBindings()

	scene.board = NewBoardRenderer(scene.world, scene.game)
	scene.world.AddSystem(scene.board)

	scene.input = NewInputSystem(scene.game, scene.bus, scene.logger)
	scene.world.AddSystem(scene.input)

	scene.hud = NewHUDSystem(scene.world, scene.game)
	scene.world.AddSystem(scene.hud)

	scene.subscribeToEvents()
}

// subscribeToEvents wires HUD notices to the turn lifecycle
func (scene *GameScene) subscribeToEvents() {
	ctx := context.Background()

	scene.bus.Subscribe(event.TurnRecorded, func(e event.Event) {
		if te, ok := e.(*event.TurnEvent); ok {
			scene.logger.Debug(ctx, "turn recorded", "player", te.PlayerID, "head", te.Head)
		}
	})
	scene.bus.Subscribe(event.GameSaved, func(e event.Event) {
		scene.hud.SetNotice("game saved")
	})
	scene.bus.Subscribe(event.GameLoaded, func(e event.Event) {
		scene.hud.SetNotice("game loaded")
	})
	scene.bus.Subscribe(event.GameReset, func(e event.Event) {
		scene.hud.SetNotice("game reset")
	})
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
}
