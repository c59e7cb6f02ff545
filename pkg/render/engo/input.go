// pkg/render/engo/input.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbit/pkg/engine"
	"github.com/opd-ai/go-orbit/pkg/event"
	"github.com/opd-ai/go-orbit/pkg/logging"
	"github.com/opd-ai/go-orbit/pkg/physics"
	"github.com/opd-ai/go-orbit/pkg/save"
)

// InputSystem translates keyboard and mouse input into game commands.
// It is the only system that mutates the game.
type InputSystem struct {
	game   *engine.Game
	bus    *event.Bus
	logger *logging.Logger
	ctx    context.Context

	// Middle-drag pan state
	panning   bool
	panRef    physics.Vector2D
	panOrigin physics.Vector2D
}

// NewInputSystem creates a new input system
func NewInputSystem(game *engine.Game, bus *event.Bus, logger *logging.Logger) *InputSystem {
	return &InputSystem{
		game:   game,
		bus:    bus,
		logger: logger,
		ctx:    context.Background(),
	}
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
}

// Update processes one tick of input
func (is *InputSystem) Update(dt float32) {
	is.handleMouse()
	is.handleKeys()
}

// handleMouse feeds the pointer sample every tick and maps clicks,
// middle-drag panning, and wheel zoom.
func (is *InputSystem) handleMouse() {
	mouse := engo.Input.Mouse
	pixel := physics.Vector2D{X: float64(mouse.X), Y: float64(mouse.Y)}
	vt := is.game.View()

	is.game.SetPointer(vt.ToGrid(pixel))

	switch {
	case mouse.Action == engo.Press && mouse.Button == engo.MouseButtonLeft:
		if err := is.game.Click(); err != nil {
			is.logger.Debug(is.ctx, "click rejected", "reason", err.Error())
		}
	case mouse.Action == engo.Press && mouse.Button == engo.MouseButtonMiddle:
		is.panning = true
		is.panRef = pixel
		is.panOrigin = vt.Translation()
	case mouse.Action == engo.Release && mouse.Button == engo.MouseButtonMiddle:
		is.panning = false
	}

	if is.panning {
		vt.Pan(pixel, is.panRef, is.panOrigin)
	}

	if mouse.ScrollY > 0 {
		vt.ZoomIn()
	} else if mouse.ScrollY < 0 {
		vt.ZoomOut()
	}
}

// handleKeys maps the keyboard commands. The R key is overloaded:
// plain redo, shift for reset-view, ctrl for reset-all.
func (is *InputSystem) handleKeys() {
	shift := engo.Input.Button("orbitShift").Down()
	ctrl := engo.Input.Button("orbitCtrl").Down()

	if engo.Input.Button("orbitUndo").JustPressed() {
		if shift {
			is.game.UndoAll()
		} else {
			is.game.Undo()
		}
	}

	if engo.Input.Button("orbitRedo").JustPressed() {
		switch {
		case ctrl:
			is.game.ResetAll()
		case shift:
			is.game.ResetView(viewport())
		default:
			is.game.Redo()
		}
	}

	if engo.Input.Button("orbitStep").JustPressed() {
		is.step()
	}
	// Held stepping: one step per tick while the key is down.
	if engo.Input.Button("orbitHeldStep").Down() {
		is.step()
	}

	if engo.Input.Button("orbitAdvance").JustPressed() {
		is.game.AdvanceTurn()
	}
	if engo.Input.Button("orbitCancel").JustPressed() {
		is.game.CancelVector()
	}
	if engo.Input.Button("orbitGravity").JustPressed() {
		is.game.ToggleGravity()
	}
	if engo.Input.Button("orbitTheme").JustPressed() {
		is.game.ToggleDarkMode()
	}

	if ctrl && engo.Input.Button("orbitSave").JustPressed() {
		is.saveGame()
	}
	if ctrl && engo.Input.Button("orbitLoad").JustPressed() {
		is.loadGame()
	}
}

func (is *InputSystem) step() {
	if err := is.game.Step(); err != nil {
		is.logger.Debug(is.ctx, "step rejected", "reason", err.Error())
	}
}

// saveGame writes the current game to the configured save path
func (is *InputSystem) saveGame() {
	path := is.game.Config().SavePath
	f, err := save.Capture(is.game)
	if err != nil {
		is.logger.Error(is.ctx, "save failed", err)
		return
	}
	if err := save.Write(f, path); err != nil {
		is.logger.Error(is.ctx, "save failed", err, "path", path)
		return
	}
	is.logger.Info(is.ctx, "game saved", "path", path, "session", f.SessionID)
	is.bus.Publish(&event.BaseEvent{EventType: event.GameSaved, Source: is.game})
}

// loadGame restores the game from the configured save path. A bad file
// leaves the running game untouched.
func (is *InputSystem) loadGame() {
	path := is.game.Config().SavePath
	f, err := save.Read(path)
	if err != nil {
		is.logger.Error(is.ctx, "load failed", err, "path", path)
		return
	}
	if err := save.Restore(f, is.game); err != nil {
		is.logger.Error(is.ctx, "load failed", err, "path", path)
		return
	}
	is.logger.Info(is.ctx, "game loaded", "path", path, "session", f.SessionID)
	is.bus.Publish(&event.BaseEvent{EventType: event.GameLoaded, Source: is.game})
}

func viewport() physics.Vector2D {
	return physics.Vector2D{
		X: float64(engo.GameWidth()),
		Y: float64(engo.GameHeight()),
	}
}

// SetupInputBindings registers the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton("orbitUndo", engo.KeyU)
	engo.Input.RegisterButton("orbitRedo", engo.KeyR)
	engo.Input.RegisterButton("orbitStep", engo.KeySpace)
	engo.Input.RegisterButton("orbitHeldStep", engo.KeyN)
	engo.Input.RegisterButton("orbitAdvance", engo.KeyTab)
	engo.Input.RegisterButton("orbitCancel", engo.KeyEscape)
	engo.Input.RegisterButton("orbitGravity", engo.KeyF10)
	engo.Input.RegisterButton("orbitTheme", engo.KeyD)
	engo.Input.RegisterButton("orbitSave", engo.KeyS)
	engo.Input.RegisterButton("orbitLoad", engo.KeyL)
	engo.Input.RegisterButton("orbitShift", engo.KeyLeftShift, engo.KeyRightShift)
	engo.Input.RegisterButton("orbitCtrl", engo.KeyLeftControl, engo.KeyRightControl)
}
