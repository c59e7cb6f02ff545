// pkg/engine/game.go

// Package engine implements the turn controller: the single writer that
// interprets input-layer commands against the active player's state and
// mutates histories, positions, and the view transform. The render
// layer never mutates the game; it reads a Snapshot each frame.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/opd-ai/go-orbit/pkg/config"
	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/event"
	"github.com/opd-ai/go-orbit/pkg/logging"
	"github.com/opd-ai/go-orbit/pkg/physics"
	"github.com/opd-ai/go-orbit/pkg/view"
)

var (
	// ErrVectorInProgress is returned when BeginVector runs while a
	// vector is already being drawn.
	ErrVectorInProgress = errors.New("engine: a vector is already in progress")

	// ErrNoVectorInProgress is returned when ConfirmVector runs with
	// nothing being drawn.
	ErrNoVectorInProgress = errors.New("engine: no vector in progress")

	// ErrNoPointer is returned when a pointer-driven command runs before
	// any pointer sample has arrived.
	ErrNoPointer = errors.New("engine: no pointer sample yet")
)

// Game orchestrates the players, their histories, the view transform,
// and the in-progress vector. All methods run on the frame-loop
// goroutine; there is a single writer per tick, so no locking.
type Game struct {
	cfg    *config.GameConfig
	bus    *event.Bus
	logger *logging.Logger
	ctx    context.Context

	players []*entity.Player
	active  int

	view    *view.Transform
	gravity bool
	dark    bool

	draft      physics.Segment
	pointer    physics.GridVector
	hasPointer bool
}

// New builds a game from a validated config. The transform is reset
// against the configured window size; ResetView follows any later
// viewport change.
func New(cfg *config.GameConfig, bus *event.Bus, logger *logging.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: invalid config: %w", err)
	}

	viewport := physics.Vector2D{
		X: float64(cfg.Window.Width),
		Y: float64(cfg.Window.Height),
	}
	vt, err := view.New(cfg.GridExtent, viewport)
	if err != nil {
		return nil, err
	}

	players := make([]*entity.Player, cfg.Players)
	for i := range players {
		players[i] = entity.NewPlayer(i + 1)
	}

	return &Game{
		cfg:     cfg,
		bus:     bus,
		logger:  logger,
		ctx:     logging.WithCorrelationID(context.Background(), ""),
		players: players,
		view:    vt,
		gravity: cfg.GravityEnabled,
		dark:    cfg.DarkMode,
	}, nil
}

// Config returns the game's configuration
func (g *Game) Config() *config.GameConfig {
	return g.cfg
}

// View returns the grid/pixel transform
func (g *Game) View() *view.Transform {
	return g.view
}

// Players returns the players in turn order
func (g *Game) Players() []*entity.Player {
	return g.players
}

// ActivePlayer returns the player whose turn it is
func (g *Game) ActivePlayer() *entity.Player {
	return g.players[g.active]
}

// GravityEnabled reports whether gravity is on
func (g *Game) GravityEnabled() bool {
	return g.gravity
}

// DarkMode reports the current theme setting
func (g *Game) DarkMode() bool {
	return g.dark
}

// Attractor returns the grid point gravity pulls toward
func (g *Game) Attractor() physics.GridVector {
	return physics.GridVector{X: g.cfg.Attractor.X, Y: g.cfg.Attractor.Y}
}

// SetPointer feeds the per-tick grid-space pointer sample. A player
// awaiting placement follows the pointer.
func (g *Game) SetPointer(pos physics.GridVector) {
	g.pointer = pos
	g.hasPointer = true
	g.ActivePlayer().TrackPointer(pos)
}

// Click dispatches the primary click against the active player's state:
// placement while awaiting, starting a vector when nothing is drawn,
// confirming the vector otherwise.
func (g *Game) Click() error {
	if g.ActivePlayer().State() == entity.StateAwaitingPlacement {
		return g.Place()
	}
	if !g.draft.IsOpen() {
		return g.BeginVector()
	}
	return g.ConfirmVector()
}

// Place freezes the active player at the pointer position and records
// its zero-length placement turn.
func (g *Game) Place() error {
	p := g.ActivePlayer()
	rec, err := p.Place(g.Attractor(), g.gravity)
	if err != nil {
		return err
	}
	g.draft = physics.Segment{}

	pos, _ := p.InitialPosition()
	g.logger.Info(g.ctx, "player placed", "player", p.ID, "x", pos.X, "y", pos.Y)
	g.bus.Publish(&event.PlacementEvent{
		PlayerEvent: playerEvent(event.PlayerPlaced, p.ID),
		Position:    pos,
	})
	g.publishTurn(event.TurnRecorded, p, rec)
	return nil
}

// BeginVector opens the in-progress segment at the active player's
// resolved position, the end of its latest confirmed final vector.
func (g *Game) BeginVector() error {
	p := g.ActivePlayer()
	if p.State() != entity.StateActive {
		return entity.ErrNotActive
	}
	if g.draft.IsOpen() {
		return ErrVectorInProgress
	}
	start, ok := p.ResolvedPosition()
	if !ok {
		return entity.ErrNoPosition
	}
	g.draft = physics.OpenSegment(start)
	return nil
}

// ConfirmVector closes the in-progress segment at the pointer, applies
// the force at its end, and records the turn. Confirming with the
// play-head parked at nothing prunes the whole old branch.
func (g *Game) ConfirmVector() error {
	if !g.draft.IsOpen() {
		return ErrNoVectorInProgress
	}
	if !g.hasPointer {
		return ErrNoPointer
	}

	p := g.ActivePlayer()
	initial := g.draft.Close(g.pointer)
	end, _ := initial.End()
	force := physics.QuantizeForce(end, g.Attractor(), g.gravity)
	rec, err := physics.NewTurnRecord(initial, force)
	if err != nil {
		return err
	}
	if err := p.ApplyTurn(rec); err != nil {
		return err
	}
	g.draft = physics.Segment{}

	g.publishTurn(event.TurnRecorded, p, rec)
	return nil
}

// CancelVector discards the in-progress segment without touching
// history.
func (g *Game) CancelVector() {
	g.draft = physics.Segment{}
}

// Step advances the active player one turn at constant velocity plus
// the force at the new endpoint. Stepping before any confirmed turn is
// a guarded error.
func (g *Game) Step() error {
	p := g.ActivePlayer()
	rec, err := p.Step(g.Attractor(), g.gravity)
	if err != nil {
		g.logger.Warn(g.ctx, "step rejected", "player", p.ID, "reason", err.Error())
		return err
	}
	g.publishTurn(event.TurnRecorded, p, rec)
	return nil
}

// Undo moves the active player's play-head back one turn. Landing back
// on the anchor also discards the in-progress segment, so the player is
// ready to draw a fresh vector from its anchored start.
func (g *Game) Undo() {
	p := g.ActivePlayer()
	if p.Undo() {
		g.draft = physics.Segment{}
	}
	rec, _ := p.History.Latest()
	g.publishTurn(event.TurnUndone, p, rec)
}

// UndoAll rewinds the active player to its anchor, keeping every turn
// redoable.
func (g *Game) UndoAll() {
	p := g.ActivePlayer()
	p.UndoAll()
	g.draft = physics.Segment{}
	g.publishTurn(event.TurnUndone, p, physics.TurnRecord{})
}

// Redo moves the active player's play-head forward one turn
func (g *Game) Redo() {
	p := g.ActivePlayer()
	p.Redo()
	rec, _ := p.History.Latest()
	g.publishTurn(event.TurnRedone, p, rec)
}

// AdvanceTurn hands control to the next player, wrapping. Entering a
// player that has not been placed yet clears the in-progress segment so
// placement starts fresh.
func (g *Game) AdvanceTurn() {
	g.active = (g.active + 1) % len(g.players)
	p := g.ActivePlayer()
	if p.State() == entity.StateAwaitingPlacement {
		g.draft = physics.Segment{}
	}
	g.logger.Debug(g.ctx, "turn advanced", "player", p.ID)
	g.bus.Publish(&event.PlayerEvent{
		BaseEvent: event.BaseEvent{EventType: event.TurnAdvanced, Source: g},
		PlayerID:  p.ID,
	})
}

// ResetAll returns every player to awaiting placement, clears all
// histories, and discards the in-progress segment. Gravity and theme
// fall back to the configured defaults.
func (g *Game) ResetAll() {
	for _, p := range g.players {
		p.Reset()
	}
	g.active = 0
	g.draft = physics.Segment{}
	g.gravity = g.cfg.GravityEnabled
	g.dark = g.cfg.DarkMode

	g.logger.Info(g.ctx, "game reset", "players", len(g.players))
	g.bus.Publish(&event.BaseEvent{EventType: event.GameReset, Source: g})
}

// ResetView recenters and refits the transform against the viewport
func (g *Game) ResetView(viewport physics.Vector2D) {
	g.view.Reset(viewport)
	g.bus.Publish(&event.BaseEvent{EventType: event.ViewReset, Source: g})
}

// ToggleGravity flips the gravity setting
func (g *Game) ToggleGravity() {
	g.SetGravity(!g.gravity)
}

// SetGravity sets the gravity flag directly; save restore uses this
func (g *Game) SetGravity(enabled bool) {
	g.gravity = enabled
	g.logger.Info(g.ctx, "gravity toggled", "enabled", enabled)
	g.bus.Publish(&event.GravityEvent{
		BaseEvent: event.BaseEvent{EventType: event.GravityToggled, Source: g},
		Enabled:   enabled,
	})
}

// ToggleDarkMode flips the theme setting
func (g *Game) ToggleDarkMode() {
	g.dark = !g.dark
}

// SetDarkMode sets the theme directly; save restore uses this
func (g *Game) SetDarkMode(dark bool) {
	g.dark = dark
}

// SetActiveIndex seats the active player directly; save restore uses
// this.
func (g *Game) SetActiveIndex(i int) error {
	if i < 0 || i >= len(g.players) {
		return fmt.Errorf("engine: active index %d out of range for %d players", i, len(g.players))
	}
	g.active = i
	return nil
}

// ActiveIndex returns the zero-based index of the active player
func (g *Game) ActiveIndex() int {
	return g.active
}

// publishTurn emits a turn lifecycle event with the player's play-head
// position after the operation.
func (g *Game) publishTurn(t event.Type, p *entity.Player, rec physics.TurnRecord) {
	head, present := p.History.Head()
	g.bus.Publish(&event.TurnEvent{
		PlayerEvent: playerEvent(t, p.ID),
		Record:      rec,
		Head:        head,
		HeadPresent: present,
	})
}

func playerEvent(t event.Type, id int) event.PlayerEvent {
	return event.PlayerEvent{
		BaseEvent: event.BaseEvent{EventType: t},
		PlayerID:  id,
	}
}

// PlayerView is the render-facing slice of one player's state
type PlayerView struct {
	ID          int
	State       entity.State
	Position    physics.GridVector
	HasPosition bool
	Anchor      physics.GridVector
	HasAnchor   bool
	Turns       []physics.TurnRecord
	Head        int
	HeadPresent bool
}

// Snapshot is everything the render layer reads in one frame. Turns
// contains only confirmed records; anything beyond the play-head is
// undone and must not be drawn.
type Snapshot struct {
	ActiveID       int
	GravityEnabled bool
	DarkMode       bool
	Attractor      physics.GridVector

	Players []PlayerView

	Drawing    bool
	Draft      physics.Segment
	DraftForce physics.GridVector

	Pointer    physics.GridVector
	HasPointer bool
}

// Snapshot captures the current render-facing state. The in-progress
// segment is previewed closed at the pointer, with the force that would
// apply there.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		ActiveID:       g.ActivePlayer().ID,
		GravityEnabled: g.gravity,
		DarkMode:       g.dark,
		Attractor:      g.Attractor(),
		Pointer:        g.pointer,
		HasPointer:     g.hasPointer,
	}

	for _, p := range g.players {
		pos, hasPos := p.Position()
		anchor, hasAnchor := p.InitialPosition()
		head, present := p.History.Head()
		s.Players = append(s.Players, PlayerView{
			ID:          p.ID,
			State:       p.State(),
			Position:    pos,
			HasPosition: hasPos,
			Anchor:      anchor,
			HasAnchor:   hasAnchor,
			Turns:       p.History.Confirmed(),
			Head:        head,
			HeadPresent: present,
		})
	}

	if g.draft.IsOpen() && g.hasPointer {
		s.Drawing = true
		s.Draft = g.draft.Close(g.pointer)
		s.DraftForce = physics.QuantizeForce(g.pointer, g.Attractor(), g.gravity)
	}
	return s
}

// RestorePlayer replaces one player's placement and history from saved
// state. Part of the save package's all-or-nothing load; callers stage
// everything before touching the game.
func (g *Game) RestorePlayer(index int, anchor physics.GridVector, placed bool, records []physics.TurnRecord, head int, headPresent bool) error {
	if index < 0 || index >= len(g.players) {
		return fmt.Errorf("engine: player index %d out of range for %d players", index, len(g.players))
	}
	p := g.players[index]
	p.Reset()
	if !placed {
		return nil
	}
	p.RestorePlacement(anchor)
	return p.RestoreHistory(records, head, headPresent)
}
