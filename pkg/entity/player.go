// pkg/entity/player.go

// Package entity defines the turn-taking participants of the game. A
// player owns a grid position, the anchor where it was first placed,
// and its own undo/redo history of turns.
package entity

import (
	"errors"

	"github.com/opd-ai/go-orbit/pkg/history"
	"github.com/opd-ai/go-orbit/pkg/physics"
)

// State is the player's phase in the placement state machine. The
// transition is one-way per reset cycle: a player awaits placement
// until the confirming click, then stays active until a full reset.
type State int

const (
	StateAwaitingPlacement State = iota
	StateActive
)

// String returns a human-readable state name
func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "awaiting placement"
}

var (
	// ErrNotActive is returned when a turn operation runs before the
	// player has been placed.
	ErrNotActive = errors.New("entity: player has not been placed")

	// ErrAlreadyPlaced is returned when Place runs on an active player.
	ErrAlreadyPlaced = errors.New("entity: player is already placed")

	// ErrNoPosition is returned when Place runs before any pointer
	// sample has been tracked.
	ErrNoPosition = errors.New("entity: player has no position to place at")

	// ErrNoConfirmedTurn is returned when Step runs with the play-head
	// parked at nothing. Stepping before placement is a caller bug;
	// the guard turns it into an error instead of a crash.
	ErrNoConfirmedTurn = errors.New("entity: no confirmed turn to step from")
)

// Player is a turn-taking participant
type Player struct {
	ID      int
	History *history.Log

	state      State
	position   physics.GridVector
	hasPos     bool
	initial    physics.GridVector
	hasInitial bool
}

// NewPlayer returns a player awaiting placement
func NewPlayer(id int) *Player {
	return &Player{ID: id, History: history.New()}
}

// State returns the player's placement state
func (p *Player) State() State {
	return p.state
}

// Position returns the player's current grid position. ok is false
// before the first pointer sample arrives.
func (p *Player) Position() (physics.GridVector, bool) {
	return p.position, p.hasPos
}

// InitialPosition returns the anchor frozen at placement
func (p *Player) InitialPosition() (physics.GridVector, bool) {
	return p.initial, p.hasInitial
}

// TrackPointer lets the position follow the pointer while the player
// awaits placement. Active players ignore pointer tracking; their
// position is owned by the turn history.
func (p *Player) TrackPointer(pos physics.GridVector) {
	if p.state != StateAwaitingPlacement {
		return
	}
	p.position = pos
	p.hasPos = true
}

// Place freezes the tracked position as the player's anchor, activates
// the player, and records the initial zero-length turn with whatever
// force applies at the anchor.
func (p *Player) Place(attractor physics.GridVector, gravityEnabled bool) (physics.TurnRecord, error) {
	if p.state != StateAwaitingPlacement {
		return physics.TurnRecord{}, ErrAlreadyPlaced
	}
	if !p.hasPos {
		return physics.TurnRecord{}, ErrNoPosition
	}

	p.initial = p.position
	p.hasInitial = true
	p.state = StateActive

	force := physics.QuantizeForce(p.position, attractor, gravityEnabled)
	rec, err := physics.NewTurnRecord(physics.ClosedSegment(p.position, p.position), force)
	if err != nil {
		return physics.TurnRecord{}, err
	}
	p.applyRecord(rec)
	return rec, nil
}

// ApplyTurn records a confirmed turn and moves the player to the end of
// its final segment.
func (p *Player) ApplyTurn(rec physics.TurnRecord) error {
	if p.state != StateActive {
		return ErrNotActive
	}
	p.applyRecord(rec)
	return nil
}

// Step advances the simulation one turn without pointer input: the
// latest final vector carries over at constant velocity, the force at
// the new endpoint is applied, and the result is recorded.
func (p *Player) Step(attractor physics.GridVector, gravityEnabled bool) (physics.TurnRecord, error) {
	if p.state != StateActive {
		return physics.TurnRecord{}, ErrNotActive
	}
	last, ok := p.History.Latest()
	if !ok {
		return physics.TurnRecord{}, ErrNoConfirmedTurn
	}
	nextInitial, ok := last.CarryOver()
	if !ok {
		return physics.TurnRecord{}, ErrNoConfirmedTurn
	}

	end, _ := nextInitial.End()
	force := physics.QuantizeForce(end, attractor, gravityEnabled)
	rec, err := physics.NewTurnRecord(nextInitial, force)
	if err != nil {
		return physics.TurnRecord{}, err
	}
	p.applyRecord(rec)
	return rec, nil
}

// Undo moves the play-head back one turn and repositions the player:
// back on the anchor when nothing is confirmed anymore, otherwise on
// the end of the now-current final vector. Returns true when the undo
// landed back on the anchor.
func (p *Player) Undo() bool {
	p.History.Undo()
	return p.syncPosition()
}

// UndoAll parks the play-head at nothing, keeping every record
// redoable, and puts the player back on its anchor.
func (p *Player) UndoAll() {
	p.History.Rewind()
	p.syncPosition()
}

// Redo moves the play-head forward one turn and repositions the player
func (p *Player) Redo() {
	p.History.Redo()
	p.syncPosition()
}

// syncPosition derives the position from the play-head. Reports true
// when the player fell back to its anchor.
func (p *Player) syncPosition() bool {
	if rec, ok := p.History.Latest(); ok {
		if end, ok := rec.Final.End(); ok {
			p.position = end
			p.hasPos = true
		}
		return false
	}
	if p.hasInitial {
		p.position = p.initial
		p.hasPos = true
	}
	return true
}

// applyRecord stores the record and moves the player to its outcome
func (p *Player) applyRecord(rec physics.TurnRecord) {
	p.History.Record(rec)
	if end, ok := rec.Final.End(); ok {
		p.position = end
		p.hasPos = true
	}
}

// ResolvedPosition is where the player's next vector starts: the end of
// the latest confirmed final vector, or the tracked position before
// placement. ok is false when neither exists.
func (p *Player) ResolvedPosition() (physics.GridVector, bool) {
	if rec, ok := p.History.Latest(); ok {
		return rec.Final.End()
	}
	return p.Position()
}

// RestorePlacement seats the anchor directly and activates the player.
// Save restore uses this instead of Place so no new turn is recorded.
func (p *Player) RestorePlacement(anchor physics.GridVector) {
	p.initial = anchor
	p.hasInitial = true
	p.position = anchor
	p.hasPos = true
	p.state = StateActive
}

// RestoreHistory replaces the history with saved records, seats the
// play-head, and re-derives the position. Replaying through Record
// reproduces the log without re-running physics.
func (p *Player) RestoreHistory(records []physics.TurnRecord, head int, headPresent bool) error {
	p.History.Reset()
	for _, rec := range records {
		p.History.Record(rec)
	}
	if err := p.History.SetHead(head, headPresent); err != nil {
		return err
	}
	p.syncPosition()
	return nil
}

// Reset returns the player to awaiting placement and clears its history
func (p *Player) Reset() {
	p.state = StateAwaitingPlacement
	p.hasPos = false
	p.hasInitial = false
	p.position = physics.GridVector{}
	p.initial = physics.GridVector{}
	p.History.Reset()
}
