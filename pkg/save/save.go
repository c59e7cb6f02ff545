// pkg/save/save.go

// Package save persists and restores whole games. A save file is a
// versioned JSON document: a session ID, the settings and view
// parameters, and per player the placement anchor plus every turn as an
// (initial start, initial end, force) triple with the play-head
// position. The payload carries an xxhash digest; a file that fails the
// digest or any structural check is rejected before the in-memory game
// is touched, so loading is all-or-nothing.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/opd-ai/go-orbit/pkg/engine"
	"github.com/opd-ai/go-orbit/pkg/physics"
)

// Version is the save file format version
const Version = 1

var (
	// ErrVersion is returned for a save file written by an unknown
	// format version.
	ErrVersion = errors.New("save: unsupported file version")

	// ErrDigest is returned when the payload digest does not match,
	// meaning the file was truncated or edited.
	ErrDigest = errors.New("save: payload digest mismatch")

	// ErrMismatch is returned when a save does not fit the game it is
	// being restored into (player count or grid extent differ).
	ErrMismatch = errors.New("save: file does not match this game")
)

// File is the on-disk save document
type File struct {
	Version   int     `json:"version"`
	SessionID string  `json:"sessionId"`
	Digest    string  `json:"digest"`
	Payload   Payload `json:"payload"`
}

// Payload is the digested part of the save file
type Payload struct {
	Settings Settings      `json:"settings"`
	View     ViewState     `json:"view"`
	Active   int           `json:"activePlayer"`
	Players  []PlayerState `json:"players"`
}

// Settings captures the global game settings at save time
type Settings struct {
	GridExtent     int   `json:"gridExtent"`
	GravityEnabled bool  `json:"gravityEnabled"`
	DarkMode       bool  `json:"darkMode"`
	Attractor      Point `json:"attractor"`
}

// ViewState captures the pan/zoom parameters
type ViewState struct {
	Scale        float64 `json:"scale"`
	TranslationX float64 `json:"translationX"`
	TranslationY float64 `json:"translationY"`
}

// Point is a grid point in save-file form
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TurnState is one turn as stored: the initial segment's endpoints and
// the force. The final segment is derived on restore, so it is not
// stored.
type TurnState struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
	Force Point `json:"force"`
}

// PlayerState is one player's full state: anchor, every recorded turn
// (undone future included), and the play-head.
type PlayerState struct {
	ID          int         `json:"id"`
	Placed      bool        `json:"placed"`
	Anchor      Point       `json:"anchor"`
	Turns       []TurnState `json:"turns"`
	Head        int         `json:"head"`
	HeadPresent bool        `json:"headPresent"`
}

func toPoint(v physics.GridVector) Point {
	return Point{X: v.X, Y: v.Y}
}

func (p Point) vector() physics.GridVector {
	return physics.GridVector{X: p.X, Y: p.Y}
}

// Capture builds a save file from the current game state
func Capture(g *engine.Game) (*File, error) {
	payload := Payload{
		Settings: Settings{
			GridExtent:     g.Config().GridExtent,
			GravityEnabled: g.GravityEnabled(),
			DarkMode:       g.DarkMode(),
			Attractor:      toPoint(g.Attractor()),
		},
		View: ViewState{
			Scale:        g.View().Scale(),
			TranslationX: g.View().Translation().X,
			TranslationY: g.View().Translation().Y,
		},
		Active: g.ActiveIndex(),
	}

	for _, p := range g.Players() {
		anchor, placed := p.InitialPosition()
		head, present := p.History.Head()
		ps := PlayerState{
			ID:          p.ID,
			Placed:      placed,
			Anchor:      toPoint(anchor),
			Head:        head,
			HeadPresent: present,
		}
		for _, rec := range p.History.All() {
			start, ok := rec.Initial.Start()
			if !ok {
				return nil, fmt.Errorf("save: player %d has an unfinished turn record", p.ID)
			}
			end, _ := rec.Initial.End()
			ps.Turns = append(ps.Turns, TurnState{
				Start: toPoint(start),
				End:   toPoint(end),
				Force: toPoint(rec.Force),
			})
		}
		payload.Players = append(payload.Players, ps)
	}

	digest, err := digestOf(payload)
	if err != nil {
		return nil, err
	}
	return &File{
		Version:   Version,
		SessionID: uuid.NewString(),
		Digest:    digest,
		Payload:   payload,
	}, nil
}

// digestOf hashes the canonical JSON encoding of the payload
func digestOf(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("save: failed to encode payload: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}

// Write persists a save file as indented JSON
func Write(f *File, path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("save: failed to encode file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save: failed to write %s: %w", path, err)
	}
	return nil
}

// Read loads a save file and verifies its version and digest
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("save: failed to read %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("save: failed to parse %s: %w", path, err)
	}
	if f.Version != Version {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersion, f.Version, Version)
	}

	digest, err := digestOf(f.Payload)
	if err != nil {
		return nil, err
	}
	if digest != f.Digest {
		return nil, ErrDigest
	}
	return &f, nil
}

// Restore applies a save file to a game. Every structural check and
// record rebuild happens before the first mutation; a failing file
// leaves the game exactly as it was.
func Restore(f *File, g *engine.Game) error {
	if f.Payload.Settings.GridExtent != g.Config().GridExtent {
		return fmt.Errorf("%w: grid extent %d, game has %d",
			ErrMismatch, f.Payload.Settings.GridExtent, g.Config().GridExtent)
	}
	if len(f.Payload.Players) != len(g.Players()) {
		return fmt.Errorf("%w: %d players, game has %d",
			ErrMismatch, len(f.Payload.Players), len(g.Players()))
	}
	if f.Payload.Active < 0 || f.Payload.Active >= len(g.Players()) {
		return fmt.Errorf("save: active player %d out of range", f.Payload.Active)
	}

	// Stage: rebuild every record before touching the game.
	staged := make([][]physics.TurnRecord, len(f.Payload.Players))
	for i, ps := range f.Payload.Players {
		if ps.HeadPresent && (ps.Head < 0 || ps.Head >= len(ps.Turns)) {
			return fmt.Errorf("save: player %d head %d out of range for %d turns",
				ps.ID, ps.Head, len(ps.Turns))
		}
		for _, ts := range ps.Turns {
			initial := physics.ClosedSegment(ts.Start.vector(), ts.End.vector())
			rec, err := physics.NewTurnRecord(initial, ts.Force.vector())
			if err != nil {
				return fmt.Errorf("save: player %d has a malformed turn: %w", ps.ID, err)
			}
			staged[i] = append(staged[i], rec)
		}
	}

	// Apply.
	for i, ps := range f.Payload.Players {
		if err := g.RestorePlayer(i, ps.Anchor.vector(), ps.Placed, staged[i], ps.Head, ps.HeadPresent); err != nil {
			return err
		}
	}
	if err := g.SetActiveIndex(f.Payload.Active); err != nil {
		return err
	}
	g.SetGravity(f.Payload.Settings.GravityEnabled)
	g.SetDarkMode(f.Payload.Settings.DarkMode)
	g.View().SetScale(f.Payload.View.Scale)
	g.View().SetTranslation(physics.Vector2D{
		X: f.Payload.View.TranslationX,
		Y: f.Payload.View.TranslationY,
	})
	return nil
}
