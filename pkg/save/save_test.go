// pkg/save/save_test.go
package save

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-orbit/pkg/config"
	"github.com/opd-ai/go-orbit/pkg/engine"
	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/event"
	"github.com/opd-ai/go-orbit/pkg/logging"
	"github.com/opd-ai/go-orbit/pkg/physics"
)

func newGame(t *testing.T, players int) *engine.Game {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Players = players
	cfg.GravityEnabled = false
	cfg.Window.Width = 1000
	cfg.Window.Height = 1000

	g, err := engine.New(cfg, event.NewEventBus(), logging.NewLoggerWithOutput(io.Discard))
	require.NoError(t, err)
	return g
}

// playThreeTurns places the active player at (0,4) and confirms two
// vectors, leaving three records in its history.
func playThreeTurns(t *testing.T, g *engine.Game) {
	t.Helper()
	g.SetPointer(physics.GridVector{X: 0, Y: 4})
	require.NoError(t, g.Click())

	require.NoError(t, g.BeginVector())
	g.SetPointer(physics.GridVector{X: 2, Y: 6})
	require.NoError(t, g.ConfirmVector())

	require.NoError(t, g.BeginVector())
	g.SetPointer(physics.GridVector{X: 5, Y: 7})
	require.NoError(t, g.ConfirmVector())
}

func TestSaveLoad_Fidelity(t *testing.T) {
	g := newGame(t, 1)
	playThreeTurns(t, g)
	g.Undo() // head moves from 2 to 1
	g.ToggleGravity()
	g.View().SetScale(33.5)

	path := filepath.Join(t.TempDir(), "game.json")
	f, err := Capture(g)
	require.NoError(t, err)
	require.NoError(t, Write(f, path))

	loaded, err := Read(path)
	require.NoError(t, err)

	fresh := newGame(t, 1)
	require.NoError(t, Restore(loaded, fresh))

	p := fresh.Players()[0]
	require.Equal(t, 3, p.History.Size(), "full log survives, undone future included")
	head, present := p.History.Head()
	require.True(t, present)
	assert.Equal(t, 1, head)

	// Initial segment pairs are identical to the originals.
	want := g.Players()[0].History.All()
	got := p.History.All()
	for i := range want {
		ws, _ := want[i].Initial.Start()
		we, _ := want[i].Initial.End()
		gs, _ := got[i].Initial.Start()
		ge, _ := got[i].Initial.End()
		assert.Equal(t, ws, gs, "record %d start", i)
		assert.Equal(t, we, ge, "record %d end", i)
		assert.Equal(t, want[i].Force, got[i].Force, "record %d force", i)
	}

	// Position matches the play-head, not the newest record.
	pos, ok := p.Position()
	require.True(t, ok)
	wantRec, _ := g.Players()[0].History.Latest()
	wantPos, _ := wantRec.Final.End()
	assert.Equal(t, wantPos, pos)

	assert.True(t, fresh.GravityEnabled())
	assert.Equal(t, 33.5, fresh.View().Scale())
	assert.Equal(t, g.View().Translation(), fresh.View().Translation())
}

func TestCapture_AssignsSessionID(t *testing.T) {
	g := newGame(t, 1)
	f, err := Capture(g)
	require.NoError(t, err)

	_, err = uuid.Parse(f.SessionID)
	assert.NoError(t, err, "session ID should be a UUID")
	assert.Equal(t, Version, f.Version)
	assert.NotEmpty(t, f.Digest)
}

func TestRead_RejectsTamperedPayload(t *testing.T) {
	g := newGame(t, 1)
	playThreeTurns(t, g)

	f, err := Capture(g)
	require.NoError(t, err)
	f.Payload.Players[0].Turns[1].End.X += 3 // digest now stale

	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, Write(f, path))

	_, err = Read(path)
	assert.ErrorIs(t, err, ErrDigest)
}

func TestRead_RejectsWrongVersion(t *testing.T) {
	g := newGame(t, 1)
	f, err := Capture(g)
	require.NoError(t, err)
	f.Version = 99

	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, Write(f, path))

	_, err = Read(path)
	assert.ErrorIs(t, err, ErrVersion)
}

func TestRestore_PlayerCountMismatchLeavesGameUntouched(t *testing.T) {
	source := newGame(t, 2)
	playThreeTurns(t, source)
	f, err := Capture(source)
	require.NoError(t, err)

	target := newGame(t, 1)
	err = Restore(f, target)
	assert.ErrorIs(t, err, ErrMismatch)

	p := target.Players()[0]
	assert.Equal(t, entity.StateAwaitingPlacement, p.State())
	assert.Zero(t, p.History.Size())
}

func TestRestore_HeadOutOfRangeLeavesGameUntouched(t *testing.T) {
	source := newGame(t, 1)
	playThreeTurns(t, source)
	f, err := Capture(source)
	require.NoError(t, err)
	f.Payload.Players[0].Head = 7

	target := newGame(t, 1)
	require.Error(t, Restore(f, target))
	assert.Zero(t, target.Players()[0].History.Size())
}

func TestRestore_UnplacedPlayerStaysUnplaced(t *testing.T) {
	source := newGame(t, 2)
	playThreeTurns(t, source) // only player 1 acts

	f, err := Capture(source)
	require.NoError(t, err)

	target := newGame(t, 2)
	require.NoError(t, Restore(f, target))

	assert.Equal(t, entity.StateActive, target.Players()[0].State())
	assert.Equal(t, entity.StateAwaitingPlacement, target.Players()[1].State())
	assert.Zero(t, target.Players()[1].History.Size())
}
