// pkg/history/history_test.go
package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-orbit/pkg/physics"
)

// turn builds a distinguishable zero-force record whose initial segment
// starts at (n, n).
func turn(t *testing.T, n int) physics.TurnRecord {
	t.Helper()
	p := physics.GridVector{X: n, Y: n}
	rec, err := physics.NewTurnRecord(physics.ClosedSegment(p, p.Add(physics.GridVector{X: 1, Y: 0})), physics.GridVector{})
	require.NoError(t, err)
	return rec
}

func TestLog_StartsEmpty(t *testing.T) {
	log := New()
	assert.Equal(t, 0, log.Size())
	_, ok := log.Head()
	assert.False(t, ok, "empty log should have no head")
	assert.Nil(t, log.Confirmed())
}

func TestLog_RecordAdvancesHead(t *testing.T) {
	log := New()
	for i := 0; i < 3; i++ {
		log.Record(turn(t, i))
		head, ok := log.Head()
		require.True(t, ok)
		assert.Equal(t, i, head, "head should follow the newest record")
		assert.Equal(t, i+1, log.Size())
	}
}

func TestLog_UndoRedoRoundTrip(t *testing.T) {
	log := New()
	const k = 4
	recs := make([]physics.TurnRecord, k)
	for i := range recs {
		recs[i] = turn(t, i)
		log.Record(recs[i])
	}

	// k+1 undos drive the head to nothing; the extra one is a no-op.
	for i := 0; i <= k; i++ {
		log.Undo()
	}
	_, ok := log.Head()
	assert.False(t, ok, "head should be parked at nothing after undoing everything")
	assert.Equal(t, k, log.Size(), "undo must not drop records")

	// k+1 redos restore the head to the newest record; the extra one
	// saturates.
	for i := 0; i <= k; i++ {
		log.Redo()
	}
	head, ok := log.Head()
	require.True(t, ok)
	assert.Equal(t, k-1, head)
	assert.Equal(t, recs, log.Confirmed(), "records must survive the round trip unchanged")
}

func TestLog_RecordAfterUndoPrunesFuture(t *testing.T) {
	log := New()
	e0, e1, e2, e3 := turn(t, 0), turn(t, 1), turn(t, 2), turn(t, 3)
	log.Record(e0)
	log.Record(e1)
	log.Record(e2)
	log.Undo()
	log.Undo()
	log.Record(e3)

	head, ok := log.Head()
	require.True(t, ok)
	assert.Equal(t, 1, head)
	assert.Equal(t, []physics.TurnRecord{e0, e3}, log.Confirmed(), "e1 and e2 must be gone")

	// The pruned future cannot come back.
	log.Redo()
	head, _ = log.Head()
	assert.Equal(t, 1, head)
	assert.Equal(t, 2, log.Size())
}

func TestLog_RecordWithHeadAtNothingDiscardsEverything(t *testing.T) {
	log := New()
	log.Record(turn(t, 0))
	log.Record(turn(t, 1))
	log.Undo()
	log.Undo()
	_, ok := log.Head()
	require.False(t, ok)

	fresh := turn(t, 9)
	log.Record(fresh)
	assert.Equal(t, 1, log.Size())
	assert.Equal(t, []physics.TurnRecord{fresh}, log.Confirmed())
}

func TestLog_RedoSaturates(t *testing.T) {
	log := New()
	log.Record(turn(t, 0))
	log.Record(turn(t, 1))
	log.Redo()
	head, ok := log.Head()
	require.True(t, ok)
	assert.Equal(t, 1, head, "redo at the newest record must not move the head")
}

func TestLog_RedoFromNothingReachesFirstRecord(t *testing.T) {
	log := New()
	log.Record(turn(t, 0))
	log.Undo()
	log.Redo()
	head, ok := log.Head()
	require.True(t, ok)
	assert.Equal(t, 0, head)
}

func TestLog_RedoOnEmptyLogIsNoOp(t *testing.T) {
	log := New()
	log.Redo()
	_, ok := log.Head()
	assert.False(t, ok)
}

func TestLog_RewindKeepsRecordsRedoable(t *testing.T) {
	log := New()
	log.Record(turn(t, 0))
	log.Record(turn(t, 1))
	log.Rewind()
	_, ok := log.Head()
	assert.False(t, ok)
	assert.Equal(t, 2, log.Size())

	log.Redo()
	log.Redo()
	head, _ := log.Head()
	assert.Equal(t, 1, head)
}

func TestLog_Reset(t *testing.T) {
	log := New()
	log.Record(turn(t, 0))
	log.Reset()
	assert.Equal(t, 0, log.Size())
	_, ok := log.Head()
	assert.False(t, ok)
}

func TestLog_SetHead(t *testing.T) {
	log := New()
	log.Record(turn(t, 0))
	log.Record(turn(t, 1))
	log.Record(turn(t, 2))

	require.NoError(t, log.SetHead(1, true))
	head, ok := log.Head()
	require.True(t, ok)
	assert.Equal(t, 1, head)

	require.NoError(t, log.SetHead(0, false))
	_, ok = log.Head()
	assert.False(t, ok)

	assert.Error(t, log.SetHead(3, true), "head past the end must be rejected")
	assert.Error(t, log.SetHead(-1, true))
}

func TestLog_ConfirmedIsACopy(t *testing.T) {
	log := New()
	log.Record(turn(t, 0))
	confirmed := log.Confirmed()
	confirmed[0] = turn(t, 5)
	got, _ := log.At(0)
	assert.Equal(t, turn(t, 0), got, "mutating the returned slice must not touch the log")
}
