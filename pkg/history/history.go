// pkg/history/history.go

// Package history implements the branch-pruning undo/redo log of turn
// records. The log is an ordered sequence of confirmed turns plus a
// movable play-head. Undo and redo only move the head; recording after
// an undo prunes the abandoned future before appending.
package history

import (
	"fmt"

	"github.com/opd-ai/go-orbit/pkg/physics"
)

// headNone marks the play-head as pointing at nothing: no turn is
// confirmed, even if records exist transiently before a redo.
const headNone = -1

// Log stores turn records with a play-head. The zero value is not
// usable; call New.
type Log struct {
	records []physics.TurnRecord
	head    int
}

// New returns an empty log with the head pointing at nothing
func New() *Log {
	return &Log{head: headNone}
}

// Size returns the number of stored records, including any undone
// records that have not yet been pruned or redone.
func (l *Log) Size() int {
	return len(l.records)
}

// Head returns the play-head index. ok is false when no turn is
// confirmed.
func (l *Log) Head() (int, bool) {
	if l.head == headNone {
		return 0, false
	}
	return l.head, true
}

// Record appends a confirmed turn. Any records after the play-head are
// the abandoned future of an earlier undo and are discarded first; a
// head pointing at nothing discards everything. The head always lands
// on the new last record.
func (l *Log) Record(rec physics.TurnRecord) {
	switch {
	case l.head == headNone:
		l.records = l.records[:0]
	case l.head < len(l.records)-1:
		l.records = l.records[:l.head+1]
	}
	l.records = append(l.records, rec)
	l.head = len(l.records) - 1
}

// Undo moves the play-head back one turn. Undoing the first turn parks
// the head at nothing; undoing with the head at nothing is a no-op.
// Records are never mutated.
func (l *Log) Undo() {
	switch {
	case l.head == headNone:
	case l.head == 0:
		l.head = headNone
	default:
		l.head--
	}
}

// Redo moves the play-head forward one turn, up to the newest record.
// Redoing past the end is a no-op.
func (l *Log) Redo() {
	if l.head == headNone {
		if len(l.records) > 0 {
			l.head = 0
		}
		return
	}
	if l.head < len(l.records)-1 {
		l.head++
	}
}

// Rewind parks the play-head at nothing without touching the records,
// leaving the whole log redoable.
func (l *Log) Rewind() {
	l.head = headNone
}

// Reset clears the log entirely
func (l *Log) Reset() {
	l.records = nil
	l.head = headNone
}

// At returns the record at index i. ok is false for an out-of-range
// index.
func (l *Log) At(i int) (physics.TurnRecord, bool) {
	if i < 0 || i >= len(l.records) {
		return physics.TurnRecord{}, false
	}
	return l.records[i], true
}

// Latest returns the record under the play-head. ok is false when no
// turn is confirmed.
func (l *Log) Latest() (physics.TurnRecord, bool) {
	if l.head == headNone {
		return physics.TurnRecord{}, false
	}
	return l.records[l.head], true
}

// Confirmed returns a copy of the records from the start through the
// play-head. Records beyond the head are undone and must never be drawn
// or replayed.
func (l *Log) Confirmed() []physics.TurnRecord {
	if l.head == headNone {
		return nil
	}
	out := make([]physics.TurnRecord, l.head+1)
	copy(out, l.records[:l.head+1])
	return out
}

// All returns a copy of every stored record, undone future included.
// Save files persist the full log so a load can restore the redo chain.
func (l *Log) All() []physics.TurnRecord {
	out := make([]physics.TurnRecord, len(l.records))
	copy(out, l.records)
	return out
}

// SetHead seats the play-head directly. Pass present=false to park it
// at nothing. Used by save restore, which replays records first and
// then seats the head to reproduce the pre-save undo position.
func (l *Log) SetHead(i int, present bool) error {
	if !present {
		l.head = headNone
		return nil
	}
	if i < 0 || i >= len(l.records) {
		return fmt.Errorf("history: head %d out of range for %d records", i, len(l.records))
	}
	l.head = i
	return nil
}
