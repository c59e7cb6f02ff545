// pkg/physics/record.go
package physics

import "errors"

// ErrOpenSegment is returned when a turn is built from a segment that is
// not yet closed.
var ErrOpenSegment = errors.New("physics: initial segment is not closed")

// TurnRecord is one confirmed simulation step: the initial velocity
// vector, the force applied, and the resulting final vector. Records are
// immutable once created; the history log owns them.
type TurnRecord struct {
	Initial Segment
	Force   GridVector
	Final   Segment
}

// NewTurnRecord derives the final segment from a closed initial segment
// and a force. The final segment keeps the initial start and extends the
// initial end by the force, so its vector is the sum of the velocity and
// the force.
func NewTurnRecord(initial Segment, force GridVector) (TurnRecord, error) {
	end, ok := initial.End()
	if !ok {
		return TurnRecord{}, ErrOpenSegment
	}
	start, _ := initial.Start()
	return TurnRecord{
		Initial: initial,
		Force:   force,
		Final:   ClosedSegment(start, end.Add(force)),
	}, nil
}

// CarryOver returns the next turn's initial segment: the final segment
// translated by its own vector, i.e. constant-velocity carry into the
// next step.
func (r TurnRecord) CarryOver() (Segment, bool) {
	v, ok := r.Final.Vector()
	if !ok {
		return Segment{}, false
	}
	return r.Final.Translate(v), true
}
