// pkg/physics/segment.go
package physics

// SegmentState tracks the lifecycle of a drawn segment. A segment is
// Empty at construction, Open once its start point is fixed, and Closed
// once both endpoints are fixed. The state is computed once at each
// mutation boundary, never re-derived from endpoint presence.
type SegmentState int

const (
	SegmentEmpty SegmentState = iota
	SegmentOpen
	SegmentClosed
)

// String returns a human-readable state name
func (s SegmentState) String() string {
	switch s {
	case SegmentOpen:
		return "open"
	case SegmentClosed:
		return "closed"
	default:
		return "empty"
	}
}

// Segment is a directed pair of grid points: a drawn vector before or
// after completion. The zero value is an empty segment.
type Segment struct {
	start GridVector
	end   GridVector
	state SegmentState
}

// OpenSegment returns a segment with only its start point fixed
func OpenSegment(start GridVector) Segment {
	return Segment{start: start, state: SegmentOpen}
}

// ClosedSegment returns a segment with both endpoints fixed
func ClosedSegment(start, end GridVector) Segment {
	return Segment{start: start, end: end, state: SegmentClosed}
}

// State returns the segment's lifecycle state
func (s Segment) State() SegmentState {
	return s.state
}

// IsOpen reports whether the segment is started but not finished
func (s Segment) IsOpen() bool {
	return s.state == SegmentOpen
}

// IsClosed reports whether both endpoints are fixed
func (s Segment) IsClosed() bool {
	return s.state == SegmentClosed
}

// Start returns the start point. ok is false for an empty segment.
func (s Segment) Start() (GridVector, bool) {
	if s.state == SegmentEmpty {
		return GridVector{}, false
	}
	return s.start, true
}

// End returns the end point. ok is false unless the segment is closed.
func (s Segment) End() (GridVector, bool) {
	if s.state != SegmentClosed {
		return GridVector{}, false
	}
	return s.end, true
}

// Close fixes the end point of an open segment. Closing an empty or
// already-closed segment returns the segment unchanged.
func (s Segment) Close(end GridVector) Segment {
	if s.state != SegmentOpen {
		return s
	}
	return ClosedSegment(s.start, end)
}

// Vector returns the displacement from start to end. ok is false unless
// the segment is closed; callers get a sentinel, never a crash.
func (s Segment) Vector() (GridVector, bool) {
	if s.state != SegmentClosed {
		return GridVector{}, false
	}
	return s.end.Sub(s.start), true
}

// Translate returns the segment shifted by v. Only closed segments
// translate; anything else comes back unchanged.
func (s Segment) Translate(v GridVector) Segment {
	if s.state != SegmentClosed {
		return s
	}
	return ClosedSegment(s.start.Add(v), s.end.Add(v))
}

// Midpoint returns the midpoint of a closed segment in float grid
// coordinates, used to place component labels.
func (s Segment) Midpoint() (Vector2D, bool) {
	if s.state != SegmentClosed {
		return Vector2D{}, false
	}
	a := s.start.ToVector2D()
	b := s.end.ToVector2D()
	return a.Add(b.Sub(a).Scale(0.5)), true
}
