// pkg/physics/segment_test.go
package physics

import "testing"

func TestSegment_Lifecycle(t *testing.T) {
	var s Segment
	if s.State() != SegmentEmpty {
		t.Fatalf("zero value state = %v, want empty", s.State())
	}
	if _, ok := s.Start(); ok {
		t.Error("empty segment should have no start")
	}
	if _, ok := s.Vector(); ok {
		t.Error("empty segment should have no vector")
	}

	s = OpenSegment(GridVector{X: 1, Y: 2})
	if !s.IsOpen() {
		t.Error("segment with only a start should be open")
	}
	if _, ok := s.End(); ok {
		t.Error("open segment should have no end")
	}
	if _, ok := s.Vector(); ok {
		t.Error("open segment should have no vector")
	}

	s = s.Close(GridVector{X: 3, Y: 5})
	if !s.IsClosed() {
		t.Error("segment with both endpoints should be closed")
	}
	v, ok := s.Vector()
	if !ok || v != (GridVector{X: 2, Y: 3}) {
		t.Errorf("Vector() = %v/%v, want {2 3}/true", v, ok)
	}
}

func TestSegment_CloseIsNoOpOutsideOpen(t *testing.T) {
	var empty Segment
	if got := empty.Close(GridVector{X: 1, Y: 1}); got.State() != SegmentEmpty {
		t.Error("closing an empty segment should not change it")
	}

	closed := ClosedSegment(GridVector{}, GridVector{X: 1, Y: 1})
	reclosed := closed.Close(GridVector{X: 9, Y: 9})
	if end, _ := reclosed.End(); end != (GridVector{X: 1, Y: 1}) {
		t.Error("closing a closed segment should not move its end")
	}
}

func TestSegment_Translate(t *testing.T) {
	s := ClosedSegment(GridVector{X: 0, Y: 4}, GridVector{X: 2, Y: 6})
	moved := s.Translate(GridVector{X: 2, Y: 2})
	start, _ := moved.Start()
	end, _ := moved.End()
	if start != (GridVector{X: 2, Y: 6}) || end != (GridVector{X: 4, Y: 8}) {
		t.Errorf("Translate() = %v->%v, want {2 6}->{4 8}", start, end)
	}

	open := OpenSegment(GridVector{X: 1, Y: 1})
	if got := open.Translate(GridVector{X: 5, Y: 5}); got != open {
		t.Error("translating a non-closed segment should return it unchanged")
	}
}

func TestSegment_Midpoint(t *testing.T) {
	s := ClosedSegment(GridVector{X: 0, Y: 0}, GridVector{X: 3, Y: 1})
	mid, ok := s.Midpoint()
	if !ok || mid != (Vector2D{X: 1.5, Y: 0.5}) {
		t.Errorf("Midpoint() = %v/%v, want {1.5 0.5}/true", mid, ok)
	}
	if _, ok := OpenSegment(GridVector{}).Midpoint(); ok {
		t.Error("open segment should have no midpoint")
	}
}
