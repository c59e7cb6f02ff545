// pkg/view/transform_test.go
package view

import (
	"math"
	"testing"

	"github.com/opd-ai/go-orbit/pkg/physics"
)

func testViewport() physics.Vector2D {
	return physics.Vector2D{X: 1000, Y: 1000}
}

func TestNew_RejectsNonPositiveExtent(t *testing.T) {
	for _, extent := range []int{0, -1, -40} {
		if _, err := New(extent, testViewport()); err == nil {
			t.Errorf("New(%d) should fail", extent)
		}
	}
}

func TestTransform_RoundTrip(t *testing.T) {
	tr, err := New(40, testViewport())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name string
		g    physics.GridVector
	}{
		{"interior point", physics.GridVector{X: 5, Y: 5}},
		{"corner point", physics.GridVector{X: -20, Y: 20}},
		{"origin", physics.GridVector{}},
		{"negative quadrant", physics.GridVector{X: -7, Y: -13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.ToGrid(tr.ToPixel(tt.g)); got != tt.g {
				t.Errorf("ToGrid(ToPixel(%v)) = %v", tt.g, got)
			}
		})
	}
}

func TestTransform_RoundTripSurvivesPanAndZoom(t *testing.T) {
	tr, err := New(40, testViewport())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	origin := tr.Translation()
	tr.Pan(physics.Vector2D{X: 250, Y: 130}, physics.Vector2D{X: 100, Y: 100}, origin)
	for i := 0; i < 5; i++ {
		tr.ZoomIn()
	}
	tr.ZoomOut()

	g := physics.GridVector{X: 11, Y: -3}
	if got := tr.ToGrid(tr.ToPixel(g)); got != g {
		t.Errorf("round trip after pan/zoom = %v, want %v", got, g)
	}
}

func TestTransform_ResetCentersAndFlips(t *testing.T) {
	tr, err := New(40, testViewport())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// The origin maps to the viewport center.
	center := tr.ToPixel(physics.GridVector{})
	if center.X != 500 || center.Y != 500 {
		t.Errorf("origin maps to %v, want (500, 500)", center)
	}

	// Grid up is pixel up: increasing grid Y decreases pixel Y.
	up := tr.ToPixel(physics.GridVector{X: 0, Y: 1})
	if up.Y >= center.Y {
		t.Errorf("grid (0,1) maps to pixel Y %f, want above %f", up.Y, center.Y)
	}
}

func TestTransform_FitScaleNeverOvershoots(t *testing.T) {
	// A 40-grid plus margin in a 1000x1000 viewport fits at scale 20.
	tr, err := New(40, testViewport())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := tr.Scale(); math.Abs(got-20) > 1e-9 {
		t.Errorf("fit scale = %f, want 20", got)
	}

	// A wide viewport is limited by its short edge.
	tr.Reset(physics.Vector2D{X: 4000, Y: 500})
	if got := tr.Scale(); math.Abs(got-10) > 1e-9 {
		t.Errorf("fit scale in 4000x500 = %f, want 10", got)
	}
}

func TestTransform_PanIsIdempotentForSameReference(t *testing.T) {
	tr, err := New(40, testViewport())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	origin := tr.Translation()
	cur := physics.Vector2D{X: 320, Y: 410}
	ref := physics.Vector2D{X: 300, Y: 400}
	tr.Pan(cur, ref, origin)
	first := tr.Translation()
	tr.Pan(cur, ref, origin)
	if tr.Translation() != first {
		t.Error("repeated Pan with identical arguments moved the view")
	}
	want := origin.Add(physics.Vector2D{X: 20, Y: 10})
	if first != want {
		t.Errorf("Pan translation = %v, want %v", first, want)
	}
}

func TestTransform_ZoomChangesOnlyScale(t *testing.T) {
	tr, err := New(40, testViewport())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	before := tr.Translation()
	scale := tr.Scale()
	tr.ZoomIn()
	if tr.Translation() != before {
		t.Error("ZoomIn moved the translation")
	}
	if math.Abs(tr.Scale()-scale*1.1) > 1e-9 {
		t.Errorf("ZoomIn scale = %f, want %f", tr.Scale(), scale*1.1)
	}
	tr.ZoomOut()
	if math.Abs(tr.Scale()-scale*1.1*0.9) > 1e-9 {
		t.Errorf("ZoomOut scale = %f", tr.Scale())
	}
}

func TestTransform_SnapLandsOnGridPoint(t *testing.T) {
	tr, err := New(40, testViewport())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// A pixel position near a grid intersection snaps onto it exactly.
	target := tr.ToPixel(physics.GridVector{X: 3, Y: 7})
	near := target.Add(physics.Vector2D{X: 4, Y: -3})
	if got := tr.Snap(near); got != target {
		t.Errorf("Snap(%v) = %v, want %v", near, got, target)
	}
}

func TestTransform_CellSize(t *testing.T) {
	tr, err := New(40, testViewport())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	size := tr.CellSize()
	if math.Abs(size.X-20) > 1e-9 || math.Abs(size.Y+20) > 1e-9 {
		t.Errorf("CellSize() = %v, want (20, -20)", size)
	}
}
