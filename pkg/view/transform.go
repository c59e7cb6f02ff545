// pkg/view/transform.go

// Package view maps between grid coordinates and pixel coordinates.
// The mapping is affine: a scaled 2x2 linear map plus a translation.
// Pan moves the translation, zoom moves the scale, and Reset recenters
// the grid in the viewport with the vertical axis flipped so grid "up"
// is pixel "up".
package view

import (
	"errors"
	"math"

	"github.com/opd-ai/go-orbit/pkg/physics"
)

// fitMargin is the pixel margin kept around the grid by FitScale.
const fitMargin = 10

// Zoom ratios applied per wheel step. Unclamped: tiny and huge scales
// are accepted.
const (
	zoomInRatio  = 1.1
	zoomOutRatio = 0.9
)

// epsilonDet substitutes for an exactly-zero determinant. Pan and zoom
// values are continuous, so a true zero is a measure-zero coincidence
// and not worth failing the inverse over.
const epsilonDet = 1e-4

// ErrInvalidExtent is returned when a transform is built for a
// non-positive grid.
var ErrInvalidExtent = errors.New("view: grid extent must be positive")

// Transform converts between grid space and pixel space.
type Transform struct {
	// 2x2 linear map, row-major: [a b; c d]. Scaled by scale before use.
	a, b, c, d float64

	translation physics.Vector2D
	scale       float64
	extent      int
	viewport    physics.Vector2D
}

// New returns a transform for an extent x extent grid, reset against
// the given viewport size.
func New(extent int, viewport physics.Vector2D) (*Transform, error) {
	if extent <= 0 {
		return nil, ErrInvalidExtent
	}
	t := &Transform{extent: extent}
	t.Reset(viewport)
	return t, nil
}

// Extent returns the grid extent N
func (t *Transform) Extent() int {
	return t.extent
}

// Scale returns the current zoom scale
func (t *Transform) Scale() float64 {
	return t.scale
}

// Translation returns the current pixel-space offset
func (t *Transform) Translation() physics.Vector2D {
	return t.translation
}

// SetScale seats the zoom scale directly; save restore uses this
func (t *Transform) SetScale(s float64) {
	t.scale = s
}

// SetTranslation seats the pixel-space offset directly; save restore
// uses this.
func (t *Transform) SetTranslation(v physics.Vector2D) {
	t.translation = v
}

// Reset restores the initial view against a (possibly new) viewport:
// identity linear map reflected on the vertical axis, translation at
// the viewport center, scale from FitScale.
func (t *Transform) Reset(viewport physics.Vector2D) {
	t.viewport = viewport
	t.a, t.b = 1, 0
	t.c, t.d = 0, -1
	t.translation = physics.Vector2D{
		X: math.Trunc(viewport.X / 2),
		Y: math.Trunc(viewport.Y / 2),
	}
	t.scale = t.FitScale()
}

// FitScale returns the scale at which the whole N x N grid, plus a
// fixed margin, fits the viewport. It never overshoots: the smaller of
// the width and height ratios wins.
func (t *Transform) FitScale() float64 {
	n := float64(t.extent)
	// Push the grid size through the unscaled linear map as if it were
	// a point.
	sx := math.Abs(t.a*n+t.b*n) + fitMargin
	sy := math.Abs(t.c*n+t.d*n) + fitMargin
	return math.Min(t.viewport.X/sx, t.viewport.Y/sy)
}

// scaled returns the linear map with the zoom scale applied
func (t *Transform) scaled() (a, b, c, d float64) {
	return t.a * t.scale, t.b * t.scale, t.c * t.scale, t.d * t.scale
}

// det returns the determinant of the scaled linear map, substituting a
// small epsilon for an exact zero so the inverse never divides by zero.
func (t *Transform) det() float64 {
	a, b, c, d := t.scaled()
	det := a*d - b*c
	if det == 0 {
		return epsilonDet
	}
	return det
}

// ToPixel transforms a grid point to pixel coordinates
func (t *Transform) ToPixel(g physics.GridVector) physics.Vector2D {
	return t.ToPixelVec(g.ToVector2D())
}

// ToPixelVec transforms a float grid-space point (such as a segment
// midpoint) to pixel coordinates.
func (t *Transform) ToPixelVec(g physics.Vector2D) physics.Vector2D {
	a, b, c, d := t.scaled()
	return physics.Vector2D{
		X: a*g.X + b*g.Y + t.translation.X,
		Y: c*g.X + d*g.Y + t.translation.Y,
	}
}

// ToGrid transforms a pixel point to the nearest integer grid point
func (t *Transform) ToGrid(p physics.Vector2D) physics.GridVector {
	g := t.ToGridVec(p)
	return physics.GridVector{
		X: int(math.Round(g.X)),
		Y: int(math.Round(g.Y)),
	}
}

// ToGridVec transforms a pixel point to unrounded grid coordinates by
// inverting the 2x2 system in closed form (Cramer's rule).
func (t *Transform) ToGridVec(p physics.Vector2D) physics.Vector2D {
	a, b, c, d := t.scaled()
	e, f := t.translation.X, t.translation.Y
	det := t.det()
	return physics.Vector2D{
		X: (d/det)*p.X + (-b/det)*p.Y + (b*f-d*e)/det,
		Y: (-c/det)*p.X + (a/det)*p.Y + (c*e-a*f)/det,
	}
}

// Snap returns the pixel position of the grid point nearest to p
func (t *Transform) Snap(p physics.Vector2D) physics.Vector2D {
	return t.ToPixel(t.ToGrid(p))
}

// Pan sets the translation from a drag: the pan-start origin shifted by
// how far the pointer has moved from its reference position. Repeated
// calls with the same arguments land on the same translation.
func (t *Transform) Pan(current, reference, origin physics.Vector2D) {
	t.translation = origin.Add(current.Sub(reference))
}

// ZoomIn scales the view up by a fixed ratio
func (t *Transform) ZoomIn() {
	t.scale *= zoomInRatio
}

// ZoomOut scales the view down by a fixed ratio
func (t *Transform) ZoomOut() {
	t.scale *= zoomOutRatio
}

// CellSize returns the pixel extent of one grid box. Components can be
// negative where the axis is flipped; callers take absolute values as
// needed.
func (t *Transform) CellSize() physics.Vector2D {
	a, b, c, d := t.scaled()
	return physics.Vector2D{X: a + b, Y: c + d}
}
