// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbit/pkg/engine"
	"github.com/opd-ai/go-orbit/pkg/physics"
)

const (
	lineThickness  = 2
	axisThickness  = 3
	arrowHeadSize  = 10
	markerRadius   = 6
	snapDotRadius  = 3
	componentThick = 1
)

// visual is one drawable owned by the board for the current frame
type visual struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// BoardRenderer draws the whole board immediate-mode: every frame it
// discards last frame's entities and rebuilds grid lines, history
// vectors, markers, and the in-progress vector from the game snapshot.
type BoardRenderer struct {
	world *ecs.World
	game  *engine.Game

	renderSystem *common.RenderSystem
	visuals      []*visual
}

// NewBoardRenderer creates the board renderer
func NewBoardRenderer(world *ecs.World, game *engine.Game) *BoardRenderer {
	return &BoardRenderer{world: world, game: game}
}

// Add satisfies the ecs.System interface
func (r *BoardRenderer) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (r *BoardRenderer) Remove(basic ecs.BasicEntity) {
}

// Update rebuilds the frame
func (r *BoardRenderer) Update(dt float32) {
	if r.renderSystem == nil {
		for _, system := range r.world.Systems() {
			if rs, ok := system.(*common.RenderSystem); ok {
				r.renderSystem = rs
			}
		}
		if r.renderSystem == nil {
			return
		}
	}

	snap := r.game.Snapshot()
	theme := CurrentTheme(snap.DarkMode)
	common.SetBackground(theme.Background)

	r.clear()
	r.drawGrid(theme)
	r.drawAttractor(snap, theme)
	r.drawHistories(snap, theme)
	r.drawPlayers(snap, theme)
	r.drawDraft(snap, theme)
	r.drawPointer(snap, theme)
}

// clear removes last frame's entities from the render system
func (r *BoardRenderer) clear() {
	for _, v := range r.visuals {
		r.renderSystem.Remove(v.BasicEntity)
	}
	r.visuals = r.visuals[:0]
}

// drawGrid draws the N x N grid with the axes emphasized
func (r *BoardRenderer) drawGrid(theme Theme) {
	vt := r.game.View()
	half := vt.Extent() / 2

	for i := -half; i <= half; i++ {
		col := theme.GridLine
		thick := float32(lineThickness) / 2
		if i == 0 {
			col = theme.AxisLine
			thick = axisThickness
		}
		r.addLine(
			vt.ToPixel(physics.GridVector{X: i, Y: -half}),
			vt.ToPixel(physics.GridVector{X: i, Y: half}),
			thick, col,
		)
		r.addLine(
			vt.ToPixel(physics.GridVector{X: -half, Y: i}),
			vt.ToPixel(physics.GridVector{X: half, Y: i}),
			thick, col,
		)
	}
}

// drawAttractor marks the point gravity pulls toward
func (r *BoardRenderer) drawAttractor(snap engine.Snapshot, theme Theme) {
	if !snap.GravityEnabled {
		return
	}
	center := r.game.View().ToPixel(snap.Attractor)
	r.addDot(center, markerRadius, theme.ForceVector)
}

// drawHistories draws every player's confirmed turns: the velocity
// vector, the force applied at its end, and the summed final vector.
func (r *BoardRenderer) drawHistories(snap engine.Snapshot, theme Theme) {
	for _, p := range snap.Players {
		for _, rec := range p.Turns {
			r.drawSegmentVector(rec.Initial, theme.PlayerLine(p.ID))

			if end, ok := rec.Initial.End(); ok && !rec.Force.IsZero() {
				forceSeg := physics.ClosedSegment(end, end.Add(rec.Force))
				r.drawSegmentVector(forceSeg, theme.ForceVector)
			}
			r.drawSegmentVector(rec.Final, theme.PlayerFinal(p.ID))
		}
	}
}

// drawPlayers marks each placed (or pointer-tracking) player position
func (r *BoardRenderer) drawPlayers(snap engine.Snapshot, theme Theme) {
	for _, p := range snap.Players {
		if !p.HasPosition {
			continue
		}
		center := r.game.View().ToPixel(p.Position)
		r.addDot(center, markerRadius, theme.PlayerLine(p.ID))
	}
}

// drawDraft draws the in-progress vector, its x/y component rulers, and
// the force that would apply at its end.
func (r *BoardRenderer) drawDraft(snap engine.Snapshot, theme Theme) {
	if !snap.Drawing {
		return
	}
	r.drawSegmentVector(snap.Draft, theme.PlayerLine(snap.ActiveID))
	r.drawComponents(snap.Draft, theme)

	if end, ok := snap.Draft.End(); ok && !snap.DraftForce.IsZero() {
		forceSeg := physics.ClosedSegment(end, end.Add(snap.DraftForce))
		r.drawSegmentVector(forceSeg, theme.ForceVector)
	}
}

// drawPointer draws the snap-to-grid dot under the pointer
func (r *BoardRenderer) drawPointer(snap engine.Snapshot, theme Theme) {
	if !snap.HasPointer {
		return
	}
	center := r.game.View().ToPixel(snap.Pointer)
	r.addDot(center, snapDotRadius, theme.PointerDot)
}

// drawComponents draws the x and y legs of a vector as thin rulers:
// start to the corner, corner to the end.
func (r *BoardRenderer) drawComponents(seg physics.Segment, theme Theme) {
	start, ok := seg.Start()
	if !ok {
		return
	}
	end, ok := seg.End()
	if !ok || start == end {
		return
	}
	corner := physics.GridVector{X: end.X, Y: start.Y}
	vt := r.game.View()
	r.addLine(vt.ToPixel(start), vt.ToPixel(corner), componentThick, theme.Component)
	r.addLine(vt.ToPixel(corner), vt.ToPixel(end), componentThick, theme.Component)
}

// drawSegmentVector draws a closed segment as an arrow: shaft plus two
// head strokes. A zero-length segment degenerates to nothing rather
// than a division error.
func (r *BoardRenderer) drawSegmentVector(seg physics.Segment, col color.RGBA) {
	start, ok := seg.Start()
	if !ok {
		return
	}
	end, ok := seg.End()
	if !ok {
		return
	}

	vt := r.game.View()
	p1 := vt.ToPixel(start)
	p2 := vt.ToPixel(end)
	r.addLine(p1, p2, lineThickness, col)

	dir := p2.Sub(p1).Normalize()
	if dir.LengthSquared() == 0 {
		return
	}
	perp := dir.Perp()
	base := p2.Sub(dir.Scale(arrowHeadSize))
	r.addLine(p2, base.Add(perp.Scale(arrowHeadSize/2)), lineThickness, col)
	r.addLine(p2, base.Sub(perp.Scale(arrowHeadSize/2)), lineThickness, col)
}

// addLine adds a thin rotated rectangle between two pixel points
func (r *BoardRenderer) addLine(p1, p2 physics.Vector2D, thickness float32, col color.RGBA) {
	delta := p2.Sub(p1)
	length := delta.Length()
	if length == 0 {
		return
	}

	v := &visual{BasicEntity: ecs.NewBasic()}
	v.RenderComponent = common.RenderComponent{
		Drawable: common.Rectangle{},
		Color:    col,
	}
	v.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: float32(p1.X), Y: float32(p1.Y)},
		Width:    float32(length),
		Height:   thickness,
		Rotation: float32(math.Atan2(delta.Y, delta.X) * 180 / math.Pi),
	}
	r.track(v)
}

// addDot adds a filled circle centered on a pixel point
func (r *BoardRenderer) addDot(center physics.Vector2D, radius float32, col color.RGBA) {
	v := &visual{BasicEntity: ecs.NewBasic()}
	v.RenderComponent = common.RenderComponent{
		Drawable: common.Circle{},
		Color:    col,
	}
	v.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{
			X: float32(center.X) - radius,
			Y: float32(center.Y) - radius,
		},
		Width:  radius * 2,
		Height: radius * 2,
	}
	r.track(v)
}

func (r *BoardRenderer) track(v *visual) {
	r.renderSystem.Add(&v.BasicEntity, &v.RenderComponent, &v.SpaceComponent)
	r.visuals = append(r.visuals, v)
}
