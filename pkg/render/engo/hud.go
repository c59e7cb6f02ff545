// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbit/pkg/engine"
)

// hudFontURL is resolved relative to the assets root engo.Run was given
const hudFontURL = "fonts/hud.ttf"

// preloadHUDFont queues the HUD font. A missing font file only disables
// the text overlay; the board still renders.
func preloadHUDFont() {
	if err := engo.Files.Load(hudFontURL); err != nil {
		// No font asset shipped; HUD text stays off.
		_ = err
	}
}

// HUDSystem draws the debug text block: active player, placement state,
// gravity, play-head, pointer position, zoom, and the in-progress
// vector's x/y components.
type HUDSystem struct {
	world *ecs.World
	game  *engine.Game

	renderSystem *common.RenderSystem
	font         *common.Font
	fontFailed   bool

	notice string

	text *visual
}

// NewHUDSystem creates a new HUD system
func NewHUDSystem(world *ecs.World, game *engine.Game) *HUDSystem {
	return &HUDSystem{world: world, game: game}
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
}

// SetNotice shows a one-line status message in the HUD
func (hud *HUDSystem) SetNotice(msg string) {
	hud.notice = msg
}

// Update rebuilds the HUD text for this frame
func (hud *HUDSystem) Update(dt float32) {
	if !hud.ensureReady() {
		return
	}

	snap := hud.game.Snapshot()
	theme := CurrentTheme(snap.DarkMode)
	text := hud.buildText(snap)

	if hud.text != nil {
		hud.renderSystem.Remove(hud.text.BasicEntity)
	}
	v := &visual{BasicEntity: ecs.NewBasic()}
	v.RenderComponent = common.RenderComponent{
		Drawable: common.Text{Font: hud.font, Text: text},
		Color:    theme.HUDText,
	}
	v.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: 10, Y: 10},
	}
	v.SetShader(common.TextHUDShader)
	hud.renderSystem.Add(&v.BasicEntity, &v.RenderComponent, &v.SpaceComponent)
	hud.text = v
}

// ensureReady lazily resolves the render system and the font
func (hud *HUDSystem) ensureReady() bool {
	if hud.renderSystem == nil {
		for _, system := range hud.world.Systems() {
			if rs, ok := system.(*common.RenderSystem); ok {
				hud.renderSystem = rs
			}
		}
	}
	if hud.renderSystem == nil || hud.fontFailed {
		return false
	}
	if hud.font == nil {
		font := &common.Font{URL: hudFontURL, Size: 14}
		if err := font.CreatePreloaded(); err != nil {
			hud.fontFailed = true
			return false
		}
		hud.font = font
	}
	return true
}

// buildText formats the debug block from the snapshot
func (hud *HUDSystem) buildText(snap engine.Snapshot) string {
	var b strings.Builder

	for _, p := range snap.Players {
		if p.ID != snap.ActiveID {
			continue
		}
		fmt.Fprintf(&b, "player %d: %s\n", p.ID, p.State)
		if p.HeadPresent {
			fmt.Fprintf(&b, "head: %d/%d\n", p.Head, len(p.Turns))
		} else {
			fmt.Fprintf(&b, "head: -\n")
		}
	}

	gravity := "off"
	if snap.GravityEnabled {
		gravity = "on"
	}
	fmt.Fprintf(&b, "gravity: %s\n", gravity)

	if snap.HasPointer {
		fmt.Fprintf(&b, "pointer: (%d, %d)\n", snap.Pointer.X, snap.Pointer.Y)
	}
	fmt.Fprintf(&b, "zoom: %.2f\n", hud.game.View().Scale())

	if snap.Drawing {
		if v, ok := snap.Draft.Vector(); ok {
			fmt.Fprintf(&b, "vector: x=%d y=%d\n", v.X, v.Y)
		}
	}

	if hud.notice != "" {
		fmt.Fprintf(&b, "%s\n", hud.notice)
	}
	return b.String()
}
