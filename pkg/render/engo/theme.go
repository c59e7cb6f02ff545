// pkg/render/engo/theme.go
package engo

import "image/color"

// Theme is the named color set for one display mode. Player colors are
// indexed by player ID modulo the palette size.
type Theme struct {
	Background  color.RGBA
	GridLine    color.RGBA
	AxisLine    color.RGBA
	PointerDot  color.RGBA
	ForceVector color.RGBA
	Component   color.RGBA
	HUDText     color.RGBA

	PlayerLines  []color.RGBA
	PlayerFinals []color.RGBA
}

var darkTheme = Theme{
	Background:  color.RGBA{20, 20, 28, 255},
	GridLine:    color.RGBA{50, 50, 62, 255},
	AxisLine:    color.RGBA{90, 90, 110, 255},
	PointerDot:  color.RGBA{240, 240, 240, 255},
	ForceVector: color.RGBA{255, 170, 60, 255},
	Component:   color.RGBA{120, 200, 255, 255},
	HUDText:     color.RGBA{220, 220, 220, 255},
	PlayerLines: []color.RGBA{
		{90, 200, 120, 255},
		{220, 110, 110, 255},
		{130, 140, 250, 255},
		{230, 210, 90, 255},
	},
	PlayerFinals: []color.RGBA{
		{150, 255, 180, 255},
		{255, 170, 170, 255},
		{180, 190, 255, 255},
		{255, 240, 150, 255},
	},
}

var lightTheme = Theme{
	Background:  color.RGBA{245, 245, 240, 255},
	GridLine:    color.RGBA{210, 210, 205, 255},
	AxisLine:    color.RGBA{150, 150, 150, 255},
	PointerDot:  color.RGBA{30, 30, 30, 255},
	ForceVector: color.RGBA{200, 110, 0, 255},
	Component:   color.RGBA{30, 110, 190, 255},
	HUDText:     color.RGBA{40, 40, 40, 255},
	PlayerLines: []color.RGBA{
		{20, 130, 60, 255},
		{170, 40, 40, 255},
		{60, 70, 190, 255},
		{160, 140, 20, 255},
	},
	PlayerFinals: []color.RGBA{
		{40, 180, 90, 255},
		{220, 80, 80, 255},
		{100, 110, 230, 255},
		{200, 180, 50, 255},
	},
}

// CurrentTheme resolves the active theme from the dark-mode setting
func CurrentTheme(dark bool) Theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}

// PlayerLine returns the velocity-vector color for a player ID
func (t Theme) PlayerLine(id int) color.RGBA {
	return t.PlayerLines[(id-1+len(t.PlayerLines))%len(t.PlayerLines)]
}

// PlayerFinal returns the summed-vector color for a player ID
func (t Theme) PlayerFinal(id int) color.RGBA {
	return t.PlayerFinals[(id-1+len(t.PlayerFinals))%len(t.PlayerFinals)]
}
