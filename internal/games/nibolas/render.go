package nibolas

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/nibolas/internal/assets"
	"github.com/vovakirdan/nibolas/internal/config"
	"github.com/vovakirdan/nibolas/internal/core"
	"github.com/vovakirdan/nibolas/internal/scroll"
)

// Fallback glyphs when a sprite is missing from the registry.
const (
	hazardChar      = '#'
	collectibleChar = '*'
	decorChar       = '.'
	playerChar      = '@'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	vp := core.NewViewport(g.cfg.World.Width, g.cfg.World.Height, dst.Width(), dst.Height())

	for i, lane := range g.world.Lanes() {
		frame := g.lanes[i].Frame()
		fallback := fallbackChar(lane.Config.Kind)
		for slot, s := range lane.Handler.Pool().Items() {
			if lane.Config.Kind == config.KindCollectible && g.world.Collected(lane.ID(slot)) {
				continue
			}
			drawEntity(dst, vp, s, frame, fallback)
		}
	}

	g.drawPlayer(dst, vp)
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.over {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.world.Score()))
	}
}

func fallbackChar(kind config.LaneKind) rune {
	switch kind {
	case config.KindHazard:
		return hazardChar
	case config.KindCollectible:
		return collectibleChar
	default:
		return decorChar
	}
}

// drawEntity tiles the sprite frame over the entity's cells. Circles only
// cover cells whose center lies inside the circle.
func drawEntity(dst *core.Screen, vp core.Viewport, s *scroll.Scrollable, frame assets.Sprite, fallback rune) {
	r := vp.RectToCells(s.X, s.Y, s.Width, s.Height)
	circle := s.Form() == scroll.FormCircle
	cx, cy := s.X+s.Width/2, s.Y+s.Height/2
	sx, sy := vp.ScaleX(), vp.ScaleY()

	for row := r.Y; row < r.Bottom(); row++ {
		for col := r.X; col < r.Right(); col++ {
			if circle && sx > 0 && sy > 0 {
				wx := (float64(col) + 0.5) / sx
				wy := (float64(vp.CellsH-row) - 0.5) / sy
				if math.Hypot(wx-cx, wy-cy) > max(s.Radius, 0.5/sx, 0.5/sy) {
					continue
				}
			}
			ch, color := fallback, core.ColorDefault
			if frame.Width() > 0 {
				ch, color = frame.At(col-r.X, row-r.Y), frame.Color
				if ch == 0 {
					continue
				}
			}
			dst.SetColored(col, row, ch, color)
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen, vp core.Viewport) {
	p := g.world.Player()
	r := vp.RectToCells(p.X, p.Y, p.W, p.H)
	frame := g.player.Frame()
	if frame.Width() == 0 {
		dst.DrawRect(r, playerChar)
		return
	}
	// The sprite keeps its own size and sits on the hitbox's bottom-left cell.
	top := r.Bottom() - frame.Height()
	for row := range frame.Height() {
		for col := range frame.Width() {
			if ch := frame.At(col, row); ch != 0 {
				dst.SetColored(r.X+col, top+row, ch, frame.Color)
			}
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	state := g.State()
	hud := g.assets.Color("hud")
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d  Best: %d ", state.Score, state.HighScore), hud)

	if state.Extreme {
		label := " EXTREME "
		dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(label)-2, 0, label, g.assets.Color("extreme"))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	titleX := boxX + (boxW-utf8.RuneCountInString(title))/2
	dst.DrawTextColored(titleX, boxY+1, title, g.assets.Color("paused"))

	subtitleX := boxX + (boxW-utf8.RuneCountInString(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
