package nibolas

import (
	"github.com/vovakirdan/nibolas/internal/assets"
	"github.com/vovakirdan/nibolas/internal/config"
	"github.com/vovakirdan/nibolas/internal/core"
	"github.com/vovakirdan/nibolas/internal/scroll"
)

// Body is one visible entity in world units, bottom-left origin.
type Body struct {
	X, Y, W, H float64
	Radius     float64
	Circle     bool
	Kind       config.LaneKind
	Sprite     string // palette and sprite name
	Frame      assets.Sprite
}

// Scene is a snapshot of everything a graphical frontend draws.
type Scene struct {
	Title  string
	World  config.WorldConfig
	Player Body
	Bodies []Body
	State  core.GameState
}

// Scene returns the drawable state. Bodies are in draw order.
func (g *Game) Scene() Scene {
	sc := Scene{Title: g.Title(), World: g.cfg.World, State: g.State()}
	if g.world == nil {
		return sc
	}

	for i, lane := range g.world.Lanes() {
		frame := g.lanes[i].Frame()
		for slot, s := range lane.Handler.Pool().Items() {
			if lane.Config.Kind == config.KindCollectible && g.world.Collected(lane.ID(slot)) {
				continue
			}
			sc.Bodies = append(sc.Bodies, Body{
				X: s.X, Y: s.Y, W: s.Width, H: s.Height,
				Radius: s.Radius,
				Circle: s.Form() == scroll.FormCircle,
				Kind:   lane.Config.Kind,
				Sprite: lane.Config.Sprite,
				Frame:  frame,
			})
		}
	}

	p := g.world.Player()
	sc.Player = Body{
		X: p.X, Y: p.Y, W: p.W, H: p.H,
		Sprite: g.cfg.Player.Sprite,
		Frame:  g.player.Frame(),
	}
	return sc
}
