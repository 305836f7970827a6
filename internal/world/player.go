package world

import (
	"github.com/vovakirdan/nibolas/internal/config"
	"github.com/vovakirdan/nibolas/internal/shape"
)

// Player is Nibolas: fixed horizontal position, vertical physics only.
type Player struct {
	X, Y float64
	W, H float64
	VelY float64

	cfg   config.PlayerConfig
	alive bool
}

// NewPlayer creates a player at its spawn point.
func NewPlayer(cfg config.PlayerConfig) *Player {
	p := &Player{cfg: cfg}
	p.Restart()
	return p
}

// Restart puts the player back at the spawn point, alive and at rest.
func (p *Player) Restart() {
	p.X = p.cfg.X
	p.Y = p.cfg.Y
	p.W = p.cfg.Width
	p.H = p.cfg.Height
	p.VelY = 0
	p.alive = true
}

// Update integrates one frame. Jump wins over dive when both are pressed.
// Returns true if the player jumped.
func (p *Player) Update(delta float64, jump, dive bool) bool {
	if !p.alive {
		return false
	}

	switch {
	case jump:
		p.VelY = p.cfg.JumpImpulse
	case dive:
		p.VelY = p.cfg.DiveImpulse
	}

	p.VelY += p.cfg.Gravity * delta
	if p.cfg.MaxFallSpeed > 0 && p.VelY < -p.cfg.MaxFallSpeed {
		p.VelY = -p.cfg.MaxFallSpeed
	}
	p.Y += p.VelY * delta
	return jump
}

// Shape returns the player's hitbox.
func (p *Player) Shape() shape.Shape {
	return shape.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Alive reports whether the player can still move.
func (p *Player) Alive() bool {
	return p.alive
}

// Kill stops the player.
func (p *Player) Kill() {
	p.alive = false
	p.VelY = 0
}

// clampTo keeps the player inside [floor, ceiling]. It reports which edge
// was hit, if any.
func (p *Player) clampTo(floor, ceiling float64) (hitFloor, hitCeiling bool) {
	if p.Y <= floor {
		p.Y = floor
		if p.VelY < 0 {
			p.VelY = 0
		}
		hitFloor = true
	}
	if p.Y+p.H >= ceiling {
		p.Y = ceiling - p.H
		if p.VelY > 0 {
			p.VelY = 0
		}
		hitCeiling = true
	}
	return hitFloor, hitCeiling
}
