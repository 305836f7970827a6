// Package config provides YAML-based level configuration loading,
// validation and difficulty presets.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/nibolas/internal/scroll"
)

// LevelConfig contains everything needed to build one level.
type LevelConfig struct {
	ID     string       `yaml:"id"`
	Title  string       `yaml:"title"`
	World  WorldConfig  `yaml:"world"`
	Player PlayerConfig `yaml:"player"`
	Lanes  []LaneConfig `yaml:"lanes"`
}

// WorldConfig defines the playfield in world units. Y grows upwards.
type WorldConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Floor    float64 `yaml:"floor"`
	Ceiling  float64 `yaml:"ceiling"`
	MaxDelta float64 `yaml:"max_delta"` // longest frame the simulation accepts, seconds
}

// PlayerConfig defines the player hitbox and physics.
type PlayerConfig struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Gravity      float64 `yaml:"gravity"`        // vertical acceleration, negative pulls down
	JumpImpulse  float64 `yaml:"jump_impulse"`   // vertical velocity set on jump
	DiveImpulse  float64 `yaml:"dive_impulse"`   // vertical velocity set on dive
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // magnitude cap for downward velocity
	FloorKills   bool    `yaml:"floor_kills"`
	CeilingKills bool    `yaml:"ceiling_kills"`
	Sprite       string  `yaml:"sprite"`
}

// LaneKind selects how the world responds when the player touches a lane entity.
type LaneKind string

const (
	KindHazard      LaneKind = "hazard"
	KindCollectible LaneKind = "collectible"
	KindDecor       LaneKind = "decor"
)

// LaneConfig defines one scrolling lane.
type LaneConfig struct {
	Name         string           `yaml:"name"`
	Kind         LaneKind         `yaml:"kind"`
	Form         string           `yaml:"form"`   // box or circle
	Anchor       string           `yaml:"anchor"` // ground, ceiling or float
	Count        int              `yaml:"count"`
	StartX       float64          `yaml:"start_x"`
	Gap          float64          `yaml:"gap"`
	Width        float64          `yaml:"width"`
	Height       float64          `yaml:"height"`
	Radius       float64          `yaml:"radius"`
	Speed        float64          `yaml:"speed"`
	Variation    scroll.Variation `yaml:"variation"`
	TicksPerStep int              `yaml:"ticks_per_step"`
	ScorePerStep int              `yaml:"score_per_step"`
	Bonus        int              `yaml:"bonus"` // points for a collectible
	Extreme      scroll.Extreme   `yaml:"extreme"`
	Sprite       string           `yaml:"sprite"`
}

// Spec converts the lane into a scroll spec placed in the given world.
func (l LaneConfig) Spec(w WorldConfig) scroll.Spec {
	return scroll.Spec{
		Count:        l.Count,
		StartX:       l.StartX,
		Gap:          l.Gap,
		Width:        l.Width,
		Height:       l.Height,
		Radius:       l.Radius,
		Speed:        l.Speed,
		Form:         parseForm(l.Form),
		Anchor:       parseAnchor(l.Anchor),
		Floor:        w.Floor,
		Ceiling:      w.Ceiling,
		Variation:    l.Variation,
		TicksPerStep: l.TicksPerStep,
		ScorePerStep: l.ScorePerStep,
		Extreme:      l.Extreme,
	}
}

func parseForm(s string) scroll.Form {
	if s == "circle" {
		return scroll.FormCircle
	}
	return scroll.FormBox
}

func parseAnchor(s string) scroll.Anchor {
	switch s {
	case "ceiling":
		return scroll.AnchorCeiling
	case "float":
		return scroll.AnchorFloat
	default:
		return scroll.AnchorGround
	}
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid level config")

// Validate checks the config for values the simulation cannot run with.
func (c LevelConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("config: level %q: %w: %s", c.ID, ErrInvalid, fmt.Sprintf(format, args...))
	}

	if c.ID == "" {
		return invalid("missing id")
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return invalid("world size must be positive")
	}
	if c.World.Ceiling <= c.World.Floor {
		return invalid("ceiling %.1f must be above floor %.1f", c.World.Ceiling, c.World.Floor)
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		return invalid("player size must be positive")
	}
	if len(c.Lanes) == 0 {
		return invalid("at least one lane is required")
	}

	for _, l := range c.Lanes {
		switch l.Kind {
		case KindHazard, KindCollectible, KindDecor:
		default:
			return invalid("lane %q: unknown kind %q", l.Name, l.Kind)
		}
		switch l.Form {
		case "", "box", "circle":
		default:
			return invalid("lane %q: unknown form %q", l.Name, l.Form)
		}
		switch l.Anchor {
		case "", "ground", "ceiling", "float":
		default:
			return invalid("lane %q: unknown anchor %q", l.Name, l.Anchor)
		}
		if l.Count < 1 {
			return invalid("lane %q: count must be at least 1", l.Name)
		}
		if l.Gap < 0 {
			return invalid("lane %q: gap must not be negative", l.Name)
		}
		if l.Width <= 0 {
			return invalid("lane %q: width must be positive", l.Name)
		}
		if l.Kind != KindDecor && l.Speed >= 0 {
			return invalid("lane %q: speed must be negative", l.Name)
		}
		if l.Speed > 0 {
			return invalid("lane %q: speed must not be positive", l.Name)
		}
		for name, r := range map[string]scroll.Range{
			"height": l.Variation.Height,
			"radius": l.Variation.Radius,
			"lift":   l.Variation.Lift,
		} {
			if r.Max < r.Min {
				return invalid("lane %q: %s range is inverted", l.Name, name)
			}
		}
		if l.Extreme.Threshold < 0 {
			return invalid("lane %q: extreme threshold must not be negative", l.Name)
		}
	}
	return nil
}

// Lane returns the first lane with the given name.
func (c LevelConfig) Lane(name string) (LaneConfig, bool) {
	for _, l := range c.Lanes {
		if l.Name == name {
			return l, true
		}
	}
	return LaneConfig{}, false
}
