// Package scroll implements endlessly scrolling entity lanes: a fixed pool of
// entities moves left at constant velocity and each entity that leaves the
// screen is put back behind the rightmost one.
package scroll

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/nibolas/internal/shape"
)

// Form selects the collision shape of an entity.
type Form int

const (
	FormBox Form = iota
	FormCircle
)

// String returns the config name of the form.
func (f Form) String() string {
	if f == FormCircle {
		return "circle"
	}
	return "box"
}

// Anchor selects how an entity is placed vertically.
type Anchor int

const (
	AnchorGround  Anchor = iota // stands on the floor
	AnchorCeiling               // hangs from the ceiling
	AnchorFloat                 // floats above the floor at a rolled altitude
)

// String returns the config name of the anchor.
func (a Anchor) String() string {
	switch a {
	case AnchorCeiling:
		return "ceiling"
	case AnchorFloat:
		return "float"
	default:
		return "ground"
	}
}

// Range is a half-open interval [Min, Max). A range with Max <= Min always
// yields Min. Whole-number bounds roll whole numbers.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Fixed reports whether the range can only yield one value.
func (r Range) Fixed() bool {
	return r.Max <= r.Min
}

func (r Range) roll(rng *rand.Rand) float64 {
	if r.Fixed() {
		return r.Min
	}
	if r.whole() {
		return r.Min + float64(rng.Intn(int(r.Max-r.Min)))
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func (r Range) whole() bool {
	return r.Min == math.Trunc(r.Min) && r.Max == math.Trunc(r.Max)
}

// Variation lists the attributes re-rolled each time an entity is reset.
// Zero ranges leave the base value untouched.
type Variation struct {
	Height Range `yaml:"height"`
	Radius Range `yaml:"radius"`
	Lift   Range `yaml:"lift"` // altitude above the floor for floating entities
}

// Scrollable is a positioned entity moving left at a constant velocity.
// (X, Y) is the bottom-left corner of its box in world units.
type Scrollable struct {
	X, Y      float64
	Width     float64
	Height    float64
	Radius    float64
	VelocityX float64

	form      Form
	anchor    Anchor
	leftBound float64
	floor     float64
	ceiling   float64
	base      Spec
	rng       *rand.Rand
}

// Update advances the entity by delta seconds.
func (s *Scrollable) Update(delta float64) {
	s.X += s.VelocityX * delta
}

// IsScrolledLeft reports whether the entity's tail crossed the left bound.
func (s *Scrollable) IsScrolledLeft() bool {
	return s.X+s.Width <= s.leftBound
}

// TailX returns the x coordinate of the entity's right edge.
func (s *Scrollable) TailX() float64 {
	return s.X + s.Width
}

// Reset moves the entity to newX and re-rolls its random attributes.
// Velocity is kept.
func (s *Scrollable) Reset(newX float64) {
	s.X = newX
	s.roll()
}

// ChangeSpeed overwrites the horizontal velocity.
func (s *Scrollable) ChangeSpeed(v float64) {
	s.VelocityX = v
}

// Form returns the entity's collision form.
func (s *Scrollable) Form() Form {
	return s.form
}

// Shape returns the collision shape at the current position. Circles are
// centered in the entity's box.
func (s *Scrollable) Shape() shape.Shape {
	if s.form == FormCircle {
		return shape.Circle{X: s.X + s.Width/2, Y: s.Y + s.Height/2, R: s.Radius}
	}
	return shape.Rect{X: s.X, Y: s.Y, W: s.Width, H: s.Height}
}

func (s *Scrollable) roll() {
	v := s.base.Variation
	s.Height = s.base.Height
	if v.Height != (Range{}) {
		s.Height = v.Height.roll(s.rng)
	}
	s.Radius = s.base.Radius
	if v.Radius != (Range{}) {
		s.Radius = v.Radius.roll(s.rng)
	}
	if s.form == FormCircle && s.Height < 2*s.Radius {
		s.Height = 2 * s.Radius
	}

	switch s.anchor {
	case AnchorCeiling:
		s.Y = s.ceiling - s.Height
	case AnchorFloat:
		s.Y = s.floor + v.Lift.roll(s.rng)
		if top := s.ceiling - s.Height; s.Y > top {
			s.Y = top
		}
	default:
		s.Y = s.floor
	}
}
