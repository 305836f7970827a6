package scroll

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/nibolas/internal/shape"
)

func boxSpec() Spec {
	return Spec{
		Count:  3,
		StartX: 100,
		Gap:    50,
		Width:  20,
		Height: 30,
		Speed:  -10,
		Form:   FormBox,
		Anchor: AnchorGround,
		Floor:  5,
	}
}

func TestScrollableUpdateMovesByVelocity(t *testing.T) {
	p := NewPool(boxSpec(), 1)
	s := p.At(0)

	for _, delta := range []float64{1, 0.5, 1.0 / 60} {
		before := s.X
		s.Update(delta)
		assert.InDelta(t, before+s.VelocityX*delta, s.X, 1e-9)
	}
}

func TestScrollableIsScrolledLeft(t *testing.T) {
	p := NewPool(boxSpec(), 1)
	s := p.At(0)

	tests := []struct {
		name string
		x    float64
		want bool
	}{
		{"on screen", 10, false},
		{"tail just right of bound", -19.5, false},
		{"tail on bound", -20, true},
		{"far left", -300, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s.X = tc.x
			assert.Equal(t, tc.want, s.IsScrolledLeft())
		})
	}
}

func TestScrollableStaysScrolledLeftUntilReset(t *testing.T) {
	p := NewPool(boxSpec(), 1)
	s := p.At(0)
	s.X = -25

	for range 10 {
		s.Update(0.1)
		require.True(t, s.IsScrolledLeft())
	}

	s.Reset(200)
	assert.False(t, s.IsScrolledLeft())
	assert.Equal(t, 200.0, s.X)
	assert.Equal(t, -10.0, s.VelocityX, "reset keeps velocity")
}

func TestScrollableResetRollsWithinRanges(t *testing.T) {
	spec := boxSpec()
	spec.Form = FormCircle
	spec.Anchor = AnchorFloat
	spec.Ceiling = 200
	spec.Variation = Variation{
		Height: Range{Min: 0, Max: 100},
		Radius: Range{Min: 5, Max: 20},
		Lift:   Range{Min: 10, Max: 60},
	}
	p := NewPool(spec, 7)
	s := p.At(1)

	for i := range 200 {
		s.Reset(float64(i))
		assert.GreaterOrEqual(t, s.Radius, 5.0)
		assert.Less(t, s.Radius, 20.0)
		assert.GreaterOrEqual(t, s.Height, 2*s.Radius, "circle box must fit the disc")
		assert.GreaterOrEqual(t, s.Y, spec.Floor+10)
		assert.LessOrEqual(t, s.Y+s.Height, spec.Ceiling+1e-9)
		assert.Equal(t, math.Trunc(s.Radius), s.Radius, "radius must be a whole number")
		assert.Equal(t, math.Trunc(s.Height), s.Height, "height must be a whole number")
	}
}

func TestRangeRollsFractionsForFractionalBounds(t *testing.T) {
	r := Range{Min: 0.5, Max: 1.5}
	rng := rand.New(rand.NewSource(3))

	fractional := false
	for range 50 {
		v := r.roll(rng)
		require.GreaterOrEqual(t, v, 0.5)
		require.Less(t, v, 1.5)
		if v != math.Trunc(v) {
			fractional = true
		}
	}
	assert.True(t, fractional, "fractional bounds should roll continuous values")
}

func TestScrollableAnchors(t *testing.T) {
	spec := boxSpec()
	spec.Ceiling = 120

	spec.Anchor = AnchorGround
	assert.Equal(t, 5.0, NewPool(spec, 1).At(0).Y)

	spec.Anchor = AnchorCeiling
	assert.Equal(t, 90.0, NewPool(spec, 1).At(0).Y)
}

func TestScrollableShape(t *testing.T) {
	spec := boxSpec()
	s := NewPool(spec, 1).At(0)
	assert.Equal(t, shape.Rect{X: 100, Y: 5, W: 20, H: 30}, s.Shape())

	spec.Form = FormCircle
	spec.Radius = 8
	c := NewPool(spec, 1).At(0)
	assert.Equal(t, shape.Circle{X: 110, Y: 20, R: 8}, c.Shape())
}

func TestPoolLayoutSpacing(t *testing.T) {
	p := NewPool(boxSpec(), 3)

	require.Equal(t, 3, p.Len())
	assert.Equal(t, 100.0, p.At(0).X)
	for i := 1; i < p.Len(); i++ {
		assert.Equal(t, p.At(i-1).TailX()+50, p.At(i).X)
	}
	assert.Equal(t, 2, p.Previous(0))
	assert.Equal(t, 0, p.Previous(1))
}
