package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/nibolas/internal/shape"
)

func twoEntitySpec() Spec {
	return Spec{
		Count:        2,
		StartX:       0,
		Gap:          50,
		Width:        20,
		Height:       10,
		Speed:        -10,
		TicksPerStep: 1,
	}
}

func TestHandlerTwoEntityRecycle(t *testing.T) {
	h := NewHandler(twoEntitySpec(), 1)
	pool := h.Pool()
	require.Equal(t, 0.0, pool.At(0).X)
	require.Equal(t, 70.0, pool.At(1).X)

	p := h.Update(1)
	assert.Equal(t, -1, p.Recycled)
	assert.Equal(t, -10.0, pool.At(0).X)
	assert.Equal(t, 60.0, pool.At(1).X)

	// Entity 0's tail reaches the bound on the second tick, after entity 1
	// moved to 50.
	p = h.Update(1)
	assert.Equal(t, 0, p.Recycled)
	assert.Equal(t, 50.0, pool.At(1).X)
	assert.Equal(t, 120.0, pool.At(0).X)
	assert.Equal(t, pool.At(1).TailX()+50, pool.At(0).X)
}

func TestHandlerRecycleInvariant(t *testing.T) {
	spec := Spec{
		Count:        5,
		StartX:       320,
		Gap:          60,
		Width:        24,
		Height:       30,
		Speed:        -90,
		Form:         FormCircle,
		Anchor:       AnchorFloat,
		Ceiling:      200,
		TicksPerStep: 60,
		Variation: Variation{
			Height: Range{Min: 0, Max: 100},
			Radius: Range{Min: 5, Max: 20},
			Lift:   Range{Min: 0, Max: 100},
		},
	}
	h := NewHandler(spec, 42)
	pool := h.Pool()

	recycles := 0
	for range 2000 {
		p := h.Update(1.0 / 60)
		if p.Recycled < 0 {
			continue
		}
		recycles++
		e := pool.At(p.Recycled)
		prev := pool.At(pool.Previous(p.Recycled))
		assert.InDelta(t, prev.TailX()+spec.Gap, e.X, 1e-9)
	}
	assert.Greater(t, recycles, 10)
}

func TestHandlerRecyclesFirstMatchOnly(t *testing.T) {
	h := NewHandler(twoEntitySpec(), 1)
	pool := h.Pool()
	pool.At(0).X = -100
	pool.At(1).X = -30

	p := h.Update(0)
	assert.Equal(t, 0, p.Recycled)
	assert.True(t, pool.At(1).IsScrolledLeft(), "second entity waits for the next tick")

	p = h.Update(0)
	assert.Equal(t, 1, p.Recycled)
	assert.Equal(t, pool.At(0).TailX()+50, pool.At(1).X)
}

func TestHandlerSingleEntityPool(t *testing.T) {
	spec := twoEntitySpec()
	spec.Count = 1
	spec.StartX = 30
	h := NewHandler(spec, 1)

	h.Pool().At(0).X = -25
	p := h.Update(0)
	assert.Equal(t, 0, p.Recycled)
	assert.Equal(t, 30.0, h.Pool().At(0).X)
}

func TestHandlerExtremeFiresOnce(t *testing.T) {
	spec := twoEntitySpec()
	spec.Count = 4
	spec.Extreme = Extreme{Threshold: 86, SpeedDelta: -5}
	h := NewHandler(spec, 1)

	entered := 0
	for i := 1; i <= 86; i++ {
		if h.Update(0.01).EnteredExtreme {
			entered++
			assert.Equal(t, 86, i, "EXTREME fires on the 86th step")
		}
	}
	require.Equal(t, 1, entered)
	assert.Equal(t, ModeExtreme, h.Mode())
	for _, s := range h.Pool().Items() {
		assert.Equal(t, -15.0, s.VelocityX)
	}

	for range 200 {
		assert.False(t, h.Update(0.01).EnteredExtreme)
	}
	for _, s := range h.Pool().Items() {
		assert.Equal(t, -15.0, s.VelocityX, "delta is applied exactly once")
	}
}

func TestHandlerStepRollover(t *testing.T) {
	spec := twoEntitySpec()
	spec.TicksPerStep = 60
	spec.ScorePerStep = 3
	h := NewHandler(spec, 1)

	points := 0
	for range 59 {
		points += h.Update(1.0 / 60).Points
	}
	assert.Equal(t, 0, h.Steps())
	assert.Equal(t, 0, points)

	p := h.Update(1.0 / 60)
	assert.Equal(t, 1, p.Steps)
	assert.Equal(t, 3, p.Points)
	assert.Equal(t, 1, h.Steps())
}

func TestHandlerDefaultTicksPerStep(t *testing.T) {
	spec := twoEntitySpec()
	spec.TicksPerStep = 0
	h := NewHandler(spec, 1)
	assert.Equal(t, DefaultTicksPerStep, h.Spec().TicksPerStep)
}

func TestHandlerCollides(t *testing.T) {
	h := NewHandler(twoEntitySpec(), 1)

	assert.True(t, h.Collides(shape.Rect{X: 5, Y: 0, W: 2, H: 2}))
	assert.Equal(t, 1, h.Overlapping(shape.Circle{X: 80, Y: 5, R: 1}))
	assert.False(t, h.Collides(shape.Rect{X: 30, Y: 0, W: 10, H: 10}), "gap between entities is free")
	assert.False(t, h.Collides(shape.Rect{X: 5, Y: 10, W: 2, H: 2}), "touching the top is not a hit")
}

func TestHandlerOverlapsYieldsEverySlot(t *testing.T) {
	h := NewHandler(twoEntitySpec(), 1)
	wide := shape.Rect{X: 0, Y: 0, W: 200, H: 5}

	var slots []int
	for slot := range h.Overlaps(wide) {
		slots = append(slots, slot)
	}
	assert.Equal(t, []int{0, 1}, slots)

	for slot := range h.Overlaps(wide) {
		assert.Equal(t, 0, slot, "breaking out stops the walk")
		break
	}
}

func TestHandlerStop(t *testing.T) {
	h := NewHandler(twoEntitySpec(), 1)
	h.Stop()
	require.True(t, h.Stopped())

	before := h.Pool().At(0).X
	h.Update(1)
	assert.Equal(t, before, h.Pool().At(0).X)
}

func TestHandlerOnRestartIsIdempotent(t *testing.T) {
	spec := twoEntitySpec()
	spec.Count = 4
	spec.Variation = Variation{Height: Range{Min: 5, Max: 40}}
	spec.Extreme = Extreme{Threshold: 10, SpeedDelta: -20}

	fresh := NewHandler(spec, 99)
	snapshot := func(h *Handler) []Scrollable {
		out := make([]Scrollable, 0, h.Pool().Len())
		for _, s := range h.Pool().Items() {
			out = append(out, Scrollable{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height, Radius: s.Radius, VelocityX: s.VelocityX})
		}
		return out
	}
	want := snapshot(fresh)

	h := NewHandler(spec, 99)
	for range 500 {
		h.Update(0.25)
	}
	h.Stop()
	require.Equal(t, ModeExtreme, h.Mode())

	h.OnRestart()
	assert.Equal(t, want, snapshot(h))
	assert.Equal(t, ModeNormal, h.Mode())
	assert.Equal(t, 0, h.Steps())

	h.OnRestart()
	assert.Equal(t, want, snapshot(h))

	// Counters restart too: EXTREME can fire again in the new run.
	fired := false
	for range 10 {
		fired = fired || h.Update(0.01).EnteredExtreme
	}
	assert.True(t, fired)
}
