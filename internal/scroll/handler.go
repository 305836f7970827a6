package scroll

import (
	"iter"

	"github.com/vovakirdan/nibolas/internal/shape"
)

// Mode is the difficulty phase of a handler.
type Mode int

const (
	ModeNormal Mode = iota
	ModeExtreme
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	if m == ModeExtreme {
		return "EXTREME"
	}
	return "NORMAL"
}

// DefaultTicksPerStep is used when a spec leaves TicksPerStep unset.
const DefaultTicksPerStep = 60

// Progress reports what happened during one Update.
type Progress struct {
	Steps          int  // elapsed steps completed this tick (0 or 1)
	Points         int  // points earned this tick
	Recycled       int  // index of the recycled entity, -1 if none
	EnteredExtreme bool // EXTREME fired on this tick
}

// Handler advances a pool every tick, recycles entities that scrolled off
// the left bound and fires the EXTREME escalation once.
type Handler struct {
	pool  *Pool
	spec  Spec
	ticks int
	steps int
	mode  Mode
	fired bool
}

// NewHandler builds the pool described by spec and returns its handler.
func NewHandler(spec Spec, seed int64) *Handler {
	if spec.TicksPerStep <= 0 {
		spec.TicksPerStep = DefaultTicksPerStep
	}
	return &Handler{
		pool: NewPool(spec, seed),
		spec: spec,
	}
}

// Update advances the lane by delta seconds.
//
// Order within a tick: step counter, entity movement, EXTREME check, then at
// most one recycle. The first entity in pool order that scrolled off wins.
func (h *Handler) Update(delta float64) Progress {
	p := Progress{Recycled: -1}

	h.ticks++
	if h.ticks >= h.spec.TicksPerStep {
		h.ticks = 0
		h.steps++
		p.Steps = 1
		p.Points = h.spec.ScorePerStep
	}

	for _, s := range h.pool.items {
		s.Update(delta)
	}

	if h.shouldEnterExtreme() {
		h.enterExtreme()
		p.EnteredExtreme = true
	}

	for i, s := range h.pool.items {
		if !s.IsScrolledLeft() {
			continue
		}
		h.recycle(i)
		p.Recycled = i
		break
	}

	return p
}

func (h *Handler) shouldEnterExtreme() bool {
	return !h.fired && h.spec.Extreme.Threshold > 0 && h.steps >= h.spec.Extreme.Threshold
}

func (h *Handler) enterExtreme() {
	h.fired = true
	h.mode = ModeExtreme
	for _, s := range h.pool.items {
		s.ChangeSpeed(s.VelocityX + h.spec.Extreme.SpeedDelta)
	}
}

// recycle puts entity i behind the entity spawned before it. A single-entity
// pool has no other entity to follow and restarts from StartX.
func (h *Handler) recycle(i int) {
	s := h.pool.items[i]
	if h.pool.Len() == 1 {
		s.Reset(h.spec.StartX)
		return
	}
	prev := h.pool.items[h.pool.Previous(i)]
	s.Reset(prev.TailX() + h.spec.Gap)
}

// Collides reports whether any entity overlaps the given shape.
func (h *Handler) Collides(other shape.Shape) bool {
	return h.Overlapping(other) >= 0
}

// Overlapping returns the index of the first entity overlapping the shape,
// or -1.
func (h *Handler) Overlapping(other shape.Shape) int {
	for i, s := range h.pool.items {
		if shape.Overlaps(s.Shape(), other) {
			return i
		}
	}
	return -1
}

// Overlaps yields the index of every entity overlapping the shape, in pool
// order.
func (h *Handler) Overlaps(other shape.Shape) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, s := range h.pool.items {
			if shape.Overlaps(s.Shape(), other) && !yield(i) {
				return
			}
		}
	}
}

// Stop halts every entity.
func (h *Handler) Stop() {
	for _, s := range h.pool.items {
		s.ChangeSpeed(0)
	}
}

// Stopped reports whether every entity is at rest.
func (h *Handler) Stopped() bool {
	for _, s := range h.pool.items {
		if s.VelocityX != 0 {
			return false
		}
	}
	return true
}

// OnRestart restores the freshly constructed state: initial layout and
// attributes, base velocity, zeroed counters and NORMAL mode.
func (h *Handler) OnRestart() {
	h.pool.Layout()
	h.ticks = 0
	h.steps = 0
	h.mode = ModeNormal
	h.fired = false
}

// Pool returns the handler's entities.
func (h *Handler) Pool() *Pool {
	return h.pool
}

// Mode returns the current difficulty phase.
func (h *Handler) Mode() Mode {
	return h.mode
}

// Steps returns the number of elapsed steps since the last restart.
func (h *Handler) Steps() int {
	return h.steps
}

// Spec returns the lane spec with defaults applied.
func (h *Handler) Spec() Spec {
	return h.spec
}
