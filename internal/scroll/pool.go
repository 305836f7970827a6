package scroll

import "math/rand"

// Extreme describes the one-time speed escalation of a lane.
type Extreme struct {
	Threshold  int     `yaml:"threshold"`   // elapsed steps that trigger it, 0 disables
	SpeedDelta float64 `yaml:"speed_delta"` // added to every entity's velocity once
}

// Spec describes a lane: its pool layout, entity geometry and timing.
type Spec struct {
	Count     int
	StartX    float64
	Gap       float64
	Width     float64
	Height    float64
	Radius    float64
	Speed     float64 // base horizontal velocity, negative moves left
	Form      Form
	Anchor    Anchor
	Floor     float64
	Ceiling   float64
	LeftBound float64
	Variation Variation

	TicksPerStep int // ticks per elapsed step
	ScorePerStep int // points reported on each elapsed step
	Extreme      Extreme
}

// Pool is a fixed-size ordered list of scrollables. Consecutive entities are
// separated by Gap from the tail of one to the head of the next.
type Pool struct {
	items []*Scrollable
	spec  Spec
	seed  int64
	rng   *rand.Rand
}

// NewPool creates a pool and lays it out from StartX.
func NewPool(spec Spec, seed int64) *Pool {
	if spec.Count < 1 {
		spec.Count = 1
	}
	p := &Pool{
		items: make([]*Scrollable, spec.Count),
		spec:  spec,
		seed:  seed,
	}
	for i := range p.items {
		p.items[i] = &Scrollable{
			Width:     spec.Width,
			form:      spec.Form,
			anchor:    spec.Anchor,
			leftBound: spec.LeftBound,
			floor:     spec.Floor,
			ceiling:   spec.Ceiling,
			base:      spec,
		}
	}
	p.Layout()
	return p
}

// Layout reseeds the pool RNG and puts every entity back at its initial
// position with its initial attributes and the base velocity.
func (p *Pool) Layout() {
	p.rng = rand.New(rand.NewSource(p.seed))
	x := p.spec.StartX
	for _, s := range p.items {
		s.rng = p.rng
		s.VelocityX = p.spec.Speed
		s.Reset(x)
		x = s.TailX() + p.spec.Gap
	}
}

// Len returns the pool size.
func (p *Pool) Len() int {
	return len(p.items)
}

// At returns the entity at index i.
func (p *Pool) At(i int) *Scrollable {
	return p.items[i]
}

// Items returns the entities in pool order. Callers must not modify the slice.
func (p *Pool) Items() []*Scrollable {
	return p.items
}

// Previous returns the index of the entity spawned before entity i, wrapping
// around the pool.
func (p *Pool) Previous(i int) int {
	n := len(p.items)
	return (i - 1 + n) % n
}

// Spec returns the lane spec the pool was built from.
func (p *Pool) Spec() Spec {
	return p.spec
}
