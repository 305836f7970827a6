// Package world ties the player and the scrolling lanes of a level together:
// it advances them, resolves collisions and moves the run to game over.
package world

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/nibolas/internal/config"
	"github.com/vovakirdan/nibolas/internal/core"
	"github.com/vovakirdan/nibolas/internal/scroll"
)

// Transitioner is notified when the run ends. Screens and platforms
// implement it to switch to their game-over presentation.
type Transitioner interface {
	GameOver(score int)
}

// EntityID addresses a lane entity for the lifetime of the world.
type EntityID uint32

// EntityRef locates an entity inside the world's lanes.
type EntityRef struct {
	Lane int
	Slot int
}

// Event is something the world reports after an update.
type Event struct {
	Kind   core.EventKind
	Entity EntityID // zero when no entity is involved
	Value  int
}

// Lane is one scroll handler with the config it was built from.
type Lane struct {
	Config  config.LaneConfig
	Handler *scroll.Handler

	firstID EntityID
}

// ID returns the entity id of a slot in this lane.
func (l *Lane) ID(slot int) EntityID {
	return l.firstID + EntityID(slot)
}

// response is how the world reacts to the player touching an entity.
type response func(w *World, id EntityID, ref EntityRef)

// responses maps lane kinds to collision responses. Kinds without an entry
// (decor) are never tested.
var responses = map[config.LaneKind]response{
	config.KindHazard:      (*World).hitHazard,
	config.KindCollectible: (*World).collect,
}

// World owns the player and every lane of a level.
type World struct {
	cfg        config.LevelConfig
	player     *Player
	lanes      []*Lane
	index      *intmap.Map[EntityID, EntityRef]
	collected  *intmap.Map[EntityID, int] // id -> tick of pickup
	transition Transitioner

	score  int
	ticks  int
	over   bool
	events []Event
}

// New builds a world from a validated level config. Each lane gets its own
// RNG stream derived from seed. transition may be nil.
func New(cfg config.LevelConfig, seed int64, transition Transitioner) *World {
	w := &World{
		cfg:        cfg,
		player:     NewPlayer(cfg.Player),
		lanes:      make([]*Lane, 0, len(cfg.Lanes)),
		transition: transition,
	}

	total := 0
	for _, lc := range cfg.Lanes {
		total += lc.Count
	}
	w.index = intmap.New[EntityID, EntityRef](total)
	w.collected = intmap.New[EntityID, int](total)

	next := EntityID(1)
	for i, lc := range cfg.Lanes {
		lane := &Lane{
			Config:  lc,
			Handler: scroll.NewHandler(lc.Spec(cfg.World), laneSeed(seed, i)),
			firstID: next,
		}
		for slot := range lane.Handler.Pool().Len() {
			w.index.Put(lane.ID(slot), EntityRef{Lane: i, Slot: slot})
		}
		next += EntityID(lane.Handler.Pool().Len())
		w.lanes = append(w.lanes, lane)
	}
	return w
}

func laneSeed(seed int64, lane int) int64 {
	return seed + int64(lane)*7919
}

// Update advances the world by delta seconds. The frame time is clamped to
// the level's MaxDelta. Order: player, lanes, then collisions.
// The returned events are valid until the next call.
func (w *World) Update(delta float64, in core.InputFrame) []Event {
	w.events = w.events[:0]
	if w.over {
		return w.events
	}
	delta = min(delta, w.cfg.World.MaxDelta)
	w.ticks++

	if w.player.Update(delta, in.Has(core.ActionJump), in.Has(core.ActionDive)) {
		w.emit(Event{Kind: core.EventJump})
	}

	extreme := false
	for _, lane := range w.lanes {
		p := lane.Handler.Update(delta)
		w.score += p.Points
		if p.Recycled >= 0 {
			w.collected.Del(lane.ID(p.Recycled))
		}
		if p.EnteredExtreme && lane.Config.Kind == config.KindHazard {
			extreme = true
		}
	}
	if extreme {
		w.emit(Event{Kind: core.EventExtreme})
	}

	hitFloor, hitCeiling := w.player.clampTo(w.cfg.World.Floor, w.cfg.World.Ceiling)
	if (hitFloor && w.cfg.Player.FloorKills) || (hitCeiling && w.cfg.Player.CeilingKills) {
		w.endRun(0)
		return w.events
	}

	w.checkCollisions()
	return w.events
}

func (w *World) checkCollisions() {
	ps := w.player.Shape()
	for i, lane := range w.lanes {
		respond, ok := responses[lane.Config.Kind]
		if !ok {
			continue
		}
		// Every overlapping entity responds, so one already collected
		// cannot hide another behind it.
		for slot := range lane.Handler.Overlaps(ps) {
			respond(w, lane.ID(slot), EntityRef{Lane: i, Slot: slot})
			if w.over {
				return
			}
		}
	}
}

func (w *World) hitHazard(id EntityID, _ EntityRef) {
	w.endRun(id)
}

func (w *World) collect(id EntityID, ref EntityRef) {
	if _, done := w.collected.Get(id); done {
		return
	}
	w.collected.Put(id, w.ticks)
	bonus := w.lanes[ref.Lane].Config.Bonus
	w.score += bonus
	w.emit(Event{Kind: core.EventPickup, Entity: id, Value: bonus})
}

// endRun stops every lane, kills the player and notifies the transitioner.
func (w *World) endRun(cause EntityID) {
	for _, lane := range w.lanes {
		lane.Handler.Stop()
	}
	w.player.Kill()
	w.over = true
	w.emit(Event{Kind: core.EventCrash, Entity: cause, Value: w.score})
	if w.transition != nil {
		w.transition.GameOver(w.score)
	}
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

// Restart begins a new run: score to zero, player and every lane restarted.
func (w *World) Restart() {
	w.score = 0
	w.ticks = 0
	w.over = false
	w.player.Restart()
	for _, lane := range w.lanes {
		lane.Handler.OnRestart()
	}
	w.collected.Clear()
	w.events = w.events[:0]
}

// Score returns the current score.
func (w *World) Score() int {
	return w.score
}

// GameOver reports whether the run has ended.
func (w *World) GameOver() bool {
	return w.over
}

// Player returns the player.
func (w *World) Player() *Player {
	return w.player
}

// Lanes returns the lanes in config order.
func (w *World) Lanes() []*Lane {
	return w.lanes
}

// Config returns the level config.
func (w *World) Config() config.LevelConfig {
	return w.cfg
}

// Ticks returns the number of updates since the last restart.
func (w *World) Ticks() int {
	return w.ticks
}

// Mode returns EXTREME once any hazard lane escalated.
func (w *World) Mode() scroll.Mode {
	for _, lane := range w.lanes {
		if lane.Config.Kind == config.KindHazard && lane.Handler.Mode() == scroll.ModeExtreme {
			return scroll.ModeExtreme
		}
	}
	return scroll.ModeNormal
}

// Entity resolves an id to its scrollable.
func (w *World) Entity(id EntityID) (*scroll.Scrollable, EntityRef, bool) {
	ref, ok := w.index.Get(id)
	if !ok {
		return nil, EntityRef{}, false
	}
	return w.lanes[ref.Lane].Handler.Pool().At(ref.Slot), ref, true
}

// Collected reports whether a collectible was picked up since it last spawned.
func (w *World) Collected(id EntityID) bool {
	_, ok := w.collected.Get(id)
	return ok
}
