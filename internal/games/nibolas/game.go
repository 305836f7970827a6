// Package nibolas implements the Little Nibolas side-scroller.
// Nibolas flies at a fixed horizontal position while lanes of hazards,
// collectibles and decor scroll past. Each embedded level registers as its
// own game.
package nibolas

import (
	"sync"

	"github.com/vovakirdan/nibolas/internal/anim"
	"github.com/vovakirdan/nibolas/internal/assets"
	"github.com/vovakirdan/nibolas/internal/config"
	"github.com/vovakirdan/nibolas/internal/core"
	"github.com/vovakirdan/nibolas/internal/registry"
	"github.com/vovakirdan/nibolas/internal/scroll"
	"github.com/vovakirdan/nibolas/internal/world"
)

var (
	settingsMu  sync.RWMutex
	configPaths = make(map[string]string)
	preset      = config.DifficultyNormal
)

// SetConfigPath sets a custom level file for one level.
func SetConfigPath(levelID, path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if path == "" {
		delete(configPaths, levelID)
		return
	}
	configPaths[levelID] = path
}

// SetDifficultyPreset sets the preset applied to every level loaded afterwards.
func SetDifficultyPreset(p config.DifficultyPreset) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	preset = p
}

func settingsFor(levelID string) (string, config.DifficultyPreset) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return configPaths[levelID], preset
}

// Game runs one level.
type Game struct {
	levelID string
	cfg     config.LevelConfig
	world   *world.World
	assets  *assets.Registry
	runtime core.RuntimeConfig

	paused    bool
	over      bool
	best      int // best score before the current run
	newBest   bool
	tickCount int
	events    []core.Event

	player *anim.Sprite[assets.Sprite]
	lanes  []*anim.Sprite[assets.Sprite]
}

// Option configures a Game.
type Option func(*Game)

// WithAssets makes the game draw from an already loaded registry.
func WithAssets(r *assets.Registry) Option {
	return func(g *Game) {
		g.assets = r
	}
}

// New creates a game for a level. The level file is read here so Title works
// before Reset; Reset reads it again to pick up edits.
func New(levelID string, opts ...Option) *Game {
	g := &Game{levelID: levelID}
	for _, opt := range opts {
		opt(g)
	}
	g.cfg = loadLevel(levelID)
	return g
}

func loadLevel(levelID string) config.LevelConfig {
	path, p := settingsFor(levelID)
	cfg, err := config.LoadLevel(levelID, path)
	if err != nil {
		cfg = config.DefaultLevelConfig(levelID)
	}
	config.ApplyPreset(&cfg, p)
	return cfg
}

// ID returns the level id.
func (g *Game) ID() string {
	return g.levelID
}

// Title returns the level title.
func (g *Game) Title() string {
	if g.cfg.Title == "" {
		return g.levelID
	}
	return g.cfg.Title
}

// Reset reloads the level and starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.assets == nil {
		r, err := assets.Default()
		if err != nil {
			// The embedded manifest is covered by tests; draw with fallbacks.
			r = assets.NewRegistry()
		}
		g.assets = r
	}
	g.runtime = runtime
	g.best = runtime.HighScore
	g.build(loadLevel(g.levelID))
}

// Reconfigure swaps in a new level config and restarts the run with the
// current seed. Used when the level file changes on disk.
func (g *Game) Reconfigure(cfg config.LevelConfig) {
	_, p := settingsFor(g.levelID)
	config.ApplyPreset(&cfg, p)
	g.build(cfg)
}

func (g *Game) build(cfg config.LevelConfig) {
	g.cfg = cfg
	g.world = world.New(cfg, g.runtime.Seed, g)
	g.player = g.sprite(cfg.Player.Sprite)
	g.lanes = make([]*anim.Sprite[assets.Sprite], len(cfg.Lanes))
	for i, lane := range cfg.Lanes {
		g.lanes[i] = g.sprite(lane.Sprite)
	}
	g.startRun()
}

func (g *Game) sprite(name string) *anim.Sprite[assets.Sprite] {
	a, ok := g.assets.Animation(name)
	if !ok {
		a = anim.New[assets.Sprite](0, anim.PlayNormal)
	}
	return anim.NewSprite(a)
}

func (g *Game) startRun() {
	g.paused = false
	g.over = false
	g.newBest = false
	g.tickCount = 0
	g.events = g.events[:0]
	g.player.Stop()
	g.player.Play()
}

// restart begins a new run on the same level with the same layout.
func (g *Game) restart() {
	g.best = max(g.best, g.world.Score())
	g.world.Restart()
	g.startRun()
}

// GameOver is called by the world when the run ends.
func (g *Game) GameOver(score int) {
	g.over = true
	g.player.Pause()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = g.events[:0]

	if g.over {
		if in.Has(core.ActionRestart) {
			g.restart()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	delta := g.runtime.Delta()

	for _, ev := range g.world.Update(delta, in) {
		g.events = append(g.events, core.Event{Kind: ev.Kind, Value: ev.Value})
	}
	if !g.newBest && g.best > 0 && g.world.Score() > g.best {
		g.newBest = true
		g.events = append(g.events, core.Event{Kind: core.EventNewBest, Value: g.world.Score()})
	}

	if !g.over {
		g.player.Update(delta)
		for _, s := range g.lanes {
			s.Update(delta)
		}
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{HighScore: g.best}
	}
	score := g.world.Score()
	return core.GameState{
		Score:     score,
		HighScore: max(g.best, score),
		GameOver:  g.over,
		Paused:    g.paused,
		Extreme:   g.world.Mode() == scroll.ModeExtreme,
	}
}

// ConfigPath returns the level file backing this game, or "" when the
// embedded default is used.
func (g *Game) ConfigPath() string {
	path, _ := settingsFor(g.levelID)
	return config.ResolvePath(g.levelID, path)
}

// Config returns the active level config with the preset applied.
func (g *Game) Config() config.LevelConfig {
	return g.cfg
}

// Assets returns the registry the game draws from.
func (g *Game) Assets() *assets.Registry {
	return g.assets
}

// World returns the running world.
func (g *Game) World() *world.World {
	return g.world
}

func init() {
	for _, id := range config.DefaultLevelIDs() {
		registry.Register(id, func() registry.Game {
			return New(id)
		})
	}
}
