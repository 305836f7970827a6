// Package window runs a level in a desktop window using Ebitengine.
// It drives the same game as the terminal frontend and draws its scene
// with filled shapes instead of characters.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/nibolas/internal/config"
	"github.com/vovakirdan/nibolas/internal/core"
	"github.com/vovakirdan/nibolas/internal/games/nibolas"
	"github.com/vovakirdan/nibolas/internal/storage"
)

// Default window size in pixels.
const (
	DefaultWidth  = 960
	DefaultHeight = 480
)

// Frontend adapts a level to ebiten.Game.
type Frontend struct {
	game    *nibolas.Game
	store   *storage.Store
	logger  *log.Logger
	watcher *config.Watcher
	config  core.RuntimeConfig
	input   core.InputFrame
	state   core.GameState
	sounds  *mixer
	saved   bool
}

// New starts the level and prepares audio. store and logger may be nil.
func New(game *nibolas.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) *Frontend {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = DefaultWidth, DefaultHeight
	}
	cfg = cfg.WithSeed(time.Now())

	muted := false
	if store != nil {
		best, err := store.HighScore(game.ID())
		if err != nil {
			logger.Warn("could not read best score", "level", game.ID(), "error", err)
		}
		cfg.HighScore = best
		muted, _ = store.GetBool(storage.KeyMuted, false)
	}

	game.Reset(cfg)
	f := &Frontend{
		game:   game,
		store:  store,
		logger: logger,
		config: cfg,
		input:  core.NewInputFrame(),
		state:  game.State(),
		sounds: newMixer(game.Assets(), logger),
	}
	f.sounds.muted = muted
	return f
}

// WithWatcher reloads the level whenever the watcher reports a change.
func (f *Frontend) WithWatcher(w *config.Watcher) *Frontend {
	f.watcher = w
	return f
}

// Update advances the game by one tick.
func (f *Frontend) Update() error {
	f.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		f.toggleMute()
	}

	readInput(&f.input)
	if f.input.Has(core.ActionQuit) {
		return ebiten.Termination
	}
	if f.input.Has(core.ActionBack) && (f.state.GameOver || f.state.Paused) {
		return ebiten.Termination
	}

	wasOver := f.state.GameOver
	result := f.game.Step(f.input)
	f.input.Clear()
	f.state = result.State

	for _, ev := range result.Events {
		f.logger.Debug("game event", "level", f.game.ID(), "event", ev.Kind, "value", ev.Value)
		f.sounds.play(ev.Kind)
	}

	if wasOver && !f.state.GameOver {
		f.saved = false
	}
	if f.state.GameOver && !f.saved {
		f.recordRun()
		f.saved = true
	}
	return nil
}

func (f *Frontend) recordRun() {
	score := f.state.Score
	f.logger.Info("run ended", "level", f.game.ID(), "score", score, "best", f.state.HighScore)
	if f.store == nil {
		return
	}
	beat, err := f.store.RecordRun(f.game.ID(), score)
	if err != nil {
		f.logger.Warn("could not save run", "level", f.game.ID(), "error", err)
	} else if beat {
		f.logger.Info("new best score", "level", f.game.ID(), "score", score)
	}
}

func (f *Frontend) toggleMute() {
	f.sounds.muted = !f.sounds.muted
	if f.store != nil {
		if err := f.store.PutBool(storage.KeyMuted, f.sounds.muted); err != nil {
			f.logger.Warn("could not save mute setting", "error", err)
		}
	}
}

// pollReload applies a pending level change without blocking the tick.
func (f *Frontend) pollReload() {
	if f.watcher == nil {
		return
	}
	select {
	case path, ok := <-f.watcher.Events:
		if !ok {
			f.watcher = nil
			return
		}
		cfg, err := config.LoadLevelFile(path)
		if err != nil {
			f.logger.Warn("level reload failed", "path", path, "error", err)
			return
		}
		f.game.Reconfigure(cfg)
		f.state = f.game.State()
		f.saved = false
		f.logger.Info("level reloaded", "level", f.game.ID(), "path", path)
	default:
	}
}

// Draw renders the scene. World y grows upwards, screen y downwards.
func (f *Frontend) Draw(screen *ebiten.Image) {
	sc := f.game.Scene()
	reg := f.game.Assets()
	screen.Fill(reg.RGBA("background"))

	if sc.World.Width <= 0 || sc.World.Height <= 0 {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	p := projection{
		sx: float64(w) / sc.World.Width,
		sy: float64(h) / sc.World.Height,
		h:  float64(h),
	}

	for _, b := range sc.Bodies {
		p.drawBody(screen, b, reg.RGBA(b.Sprite))
	}
	p.drawBody(screen, sc.Player, reg.RGBA(sc.Player.Sprite))

	drawHUD(screen, sc, w, h)
}

// Layout keeps a fixed logical size; ebiten scales it to the window.
func (f *Frontend) Layout(_, _ int) (int, int) {
	return f.config.ScreenW, f.config.ScreenH
}

type projection struct {
	sx, sy, h float64
}

// rect maps a world box to screen coordinates.
func (p projection) rect(x, y, w, h float64) (float32, float32, float32, float32) {
	return float32(x * p.sx), float32(p.h - (y+h)*p.sy), float32(w * p.sx), float32(h * p.sy)
}

// drawBody fills circles directly and paints boxes cell by cell from the
// sprite frame, so the window shows the same glyph shapes as the terminal.
func (p projection) drawBody(dst *ebiten.Image, b nibolas.Body, clr color.RGBA) {
	if b.Circle {
		cx, cy, _, _ := p.rect(b.X+b.W/2, b.Y+b.H/2, 0, 0)
		r := float32(b.Radius * min(p.sx, p.sy))
		vector.DrawFilledCircle(dst, cx, cy, r, clr, true)
		return
	}

	x, y, w, h := p.rect(b.X, b.Y, b.W, b.H)
	fw, fh := b.Frame.Width(), b.Frame.Height()
	if fw == 0 || fh == 0 {
		vector.DrawFilledRect(dst, x, y, w, h, clr, false)
		return
	}
	cw, ch := w/float32(fw), h/float32(fh)
	for row := range fh {
		for col := range fw {
			if b.Frame.At(col, row) == 0 {
				continue
			}
			vector.DrawFilledRect(dst, x+float32(col)*cw, y+float32(row)*ch, cw, ch, clr, false)
		}
	}
}

func drawHUD(dst *ebiten.Image, sc nibolas.Scene, w, h int) {
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Score: %d  Best: %d", sc.State.Score, sc.State.HighScore), 8, 8)
	if sc.State.Extreme {
		ebitenutil.DebugPrintAt(dst, "EXTREME", w-64, 8)
	}

	switch {
	case sc.State.GameOver:
		drawMessage(dst, w, h, "GAME OVER", "R: restart  B: quit")
	case sc.State.Paused:
		drawMessage(dst, w, h, "PAUSED", "P: resume  B: quit  M: mute")
	}
}

// debugGlyphW is the width of one ebitenutil debug font glyph.
const debugGlyphW = 6

func drawMessage(dst *ebiten.Image, w, h int, title, subtitle string) {
	ebitenutil.DebugPrintAt(dst, title, (w-len(title)*debugGlyphW)/2, h/2-16)
	ebitenutil.DebugPrintAt(dst, subtitle, (w-len(subtitle)*debugGlyphW)/2, h/2)
}

// Run opens a window and plays the level until it is closed. watcher may
// be nil.
func Run(game *nibolas.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, watcher *config.Watcher) error {
	f := New(game, store, cfg, logger).WithWatcher(watcher)

	ebiten.SetWindowSize(f.config.ScreenW, f.config.ScreenH)
	ebiten.SetWindowTitle("Little Nibolas - " + game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}

	err := ebiten.RunGame(f)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

var _ ebiten.Game = (*Frontend)(nil)
