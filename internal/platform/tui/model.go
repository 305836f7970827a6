package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nibolas/internal/config"
	"github.com/vovakirdan/nibolas/internal/core"
	"github.com/vovakirdan/nibolas/internal/registry"
	"github.com/vovakirdan/nibolas/internal/storage"
)

// Reconfigurable is implemented by games that can swap their level config
// without leaving the screen.
type Reconfigurable interface {
	Reconfigure(cfg config.LevelConfig)
}

// reloadMsg carries the path of a level file that changed on disk.
type reloadMsg string

// waitForReload blocks on the watcher until a level file changes.
func waitForReload(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-w.Events
		if !ok {
			return nil
		}
		return reloadMsg(path)
	}
}

// GameModel is the Bubble Tea model for playing one level.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	watcher    *config.Watcher
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current run's score has been saved
}

// NewGameModel creates a model for the given level. The best score is read
// from the store so the HUD can show it from the first frame.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	cfg = cfg.WithSeed(time.Now())
	if logger == nil {
		logger = log.Default()
	}
	if store != nil {
		best, err := store.HighScore(game.ID())
		if err != nil {
			logger.Warn("could not read best score", "level", game.ID(), "error", err)
		}
		cfg.HighScore = best
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// WithWatcher reloads the level whenever the watcher reports a change.
func (m GameModel) WithWatcher(w *config.Watcher) GameModel {
	m.watcher = w
	return m
}

// Init starts the level and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("level started", "level", m.game.ID(), "seed", m.config.Seed, "best", m.config.HighScore)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.watcher != nil {
		cmds = append(cmds, waitForReload(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The game scales the world to the screen, so a resize keeps the run.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case reloadMsg:
		return m.handleReload(string(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "b", "esc":
		// Back to menu only from the pause or game-over screens.
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, nil
		}
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	for _, ev := range result.Events {
		m.logger.Debug("game event", "level", m.game.ID(), "event", ev.Kind, "value", ev.Value)
	}

	if wasOver && !m.gameState.GameOver {
		m.scoreSaved = false
		m.logger.Debug("run restarted", "level", m.game.ID())
	}
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore records a finished run. Failures are logged; the game goes on.
func (m *GameModel) saveScore() {
	score := m.gameState.Score
	m.logger.Info("run ended", "level", m.game.ID(), "score", score, "best", m.gameState.HighScore)
	if m.store == nil {
		return
	}
	beat, err := m.store.RecordRun(m.game.ID(), score)
	if err != nil {
		m.logger.Warn("could not save run", "level", m.game.ID(), "error", err)
	} else if beat {
		m.logger.Info("new best score", "level", m.game.ID(), "score", score)
	}
}

// handleReload re-reads a changed level file and swaps it into the game.
func (m GameModel) handleReload(path string) (tea.Model, tea.Cmd) {
	next := waitForReload(m.watcher)

	cfg, err := config.LoadLevelFile(path)
	if err != nil {
		m.logger.Warn("level reload failed", "path", path, "error", err)
		return m, next
	}
	rc, ok := m.game.(Reconfigurable)
	if !ok {
		return m, next
	}
	rc.Reconfigure(cfg)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.logger.Info("level reloaded", "level", m.game.ID(), "path", path)
	return m, next
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".nibolas", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// playModel runs a single level outside the menu: going back ends the program.
type playModel struct {
	GameModel
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.GameModel.Update(msg)
	m.GameModel = next.(GameModel)
	if m.backToMenu {
		return m, tea.Quit
	}
	return m, cmd
}

// Run plays one level until the user quits. watcher may be nil.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, watcher *config.Watcher) error {
	model := NewGameModel(game, store, cfg, logger).WithWatcher(watcher)

	p := tea.NewProgram(
		playModel{model},
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
