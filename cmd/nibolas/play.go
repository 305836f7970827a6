package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/nibolas/internal/config"
	"github.com/vovakirdan/nibolas/internal/core"
	"github.com/vovakirdan/nibolas/internal/games/nibolas"
	"github.com/vovakirdan/nibolas/internal/platform/tui"
	"github.com/vovakirdan/nibolas/internal/platform/window"
	"github.com/vovakirdan/nibolas/internal/registry"
)

var (
	flagConfig string
	flagWatch  bool
	flagWindow bool
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the specified level.

Controls:
  Space/W/Up - Fly up
  S/Down     - Dive
  P/Esc      - Pause
  R          - Restart (after game over)
  B          - Leave (when paused or after game over)
  Ctrl+S     - Save a text screenshot (terminal only)
  M          - Mute sounds (window only)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower lanes, EXTREME arrives later
  normal - Level as written
  hard   - Faster lanes, EXTREME arrives sooner
  fixed  - Level speed, never goes EXTREME

Examples:
  nibolas play meteors
  nibolas play towers --difficulty hard
  nibolas play skyline --window
  nibolas play meteors --config ./my-meteors.yaml --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom level YAML")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level file when it changes")
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Play in a desktop window instead of the terminal")
}

func runPlay(cmd *cobra.Command, args []string) {
	levelID := args[0]

	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'nibolas list' to see available levels.")
		os.Exit(1)
	}

	preset := parseDifficulty()

	// A broken custom file should fail here, not silently fall back.
	if flagConfig != "" {
		if _, err := config.LoadLevel(levelID, flagConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	nibolas.SetConfigPath(levelID, flagConfig)
	nibolas.SetDifficultyPreset(preset)

	logger, closeLog := newLogger("nibolas", !flagWindow)
	defer closeLog()

	cfg := core.RuntimeConfig{
		ScreenW:  window.DefaultWidth,
		ScreenH:  window.DefaultHeight,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if !flagWindow {
		cfg.ScreenW, cfg.ScreenH = 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			cfg.ScreenW = w
			cfg.ScreenH = h
		}
	}

	game := nibolas.New(levelID)

	watcher := startWatcher(game, logger)
	if watcher != nil {
		defer watcher.Close()
	}

	store := openStore(logger)

	var runErr error
	if flagWindow {
		runErr = window.Run(game, store, cfg, logger, watcher)
	} else {
		runErr = tui.Run(game, store, cfg, logger, watcher)
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running level: %v\n", runErr)
		os.Exit(1)
	}
}

// startWatcher watches the level file when --watch is set. Built-in levels
// have no file, so there is nothing to watch.
func startWatcher(game *nibolas.Game, logger *log.Logger) *config.Watcher {
	if !flagWatch {
		return nil
	}
	path := game.ConfigPath()
	if path == "" {
		fmt.Fprintf(os.Stderr, "Warning: %s uses the built-in level, nothing to watch (see 'nibolas export')\n", game.ID())
		return nil
	}
	w, err := config.NewWatcher(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return nil
	}
	logger.Info("watching level file", "path", path)
	return w
}
