package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/nibolas/internal/core"
	"github.com/vovakirdan/nibolas/internal/games/nibolas"
	"github.com/vovakirdan/nibolas/internal/platform/tui"
	"github.com/vovakirdan/nibolas/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
Leave a paused or finished level with B to return to the menu.
The menu remembers the level you played last.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Scoreboard
  Q            - Quit

Examples:
  nibolas menu
  nibolas menu --fps 30
  nibolas menu --difficulty easy --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	nibolas.SetDifficultyPreset(parseDifficulty())

	logger, closeLog := newLogger("nibolas", true)
	defer closeLog()

	store := openStore(logger)

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.LevelID == "" {
			break
		}

		game, err := registry.Create(menuResult.LevelID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
			continue
		}

		// A fixed --seed replays the same layout every time; zero picks a
		// fresh one per run.
		cfg.Seed = flagSeed

		if err := tui.Run(game, store, cfg, logger, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error running level: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
