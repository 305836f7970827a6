// nibolas is Little Nibolas, an endless side-scroller for the terminal.
//
// Usage:
//
//	nibolas list               - List available levels
//	nibolas play <level>       - Play a level
//	nibolas menu               - Pick levels interactively
//	nibolas serve              - Start SSH server for remote play
//	nibolas scores <level>     - Show high scores for a level
//	nibolas export <level>     - Write a level's YAML for editing
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.nibolas/nibolas.db)
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/nibolas/internal/config"
	"github.com/vovakirdan/nibolas/internal/storage"

	// Import levels to register them
	_ "github.com/vovakirdan/nibolas/internal/games/nibolas"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagDifficulty string
	flagLogLevel   string
)

// logPath is where terminal sessions log; stderr belongs to the game screen.
const logPath = "~/.nibolas/nibolas.log"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nibolas",
	Short: "Little Nibolas - an endless side-scroller in your terminal",
	Long: `Little Nibolas is an endless side-scroller. Nibolas flies in place
while meteors, towers and stars scroll past. Dodge the hazards, grab the
pickups, and watch out when the world goes EXTREME.

Available commands:
  list     - Show all available levels
  play     - Play a specific level directly
  menu     - Interactive level picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  export   - Write a level's YAML for editing

Examples:
  nibolas list
  nibolas play meteors
  nibolas play towers --window
  nibolas menu --difficulty hard
  nibolas serve --ssh :2222
  nibolas scores skyline`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(exportCmd)
}

// newLogger builds the logger for a command. Terminal play logs to a file so
// it does not draw over the game; close flushes that file.
func newLogger(prefix string, toFile bool) (logger *log.Logger, closeFn func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}

	closeFn = func() {}
	out := os.Stderr
	if toFile {
		if f, openErr := openLogFile(); openErr == nil {
			out = f
			closeFn = func() { f.Close() }
		} else {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", openErr)
		}
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn
}

func openLogFile() (*os.File, error) {
	path, err := storage.ExpandPath(logPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// parseDifficulty validates the --difficulty flag or exits.
func parseDifficulty() config.DifficultyPreset {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return preset
}

// openStore opens the scores database. Play continues without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
