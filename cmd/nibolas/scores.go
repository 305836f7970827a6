package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nibolas/internal/registry"
	"github.com/vovakirdan/nibolas/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show high scores for a level",
	Long: `Display the top 10 runs and run statistics for the specified level.

Examples:
  nibolas scores meteors
  nibolas scores towers --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs and the best score for the level")
}

func runScores(cmd *cobra.Command, args []string) {
	levelID := args[0]

	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'nibolas list' to see available levels.")
		os.Exit(1)
	}

	game, err := registry.Create(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'nibolas play %s' to set the first high score!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(levelID); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
	if stats, err := store.GetLevelStats(levelID); err == nil {
		fmt.Printf("Runs: %d  Avg: %.1f  Total: %d\n", stats.RunsCount, stats.AvgScore, stats.TotalScore)
	}
}
