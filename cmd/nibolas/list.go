package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nibolas/internal/config"
	"github.com/vovakirdan/nibolas/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long: `Shows every registered level and where its configuration comes from:
a file under ~/.nibolas/levels or ./levels, or the built-in default.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	levels := registry.List()

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxTitleLen = max(maxTitleLen, len(l.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Source")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------")

	for _, l := range levels {
		source := config.ResolvePath(l.ID, "")
		if source == "" {
			source = "built-in"
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, l.ID, maxTitleLen, l.Title, source)
	}

	fmt.Println()
	fmt.Println("Run 'nibolas play <id>' to play a level.")
}
