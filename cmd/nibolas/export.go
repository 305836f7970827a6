package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nibolas/internal/config"
)

var exportCmd = &cobra.Command{
	Use:   "export <level> [file]",
	Short: "Write a built-in level's YAML for editing",
	Long: `Write the built-in YAML of a level so it can be edited.

Without a file argument the YAML is written to ~/.nibolas/levels/<level>.yaml,
which 'nibolas play' picks up automatically. Use '-' to print it instead.

Examples:
  nibolas export meteors
  nibolas export towers ./towers.yaml
  nibolas export skyline -`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runExport,
}

func runExport(_ *cobra.Command, args []string) {
	levelID := args[0]

	data := config.GetDefaultYAML(levelID)
	if data == nil {
		fmt.Fprintf(os.Stderr, "Error: no built-in level %q\n", levelID)
		os.Exit(1)
	}

	var dest string
	if len(args) == 2 {
		dest = args[1]
	} else {
		paths := config.SearchPaths(levelID)
		dest = paths[0]
	}

	if dest == "-" {
		os.Stdout.Write(data)
		return
	}

	if _, err := os.Stat(dest); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists\n", dest)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", dest)
	fmt.Printf("Edit it and run 'nibolas play %s --watch' to see changes live.\n", levelID)
}
