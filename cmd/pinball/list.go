package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available tables",
	Long:  `Shows a list of all registered tables.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	tables := registry.List()

	if len(tables) == 0 {
		fmt.Println("No tables available.")
		return
	}

	fmt.Println("Available tables:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5
	for _, t := range tables {
		maxIDLen = max(maxIDLen, len(t.ID))
		maxTitleLen = max(maxTitleLen, len(t.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")

	for _, t := range tables {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, t.ID, maxTitleLen, t.Title, t.Description)
	}

	fmt.Println()
	fmt.Println("Run 'pinball play <id>' to play a table.")
}
