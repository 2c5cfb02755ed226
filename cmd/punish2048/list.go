package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/punish2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	bold := color.New(color.Bold)
	id := color.New(color.FgYellow)

	bold.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	bold.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	for _, g := range games {
		id.Printf("  %-*s", maxIDLen, g.ID)
		fmt.Printf("  %s\n", g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'punish2048 play <id>' to play.")
}
