package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rule variants",
	Long:  `Shows every rule variant with its default board and rules.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Rules")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, describeRules(config.Default(g.ID)))
	}

	fmt.Println()
	fmt.Println("Run 'snake play <id>' to play a variant.")
}

// describeRules summarizes a rule set in one line.
func describeRules(cfg config.SnakeConfig) string {
	edges := "walls kill"
	if cfg.Rules.Wrap {
		edges = "edges wrap"
	}
	s := fmt.Sprintf("%dx%d board, %s", cfg.Board.Width, cfg.Board.Height, edges)
	if cfg.Rules.Pause {
		s += ", pause"
	}
	if cfg.Rules.TongueProximity > 0 {
		s += ", tongue"
	}
	return s
}
