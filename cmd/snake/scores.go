package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for a variant, or for every variant
when none is given.

Examples:
  snake scores
  snake scores classic
  snake scores -i
  snake scores modern --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a full-screen table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the variant's scores")
}

func runScores(_ *cobra.Command, args []string) error {
	variants := allVariants()
	if len(args) == 1 {
		if err := checkVariant(args[0]); err != nil {
			return err
		}
		variants = args[:1]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if len(args) == 0 {
			return fmt.Errorf("--clear needs a variant")
		}
		if err := store.ClearScores(args[0]); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", registry.Title(args[0]))
		return nil
	}

	if flagInteractive {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, variants[0], cfg.ScreenW, cfg.ScreenH)
		return err
	}

	for i, v := range variants {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, v); err != nil {
			return err
		}
	}
	return nil
}

// printScores writes one variant's table to stdout.
func printScores(store *storage.Store, variant string) error {
	scores, err := store.TopScores(variant, storage.MaxEntries)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", registry.Title(variant))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'snake play %s' to set the first high score!\n", variant)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %s\n", "----", "------", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-6d  %s\n", i+1, entry.Player, entry.Score, dateStr)
	}

	stats, err := store.Stats(variant)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Average: %.1f  Last played: %s\n",
		stats.HighScore, stats.AvgScore, stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	return nil
}
