package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant and Tab to
view the high scores. Leaving a paused or finished game with Esc returns
to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - High scores
  Q            - Quit

Examples:
  snake menu
  snake menu --player ann
  snake menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := configureGames(allVariants()...); err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	s.logger.Info("starting menu", "player", flagPlayer)
	if err := tui.RunSession(s.options(), runtimeConfig()); err != nil {
		s.logger.Error("menu failed", "err", err)
		return err
	}
	return nil
}
