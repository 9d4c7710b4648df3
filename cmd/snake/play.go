package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a rule variant",
	Long: `Start playing the given rule variant (default: $SNAKE_VARIANT or modern).

Controls:
  Arrows/WASD/hjkl  - Steer
  P                 - Pause (modern)
  Space/R           - Restart after game over
  Esc/B             - Leave a paused or finished game
  ?                 - Show all keys
  Q/Ctrl+C          - Quit

Speed presets:
  slow    - 150ms per move
  normal  - 100ms per move
  fast    - 60ms per move
  ramp    - Speeds up with every apple

Examples:
  snake play
  snake play classic
  snake play modern --speed ramp
  snake play classic --config ./big-board.yaml
  snake play --seed 42 --tick 80ms`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	variant := env.Variant
	if len(args) == 1 {
		variant = args[0]
	}
	if err := checkVariant(variant); err != nil {
		return err
	}
	if err := configureGames(variant); err != nil {
		return err
	}

	game, err := registry.Create(variant)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	s.logger.Info("starting game", "variant", variant, "player", flagPlayer)
	if _, err := tui.Run(game, s.options(), runtimeConfig()); err != nil {
		s.logger.Error("game failed", "err", err)
		return err
	}
	return nil
}
