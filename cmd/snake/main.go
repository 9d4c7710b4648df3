// snake is a terminal Snake game with classic and modern rule variants.
//
// Usage:
//
//	snake list               - List rule variants
//	snake play [variant]     - Play a variant (default: modern)
//	snake menu               - Pick a variant interactively
//	snake scores [variant]   - Show the high-score table
//	snake serve              - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default: ~/.snake/scores.db)
//	--tick <duration>   - Override the tick interval (e.g. 80ms)
//	--player <name>     - Name stored with high scores
//	--config <path>     - Custom rules YAML
//	--speed <preset>    - slow, normal, fast or ramp
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	// Import the game to register its variants
	_ "github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagTick     time.Duration
	flagPlayer   string
	flagConfig   string
	flagSpeed    string
	flagLogLevel string
	flagLogFile  string
)

// env holds the SNAKE_* variables used as flag defaults.
var env, envErr = config.LoadEnv()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the arcade classic in your terminal",
	Long: `Snake is the arcade classic played in the terminal.

Two rule variants are available:
  classic  - Walls are deadly, no pause
  modern   - Edges wrap around, P pauses, the snake sticks out its
             tongue when an apple is close ahead

Available commands:
  list     - Show the rule variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  scores   - View high scores
  serve    - Start SSH server for remote play

Environment:
  SNAKE_DB, SNAKE_PLAYER, SNAKE_VARIANT, SNAKE_SPEED, SNAKE_TICK,
  SNAKE_LOG_LEVEL, SNAKE_LOG_FILE and SNAKE_SSH_ADDR set flag defaults.

Examples:
  snake play
  snake play classic --speed fast
  snake menu --player ann
  snake serve --ssh :2222
  snake scores modern`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if envErr != nil {
			return envErr
		}
		return nil
	},
}

func init() {
	// Global persistent flags, defaulting to the environment
	flags := rootCmd.PersistentFlags()
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", env.DBPath, "Path to scores database")
	flags.DurationVar(&flagTick, "tick", env.Tick, "Tick interval override, e.g. 80ms (0 = from rules)")
	flags.StringVar(&flagPlayer, "player", env.Player, "Player name stored with high scores")
	flags.StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	flags.StringVar(&flagSpeed, "speed", env.Speed, "Speed preset: slow, normal, fast, ramp")
	flags.StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")
	flags.StringVar(&flagLogFile, "log-file", env.LogFile, "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
