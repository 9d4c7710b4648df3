package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// session bundles what every interactive command opens and must close.
type session struct {
	logger  *log.Logger
	store   *storage.Store
	logFile *os.File
}

// newLogger builds the leveled logger writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	}), nil
}

// openSession sets up logging and storage for an interactive command.
// Logs go to --log-file, or nowhere, so they never draw over the game.
func openSession() (*session, error) {
	s := &session{}

	var w io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.logFile = f
		w = f
	}

	logger, err := newLogger(w, "snake")
	if err != nil {
		s.Close()
		return nil, err
	}
	s.logger = logger
	s.store = openStore(logger)

	return s, nil
}

// openStore opens the score database. Play continues without it on failure.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// Close releases the store and the log file.
func (s *session) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil && s.logger != nil {
			s.logger.Warn("closing scores database", "err", err)
		}
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// options returns the platform options for a local player.
func (s *session) options() tui.Options {
	return tui.Options{
		Store:  s.store,
		Logger: s.logger,
		Player: flagPlayer,
	}
}

// configureGames validates the rules for the given variants and hands the
// command-line overrides to the game package.
func configureGames(variants ...string) error {
	speed := config.SpeedPreset(strings.ToLower(flagSpeed))
	switch speed {
	case "", config.SpeedSlow, config.SpeedNormal, config.SpeedFast, config.SpeedRamp:
	default:
		return fmt.Errorf("unknown speed preset %q (want slow, normal, fast or ramp)", flagSpeed)
	}
	if flagTick < 0 || (flagTick > 0 && flagTick.Milliseconds() < config.MinTickMillis) {
		return fmt.Errorf("--tick must be at least %dms", config.MinTickMillis)
	}

	for _, v := range variants {
		if _, err := config.Load(v, flagConfig); err != nil {
			return err
		}
	}

	snake.SetOptions(snake.Options{
		ConfigPath: flagConfig,
		Speed:      speed,
		Tick:       flagTick,
	})
	return nil
}

// allVariants returns the IDs of every registered variant.
func allVariants() []string {
	games := registry.List()
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	return ids
}

// checkVariant reports an unknown variant the way every command does.
func checkVariant(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown variant %q, run 'snake list' to see available variants", id)
	}
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	if flagTick > 0 {
		cfg.TickInterval = flagTick
	}
	return cfg
}
