package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds settings that can be supplied through the environment.
// They become the defaults of the matching command-line flags.
type Env struct {
	DBPath   string        `env:"SNAKE_DB"        envDefault:"~/.snake/scores.db"`
	Player   string        `env:"SNAKE_PLAYER"`
	Variant  string        `env:"SNAKE_VARIANT"   envDefault:"modern"`
	Speed    string        `env:"SNAKE_SPEED"`
	Tick     time.Duration `env:"SNAKE_TICK"`
	LogLevel string        `env:"SNAKE_LOG_LEVEL" envDefault:"info"`
	LogFile  string        `env:"SNAKE_LOG_FILE"`
	SSHAddr  string        `env:"SNAKE_SSH_ADDR"  envDefault:":23234"`
}

// LoadEnv parses the process environment.
// The player name falls back to $USER, then to "player".
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	if e.Player == "" {
		e.Player = os.Getenv("USER")
	}
	if e.Player == "" {
		e.Player = "player"
	}
	return e, nil
}
