// Package config loads game settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the full set of settings for one run.
type Config struct {
	LogLevel  string  `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"warn"`
	LogFormat string  `yaml:"log-format" env:"TTT_LOG_FORMAT" env-default:"text"`
	Game      Game    `yaml:"game"`
	Display   Display `yaml:"display"`
}

// Game selects the opponent ("computer" or "human"), who opens against the
// computer ("human" or "computer") and the mark of the human.
type Game struct {
	Mode      string `yaml:"mode" env:"TTT_MODE" env-default:"computer"`
	First     string `yaml:"first" env:"TTT_FIRST" env-default:"human"`
	HumanMark string `yaml:"human-mark" env:"TTT_HUMAN_MARK" env-default:"X"`
}

// Display controls how the board is drawn.
type Display struct {
	// NoClear keeps the terminal contents between turns.
	NoClear bool   `yaml:"no-clear" env:"TTT_NO_CLEAR"`
	Theme   string `yaml:"theme" env:"TTT_THEME" env-default:"ascii"`
}

// Load reads the YAML file at path, if any, then applies the environment.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	return config, nil
}

// MustLoad - like Load, but panics on error.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

// Validate checks the enumerated fields.
func (that *Config) Validate() error {
	if _, err := that.Level(); err != nil {
		return err
	}

	checks := []struct {
		field, value string
		allowed      []string
	}{
		{"log-format", that.LogFormat, []string{"text", "json"}},
		{"game.mode", that.Game.Mode, []string{"computer", "human"}},
		{"game.first", that.Game.First, []string{"human", "computer"}},
		{"game.human-mark", that.Game.HumanMark, []string{"X", "O", "x", "o"}},
		{"display.theme", that.Display.Theme, []string{"ascii", "unicode"}},
	}
	for _, c := range checks {
		if !slices.Contains(c.allowed, c.value) {
			return fmt.Errorf("%w: %s must be one of %v, got %q", ErrInvalidConfig, c.field, c.allowed, c.value)
		}
	}

	return nil
}

// Level returns the slog level named by LogLevel.
func (that *Config) Level() (slog.Level, error) {
	switch that.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, that.LogLevel)
	}
}
