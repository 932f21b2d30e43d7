package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults without a file", func(t *testing.T) {
		// When: loading from the environment only
		config, err := Load("")

		// Then: defaults are applied and valid
		require.NoError(t, err)
		assert.Equal(t, "warn", config.LogLevel)
		assert.Equal(t, "text", config.LogFormat)
		assert.Equal(t, "computer", config.Game.Mode)
		assert.Equal(t, "human", config.Game.First)
		assert.Equal(t, "X", config.Game.HumanMark)
		assert.False(t, config.Display.NoClear)
		assert.Equal(t, "ascii", config.Display.Theme)
		assert.NoError(t, config.Validate())
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		t.Setenv("TTT_MODE", "human")
		t.Setenv("TTT_THEME", "unicode")

		config, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "human", config.Game.Mode)
		assert.Equal(t, "unicode", config.Display.Theme)
	})

	t.Run("Reads a YAML file", func(t *testing.T) {
		// Given: a config file
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(""+
			"log-level: debug\n"+
			"game:\n"+
			"  first: computer\n"+
			"  human-mark: O\n"+
			"display:\n"+
			"  no-clear: true\n"), 0o600))

		// When: loading it
		config, err := Load(path)

		// Then: file values win and the rest fall back to defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, "computer", config.Game.First)
		assert.Equal(t, "O", config.Game.HumanMark)
		assert.True(t, config.Display.NoClear)
		assert.Equal(t, "computer", config.Game.Mode)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
	})
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LogLevel:  "info",
			LogFormat: "json",
			Game:      Game{Mode: "human", First: "computer", HumanMark: "o"},
			Display:   Display{Theme: "unicode"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := map[string]func(*Config){
		"log level":  func(c *Config) { c.LogLevel = "trace" },
		"log format": func(c *Config) { c.LogFormat = "xml" },
		"mode":       func(c *Config) { c.Game.Mode = "online" },
		"first":      func(c *Config) { c.Game.First = "random" },
		"human mark": func(c *Config) { c.Game.HumanMark = "N" },
		"theme":      func(c *Config) { c.Display.Theme = "emoji" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			config := valid()
			mutate(config)
			assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfig_Level(t *testing.T) {
	config := &Config{LogLevel: "debug"}
	level, err := config.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}
