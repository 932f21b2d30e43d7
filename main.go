package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/twipi/tictactoe/config"
	"github.com/twipi/tictactoe/console"
	"github.com/twipi/tictactoe/game"
	"github.com/twipi/tictactoe/session"
	"golang.org/x/sync/errgroup"
)

var (
	configPath = ""
	mode       = "computer"
	first      = "human"
	humanMark  = "X"
	theme      = "ascii"
	noClear    = false
	logLevel   = "warn"
	logFormat  = "text"
)

func init() {
	pflag.StringVarP(&configPath, "config", "c", configPath, "path to a YAML config file")
	pflag.StringVarP(&mode, "mode", "m", mode, `opponent: "computer" or "human"`)
	pflag.StringVarP(&first, "first", "f", first, `who opens against the computer: "human" or "computer"`)
	pflag.StringVar(&humanMark, "mark", humanMark, `mark of the (first) human player: "X" or "O"`)
	pflag.StringVar(&theme, "theme", theme, `board glyphs: "ascii" or "unicode"`)
	pflag.BoolVar(&noClear, "no-clear", noClear, "do not clear the terminal between turns")
	pflag.StringVar(&logLevel, "log-level", logLevel, "log level: debug, info, warn or error")
	pflag.StringVar(&logFormat, "log-format", logFormat, `log format: "text" or "json"`)
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	pflag.Parse()

	conf, level, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := initLogger(conf, level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := start(ctx, logger, conf)
	cancel()

	os.Exit(code)
}

// loadConfig reads the config file and environment, then applies any flag
// given on the command line.
func loadConfig() (*config.Config, slog.Level, error) {
	conf := config.MustLoad(configPath)

	overrides := []struct {
		flag  string
		value string
		field *string
	}{
		{"mode", mode, &conf.Game.Mode},
		{"first", first, &conf.Game.First},
		{"mark", humanMark, &conf.Game.HumanMark},
		{"theme", theme, &conf.Display.Theme},
		{"log-level", logLevel, &conf.LogLevel},
		{"log-format", logFormat, &conf.LogFormat},
	}
	for _, o := range overrides {
		if pflag.CommandLine.Changed(o.flag) {
			*o.field = o.value
		}
	}
	if pflag.CommandLine.Changed("no-clear") {
		conf.Display.NoClear = noClear
	}

	if err := conf.Validate(); err != nil {
		return nil, 0, err
	}

	level, err := conf.Level()
	if err != nil {
		return nil, 0, err
	}
	return conf, level, nil
}

// initLogger logs to stderr; stdout belongs to the board.
func initLogger(conf *config.Config, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	if conf.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func start(ctx context.Context, logger *slog.Logger, conf *config.Config) int {
	glyphs, err := console.ThemeByName(conf.Display.Theme)
	if err != nil {
		logger.Error("invalid theme", "err", err)
		return 2
	}

	mark, err := game.ParseMark(conf.Game.HumanMark)
	if err != nil {
		logger.Error("invalid human mark", "err", err)
		return 2
	}

	con := console.New(os.Stdin, os.Stdout, console.Options{
		Theme:       glyphs,
		ClearScreen: !conf.Display.NoClear,
	})

	p1, p2, err := session.Lineup(session.Mode(conf.Game.Mode), mark, conf.Game.First == "computer", con)
	if err != nil {
		logger.Error("invalid players", "err", err)
		return 2
	}

	s, err := session.New(logger.With("component", "session"), game.NewGame(), con, p1, p2)
	if err != nil {
		logger.Error("failed to create session", "err", err)
		return 1
	}

	logger.Debug(
		"starting new game",
		"session_id", s.ID.String(),
		"mode", conf.Game.Mode,
		"first", p1.Name())

	parent := ctx
	errg, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	errg.Go(func() error {
		defer close(done)

		outcome, err := s.Run(ctx)
		if err != nil {
			return err
		}

		logger.Info(
			"session finished",
			"session_id", s.ID.String(),
			"outcome", outcome.String())
		return nil
	})

	errg.Go(func() error {
		return awaitAbort(parent, done, con)
	})

	if err := errg.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, console.ErrInputClosed) {
			logger.Info(
				"session aborted",
				"err", err)
			return 0
		}

		logger.Error(
			"session error",
			"err", err)
		return 1
	}

	return 0
}

// awaitAbort waits for the session to finish or for parent to be cancelled.
// Only a cancelled parent counts as an abort; a session that ends on its own,
// even with an error, does not.
func awaitAbort(parent context.Context, done <-chan struct{}, r session.Renderer) error {
	select {
	case <-done:
	case <-parent.Done():
	}

	if err := parent.Err(); err != nil {
		r.Notify("Game aborted.")
		return err
	}
	return nil
}
