// Command shooter-term runs the shoot-'em-up in a terminal. Logs go to SHOOTER_LOG_FILE since
// the screen is taken.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/maskecs/game"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "shooter: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := game.LoadConfig()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return eris.Wrapf(err, "failed to open log file %s", cfg.LogFile)
	}
	defer logFile.Close()
	logger := zerolog.New(logFile).Level(cfg.Level()).With().Timestamp().Logger()

	screen, err := tcell.NewScreen()
	if err != nil {
		return eris.Wrap(err, "failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return eris.Wrap(err, "failed to initialize screen")
	}
	defer screen.Fini()
	screen.HideCursor()

	var audio game.Audio = game.NopAudio{}
	if !cfg.Mute {
		sp, err := NewSpeaker()
		if err != nil {
			logger.Warn().Err(err).Msg("audio unavailable, continuing muted")
		} else {
			defer sp.Close()
			audio = sp
		}
	}

	canvas := &game.Canvas{}
	g, err := game.New(cfg, canvas, audio, logger)
	if err != nil {
		return eris.Wrap(err, "failed to create game")
	}
	defer g.Close()

	term := NewTerminal(screen, canvas)
	go term.Listen()
	defer term.Stop()

	if !g.Start() {
		return eris.New("game did not start")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info().Int("tick_rate", cfg.TickRate).Msg("running")
	if err := g.Engine.Run(ctx, cfg.TickInterval(), term); err != nil {
		return eris.Wrap(err, "game loop failed")
	}
	logger.Info().Uint64("ticks", g.Engine.Ticks()).Msg("stopped")
	return nil
}
