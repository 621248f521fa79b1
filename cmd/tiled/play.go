package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samdwyer/tiled/internal/game"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.close()

	session, err := loadSession(ctx, e)
	if err != nil {
		return err
	}
	defer session.Close()

	provider, err := loadAssets()
	if err != nil {
		return err
	}

	g, err := game.New(session, provider, game.Settings{
		FrameInterval:  e.cfg.FrameInterval(),
		KeyHold:        e.cfg.KeyHold,
		KeyRepeatDelay: e.cfg.KeyRepeatDelay,
	}, e.logger)
	if err != nil {
		return err
	}

	if err := g.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
