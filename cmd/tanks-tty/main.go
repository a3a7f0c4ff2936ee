package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Garsondee/Tank-Arena/internal/audio"
	"github.com/Garsondee/Tank-Arena/internal/config"
	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/Garsondee/Tank-Arena/internal/tty"
	"github.com/gdamore/tcell/v2"
)

func main() {
	configDir := flag.String("config", ".", "directory holding "+config.FileName)
	autopilot := flag.Bool("autopilot", false, "start with the autopilot driving")
	flag.Parse()

	if err := run(*configDir, *autopilot); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir string, autopilot bool) error {
	settings, err := config.Load(configDir)
	if err != nil {
		return err
	}
	// The screen owns stdout, so logs only go to the configured file.
	logger, closer, err := config.SetupLogger(settings, nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithStartLevel(settings.StartLevel),
		game.WithSimLog(settings.NewSessionLog()),
	}
	if settings.Seed != 0 {
		opts = append(opts, game.WithSeed(settings.Seed))
	}
	session := game.NewSession(settings.GameConfig(), opts...)

	var sound *audio.SoundManager
	if settings.Audio.Enabled {
		sound = audio.NewSoundManager(settings.Audio.Volume, logger)
		if err := sound.Initialize(); err != nil {
			logger.Warn().Err(err).Msg("sound disabled")
			sound = nil
		} else {
			defer sound.Cleanup()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("session", session.ID()).Int("level", session.Level()).Msg("session started")
	err = tty.New(screen, session, tty.Options{
		Autopilot: autopilot,
		Sound:     sound,
		Log:       logger,
	}).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
