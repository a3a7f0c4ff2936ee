package main

import (
	"flag"
	"log"
	"os"

	"github.com/Garsondee/Tank-Arena/internal/audio"
	"github.com/Garsondee/Tank-Arena/internal/config"
	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/Garsondee/Tank-Arena/internal/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configDir := flag.String("config", ".", "directory holding "+config.FileName)
	autopilot := flag.Bool("autopilot", false, "start with the autopilot driving")
	flag.Parse()

	settings, err := config.Load(*configDir)
	if err != nil {
		log.Fatal(err)
	}
	logger, closer, err := config.SetupLogger(settings, os.Stderr)
	if err != nil {
		log.Fatal(err)
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
	logger.Info().Str("session", session.ID()).Int("level", session.Level()).Msg("session started")

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

	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebitenTPS(settings))

	g := ui.New(session, ui.Options{
		Width:     settings.Window.Width,
		Height:    settings.Window.Height,
		Sound:     sound,
		Log:       logger,
		Autopilot: *autopilot,
	})
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// ebitenTPS runs one simulation step per ebiten update.
func ebitenTPS(s config.Settings) int {
	if s.Game.TickRate > 0 {
		return s.Game.TickRate
	}
	return ebiten.DefaultTPS
}
