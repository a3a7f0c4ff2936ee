package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"seed": 1234,
		"window": { "width": 800 },
		"game": { "maxEnemies": 4, "powerUpInterval": "5s" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, int64(1234), s.Seed)
	assert.Equal(t, 800, s.Window.Width)
	assert.Equal(t, 720, s.Window.Height)
	assert.Equal(t, 4, s.Game.MaxEnemies)
	assert.Equal(t, 5*time.Second, s.Game.PowerUpInterval)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{}`), 0644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "", s.LogFile)
	assert.Equal(t, int64(0), s.Seed)
	assert.Equal(t, 1, s.StartLevel)
	assert.Equal(t, "Tank Arena", s.Window.Title)
	assert.Equal(t, 1280, s.Window.Width)
	assert.Equal(t, true, s.Audio.Enabled)
	assert.Equal(t, 60, s.Game.TickRate)
	assert.Equal(t, 25.0, s.Game.ArenaExtent)
	assert.Equal(t, 8, s.Game.MaxEnemies)
	assert.Equal(t, 100, s.Game.KillReward)
	assert.Equal(t, 15*time.Second, s.Game.PowerUpInterval)
	assert.Equal(t, 64, s.Game.CommandBuffer)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	s, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, 5, s.Game.MaxPowerUps)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"logLevel": `), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("TANKS_GAME_KILLREWARD", "250")
	t.Setenv("TANKS_LOGLEVEL", "warn")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 250, s.Game.KillReward)
	assert.Equal(t, "warn", s.LogLevel)
}

func TestLoad_StartLevelClamped(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("startLevel", -3)

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, s.StartLevel)
}

func TestGameConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	s, err := Load("")
	require.NoError(t, err)
	s.Game.TickRate = 30
	s.Game.MaxEnemies = 3

	cfg := s.GameConfig()
	assert.Equal(t, time.Second/30, cfg.Step)
	assert.Equal(t, 3, cfg.MaxEnemies)
	assert.Equal(t, 2.0, cfg.HitRadius)
	assert.Equal(t, 15*time.Second, cfg.PowerUpInterval)
}

func TestNewSessionLog(t *testing.T) {
	t.Cleanup(viper.Reset)
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20000, s.EventHistory)

	s.EventHistory = 4
	sl := s.NewSessionLog()
	for i := 0; i < 9; i++ {
		sl.Add(game.Event{Tick: i})
	}
	assert.LessOrEqual(t, len(sl.Entries()), 4)
	assert.Equal(t, 8, sl.Entries()[len(sl.Entries())-1].Tick)

	s.EventHistory = 0
	sl = s.NewSessionLog()
	for i := 0; i < 9; i++ {
		sl.Add(game.Event{Tick: i})
	}
	assert.Len(t, sl.Entries(), 9)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "warn", true)

	log.Info().Msg("hidden")
	log.Warn().Str("level_name", "x").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestSetupLogger_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := SetupLogger(Settings{LogLevel: "info"}, &buf)
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	log.Info().Msg("to console")
	assert.Contains(t, buf.String(), "to console")
}

func TestSetupLogger_NoOutputIsDisabled(t *testing.T) {
	log, closer, err := SetupLogger(Settings{LogLevel: "debug"}, nil)
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}

func TestSetupLogger_FileAndConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tanks.log")
	var buf bytes.Buffer

	log, closer, err := SetupLogger(Settings{LogLevel: "info", LogFile: path}, &buf)
	require.NoError(t, err)
	log.Info().Msg("both places")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "both places")
	assert.Contains(t, buf.String(), "both places")
}

func TestSetupLogger_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "tanks.log")
	_, _, err := SetupLogger(Settings{LogFile: path}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error opening log file")
}
