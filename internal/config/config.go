package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/spf13/viper"
)

// FileName is the optional settings file looked up in the config directory.
const FileName = "tanks.cfg.json"

// EnvPrefix prefixes environment overrides, e.g. TANKS_GAME_MAXENEMIES.
const EnvPrefix = "TANKS"

// Settings is the full runtime configuration.
type Settings struct {
	LogLevel   string `json:"logLevel" mapstructure:"logLevel"`
	LogFile    string `json:"logFile" mapstructure:"logFile"`
	Seed       int64  `json:"seed" mapstructure:"seed"`
	StartLevel int    `json:"startLevel" mapstructure:"startLevel"`
	// EventHistory caps the session event log kept by the interactive
	// frontends.
	EventHistory int            `json:"eventHistory" mapstructure:"eventHistory"`
	Window       WindowSettings `json:"window" mapstructure:"window"`
	Audio        AudioSettings  `json:"audio" mapstructure:"audio"`
	Game         GameSettings   `json:"game" mapstructure:"game"`
}

// WindowSettings configures the desktop frontend.
type WindowSettings struct {
	Title  string `json:"title" mapstructure:"title"`
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
}

// AudioSettings configures sound cues. Volume is in beep's base-2 scale:
// 0 is unchanged, -1 is half.
type AudioSettings struct {
	Enabled bool    `json:"enabled" mapstructure:"enabled"`
	Volume  float64 `json:"volume" mapstructure:"volume"`
}

// GameSettings are the simulation tuning overrides.
type GameSettings struct {
	TickRate        int           `json:"tickRate" mapstructure:"tickRate"`
	ArenaExtent     float64       `json:"arenaExtent" mapstructure:"arenaExtent"`
	PatrolExtent    float64       `json:"patrolExtent" mapstructure:"patrolExtent"`
	SpawnRadiusMin  float64       `json:"spawnRadiusMin" mapstructure:"spawnRadiusMin"`
	SpawnRadiusMax  float64       `json:"spawnRadiusMax" mapstructure:"spawnRadiusMax"`
	MaxEnemies      int           `json:"maxEnemies" mapstructure:"maxEnemies"`
	KillReward      int           `json:"killReward" mapstructure:"killReward"`
	CollisionMargin float64       `json:"collisionMargin" mapstructure:"collisionMargin"`
	HitRadius       float64       `json:"hitRadius" mapstructure:"hitRadius"`
	PickupRadius    float64       `json:"pickupRadius" mapstructure:"pickupRadius"`
	PowerUpInterval time.Duration `json:"powerUpInterval" mapstructure:"powerUpInterval"`
	MaxPowerUps     int           `json:"maxPowerUps" mapstructure:"maxPowerUps"`
	CommandBuffer   int           `json:"commandBuffer" mapstructure:"commandBuffer"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")
	viper.SetDefault("seed", 0)
	viper.SetDefault("startLevel", 1)
	viper.SetDefault("eventHistory", 20000)

	viper.SetDefault("window.title", "Tank Arena")
	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)

	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.volume", 0.0)

	d := game.DefaultConfig()
	viper.SetDefault("game.tickRate", int(time.Second/d.Step))
	viper.SetDefault("game.arenaExtent", d.ArenaExtent)
	viper.SetDefault("game.patrolExtent", d.PatrolExtent)
	viper.SetDefault("game.spawnRadiusMin", d.SpawnRadiusMin)
	viper.SetDefault("game.spawnRadiusMax", d.SpawnRadiusMax)
	viper.SetDefault("game.maxEnemies", d.MaxEnemies)
	viper.SetDefault("game.killReward", d.KillReward)
	viper.SetDefault("game.collisionMargin", d.CollisionMargin)
	viper.SetDefault("game.hitRadius", d.HitRadius)
	viper.SetDefault("game.pickupRadius", d.PickupRadius)
	viper.SetDefault("game.powerUpInterval", d.PowerUpInterval.String())
	viper.SetDefault("game.maxPowerUps", d.MaxPowerUps)
	viper.SetDefault("game.commandBuffer", d.CommandBuffer)
}

// Load sets default values, reads the optional settings file from
// configDir and applies TANKS_* environment overrides. A missing file is not
// an error; an unreadable or malformed one is. An empty configDir skips the
// file entirely.
func Load(configDir string) (Settings, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configDir != "" {
		viper.SetConfigName(FileName)
		viper.AddConfigPath(configDir)
		viper.SetConfigType("json")

		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if s.StartLevel < 1 {
		s.StartLevel = 1
	}
	return s, nil
}

// GameConfig converts the tuning overrides to a session config. Zero or
// negative values fall back to the session defaults.
func (s Settings) GameConfig() game.Config {
	g := s.Game
	cfg := game.Config{
		ArenaExtent:     g.ArenaExtent,
		PatrolExtent:    g.PatrolExtent,
		SpawnRadiusMin:  g.SpawnRadiusMin,
		SpawnRadiusMax:  g.SpawnRadiusMax,
		MaxEnemies:      g.MaxEnemies,
		KillReward:      g.KillReward,
		CollisionMargin: g.CollisionMargin,
		HitRadius:       g.HitRadius,
		PickupRadius:    g.PickupRadius,
		PowerUpInterval: g.PowerUpInterval,
		MaxPowerUps:     g.MaxPowerUps,
		CommandBuffer:   g.CommandBuffer,
	}
	if g.TickRate > 0 {
		cfg.Step = time.Second / time.Duration(g.TickRate)
	}
	return cfg
}

// NewSessionLog returns the event log for an interactive session, bounded to
// EventHistory entries. Zero or negative keeps everything.
func (s Settings) NewSessionLog() *game.SimLog {
	if s.EventHistory <= 0 {
		return game.NewSimLog(false)
	}
	return game.NewBoundedSimLog(false, s.EventHistory)
}
