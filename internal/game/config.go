package game

import "time"

// Config holds the session tuning values. Zero values are replaced by the
// defaults in DefaultConfig when a session is created.
type Config struct {
	// Step is the simulation time that passes per tick. Cooldowns and boost
	// expiry are measured on this clock.
	Step time.Duration

	// ArenaExtent is the half-size of the ground square; the player cannot
	// leave it.
	ArenaExtent float64

	// PatrolExtent is the half-size of the square used for patrol points,
	// obstacles and power-up spawns.
	PatrolExtent float64

	// SpawnRadiusMin and SpawnRadiusMax bound the enemy spawn ring around
	// the player.
	SpawnRadiusMin float64
	SpawnRadiusMax float64

	// MaxEnemies caps the per-level enemy count.
	MaxEnemies int

	// KillReward is the score granted per destroyed enemy.
	KillReward int

	// CollisionMargin is the tank collision radius; tanks are pushed apart
	// when closer than twice this.
	CollisionMargin float64

	// HitRadius is the shell-to-tank contact distance.
	HitRadius float64

	// PickupRadius is the tank-to-power-up contact distance.
	PickupRadius float64

	// PowerUpInterval is the simulation time between power-up spawns.
	PowerUpInterval time.Duration

	// MaxPowerUps caps how many uncollected power-ups can lie in the arena.
	MaxPowerUps int

	// CommandBuffer is the capacity of the input command channel.
	CommandBuffer int
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		Step:            time.Second / 60,
		ArenaExtent:     25,
		PatrolExtent:    20,
		SpawnRadiusMin:  8,
		SpawnRadiusMax:  16,
		MaxEnemies:      defaultMaxEnemy,
		KillReward:      100,
		CollisionMargin: 1.5,
		HitRadius:       2,
		PickupRadius:    2,
		PowerUpInterval: 15 * time.Second,
		MaxPowerUps:     5,
		CommandBuffer:   64,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Step <= 0 {
		c.Step = d.Step
	}
	if c.ArenaExtent <= 0 {
		c.ArenaExtent = d.ArenaExtent
	}
	if c.PatrolExtent <= 0 {
		c.PatrolExtent = d.PatrolExtent
	}
	if c.SpawnRadiusMin <= 0 {
		c.SpawnRadiusMin = d.SpawnRadiusMin
	}
	if c.SpawnRadiusMax <= 0 {
		c.SpawnRadiusMax = d.SpawnRadiusMax
	}
	if c.MaxEnemies <= 0 {
		c.MaxEnemies = d.MaxEnemies
	}
	if c.KillReward <= 0 {
		c.KillReward = d.KillReward
	}
	if c.CollisionMargin <= 0 {
		c.CollisionMargin = d.CollisionMargin
	}
	if c.HitRadius <= 0 {
		c.HitRadius = d.HitRadius
	}
	if c.PickupRadius <= 0 {
		c.PickupRadius = d.PickupRadius
	}
	if c.PowerUpInterval <= 0 {
		c.PowerUpInterval = d.PowerUpInterval
	}
	if c.MaxPowerUps <= 0 {
		c.MaxPowerUps = d.MaxPowerUps
	}
	if c.CommandBuffer <= 0 {
		c.CommandBuffer = d.CommandBuffer
	}
	return c
}

// TankSeparation is the centre distance below which two tanks are pushed apart.
func (c Config) TankSeparation() float64 {
	return 2 * c.CollisionMargin
}
