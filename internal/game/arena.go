package game

import (
	"math"
	"math/rand"
	"time"
)

const (
	maxTier          = 5
	baseEnemyCount   = 2
	baseObstacles    = 5
	obstaclesPerLvl  = 2
	obstacleHeight   = 1.0
	defaultMaxEnemy  = 8
	minSpawnDistance = 6.0
	spawnAttempts    = 16
)

// Tier is the enemy parameter set derived from a level number.
type Tier struct {
	Level          int
	DetectionRange float64
	AttackRange    float64
	Speed          float64
	Cooldown       time.Duration
	Damage         int
	MaxHealth      int
}

// tierWeapons holds cooldown, damage and health per tier (index 0 = tier 1).
var tierWeapons = [maxTier]struct {
	cooldown time.Duration
	damage   int
	health   int
}{
	{2000 * time.Millisecond, 80, 200},
	{1500 * time.Millisecond, 90, 250},
	{1000 * time.Millisecond, 100, 300},
	{800 * time.Millisecond, 110, 300},
	{600 * time.Millisecond, 120, 400},
}

// TierFor returns the deterministic difficulty tier for a level. Levels past
// the top tier reuse it; levels below 1 use tier 1.
func TierFor(level int) Tier {
	t := max(1, min(level, maxTier))
	w := tierWeapons[t-1]
	lvl := float64(t)
	return Tier{
		Level:          t,
		DetectionRange: 10 + lvl*2,
		AttackRange:    5 + lvl*1.5,
		Speed:          0.1 + lvl*0.02,
		Cooldown:       w.cooldown,
		Damage:         w.damage,
		MaxHealth:      w.health,
	}
}

// Arena is the static layout of one level.
type Arena struct {
	Level        int
	EnemyCount   int
	Tier         Tier
	Extent       float64 // half-size of the ground square
	PatrolExtent float64 // half-size of the square patrol points and spawns use
	Obstacles    []Vec3
}

// EnemyCountFor returns how many enemies a level spawns, capped at maxEnemies.
func EnemyCountFor(level, maxEnemies int) int {
	if maxEnemies <= 0 {
		maxEnemies = defaultMaxEnemy
	}
	return min(baseEnemyCount+max(level, 1), maxEnemies)
}

// ObstacleCountFor returns the obstacle count for a level.
func ObstacleCountFor(level int) int {
	return baseObstacles + max(level, 1)*obstaclesPerLvl
}

// NewArena builds the layout for level. Obstacle placement draws from rng;
// everything else depends only on level and cfg.
func NewArena(level int, cfg Config, rng *rand.Rand) Arena {
	a := Arena{
		Level:        level,
		EnemyCount:   EnemyCountFor(level, cfg.MaxEnemies),
		Tier:         TierFor(level),
		Extent:       cfg.ArenaExtent,
		PatrolExtent: cfg.PatrolExtent,
	}
	n := ObstacleCountFor(level)
	a.Obstacles = make([]Vec3, 0, n)
	for i := 0; i < n; i++ {
		p := a.RandomPoint(rng)
		p.Y = obstacleHeight
		a.Obstacles = append(a.Obstacles, p)
	}
	return a
}

// RandomPoint returns a uniform point on the ground inside the patrol square.
func (a Arena) RandomPoint(rng *rand.Rand) Vec3 {
	e := a.PatrolExtent
	return Vec3{X: rng.Float64()*2*e - e, Z: rng.Float64()*2*e - e}
}

// SpawnPoint returns an enemy spawn position on a ring around the player,
// between cfg.SpawnRadiusMin and cfg.SpawnRadiusMax, kept inside the patrol
// square. Near an edge the clamp can pull a ring point back toward the
// player, so such draws are rejected; if every attempt fails the patrol
// corner farthest from the player is used.
func (a Arena) SpawnPoint(rng *rand.Rand, around Vec3, cfg Config) Vec3 {
	lo := math.Max(cfg.SpawnRadiusMin, minSpawnDistance)
	hi := math.Max(cfg.SpawnRadiusMax, lo)
	e := a.PatrolExtent
	for i := 0; i < spawnAttempts; i++ {
		ang := rng.Float64() * 2 * math.Pi
		r := lo + rng.Float64()*(hi-lo)
		p := Vec3{
			X: clampf(around.X+math.Sin(ang)*r, -e, e),
			Z: clampf(around.Z+math.Cos(ang)*r, -e, e),
		}
		if p.Planar().Dist(around.Planar()) >= lo {
			return p
		}
	}
	return a.farthestCorner(around)
}

// farthestCorner returns the corner of the patrol square farthest from p.
func (a Arena) farthestCorner(p Vec3) Vec3 {
	c := Vec3{X: a.PatrolExtent, Z: a.PatrolExtent}
	if p.X > 0 {
		c.X = -c.X
	}
	if p.Z > 0 {
		c.Z = -c.Z
	}
	return c
}
