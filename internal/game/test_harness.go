package game

import (
	"math/rand"
)

// TestSim is a headless session harness used by tests. It builds a seeded
// Session and then rearranges the scene so scenarios start from a known
// layout.
type TestSim struct {
	Session *Session
	SimLog  *SimLog

	cfg     Config
	seed    int64
	level   int
	verbose bool
	rng     *rand.Rand

	customEnemies bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // config, seed, level; applied before the session exists
	simOptScene                      // placement; applied to the built session
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSimSeed sets the RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithConfig replaces the session config.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg = cfg
	}}
}

// WithLevel starts the session on level.
func WithLevel(level int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.level = level
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithPlayerAt moves the player tank to (x,z) facing heading.
func WithPlayerAt(x, z, heading float64) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		p := ts.Session.player
		p.SetPosition(Vec3{X: x, Z: z})
		p.SetHeading(heading)
	}}
}

// WithNoEnemies removes the spawned wave.
func WithNoEnemies() SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.clearWave()
	}}
}

// WithEnemyAt adds a tiered enemy at (x,z) facing heading. The first use
// replaces the spawned wave, so scenarios only contain placed enemies.
func WithEnemyAt(x, z, heading float64) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		if !ts.customEnemies {
			ts.clearWave()
			ts.customEnemies = true
		}
		s := ts.Session
		e := NewEnemyTank(s.nextEnemyID, Vec3{X: x, Z: z}, s.rng, s.arena.PatrolExtent)
		e.SetHeading(heading)
		e.SetDifficultyTier(s.level)
		s.nextEnemyID++
		s.enemies = append(s.enemies, e)
	}}
}

// WithPowerUpAt drops a power-up of kind at (x,z).
func WithPowerUpAt(kind PowerUpKind, x, z float64) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.Session.powerUps = append(ts.Session.powerUps, NewPowerUp(kind, Vec3{X: x, Z: z}))
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered passes:
//  1. Infrastructure (config, seed, level, verbose), then the session is built
//  2. Scene placement
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:   DefaultConfig(),
		seed:  1,
		level: 1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.SimLog = NewSimLog(ts.verbose)
	ts.rng = rand.New(rand.NewSource(ts.seed)) // #nosec G404 -- test harness
	ts.Session = NewSession(ts.cfg,
		WithRand(ts.rng),
		WithStartLevel(ts.level),
		WithSimLog(ts.SimLog),
	)
	for _, o := range opts {
		if o.kind == simOptScene {
			o.fn(ts)
		}
	}
	return ts
}

func (ts *TestSim) clearWave() {
	s := ts.Session
	for _, e := range s.enemies {
		e.Dispose()
	}
	s.enemies = nil
	s.nextEnemyID = 0
}

// Player returns the player tank.
func (ts *TestSim) Player() *Tank {
	return ts.Session.player
}

// Enemies returns the live enemy tanks.
func (ts *TestSim) Enemies() []*Tank {
	return ts.Session.enemies
}

// Do submits commands for the next step.
func (ts *TestSim) Do(cmds ...Command) {
	for _, c := range cmds {
		ts.Session.Submit(c)
	}
}

// RunTicks advances the session n steps.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Session.Step()
	}
}

// RunUntil advances the session up to maxTicks steps, stopping early if
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Session.Step()
		if predicate(ts) {
			return ts.Session.TickCount()
		}
	}
	return -1
}

// RunAutopilot advances the session up to maxTicks steps with the player
// driven by ap, stopping early if stop returns true. Returns the number of
// steps taken.
func (ts *TestSim) RunAutopilot(ap *Autopilot, maxTicks int, stop func(*TestSim) bool) int {
	for i := 0; i < maxTicks; i++ {
		ts.Do(ap.Plan(ts.Session.Snapshot())...)
		ts.Session.Step()
		if stop != nil && stop(ts) {
			return i + 1
		}
	}
	return maxTicks
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Session.TickCount()
}
