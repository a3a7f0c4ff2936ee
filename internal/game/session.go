package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State is the session's top-level state.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateGameOver
	StateLevelComplete
)

func (st State) String() string {
	switch st {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	case StateLevelComplete:
		return "level_complete"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state halts ticking until a transition command.
func (st State) Terminal() bool {
	return st == StateGameOver || st == StateLevelComplete
}

// Session owns one game: the player, the enemy wave, power-ups, score and the
// state machine. It is driven by a single caller; only Submit may be called
// from other goroutines.
type Session struct {
	id      string
	cfg     Config
	rng     *rand.Rand
	log     zerolog.Logger
	metrics *sessionMetrics
	simLog  *SimLog

	state       State
	level       int
	score       int
	tick        int
	clock       time.Duration
	nextPowerUp time.Duration
	nextEnemyID int
	startLevel  int

	arena    Arena
	player   *Tank
	enemies  []*Tank
	powerUps []*PowerUp

	cmds    chan Command
	dropped atomic.Int64
	events  []Event
}

// Option configures a Session at construction.
type Option func(*Session)

// WithSeed makes every random draw in the session reproducible.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	}
}

// WithRand injects the random source directly.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithSimLog records every event into sl.
func WithSimLog(sl *SimLog) Option {
	return func(s *Session) {
		s.simLog = sl
	}
}

// WithStartLevel starts the first game at level instead of 1. Restart always
// returns to level 1.
func WithStartLevel(level int) Option {
	return func(s *Session) {
		s.startLevel = max(1, level)
	}
}

// NewSession creates a running session at the start level.
func NewSession(cfg Config, opts ...Option) *Session {
	s := &Session{
		cfg:        cfg.withDefaults(),
		log:        zerolog.Nop(),
		startLevel: 1,
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- gameplay randomness
	}
	if s.simLog == nil {
		s.simLog = NewSimLog(false)
	}
	s.id = uuid.NewString()
	s.log = s.log.With().Str("session", s.id).Logger()
	s.metrics = newSessionMetrics()
	s.cmds = make(chan Command, s.cfg.CommandBuffer)
	s.reset(s.startLevel)
	return s
}

// reset tears everything down and starts a fresh game at level.
func (s *Session) reset(level int) {
	s.teardownWave()
	if s.player != nil {
		s.player.Dispose()
	}
	s.score = 0
	s.tick = 0
	s.clock = 0
	s.nextEnemyID = 0
	s.player = NewPlayerTank(Vec3{})
	s.player.bounds = s.cfg.ArenaExtent
	s.beginLevel(level)
	s.setState(StateRunning)
}

// teardownWave disposes every enemy and power-up and drops the references.
func (s *Session) teardownWave() {
	for i, e := range s.enemies {
		e.Dispose()
		s.enemies[i] = nil
	}
	s.enemies = s.enemies[:0]
	for i, pu := range s.powerUps {
		pu.Collect()
		s.powerUps[i] = nil
	}
	s.powerUps = s.powerUps[:0]
}

// beginLevel lays out the arena for level and spawns its tiered enemy wave.
func (s *Session) beginLevel(level int) {
	s.level = level
	s.arena = NewArena(level, s.cfg, s.rng)
	for i := 0; i < s.arena.EnemyCount; i++ {
		pos := s.arena.SpawnPoint(s.rng, s.player.pos, s.cfg)
		e := NewEnemyTank(s.nextEnemyID, pos, s.rng, s.arena.PatrolExtent)
		e.SetHeading(headingOf(s.player.pos.Sub(pos)))
		e.SetDifficultyTier(level)
		s.nextEnemyID++
		s.enemies = append(s.enemies, e)
	}
	s.nextPowerUp = s.clock + s.cfg.PowerUpInterval
	s.metrics.level.Record(context.Background(), int64(level))
	s.emit(Event{Actor: "--", Category: CatSession, Key: KeyLevelStart,
		Value:  fmt.Sprintf("level %d: %d enemies tier %d", level, len(s.enemies), s.arena.Tier.Level),
		NumVal: float64(level)})
	s.log.Info().Int("level", level).Int("enemies", len(s.enemies)).Int("tier", s.arena.Tier.Level).Msg("level started")
}

func (s *Session) setState(st State) {
	if s.state == st {
		return
	}
	prev := s.state
	s.state = st
	s.emit(Event{Actor: "--", Category: CatSession, Key: KeyStateChange,
		Value: fmt.Sprintf("%s → %s", prev, st)})
	s.log.Debug().Str("from", prev.String()).Str("to", st.String()).Msg("state change")
}

// emit stamps e with the current tick and records it.
func (s *Session) emit(e Event) {
	e.Tick = s.tick
	s.events = append(s.events, e)
	s.simLog.Add(e)
}

// --- Commands ---

// Submit queues a command for the next Step without blocking. It returns
// false when the channel is full and the command was dropped.
func (s *Session) Submit(cmd Command) bool {
	select {
	case s.cmds <- cmd:
		return true
	default:
		s.dropped.Add(1)
		s.metrics.dropped.Add(context.Background(), 1)
		return false
	}
}

// Commands exposes the send side of the input channel for input adapters.
func (s *Session) Commands() chan<- Command {
	return s.cmds
}

// drain applies every queued command in arrival order.
func (s *Session) drain() {
	for {
		select {
		case c := <-s.cmds:
			s.apply(c)
		default:
			return
		}
	}
}

func (s *Session) apply(c Command) {
	switch c.Kind {
	case CmdMove:
		s.Move(c.Move)
	case CmdFire:
		s.Fire()
	case CmdPause:
		s.Pause()
	case CmdResume:
		s.Resume()
	case CmdTogglePause:
		s.TogglePause()
	case CmdRestart:
		s.Restart()
	case CmdNextLevel:
		s.AdvanceLevel()
	}
}

// Move sets the player's held movement. Ignored unless running.
func (s *Session) Move(m MoveCommand) {
	if s.state != StateRunning {
		return
	}
	s.player.ApplyMovement(m)
}

// Fire pulls the player's trigger. Ignored unless running; suppressed while
// the weapon is on cooldown.
func (s *Session) Fire() bool {
	if s.state != StateRunning {
		return false
	}
	p := s.player.Fire(s.clock)
	if p == nil {
		return false
	}
	s.recordShot(s.player, p)
	return true
}

// Pause halts ticking. Only a running session can be paused.
func (s *Session) Pause() {
	if s.state == StateRunning {
		s.setState(StatePaused)
	}
}

// Resume continues a paused session.
func (s *Session) Resume() {
	if s.state == StatePaused {
		s.setState(StateRunning)
	}
}

// TogglePause flips between running and paused. Terminal states are unaffected.
func (s *Session) TogglePause() {
	switch s.state {
	case StateRunning:
		s.Pause()
	case StatePaused:
		s.Resume()
	}
}

// Restart starts a fresh game at level 1 with score 0 from any state.
func (s *Session) Restart() {
	s.log.Info().Int("level", s.level).Int("score", s.score).Msg("session restarted")
	s.reset(1)
}

// AdvanceLevel moves a completed level on to the next one, keeping the
// player and score. It returns false unless the level was complete.
func (s *Session) AdvanceLevel() bool {
	if s.state != StateLevelComplete {
		return false
	}
	s.teardownWave()
	s.player.clearProjectiles()
	s.player.pending = MoveCommand{}
	s.beginLevel(s.level + 1)
	s.setState(StateRunning)
	return true
}

// --- Tick ---

// Step drains pending commands and runs one tick. Frontends call it once per
// frame; while paused or terminal only the commands are processed.
func (s *Session) Step() {
	s.events = s.events[:0]
	if n := s.dropped.Swap(0); n > 0 {
		s.emit(Event{Actor: "--", Category: CatSession, Key: KeyCommandDropped,
			Value: fmt.Sprintf("%d commands dropped", n), NumVal: float64(n)})
		s.log.Warn().Int64("count", n).Msg("input commands dropped")
	}
	s.drain()
	s.advance()
}

// Tick runs one simulation tick without draining commands.
func (s *Session) Tick() {
	s.events = s.events[:0]
	s.advance()
}

func (s *Session) advance() {
	if s.state != StateRunning {
		return
	}
	s.tick++
	s.clock += s.cfg.Step
	now := s.clock

	// 1. PLAYER: queued movement, shell flight.
	s.player.Tick(now, nil)

	// 2. ENEMIES: AI decision, movement, fire rolls, shell flight.
	target := s.player.pos
	for _, e := range s.enemies {
		prev := e.ai.state
		if p := e.Tick(now, &target); p != nil {
			s.recordShot(e, p)
		}
		if e.ai.state != prev {
			s.emit(Event{Actor: e.label, Category: CatAI, Key: KeyStateChange,
				Value:  fmt.Sprintf("%s → %s", prev, e.ai.state),
				NumVal: e.pos.Dist(target)})
		}
	}

	// 3. POWER-UPS: animation only.
	for _, pu := range s.powerUps {
		pu.Tick()
	}

	// 4. COLLISIONS: separation, pickups, shell hits, score, terminal states.
	s.resolveCollisions()

	// 5. SPAWNS: timed power-up drops.
	if s.state == StateRunning {
		s.spawnPowerUps(now)
	}

	s.checkInvariants()
	s.metrics.ticks.Add(context.Background(), 1)

	if s.simLog.Verbose() {
		s.emit(Event{Actor: s.player.label, Category: CatMove, Key: KeyPosition,
			Value: fmt.Sprintf("(%.2f,%.2f)", s.player.pos.X, s.player.pos.Z)})
		for _, e := range s.enemies {
			s.emit(Event{Actor: e.label, Category: CatMove, Key: KeyPosition,
				Value: fmt.Sprintf("(%.2f,%.2f) %s", e.pos.X, e.pos.Z, e.ai.state)})
		}
	}
}

func (s *Session) recordShot(t *Tank, p *Projectile) {
	s.metrics.shot(t.role)
	s.emit(Event{Actor: t.label, Category: CatCombat, Key: KeyShot,
		Value:  fmt.Sprintf("heading %.2f dmg=%d", p.Heading(), p.Damage()),
		NumVal: float64(p.Damage())})
}

// spawnPowerUps drops a power-up every PowerUpInterval of simulation time
// while fewer than MaxPowerUps are lying around.
func (s *Session) spawnPowerUps(now time.Duration) {
	for now >= s.nextPowerUp {
		s.nextPowerUp += s.cfg.PowerUpInterval
		if len(s.powerUps) >= s.cfg.MaxPowerUps {
			continue
		}
		kind := PowerUpHealth
		if s.rng.Intn(2) == 1 {
			kind = PowerUpAttack
		}
		pu := NewPowerUp(kind, s.arena.RandomPoint(s.rng))
		s.powerUps = append(s.powerUps, pu)
		s.emit(Event{Actor: "--", Category: CatPickup, Key: KeyPowerUpSpawned,
			Value: fmt.Sprintf("%s at (%.1f,%.1f)", kind, pu.pos.X, pu.pos.Z)})
	}
}

// checkInvariants reports broken invariants through the log and the event
// stream. It never panics.
func (s *Session) checkInvariants() {
	violate := func(msg string) {
		s.log.Error().Int("tick", s.tick).Msg(msg)
		s.emit(Event{Actor: "--", Category: CatCheck, Key: KeyInvariant, Value: msg})
	}
	if s.player == nil || !s.player.IsPlayer() {
		violate("missing player tank")
		return
	}
	all := append([]*Tank{s.player}, s.enemies...)
	for _, t := range all {
		if t.health < 0 || t.health > t.maxHealth {
			violate(fmt.Sprintf("%s health %d outside [0,%d]", t.label, t.health, t.maxHealth))
		}
		for _, p := range t.projectiles {
			if p.Disposed() {
				violate(fmt.Sprintf("%s holds a disposed shell", t.label))
				break
			}
		}
	}
	for _, e := range s.enemies {
		if e.IsPlayer() {
			violate("duplicate player tank in enemy set")
		}
		if e.disposed || e.destroyed {
			violate(fmt.Sprintf("%s destroyed but still active", e.label))
		}
	}
}

// --- Read accessors ---

func (s *Session) ID() string             { return s.id }
func (s *Session) Config() Config         { return s.cfg }
func (s *Session) State() State           { return s.state }
func (s *Session) Paused() bool           { return s.state == StatePaused }
func (s *Session) GameOver() bool         { return s.state == StateGameOver }
func (s *Session) LevelComplete() bool    { return s.state == StateLevelComplete }
func (s *Session) Level() int             { return s.level }
func (s *Session) Score() int             { return s.score }
func (s *Session) TickCount() int         { return s.tick }
func (s *Session) Clock() time.Duration   { return s.clock }
func (s *Session) Arena() Arena           { return s.arena }
func (s *Session) SimLog() *SimLog        { return s.simLog }
func (s *Session) PlayerPosition() Vec3   { return s.player.pos }
func (s *Session) PlayerHeading() float64 { return s.player.heading }
func (s *Session) PlayerHealth() int      { return s.player.health }
func (s *Session) PlayerMaxHealth() int   { return s.player.maxHealth }
func (s *Session) EnemyCount() int        { return len(s.enemies) }
func (s *Session) PowerUpCount() int      { return len(s.powerUps) }

// EnemyPositions returns a copy of every live enemy's position.
func (s *Session) EnemyPositions() []Vec3 {
	out := make([]Vec3, len(s.enemies))
	for i, e := range s.enemies {
		out[i] = e.pos
	}
	return out
}

// Events returns the events of the latest Step or Tick. The slice is reused
// by the next call.
func (s *Session) Events() []Event {
	return s.events
}
