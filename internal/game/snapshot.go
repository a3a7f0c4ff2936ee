package game

import "time"

// TankView is the read-only render state of one tank.
type TankView struct {
	ID        int
	Label     string
	Role      Role
	Pos       Vec3
	Heading   float64
	Health    int
	MaxHealth int
	AI        AIState // zero for the player
}

// ShellView is the read-only render state of one projectile.
type ShellView struct {
	Pos         Vec3
	Heading     float64
	PlayerOwned bool
}

// PowerUpView is the read-only render state of one power-up.
type PowerUpView struct {
	Kind PowerUpKind
	Pos  Vec3
	Spin float64
}

// Snapshot is a copy of everything a frontend draws. It shares no memory
// with the session.
type Snapshot struct {
	Tick        int
	Clock       time.Duration
	State       State
	Level       int
	Score       int
	Extent      float64
	Player      TankView
	BoostActive bool
	BoostLeft   time.Duration
	Enemies     []TankView
	Shells      []ShellView
	PowerUps    []PowerUpView
	Obstacles   []Vec3
}

func viewOf(t *Tank) TankView {
	v := TankView{
		ID:        t.id,
		Label:     t.label,
		Role:      t.role,
		Pos:       t.pos,
		Heading:   t.heading,
		Health:    t.health,
		MaxHealth: t.maxHealth,
	}
	if !t.IsPlayer() {
		v.AI = t.ai.state
	}
	return v
}

func appendShells(dst []ShellView, t *Tank) []ShellView {
	for _, p := range t.projectiles {
		if p.Disposed() {
			continue
		}
		dst = append(dst, ShellView{Pos: p.pos, Heading: p.heading, PlayerOwned: p.playerOwned})
	}
	return dst
}

// Snapshot copies the current render state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.tick,
		Clock:       s.clock,
		State:       s.state,
		Level:       s.level,
		Score:       s.score,
		Extent:      s.cfg.ArenaExtent,
		Player:      viewOf(s.player),
		BoostActive: s.player.BoostActive(s.clock),
		Enemies:     make([]TankView, 0, len(s.enemies)),
		PowerUps:    make([]PowerUpView, 0, len(s.powerUps)),
		Obstacles:   append([]Vec3(nil), s.arena.Obstacles...),
	}
	if snap.BoostActive {
		snap.BoostLeft = s.player.boostUntil - s.clock
	}
	snap.Shells = appendShells(snap.Shells, s.player)
	for _, e := range s.enemies {
		snap.Enemies = append(snap.Enemies, viewOf(e))
		snap.Shells = appendShells(snap.Shells, e)
	}
	for _, pu := range s.powerUps {
		snap.PowerUps = append(snap.PowerUps, PowerUpView{Kind: pu.kind, Pos: pu.pos, Spin: pu.spin})
	}
	return snap
}

// Nearest returns the enemy view closest to the player, or false when the
// wave is empty.
func (snap Snapshot) Nearest() (TankView, bool) {
	var best TankView
	bestD := -1.0
	for _, e := range snap.Enemies {
		d := e.Pos.Dist(snap.Player.Pos)
		if bestD < 0 || d < bestD {
			best, bestD = e, d
		}
	}
	return best, bestD >= 0
}
