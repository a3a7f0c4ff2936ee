package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

const (
	playerSpeed     = 0.4 // units per tick
	playerTurnRate  = 0.3 // radians per tick
	playerMaxHP     = 500
	playerDamage    = 120
	playerCooldown  = 500 * time.Millisecond
	enemySpeed      = 0.15
	enemyTurnRate   = 0.04
	enemyMaxHP      = 300
	enemyDamage     = 120
	enemyCooldown   = 500 * time.Millisecond
	enemyDetectDist = 15.0
	enemyAttackDist = 10.0
)

// Role distinguishes the player tank from AI tanks.
type Role int

const (
	RolePlayer Role = iota
	RoleEnemy
)

func (r Role) String() string {
	if r == RolePlayer {
		return "player"
	}
	return "enemy"
}

// Tank is the principal simulated actor: the player or an AI enemy.
type Tank struct {
	id    int
	label string
	role  Role

	pos     Vec3
	heading float64
	bounds  float64 // half-extent the player is clamped to; 0 = unbounded

	health    int
	maxHealth int
	speed     float64
	turnRate  float64

	// Weapon
	cooldown    time.Duration
	lastShot    time.Duration
	hasFired    bool
	baseDamage  int
	projectiles []*Projectile

	// Player only
	pending     MoveCommand
	boostActive bool
	boostUntil  time.Duration

	// Enemy only
	ai AIBrain

	destroyed bool
	disposed  bool
}

// NewPlayerTank creates the player tank at pos facing +Z.
func NewPlayerTank(pos Vec3) *Tank {
	return &Tank{
		label:      "P",
		role:       RolePlayer,
		pos:        pos,
		health:     playerMaxHP,
		maxHealth:  playerMaxHP,
		speed:      playerSpeed,
		turnRate:   playerTurnRate,
		cooldown:   playerCooldown,
		baseDamage: playerDamage,
	}
}

// NewEnemyTank creates an AI tank at pos that patrols inside +/-patrolExtent.
// rng drives patrol point selection and fire rolls.
func NewEnemyTank(id int, pos Vec3, rng *rand.Rand, patrolExtent float64) *Tank {
	t := &Tank{
		id:         id,
		label:      enemyLabel(id),
		role:       RoleEnemy,
		pos:        pos,
		health:     enemyMaxHP,
		maxHealth:  enemyMaxHP,
		speed:      enemySpeed,
		turnRate:   enemyTurnRate,
		cooldown:   enemyCooldown,
		baseDamage: enemyDamage,
		ai:         newAIBrain(rng, patrolExtent),
	}
	t.ai.pickPatrolPoint()
	return t
}

func enemyLabel(id int) string {
	return fmt.Sprintf("E%d", id)
}

// SetDifficultyTier scales an enemy's ranges, speed, cooldown, damage and
// health from the level number. Levels outside 1..5 clamp to the nearest tier.
// The player is unaffected.
func (t *Tank) SetDifficultyTier(level int) {
	if t.role != RoleEnemy {
		return
	}
	tier := TierFor(level)
	t.ai.detectionRange = tier.DetectionRange
	t.ai.attackRange = tier.AttackRange
	t.speed = tier.Speed
	t.cooldown = tier.Cooldown
	t.baseDamage = tier.Damage
	t.maxHealth = tier.MaxHealth
	t.health = tier.MaxHealth
}

// ApplyMovement queues a movement command for the next player tick. The
// command stays in effect (held keys) until replaced. Aim turns the hull
// right away, so a shot fired in the same step leaves along it.
func (t *Tank) ApplyMovement(cmd MoveCommand) {
	if t.role != RolePlayer {
		return
	}
	if cmd.HasAim {
		t.heading = normalizeAngle(cmd.Aim)
		cmd.HasAim = false
	}
	t.pending = cmd
}

// Fire spawns a shell if the weapon is off cooldown. It returns the new shell
// or nil when the shot was suppressed.
func (t *Tank) Fire(now time.Duration) *Projectile {
	if t.destroyed || t.disposed {
		return nil
	}
	if t.hasFired && now-t.lastShot < t.cooldown {
		return nil
	}
	dmg := t.baseDamage
	if t.boostActive {
		if now > t.boostUntil {
			t.boostActive = false
		} else {
			dmg = int(math.Round(float64(dmg) * attackBoostMul))
		}
	}
	origin := t.pos
	origin.Y += muzzleHeight
	p := NewProjectile(origin, t.heading, t.role == RolePlayer, dmg)
	t.projectiles = append(t.projectiles, p)
	t.lastShot = now
	t.hasFired = true
	return p
}

// Tick advances the tank one step. The player consumes its queued movement;
// an enemy runs one AI cycle against opponent (skipped when nil). Both expire
// a stale boost and advance and prune their shells. Returns any shell the AI
// fired this tick.
func (t *Tank) Tick(now time.Duration, opponent *Vec3) *Projectile {
	if t.disposed {
		return nil
	}
	var fired *Projectile
	switch t.role {
	case RolePlayer:
		t.move(t.pending)
	case RoleEnemy:
		if opponent != nil {
			fired = t.runAI(now, *opponent)
		}
	}
	if t.boostActive && now > t.boostUntil {
		t.boostActive = false
	}
	t.advanceProjectiles()
	return fired
}

// move applies one tick of a movement command to the player hull.
func (t *Tank) move(cmd MoveCommand) {
	if cmd.Analog {
		mag := clampf(cmd.Magnitude, 0, 1)
		if mag > 0 {
			dir := cmd.analogDirection()
			t.heading = normalizeAngle(turnToward(t.heading, headingOf(dir), t.turnRate))
			t.pos = t.pos.Add(dir.Scale(t.speed * mag))
		}
	} else {
		if cmd.Up {
			t.pos.Z -= t.speed
		}
		if cmd.Down {
			t.pos.Z += t.speed
		}
		if cmd.Left {
			t.pos.X -= t.speed
		}
		if cmd.Right {
			t.pos.X += t.speed
		}
	}
	if t.bounds > 0 {
		t.pos.X = clampf(t.pos.X, -t.bounds, t.bounds)
		t.pos.Z = clampf(t.pos.Z, -t.bounds, t.bounds)
	}
}

// advanceProjectiles moves every live shell and drops expired or disposed ones.
func (t *Tank) advanceProjectiles() {
	kept := t.projectiles[:0]
	for _, p := range t.projectiles {
		if p.Disposed() {
			continue
		}
		p.Advance()
		if p.Expired() {
			p.Dispose()
			continue
		}
		kept = append(kept, p)
	}
	clearTail(t.projectiles, len(kept))
	t.projectiles = kept
}

// pruneProjectiles drops shells disposed by the collision pass.
func (t *Tank) pruneProjectiles() {
	kept := t.projectiles[:0]
	for _, p := range t.projectiles {
		if !p.Disposed() {
			kept = append(kept, p)
		}
	}
	clearTail(t.projectiles, len(kept))
	t.projectiles = kept
}

// clearTail nils the slots past n so dropped shells are not kept reachable
// through the backing array.
func clearTail(s []*Projectile, n int) {
	for i := n; i < len(s); i++ {
		s[i] = nil
	}
}

// ApplyDamage subtracts amount from health, clamping at zero. It returns true
// only on the tick the tank crosses from alive to destroyed.
func (t *Tank) ApplyDamage(amount int) bool {
	if t.destroyed || amount <= 0 {
		return false
	}
	t.health -= amount
	if t.health < 0 {
		t.health = 0
	}
	if t.health == 0 {
		t.destroyed = true
		return true
	}
	return false
}

// ApplyPowerUp applies a pickup effect. Unknown kinds are ignored.
func (t *Tank) ApplyPowerUp(kind PowerUpKind, now time.Duration) {
	switch kind {
	case PowerUpHealth:
		if t.health < t.maxHealth {
			t.health = min(t.maxHealth, t.health+healthRestore)
		}
	case PowerUpAttack:
		t.boostActive = true
		t.boostUntil = now + attackBoostDuration
	}
}

// Dispose tears the tank down along with every shell it owns. Idempotent.
func (t *Tank) Dispose() {
	if t.disposed {
		return
	}
	for _, p := range t.projectiles {
		p.Dispose()
	}
	clearTail(t.projectiles, 0)
	t.projectiles = nil
	t.disposed = true
}

// clearProjectiles disposes every owned shell but keeps the tank alive.
func (t *Tank) clearProjectiles() {
	for _, p := range t.projectiles {
		p.Dispose()
	}
	clearTail(t.projectiles, 0)
	t.projectiles = t.projectiles[:0]
}

func (t *Tank) ID() int                    { return t.id }
func (t *Tank) Label() string              { return t.label }
func (t *Tank) Role() Role                 { return t.role }
func (t *Tank) IsPlayer() bool             { return t.role == RolePlayer }
func (t *Tank) Position() Vec3             { return t.pos }
func (t *Tank) Heading() float64           { return t.heading }
func (t *Tank) Health() int                { return t.health }
func (t *Tank) MaxHealth() int             { return t.maxHealth }
func (t *Tank) Speed() float64             { return t.speed }
func (t *Tank) TurnRate() float64          { return t.turnRate }
func (t *Tank) Cooldown() time.Duration    { return t.cooldown }
func (t *Tank) BaseDamage() int            { return t.baseDamage }
func (t *Tank) Destroyed() bool            { return t.destroyed }
func (t *Tank) Disposed() bool             { return t.disposed }
func (t *Tank) Projectiles() []*Projectile { return t.projectiles }
func (t *Tank) AIState() AIState           { return t.ai.state }
func (t *Tank) PatrolPoint() Vec3          { return t.ai.patrolPoint }
func (t *Tank) DetectionRange() float64    { return t.ai.detectionRange }
func (t *Tank) AttackRange() float64       { return t.ai.attackRange }

// BoostActive reports whether an attack boost is in effect at now.
func (t *Tank) BoostActive(now time.Duration) bool {
	return t.boostActive && now <= t.boostUntil
}

// SetPosition teleports the tank. Used by spawning and test setup.
func (t *Tank) SetPosition(p Vec3) { t.pos = p }

// SetHeading points the hull. Used by spawning and test setup.
func (t *Tank) SetHeading(h float64) { t.heading = normalizeAngle(h) }

// SetHealth sets health, clamped to [0, max]. Used by test setup.
func (t *Tank) SetHealth(hp int) {
	t.health = max(0, min(hp, t.maxHealth))
	t.destroyed = t.health == 0
}
