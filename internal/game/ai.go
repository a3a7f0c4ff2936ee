package game

import (
	"math"
	"math/rand"
	"time"
)

const (
	aiAlignThreshold = 0.1 // radians; below this the tank drives instead of turning
	aiArrivalDist    = 1.0 // units from the patrol point that count as arrived

	// Per-tick fire attempt probabilities, on top of the weapon cooldown.
	aiFireChancePatrol = 0.005
	aiFireChanceChase  = 0.01
	aiFireChanceAttack = 0.03
)

// AIState is the enemy behaviour state.
type AIState int

const (
	AIPatrol AIState = iota // wandering between random patrol points
	AIChase                 // player detected, closing in
	AIAttack                // player in attack range, firing often
)

func (s AIState) String() string {
	switch s {
	case AIPatrol:
		return "patrol"
	case AIChase:
		return "chase"
	case AIAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// fireChance returns the per-tick probability of a fire attempt in state s.
func (s AIState) fireChance() float64 {
	switch s {
	case AIChase:
		return aiFireChanceChase
	case AIAttack:
		return aiFireChanceAttack
	default:
		return aiFireChancePatrol
	}
}

// AIBrain holds the enemy decision state.
type AIBrain struct {
	state          AIState
	patrolPoint    Vec3
	patrolExtent   float64
	detectionRange float64
	attackRange    float64
	rng            *rand.Rand
}

func newAIBrain(rng *rand.Rand, patrolExtent float64) AIBrain {
	return AIBrain{
		state:          AIPatrol,
		patrolExtent:   patrolExtent,
		detectionRange: enemyDetectDist,
		attackRange:    enemyAttackDist,
		rng:            rng,
	}
}

// pickPatrolPoint chooses a uniform random point inside the patrol square.
func (b *AIBrain) pickPatrolPoint() {
	e := b.patrolExtent
	b.patrolPoint = Vec3{
		X: b.rng.Float64()*2*e - e,
		Z: b.rng.Float64()*2*e - e,
	}
}

// decide re-derives the behaviour state from the current distance to the
// player. There is no hysteresis: a player sitting on a range boundary can
// flip the state every tick.
func (b *AIBrain) decide(self, player Vec3) {
	d := self.Dist(player)
	switch {
	case d <= b.attackRange:
		b.state = AIAttack
	case d <= b.detectionRange:
		b.state = AIChase
	case self.Dist(b.patrolPoint) < aiArrivalDist:
		b.pickPatrolPoint()
		b.state = AIPatrol
	}
}

// target returns where the current state wants to drive.
func (b *AIBrain) target(player Vec3) Vec3 {
	if b.state == AIPatrol {
		return b.patrolPoint
	}
	return player
}

// runAI performs one enemy decision cycle: pick a state, steer toward its
// target, then roll for a shot.
func (t *Tank) runAI(now time.Duration, player Vec3) *Projectile {
	t.ai.decide(t.pos, player)
	t.steerToward(t.ai.target(player))
	if t.ai.rng.Float64() < t.ai.state.fireChance() {
		return t.Fire(now)
	}
	return nil
}

// steerToward turns toward target by at most the turn rate, and only drives
// forward once roughly aligned.
func (t *Tank) steerToward(target Vec3) {
	dir := target.Sub(t.pos).Planar().Normalize()
	diff := normalizeAngle(headingOf(dir) - t.heading)
	if math.Abs(diff) > aiAlignThreshold {
		if diff > 0 {
			t.heading = normalizeAngle(t.heading + t.turnRate)
		} else {
			t.heading = normalizeAngle(t.heading - t.turnRate)
		}
		return
	}
	t.pos = t.pos.Add(forward(t.heading).Scale(t.speed))
}
