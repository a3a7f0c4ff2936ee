package game

import (
	"math"
	"time"
)

const (
	attackBoostDuration = 30 * time.Second
	attackBoostMul      = 1.5
	healthRestore       = 200

	powerUpSpinSpeed   = 0.02
	powerUpBounceSpeed = 0.02
	powerUpBounceAmp   = 0.2
	powerUpRestHeight  = 1.0
)

// PowerUpKind selects the effect applied on pickup.
type PowerUpKind int

const (
	PowerUpHealth PowerUpKind = iota
	PowerUpAttack
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpHealth:
		return "health"
	case PowerUpAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// PowerUp is a collectible lying in the arena.
type PowerUp struct {
	kind      PowerUpKind
	pos       Vec3
	spin      float64
	phase     float64
	collected bool
}

// NewPowerUp places an uncollected power-up at pos.
func NewPowerUp(kind PowerUpKind, pos Vec3) *PowerUp {
	pos.Y = powerUpRestHeight
	return &PowerUp{kind: kind, pos: pos}
}

// Tick advances the spin and bounce animation. It has no gameplay effect.
func (p *PowerUp) Tick() {
	if p.collected {
		return
	}
	p.spin = math.Mod(p.spin+powerUpSpinSpeed, 2*math.Pi)
	p.phase += powerUpBounceSpeed
	p.pos.Y = powerUpRestHeight + math.Sin(p.phase)*powerUpBounceAmp
}

// Collect marks the power-up as picked up. Idempotent.
func (p *PowerUp) Collect() {
	p.collected = true
}

func (p *PowerUp) Collected() bool   { return p.collected }
func (p *PowerUp) Kind() PowerUpKind { return p.kind }
func (p *PowerUp) Position() Vec3    { return p.pos }
func (p *PowerUp) Spin() float64     { return p.spin }

// Duration is how long the effect lasts once applied. Health is instant.
func (p *PowerUp) Duration() time.Duration {
	if p.kind == PowerUpAttack {
		return attackBoostDuration
	}
	return 0
}
