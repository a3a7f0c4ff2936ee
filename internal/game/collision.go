package game

import (
	"context"
	"fmt"
)

// resolveCollisions runs the per-tick contact pass in a fixed order:
// tank separation, power-up pickup, player shells against enemies, then
// enemy shells against the player. It stops as soon as the session reaches
// a terminal state.
func (s *Session) resolveCollisions() {
	s.separateTanks()
	s.collectPowerUps()
	if s.resolvePlayerShells() {
		return
	}
	s.resolveEnemyShells()
}

// separateTanks pushes each enemy overlapping the player apart
// symmetrically until their centres are TankSeparation apart.
func (s *Session) separateTanks() {
	threshold := s.cfg.TankSeparation()
	for _, e := range s.enemies {
		separate(s.player, e, threshold)
	}
}

// separate moves a and b half the overlap each along the line between them.
// Coincident centres separate along +X. Reports whether a push happened.
func separate(a, b *Tank, threshold float64) bool {
	d := a.pos.Planar().Dist(b.pos.Planar())
	if d >= threshold {
		return false
	}
	dir := Vec3{X: 1}
	if d > 1e-9 {
		dir = b.pos.Sub(a.pos).Planar().Scale(1 / d)
	}
	push := dir.Scale((threshold - d) / 2)
	a.pos = a.pos.Sub(push)
	b.pos = b.pos.Add(push)
	return true
}

// collectPowerUps applies and removes every power-up within pickup range
// of the player. Distance is measured on the ground plane so the bounce
// animation never affects pickup.
func (s *Session) collectPowerUps() {
	kept := s.powerUps[:0]
	for _, pu := range s.powerUps {
		if pu.Collected() {
			continue
		}
		if pu.Position().Planar().Dist(s.player.pos.Planar()) >= s.cfg.PickupRadius {
			kept = append(kept, pu)
			continue
		}
		s.player.ApplyPowerUp(pu.Kind(), s.clock)
		pu.Collect()
		s.metrics.pickup(pu.Kind())
		s.emit(Event{Actor: s.player.label, Category: CatPickup, Key: KeyPowerUpTaken,
			Value: fmt.Sprintf("%s hp=%d/%d", pu.Kind(), s.player.health, s.player.maxHealth)})
	}
	for i := len(kept); i < len(s.powerUps); i++ {
		s.powerUps[i] = nil
	}
	s.powerUps = kept
}

// resolvePlayerShells tests each live player shell against the enemies. A
// shell hits at most one tank. Returns true once the level is complete.
func (s *Session) resolvePlayerShells() bool {
	defer s.player.pruneProjectiles()
	for _, p := range s.player.projectiles {
		if p.Disposed() {
			continue
		}
		for _, e := range s.enemies {
			if p.Position().Dist(e.pos) >= s.cfg.HitRadius {
				continue
			}
			p.Dispose()
			killed := e.ApplyDamage(p.Damage())
			s.emit(Event{Actor: e.label, Category: CatCombat, Key: KeyHit,
				Value:  fmt.Sprintf("P -> %s dmg=%d hp=%d", e.label, p.Damage(), e.health),
				NumVal: float64(p.Damage())})
			if killed {
				s.destroyEnemy(e)
				if len(s.enemies) == 0 {
					s.completeLevel()
					return true
				}
			}
			break
		}
	}
	return false
}

// resolveEnemyShells tests each enemy shell against the player. Returns
// true once the player is destroyed.
func (s *Session) resolveEnemyShells() bool {
	for _, e := range s.enemies {
		for _, p := range e.projectiles {
			if p.Disposed() || p.Position().Dist(s.player.pos) >= s.cfg.HitRadius {
				continue
			}
			p.Dispose()
			killed := s.player.ApplyDamage(p.Damage())
			s.emit(Event{Actor: s.player.label, Category: CatCombat, Key: KeyPlayerHit,
				Value:  fmt.Sprintf("%s -> P dmg=%d hp=%d", e.label, p.Damage(), s.player.health),
				NumVal: float64(p.Damage())})
			if killed {
				e.pruneProjectiles()
				s.endGame(e)
				return true
			}
		}
		e.pruneProjectiles()
	}
	return false
}

// destroyEnemy scores a kill and removes e from the wave, disposing it and
// any shells it still has in flight.
func (s *Session) destroyEnemy(e *Tank) {
	s.score += s.cfg.KillReward
	s.metrics.kills.Add(context.Background(), 1)
	s.emit(Event{Actor: e.label, Category: CatCombat, Key: KeyEnemyDestroyed,
		Value:  fmt.Sprintf("score=%d", s.score),
		NumVal: float64(s.score)})
	s.log.Debug().Str("enemy", e.label).Int("score", s.score).Msg("enemy destroyed")

	for i, other := range s.enemies {
		if other != e {
			continue
		}
		copy(s.enemies[i:], s.enemies[i+1:])
		s.enemies[len(s.enemies)-1] = nil
		s.enemies = s.enemies[:len(s.enemies)-1]
		break
	}
	e.Dispose()
}

func (s *Session) completeLevel() {
	s.emit(Event{Actor: "--", Category: CatSession, Key: KeyLevelComplete,
		Value:  fmt.Sprintf("level %d cleared score=%d", s.level, s.score),
		NumVal: float64(s.level)})
	s.log.Info().Int("level", s.level).Int("score", s.score).Msg("level complete")
	s.setState(StateLevelComplete)
}

func (s *Session) endGame(killer *Tank) {
	s.emit(Event{Actor: "--", Category: CatSession, Key: KeyGameOver,
		Value:  fmt.Sprintf("destroyed by %s on level %d score=%d", killer.label, s.level, s.score),
		NumVal: float64(s.score)})
	s.log.Info().Int("level", s.level).Int("score", s.score).Str("killer", killer.label).Msg("game over")
	s.setState(StateGameOver)
}
