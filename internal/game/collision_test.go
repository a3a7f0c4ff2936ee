package game

import (
	"math"
	"testing"
)

// shellAt puts a live shell owned by owner at pos.
func shellAt(owner *Tank, pos Vec3, dmg int) *Projectile {
	p := NewProjectile(pos, 0, owner.IsPlayer(), dmg)
	owner.projectiles = append(owner.projectiles, p)
	return p
}

func TestSeparate_Symmetric(t *testing.T) {
	ts := NewTestSim(WithEnemyAt(1, 0, 0))
	p, e := ts.Player(), ts.Enemies()[0]
	p0, e0 := p.Position(), e.Position()

	ts.Session.separateTanks()

	d := p.Position().Dist(e.Position())
	threshold := ts.Session.cfg.TankSeparation()
	if math.Abs(d-threshold) > 1e-9 {
		t.Errorf("post-push distance=%.4f want %.4f", d, threshold)
	}
	dp := p.Position().Sub(p0)
	de := e.Position().Sub(e0)
	if sum := dp.Add(de); sum.Len() > 1e-9 {
		t.Errorf("displacements not equal and opposite: %+v vs %+v", dp, de)
	}
	if math.Abs(dp.X+1) > 1e-9 || math.Abs(de.X-1) > 1e-9 {
		t.Errorf("expected half the overlap each: dp=%+v de=%+v", dp, de)
	}
}

func TestSeparate_CoincidentCentres(t *testing.T) {
	ts := NewTestSim(WithEnemyAt(0, 0, 0))
	ts.Session.separateTanks()
	p, e := ts.Player().Position(), ts.Enemies()[0].Position()
	if p.X != -1.5 || e.X != 1.5 || p.Z != 0 || e.Z != 0 {
		t.Errorf("coincident push: player=%+v enemy=%+v", p, e)
	}
}

func TestSeparate_FarApartUntouched(t *testing.T) {
	ts := NewTestSim(WithEnemyAt(0, 3, 0))
	ts.Session.separateTanks()
	if ts.Player().Position() != (Vec3{}) || ts.Enemies()[0].Position() != (Vec3{Z: 3}) {
		t.Error("tanks exactly at the threshold should not move")
	}
}

func TestPickup_PlanarRadius(t *testing.T) {
	ts := NewTestSim(
		WithNoEnemies(),
		WithPowerUpAt(PowerUpHealth, 1.9, 0),
		WithPowerUpAt(PowerUpAttack, 2.0, 0),
	)
	s := ts.Session
	s.player.SetHealth(100)
	s.powerUps[0].pos.Y = 1.2 // mid-bounce

	s.collectPowerUps()

	if s.PlayerHealth() != 300 {
		t.Errorf("health=%d want 300", s.PlayerHealth())
	}
	if s.PowerUpCount() != 1 || s.powerUps[0].Kind() != PowerUpAttack {
		t.Errorf("expected only the attack power-up left, have %d", s.PowerUpCount())
	}
	if s.player.BoostActive(s.Clock()) {
		t.Error("power-up at exactly the pickup radius was collected")
	}
	if n := ts.SimLog.Count(CatPickup, KeyPowerUpTaken); n != 1 {
		t.Errorf("pickup events=%d want 1", n)
	}
}

func TestPickup_NeverTwice(t *testing.T) {
	ts := NewTestSim(WithNoEnemies(), WithPowerUpAt(PowerUpHealth, 0.5, 0))
	s := ts.Session
	pu := s.powerUps[0]
	s.player.SetHealth(50)
	s.collectPowerUps()
	s.collectPowerUps()
	if s.PlayerHealth() != 250 {
		t.Errorf("health=%d want 250 (single pickup)", s.PlayerHealth())
	}
	if !pu.Collected() || s.PowerUpCount() != 0 {
		t.Error("collected power-up still active")
	}
}

func TestHit_LastEnemyCompletesLevel(t *testing.T) {
	ts := NewTestSim(WithEnemyAt(0, 6, math.Pi))
	s := ts.Session
	e := ts.Enemies()[0]
	e.SetHealth(1)
	shell := shellAt(s.player, Vec3{Y: muzzleHeight, Z: 5}, 120)
	enemyShell := shellAt(e, Vec3{Y: muzzleHeight, Z: 4}, 80)

	s.resolveCollisions()

	if s.EnemyCount() != 0 {
		t.Fatalf("enemy still active")
	}
	if s.Score() != 100 {
		t.Errorf("score=%d want 100", s.Score())
	}
	if !s.LevelComplete() {
		t.Errorf("state=%s want level_complete", s.State())
	}
	if !shell.Disposed() || len(s.player.Projectiles()) != 0 {
		t.Error("hitting shell not removed")
	}
	if !e.Disposed() || !enemyShell.Disposed() {
		t.Error("destroyed enemy or its shell not disposed")
	}
	if n := ts.SimLog.Count(CatSession, KeyLevelComplete); n != 1 {
		t.Errorf("level_complete events=%d want 1", n)
	}
}

func TestHit_KillWithEnemiesLeft(t *testing.T) {
	ts := NewTestSim(WithEnemyAt(0, 6, 0), WithEnemyAt(10, 10, 0))
	s := ts.Session
	ts.Enemies()[0].SetHealth(100)
	shellAt(s.player, Vec3{Y: muzzleHeight, Z: 6}, 120)

	s.resolveCollisions()

	if s.EnemyCount() != 1 || s.Score() != 100 || s.State() != StateRunning {
		t.Errorf("enemies=%d score=%d state=%s", s.EnemyCount(), s.Score(), s.State())
	}
	if ts.Enemies()[0].Label() != "E1" {
		t.Errorf("wrong enemy removed; left %s", ts.Enemies()[0].Label())
	}
}

func TestHit_ShellHitsOnlyOneTank(t *testing.T) {
	ts := NewTestSim(WithEnemyAt(0, 10, 0), WithEnemyAt(0.5, 10, 0))
	s := ts.Session
	shellAt(s.player, Vec3{X: 0.25, Y: muzzleHeight, Z: 10}, 120)

	s.resolveCollisions()

	damaged := 0
	for _, e := range ts.Enemies() {
		if e.Health() < e.MaxHealth() {
			damaged++
		}
	}
	if damaged != 1 {
		t.Errorf("shell damaged %d tanks, want 1", damaged)
	}
	if n := ts.SimLog.Count(CatCombat, KeyHit); n != 1 {
		t.Errorf("hit events=%d want 1", n)
	}
}

func TestHit_EnemyShellDamagesPlayer(t *testing.T) {
	ts := NewTestSim(WithEnemyAt(0, 8, math.Pi))
	s := ts.Session
	e := ts.Enemies()[0]
	shellAt(e, Vec3{Y: muzzleHeight, Z: 1}, 80)

	s.resolveCollisions()

	if s.PlayerHealth() != 420 {
		t.Errorf("player health=%d want 420", s.PlayerHealth())
	}
	if len(e.Projectiles()) != 0 {
		t.Error("enemy shell not removed after hit")
	}
	if !ts.SimLog.HasEntry(CatCombat, KeyPlayerHit, "E0 -> P dmg=80") {
		t.Errorf("missing player_hit entry:\n%s", ts.SimLog.Format())
	}
}

func TestHit_GameOverExactlyOnce(t *testing.T) {
	ts := NewTestSim(WithEnemyAt(0, 8, math.Pi))
	s := ts.Session
	e := ts.Enemies()[0]
	s.player.SetHealth(50)
	shellAt(e, Vec3{Y: muzzleHeight, Z: 1}, 80)
	second := shellAt(e, Vec3{Y: muzzleHeight, Z: 0.5}, 80)

	s.resolveCollisions()

	if !s.GameOver() || s.PlayerHealth() != 0 {
		t.Fatalf("state=%s health=%d", s.State(), s.PlayerHealth())
	}
	if second.Disposed() {
		t.Error("pass should stop at game over")
	}
	tick := s.TickCount()
	ts.RunTicks(30)
	if s.TickCount() != tick {
		t.Error("terminal session kept ticking")
	}
	if n := ts.SimLog.Count(CatSession, KeyGameOver); n != 1 {
		t.Errorf("game_over events=%d want 1", n)
	}
}

func TestHit_SixHundredDamageEndsGameOnce(t *testing.T) {
	ts := NewTestSim(WithEnemyAt(15, 15, 0))
	s := ts.Session
	e := ts.Enemies()[0]
	for i := 0; i < 6; i++ {
		shellAt(e, Vec3{Y: muzzleHeight, Z: -1}, 120)
		s.Tick()
		if s.PlayerHealth() < 0 {
			t.Fatalf("health went negative: %d", s.PlayerHealth())
		}
	}
	if s.PlayerHealth() != 0 || !s.GameOver() {
		t.Errorf("health=%d state=%s", s.PlayerHealth(), s.State())
	}
	if n := ts.SimLog.Count(CatCombat, KeyPlayerHit); n != 5 {
		t.Errorf("player hits=%d want 5", n)
	}
	if n := ts.SimLog.Count(CatSession, KeyGameOver); n != 1 {
		t.Errorf("game_over events=%d want 1", n)
	}
}

func TestHit_PlayerShellMissesBeyondRadius(t *testing.T) {
	ts := NewTestSim(WithEnemyAt(0, 10, 0))
	s := ts.Session
	shell := shellAt(s.player, Vec3{Y: muzzleHeight, Z: 7.5}, 120)
	s.resolveCollisions()
	if shell.Disposed() || ts.Enemies()[0].Health() != ts.Enemies()[0].MaxHealth() {
		t.Error("shell 2.5 units away counted as a hit")
	}
}
