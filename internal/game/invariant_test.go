package game

import (
	"testing"
)

// --- Invariant helpers ---

// checkHealthBounds verifies every tank's health lies in [0, max].
func checkHealthBounds(t *testing.T, ts *TestSim) {
	t.Helper()
	all := append([]*Tank{ts.Player()}, ts.Enemies()...)
	for _, tank := range all {
		if tank.Health() < 0 || tank.Health() > tank.MaxHealth() {
			t.Errorf("T=%d %s health %d outside [0,%d]", ts.CurrentTick(), tank.Label(), tank.Health(), tank.MaxHealth())
		}
	}
}

// checkNoDisposedReachable verifies no disposed shell, enemy or collected
// power-up is still held by the session.
func checkNoDisposedReachable(t *testing.T, ts *TestSim) {
	t.Helper()
	s := ts.Session
	for _, tank := range append([]*Tank{s.player}, s.enemies...) {
		if tank.Disposed() {
			t.Errorf("T=%d disposed tank %s still active", ts.CurrentTick(), tank.Label())
		}
		for _, p := range tank.Projectiles() {
			if p.Disposed() {
				t.Errorf("T=%d %s holds a disposed shell", ts.CurrentTick(), tank.Label())
			}
		}
	}
	for _, pu := range s.powerUps {
		if pu.Collected() {
			t.Errorf("T=%d collected power-up still active", ts.CurrentTick())
		}
	}
}

// checkNoInvariantEvents fails if the session reported a broken invariant.
func checkNoInvariantEvents(t *testing.T, ts *TestSim) {
	t.Helper()
	for _, e := range ts.SimLog.Filter(CatCheck, KeyInvariant) {
		t.Errorf("invariant violation: %s", e)
	}
}

// runChecked drives the autopilot for maxTicks, checking invariants after
// every step.
func runChecked(t *testing.T, ts *TestSim, maxTicks int) {
	t.Helper()
	ap := NewAutopilot()
	lastScore := ts.Session.Score()
	lastLevel := ts.Session.Level()
	for i := 0; i < maxTicks; i++ {
		ts.Do(ap.Plan(ts.Session.Snapshot())...)
		ts.Session.Step()
		checkHealthBounds(t, ts)
		checkNoDisposedReachable(t, ts)

		if ts.Session.Score() < lastScore {
			t.Fatalf("T=%d score decreased %d → %d", ts.CurrentTick(), lastScore, ts.Session.Score())
		}
		if ts.Session.Level() < lastLevel {
			t.Fatalf("T=%d level decreased %d → %d", ts.CurrentTick(), lastLevel, ts.Session.Level())
		}
		lastScore, lastLevel = ts.Session.Score(), ts.Session.Level()
		if ts.Session.GameOver() || t.Failed() {
			break
		}
	}
	checkNoInvariantEvents(t, ts)
}

func TestInvariants_AutopilotSeeds(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 99, 2024} {
		ts := NewTestSim(WithSimSeed(seed))
		runChecked(t, ts, 6000)
		out := DetermineRunOutcome(ts.Session, 0)
		t.Logf("seed %d: %s level=%d score=%d shots=%d hits=%d kills=%d",
			seed, out.Description, out.Level, out.Score, out.Shots, out.Hits, out.Kills)
		if got, want := out.Kills*ts.Session.cfg.KillReward, out.Score; got != want {
			t.Errorf("seed %d: score %d does not match %d kills", seed, want, out.Kills)
		}
	}
}

func TestInvariants_HighLevel(t *testing.T) {
	ts := NewTestSim(WithSimSeed(5), WithLevel(5))
	runChecked(t, ts, 3000)
}

func TestInvariants_TerminalEventsOncePerLevel(t *testing.T) {
	ts := NewTestSim(WithSimSeed(13))
	runChecked(t, ts, 8000)

	complete := ts.SimLog.Filter(CatSession, KeyLevelComplete)
	seen := map[float64]bool{}
	for _, e := range complete {
		if seen[e.NumVal] {
			t.Errorf("level %.0f completed twice", e.NumVal)
		}
		seen[e.NumVal] = true
	}
	if n := ts.SimLog.Count(CatSession, KeyGameOver); n > 1 {
		t.Errorf("game over raised %d times", n)
	}
}
