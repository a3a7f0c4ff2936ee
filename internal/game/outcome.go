package game

import "fmt"

type RunOutcome int

const (
	OutcomeInconclusive RunOutcome = iota
	OutcomeCleared
	OutcomeDestroyed
)

func (o RunOutcome) String() string {
	switch o {
	case OutcomeCleared:
		return "cleared"
	case OutcomeDestroyed:
		return "destroyed"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

type RunOutcomeReason struct {
	Outcome       RunOutcome
	Level         int
	LevelsCleared int
	Score         int
	Shots         int
	Hits          int
	Kills         int
	DamageTaken   int
	PickupsTaken  int
	PlayerHealth  int
	EnemiesLeft   int
	Ticks         int
	Description   string
}

// Accuracy is the fraction of player shots that hit something.
func (r RunOutcomeReason) Accuracy() float64 {
	if r.Shots == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Shots)
}

// DetermineRunOutcome classifies a finished or interrupted run. A run counts
// as cleared once targetLevel has been completed.
func DetermineRunOutcome(s *Session, targetLevel int) RunOutcomeReason {
	sl := s.SimLog()
	r := RunOutcomeReason{
		Level:         s.Level(),
		LevelsCleared: sl.Count(CatSession, KeyLevelComplete),
		Score:         s.Score(),
		Hits:          sl.Count(CatCombat, KeyHit),
		Kills:         sl.Count(CatCombat, KeyEnemyDestroyed),
		PickupsTaken:  sl.Count(CatPickup, KeyPowerUpTaken),
		PlayerHealth:  s.PlayerHealth(),
		EnemiesLeft:   s.EnemyCount(),
		Ticks:         s.TickCount(),
	}
	for _, e := range sl.Filter(CatCombat, KeyShot) {
		if e.Actor == "P" {
			r.Shots++
		}
	}
	for _, e := range sl.Filter(CatCombat, KeyPlayerHit) {
		r.DamageTaken += int(e.NumVal)
	}

	switch {
	case s.GameOver():
		r.Outcome = OutcomeDestroyed
		r.Description = fmt.Sprintf("player_destroyed_level_%d", r.Level)
	case targetLevel > 0 && r.LevelsCleared >= targetLevel:
		r.Outcome = OutcomeCleared
		r.Description = fmt.Sprintf("cleared_%d_levels", r.LevelsCleared)
	case s.LevelComplete():
		r.Outcome = OutcomeInconclusive
		r.Description = fmt.Sprintf("level_%d_complete_awaiting_advance", r.Level)
	default:
		r.Outcome = OutcomeInconclusive
		r.Description = fmt.Sprintf("tick_limit_level_%d_%d_enemies_left", r.Level, r.EnemiesLeft)
	}
	return r
}
