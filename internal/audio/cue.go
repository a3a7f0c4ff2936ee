package audio

import "github.com/Garsondee/Tank-Arena/internal/game"

// Cue is a short sound effect tied to a gameplay event.
type Cue int

const (
	CueNone Cue = iota
	CueShot
	CueEnemyShot
	CueHit
	CuePlayerHit
	CueExplosion
	CuePickup
	CueLevelComplete
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueShot:
		return "shot"
	case CueEnemyShot:
		return "enemy_shot"
	case CueHit:
		return "hit"
	case CuePlayerHit:
		return "player_hit"
	case CueExplosion:
		return "explosion"
	case CuePickup:
		return "pickup"
	case CueLevelComplete:
		return "level_complete"
	case CueGameOver:
		return "game_over"
	default:
		return "none"
	}
}

// CueFor maps a session event to its sound. Events without a sound return
// CueNone and false.
func CueFor(e game.Event) (Cue, bool) {
	switch e.Key {
	case game.KeyShot:
		if e.Actor == "P" {
			return CueShot, true
		}
		return CueEnemyShot, true
	case game.KeyHit:
		return CueHit, true
	case game.KeyPlayerHit:
		return CuePlayerHit, true
	case game.KeyEnemyDestroyed:
		return CueExplosion, true
	case game.KeyPowerUpTaken:
		return CuePickup, true
	case game.KeyLevelComplete:
		return CueLevelComplete, true
	case game.KeyGameOver:
		return CueGameOver, true
	}
	return CueNone, false
}
