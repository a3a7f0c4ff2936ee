package game

import "math"

const (
	autopilotEngageRange   = 8.0
	autopilotFireRange     = 14.0
	autopilotFireAlignment = 0.15
	autopilotRetreatHealth = 0.35
)

// Autopilot drives the player tank from snapshots alone, through the same
// command channel a human uses. The headless report and the terminal demo
// run on it.
type Autopilot struct {
	EngageRange   float64 // close to this distance before stopping to shoot
	FireRange     float64
	RetreatHealth float64 // health fraction below which health pickups take priority
}

// NewAutopilot returns an autopilot with the standard tuning.
func NewAutopilot() *Autopilot {
	return &Autopilot{
		EngageRange:   autopilotEngageRange,
		FireRange:     autopilotFireRange,
		RetreatHealth: autopilotRetreatHealth,
	}
}

// Plan returns the commands for the next step.
func (a *Autopilot) Plan(snap Snapshot) []Command {
	switch snap.State {
	case StateLevelComplete:
		return []Command{{Kind: CmdNextLevel}}
	case StateRunning:
	default:
		return nil
	}

	player := snap.Player
	if hp := float64(player.Health) / float64(max(1, player.MaxHealth)); hp < a.RetreatHealth {
		if pu, ok := nearestPowerUp(snap, PowerUpHealth); ok {
			return []Command{MoveCmd(a.approach(player.Pos, pu.Pos, 0))}
		}
	}

	target, ok := snap.Nearest()
	if !ok {
		if pu, ok := nearestPowerUp(snap, -1); ok {
			return []Command{MoveCmd(a.approach(player.Pos, pu.Pos, 0))}
		}
		return []Command{MoveCmd(MoveCommand{})}
	}

	dist := player.Pos.Dist(target.Pos)
	move := a.approach(player.Pos, target.Pos, a.EngageRange)
	if pu, ok := nearestPowerUp(snap, -1); ok && pu.Pos.Planar().Dist(player.Pos.Planar()) < dist {
		move = a.approach(player.Pos, pu.Pos, 0)
	}
	cmds := []Command{MoveCmd(move)}
	want := headingOf(target.Pos.Sub(player.Pos))
	if dist <= a.FireRange && math.Abs(normalizeAngle(want-player.Heading)) < autopilotFireAlignment {
		cmds = append(cmds, Command{Kind: CmdFire})
	}
	return cmds
}

// approach moves toward dst until within stop, always aiming at it.
func (a *Autopilot) approach(from, dst Vec3, stop float64) MoveCommand {
	d := dst.Sub(from).Planar()
	m := MoveCommand{HasAim: true, Aim: headingOf(d)}
	if d.Len() > stop {
		m.Analog = true
		m.Angle = math.Atan2(-d.Z, d.X)
		m.Magnitude = 1
	}
	return m
}

// nearestPowerUp finds the closest power-up of kind; a negative kind
// matches any.
func nearestPowerUp(snap Snapshot, kind PowerUpKind) (PowerUpView, bool) {
	var best PowerUpView
	bestD := -1.0
	for _, pu := range snap.PowerUps {
		if kind >= 0 && pu.Kind != kind {
			continue
		}
		d := pu.Pos.Planar().Dist(snap.Player.Pos.Planar())
		if bestD < 0 || d < bestD {
			best, bestD = pu, d
		}
	}
	return best, bestD >= 0
}
