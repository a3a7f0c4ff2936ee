package game

import "math"

// CommandKind identifies what a frontend is asking the session to do.
type CommandKind int

const (
	CmdMove CommandKind = iota
	CmdFire
	CmdPause
	CmdResume
	CmdTogglePause
	CmdRestart
	CmdNextLevel
)

func (k CommandKind) String() string {
	switch k {
	case CmdMove:
		return "move"
	case CmdFire:
		return "fire"
	case CmdPause:
		return "pause"
	case CmdResume:
		return "resume"
	case CmdTogglePause:
		return "toggle_pause"
	case CmdRestart:
		return "restart"
	case CmdNextLevel:
		return "next_level"
	default:
		return "unknown"
	}
}

// Command is one message on the session's input channel.
type Command struct {
	Kind CommandKind
	Move MoveCommand // only read for CmdMove
}

// MoveCommand is a normalized movement request for the player tank.
//
// Discrete input sets the direction flags (held keys). Analog input sets
// Analog with a joystick Angle (0 = screen right, pi/2 = screen up) and a
// Magnitude in [0,1]. Aim, when set, points the hull directly.
type MoveCommand struct {
	Up, Down, Left, Right bool

	Analog    bool
	Angle     float64
	Magnitude float64

	HasAim bool
	Aim    float64
}

// Idle reports whether the command asks for no translation at all.
func (m MoveCommand) Idle() bool {
	if m.Analog {
		return m.Magnitude <= 0
	}
	return !m.Up && !m.Down && !m.Left && !m.Right
}

// analogDirection converts the joystick angle to a world-space unit vector.
// Screen up maps to -Z, matching the discrete Up key.
func (m MoveCommand) analogDirection() Vec3 {
	return Vec3{X: math.Cos(m.Angle), Z: -math.Sin(m.Angle)}
}

// MoveCmd wraps a movement request.
func MoveCmd(m MoveCommand) Command { return Command{Kind: CmdMove, Move: m} }

// KeysCmd builds a discrete movement command from held direction keys.
func KeysCmd(up, down, left, right bool) Command {
	return MoveCmd(MoveCommand{Up: up, Down: down, Left: left, Right: right})
}

// StickCmd builds an analog movement command. Magnitude is clamped to [0,1].
func StickCmd(angle, magnitude float64) Command {
	return MoveCmd(MoveCommand{Analog: true, Angle: angle, Magnitude: clampf(magnitude, 0, 1)})
}
