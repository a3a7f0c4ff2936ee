package ui

import (
	"math"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	joystickRadius    = 50.0 // px; full deflection
	joystickThreshold = 0.1  // deflection below this is ignored
)

// keyState is the per-frame input the game reacts to. Direction and fire are
// held; the rest are edge-triggered.
type keyState struct {
	Up, Down, Left, Right bool
	Fire                  bool

	Pause     bool
	Restart   bool
	NextLevel bool
	Autopilot bool
	HUD       bool
	Copy      bool
	Mute      bool
	Inspect   bool
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func readKeys() keyState {
	return keyState{
		Up:    anyPressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Down:  anyPressed(ebiten.KeyS, ebiten.KeyArrowDown),
		Left:  anyPressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		Right: anyPressed(ebiten.KeyD, ebiten.KeyArrowRight),
		Fire:  anyPressed(ebiten.KeySpace),

		Pause:     anyJustPressed(ebiten.KeyP, ebiten.KeyEscape),
		Restart:   anyJustPressed(ebiten.KeyR),
		NextLevel: anyJustPressed(ebiten.KeyN, ebiten.KeyEnter),
		Autopilot: anyJustPressed(ebiten.KeyT),
		HUD:       anyJustPressed(ebiten.KeyH),
		Copy:      anyJustPressed(ebiten.KeyC),
		Mute:      anyJustPressed(ebiten.KeyM),
		Inspect:   anyJustPressed(ebiten.KeyI),
	}
}

// joystick is a static on-screen stick. Its centre is fixed; a touch that
// starts inside the outer ring drives it until released.
type joystick struct {
	cx, cy  float64
	touch   ebiten.TouchID
	active  bool
	dx, dy  float64
	touches []ebiten.TouchID
}

func (j *joystick) update() {
	j.touches = inpututil.AppendJustPressedTouchIDs(j.touches[:0])
	for _, id := range j.touches {
		x, y := ebiten.TouchPosition(id)
		if math.Hypot(float64(x)-j.cx, float64(y)-j.cy) <= joystickRadius*1.5 {
			j.touch = id
			j.active = true
			break
		}
	}
	if !j.active {
		return
	}
	if inpututil.IsTouchJustReleased(j.touch) {
		j.active = false
		j.dx, j.dy = 0, 0
		return
	}
	x, y := ebiten.TouchPosition(j.touch)
	j.dx, j.dy = float64(x)-j.cx, float64(y)-j.cy
}

// stick converts a drag offset in screen pixels to a joystick angle
// (0 = right, pi/2 = up) and a magnitude in [0,1]. ok is false inside the
// dead zone.
func stick(dx, dy float64) (angle, magnitude float64, ok bool) {
	magnitude = math.Min(math.Hypot(dx, dy)/joystickRadius, 1)
	if magnitude < joystickThreshold {
		return 0, 0, false
	}
	angle = math.Atan2(-dy, dx)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle, magnitude, true
}

// frameInput is everything read from the devices in one frame.
type frameInput struct {
	keys             keyState
	stickDX, stickDY float64 // touch stick drag offset in pixels
	hasAim           bool
	aim              float64 // hull heading toward the cursor
}

// aimAt returns the heading from a tank at from toward the point at.
func aimAt(from, at game.Vec3) float64 {
	return math.Atan2(at.X-from.X, at.Z-from.Z)
}

// controlCommands are the state-machine requests of one frame. A level
// advance is only sent when the level is complete.
func controlCommands(ks keyState, state game.State) []game.Command {
	var cmds []game.Command
	if ks.Restart {
		cmds = append(cmds, game.Command{Kind: game.CmdRestart})
	}
	switch {
	case ks.NextLevel && state == game.StateLevelComplete:
		cmds = append(cmds, game.Command{Kind: game.CmdNextLevel})
	case ks.Pause:
		cmds = append(cmds, game.Command{Kind: game.CmdTogglePause})
	}
	return cmds
}

// driveCommands are the movement and trigger requests of one frame. The
// stick, when deflected, overrides the direction keys.
func driveCommands(in frameInput) []game.Command {
	ks := in.keys
	move := game.KeysCmd(ks.Up, ks.Down, ks.Left, ks.Right)
	if angle, mag, ok := stick(in.stickDX, in.stickDY); ok {
		move = game.StickCmd(angle, mag)
	}
	if in.hasAim {
		move.Move.HasAim = true
		move.Move.Aim = in.aim
	}
	cmds := []game.Command{move}
	if ks.Fire {
		cmds = append(cmds, game.Command{Kind: game.CmdFire})
	}
	return cmds
}
