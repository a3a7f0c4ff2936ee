// Package tty is the terminal frontend. It renders a game.Session into a
// tcell screen and maps key presses to session commands.
package tty

import (
	"context"
	"math"
	"time"

	"github.com/Garsondee/Tank-Arena/internal/audio"
	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

const (
	// Terminals only report key presses, so a direction stays held for this
	// many frames after its last press or auto-repeat.
	holdFrames = 8

	frameInterval = 16 * time.Millisecond
)

const (
	dirUp = iota
	dirDown
	dirLeft
	dirRight
)

// Options configures the terminal frontend.
type Options struct {
	Autopilot bool
	Sound     *audio.SoundManager // nil disables sound
	Log       zerolog.Logger
}

// App drives one session in a terminal.
type App struct {
	screen  tcell.Screen
	session *game.Session
	pilot   *game.Autopilot
	sound   *audio.SoundManager
	log     zerolog.Logger

	held      [4]int
	fire      bool
	control   []game.Command
	autopilot bool
	showHelp  bool
}

// New binds a session to an initialised screen.
func New(screen tcell.Screen, s *game.Session, opts Options) *App {
	return &App{
		screen:    screen,
		session:   s,
		pilot:     game.NewAutopilot(),
		sound:     opts.Sound,
		log:       opts.Log,
		autopilot: opts.Autopilot,
	}
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.hold(dirUp)
	case tcell.KeyDown:
		a.hold(dirDown)
	case tcell.KeyLeft:
		a.hold(dirLeft)
	case tcell.KeyRight:
		a.hold(dirRight)
	case tcell.KeyEnter:
		a.control = append(a.control, game.Command{Kind: game.CmdNextLevel})
	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	}
	return true
}

func (a *App) handleRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		return false
	case 'w', 'W':
		a.hold(dirUp)
	case 's', 'S':
		a.hold(dirDown)
	case 'a', 'A':
		a.hold(dirLeft)
	case 'd', 'D':
		a.hold(dirRight)
	case ' ':
		a.fire = true
	case 'p', 'P':
		a.control = append(a.control, game.Command{Kind: game.CmdTogglePause})
	case 'r', 'R':
		a.session.SimLog().Reset()
		a.control = append(a.control, game.Command{Kind: game.CmdRestart})
	case 'n', 'N':
		a.control = append(a.control, game.Command{Kind: game.CmdNextLevel})
	case 't', 'T':
		a.autopilot = !a.autopilot
		a.log.Info().Bool("autopilot", a.autopilot).Msg("autopilot toggled")
	case 'h', 'H', '?':
		a.showHelp = !a.showHelp
	}
	return true
}

// hold presses dir and releases its opposite, so reversing is immediate.
func (a *App) hold(dir int) {
	a.held[dir] = holdFrames
	a.held[dir^1] = 0
}

// facing is the heading of the held directions. Terminal play has no mouse,
// so the hull turns to face where it drives.
func (a *App) facing() (float64, bool) {
	var dx, dz float64
	if a.held[dirUp] > 0 {
		dz--
	}
	if a.held[dirDown] > 0 {
		dz++
	}
	if a.held[dirLeft] > 0 {
		dx--
	}
	if a.held[dirRight] > 0 {
		dx++
	}
	if dx == 0 && dz == 0 {
		return 0, false
	}
	return math.Atan2(dx, dz), true
}

// commands collects this frame's commands and ages the held directions.
func (a *App) commands() []game.Command {
	cmds := a.control
	a.control = nil

	if a.autopilot {
		a.fire = false
		a.held = [4]int{}
		return append(cmds, a.pilot.Plan(a.session.Snapshot())...)
	}

	move := game.KeysCmd(a.held[dirUp] > 0, a.held[dirDown] > 0, a.held[dirLeft] > 0, a.held[dirRight] > 0)
	if h, ok := a.facing(); ok {
		move.Move.HasAim = true
		move.Move.Aim = h
	}
	cmds = append(cmds, move)
	if a.fire {
		cmds = append(cmds, game.Command{Kind: game.CmdFire})
		a.fire = false
	}
	for i := range a.held {
		if a.held[i] > 0 {
			a.held[i]--
		}
	}
	return cmds
}

// Frame submits input, steps the session once and redraws.
func (a *App) Frame() {
	for _, c := range a.commands() {
		a.session.Submit(c)
	}
	a.session.Step()
	if a.sound != nil {
		a.sound.HandleEvents(a.session.Events())
	}
	a.Draw()
}

// Run polls terminal events and steps the session on a fixed ticker until
// the user quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan tcell.Event, 100)
	go pollEvents(ctx, a.screen, events)

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Frame()
		}
	}
}

// pollEvents forwards screen events until the screen is finalised (then it
// closes events) or ctx ends.
func pollEvents(ctx context.Context, screen tcell.Screen, events chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// headingGlyph picks the arrow closest to a heading. Heading 0 drives
// toward +Z, which the terminal draws downward.
func headingGlyph(h float64) rune {
	const glyphs = "↓↘→↗↑↖←↙"
	runes := []rune(glyphs)
	idx := int(math.Round(h/(math.Pi/4))) % len(runes)
	if idx < 0 {
		idx += len(runes)
	}
	return runes[idx]
}
