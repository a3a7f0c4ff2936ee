// Package ui is the desktop frontend: an ebiten window that feeds input into
// a game.Session and draws its snapshot every frame.
package ui

import (
	"image/color"

	"github.com/Garsondee/Tank-Arena/internal/audio"
	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
)

const (
	arenaMargin   = 12
	noticeFrames  = 180
	minArenaPixel = 200
)

// Options configures the frontend.
type Options struct {
	Width, Height int
	Sound         *audio.SoundManager // nil disables sound
	Log           zerolog.Logger
	Autopilot     bool
}

// Game adapts a Session to ebiten.Game.
type Game struct {
	session *game.Session
	sound   *audio.SoundManager
	log     zerolog.Logger
	pilot   *game.Autopilot
	feed    *CombatFeed
	stick   joystick
	inspect Inspector

	width  int
	height int
	view   view

	autopilot   bool
	muted       bool
	showKeys    bool
	notice      string
	noticeUntil int
	frame       int
}

// New creates the frontend for s.
func New(s *game.Session, opts Options) *Game {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	g := &Game{
		session:   s,
		sound:     opts.Sound,
		log:       opts.Log,
		pilot:     game.NewAutopilot(),
		feed:      NewCombatFeed(),
		width:     opts.Width,
		height:    opts.Height,
		autopilot: opts.Autopilot,
		showKeys:  true,
	}
	g.layout()
	g.feed.AddEvents(s.SimLog().Entries())
	return g
}

// layout sizes the arena square to the space left of the feed panel and
// places the touch stick in the bottom-left corner.
func (g *Game) layout() {
	avail := g.width - feedPanelWidth
	size := avail
	if g.height < size {
		size = g.height
	}
	size -= 2 * arenaMargin
	if size < minArenaPixel {
		size = minArenaPixel
	}
	x := (avail - size) / 2
	g.view = newView(x, arenaMargin, size, g.session.Config().ArenaExtent)
	g.stick.cx = float64(x) + joystickRadius*2
	g.stick.cy = float64(arenaMargin+size) - joystickRadius*2
}

func (g *Game) readInput() frameInput {
	in := frameInput{keys: readKeys()}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		in.keys.Fire = true
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		cx, cy := ebiten.CursorPosition()
		in.hasAim = true
		in.aim = aimAt(g.session.PlayerPosition(), g.view.toWorld(float64(cx), float64(cy)))
	}
	if g.stick.active {
		in.stickDX, in.stickDY = g.stick.dx, g.stick.dy
	}
	return in
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeUntil = g.frame + noticeFrames
}

// clearLogs empties the feed and the session log before a restart, so a
// long play session does not carry every earlier game.
func (g *Game) clearLogs() {
	g.feed.Clear()
	g.session.SimLog().Reset()
}

// Update reads input, submits commands and advances the session one step.
func (g *Game) Update() error {
	g.frame++
	g.stick.update()
	in := g.readInput()
	ks := in.keys

	if ks.Autopilot {
		g.autopilot = !g.autopilot
		g.log.Info().Bool("autopilot", g.autopilot).Msg("autopilot toggled")
	}
	if ks.HUD {
		g.showKeys = !g.showKeys
	}
	if ks.Mute && g.sound != nil {
		g.muted = !g.muted
		g.sound.SetMuted(g.muted)
	}
	if ks.Copy {
		if err := copyReport(g.session); err != nil {
			g.log.Warn().Err(err).Msg("clipboard unavailable")
			g.setNotice("clipboard unavailable")
		} else {
			g.setNotice("session log copied")
		}
	}
	if ks.Restart {
		g.clearLogs()
	}
	if ks.Inspect {
		g.inspect.rawView = !g.inspect.rawView
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		cx, cy := ebiten.CursorPosition()
		g.inspect.click(g.session.Snapshot(), g.view, float64(cx), float64(cy))
	}

	cmds := controlCommands(ks, g.session.State())
	if g.autopilot {
		cmds = append(cmds, g.pilot.Plan(g.session.Snapshot())...)
	} else {
		cmds = append(cmds, driveCommands(in)...)
	}
	for _, c := range cmds {
		g.session.Submit(c)
	}

	g.session.Step()
	events := g.session.Events()
	g.feed.AddEvents(events)
	if g.sound != nil {
		g.sound.HandleEvents(events)
	}
	if g.frame > g.noticeUntil {
		g.notice = ""
	}
	return nil
}

// Draw renders the arena, HUD, minimap and combat feed.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})
	snap := g.session.Snapshot()

	g.view.drawWorld(screen, snap)

	arenaX, arenaY := int(g.view.originX), int(g.view.originY)
	arenaSize := int(2 * g.view.extent * g.view.scale)
	drawPanel(screen, hudLines(snap, hudStatus{
		autopilot: g.autopilot,
		muted:     g.muted,
		showKeys:  g.showKeys,
		notice:    g.notice,
	}), arenaX+minimapInset, arenaY+minimapInset)
	drawMinimap(screen, snap, arenaX+arenaSize-minimapSize-minimapInset, arenaY+minimapInset)
	g.inspect.Draw(screen, snap, arenaX+arenaSize-inspBufW*inspScale-minimapInset, arenaY+arenaSize-minimapInset)

	if g.stick.active {
		vector.StrokeCircle(screen, float32(g.stick.cx), float32(g.stick.cy), joystickRadius, 3, color.RGBA{R: 255, G: 255, B: 255, A: 80}, true)
		vector.FillCircle(screen, float32(g.stick.cx+g.stick.dx), float32(g.stick.cy+g.stick.dy), 8, color.RGBA{R: 255, G: 255, B: 255, A: 140}, true)
	}

	if title, hint, ok := banner(snap.State, snap.Score); ok {
		drawBanner(screen, title, hint, arenaX+arenaSize/2, arenaY+arenaSize/2)
	}

	g.feed.Draw(screen, g.width-feedPanelWidth, g.height)
}

// Layout keeps a fixed logical resolution; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
