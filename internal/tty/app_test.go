package tty

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	s := game.NewSession(game.DefaultConfig(), game.WithSeed(11))
	return New(screen, s, Options{Log: zerolog.Nop()}), screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestHeadingGlyph(t *testing.T) {
	assert.Equal(t, '↓', headingGlyph(0))
	assert.Equal(t, '→', headingGlyph(math.Pi/2))
	assert.Equal(t, '↑', headingGlyph(math.Pi))
	assert.Equal(t, '←', headingGlyph(3*math.Pi/2))
	assert.Equal(t, '←', headingGlyph(-math.Pi/2))
	assert.Equal(t, '↓', headingGlyph(2*math.Pi))
}

func TestGridCell(t *testing.T) {
	g := newGrid(80, 24, 25)
	require.Equal(t, 80-sidebarWidth-2, g.w)
	require.Equal(t, 22, g.h)

	x, y := g.cell(game.Vec3{X: -25, Z: -25})
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)

	x, y = g.cell(game.Vec3{X: 25, Z: 25})
	assert.Equal(t, g.x+g.w-1, x, "far edge clamps inside the grid")
	assert.Equal(t, g.y+g.h-1, y)
}

func TestQuitKeys(t *testing.T) {
	app, _ := newTestApp(t)
	assert.False(t, app.HandleEvent(key('q')))
	assert.False(t, app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, app.HandleEvent(key('x')))
}

func TestHeldDirectionDecays(t *testing.T) {
	app, _ := newTestApp(t)
	app.HandleEvent(key('a'))

	for i := 0; i < holdFrames; i++ {
		cmds := app.commands()
		require.NotEmpty(t, cmds)
		assert.True(t, cmds[0].Move.Left, "frame %d", i)
	}
	cmds := app.commands()
	assert.True(t, cmds[0].Move.Idle(), "direction should release after the hold window")
}

func TestReversingReleasesOpposite(t *testing.T) {
	app, _ := newTestApp(t)
	app.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	app.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))

	m := app.commands()[0].Move
	assert.True(t, m.Right)
	assert.False(t, m.Left)
}

func TestFireIsOneShot(t *testing.T) {
	app, _ := newTestApp(t)
	app.HandleEvent(key(' '))

	cmds := app.commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, game.CmdFire, cmds[1].Kind)
	assert.Len(t, app.commands(), 1)
}

func TestFrame_PauseToggle(t *testing.T) {
	app, _ := newTestApp(t)
	app.HandleEvent(key('p'))
	app.Frame()
	assert.True(t, app.session.Paused())

	app.HandleEvent(key('p'))
	app.Frame()
	assert.Equal(t, game.StateRunning, app.session.State())
}

func TestFrame_FireSpawnsShell(t *testing.T) {
	app, _ := newTestApp(t)
	app.HandleEvent(key(' '))
	app.Frame()

	assert.Len(t, app.session.SimLog().FilterActor("P"), 1)
	assert.NotEmpty(t, app.session.Snapshot().Shells)
}

func TestDraw_PlayerAndSidebar(t *testing.T) {
	app, screen := newTestApp(t)
	app.Draw()

	w, h := screen.Size()
	g := newGrid(w, h, app.session.Config().ArenaExtent)
	px, py := g.cell(app.session.PlayerPosition())
	r, _, _, _ := screen.GetContent(px, py)
	assert.Equal(t, headingGlyph(app.session.PlayerHeading()), r)

	corner, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, '┌', corner)

	title := ""
	for x := g.x + g.w + 2; x < g.x+g.w+12; x++ {
		c, _, _, _ := screen.GetContent(x, 1)
		title += string(c)
	}
	assert.Equal(t, "TANK ARENA", title)
}

func TestDraw_Banner(t *testing.T) {
	app, screen := newTestApp(t)
	app.session.Pause()
	app.Draw()

	w, h := screen.Size()
	g := newGrid(w, h, app.session.Config().ArenaExtent)
	text, _ := bannerText(game.StatePaused)
	x := g.x + (g.w-len(text))/2
	c, _, _, _ := screen.GetContent(x+1, g.y+g.h/2)
	assert.Equal(t, 'P', c)
}

func TestSidebarLines(t *testing.T) {
	snap := game.Snapshot{Level: 2, Score: 300, State: game.StateRunning,
		Player: game.TankView{Health: 250, MaxHealth: 500}}
	lines := sidebarLines(snap, true)
	assert.Contains(t, lines, "Level   2")
	assert.Contains(t, lines, "Health  250/500")
	assert.Contains(t, lines, "[autopilot]")
}

func TestAutopilotDrivesSession(t *testing.T) {
	app, _ := newTestApp(t)
	app.HandleEvent(key('t'))
	start := app.session.PlayerPosition()
	for i := 0; i < 120; i++ {
		app.Frame()
	}
	assert.NotEqual(t, start, app.session.PlayerPosition())
}

func TestRun_StopsOnQuitAndCancel(t *testing.T) {
	app, screen := newTestApp(t)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}

	app2, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { done <- app2.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestFacing_FollowsHeldDirection(t *testing.T) {
	app, _ := newTestApp(t)
	_, ok := app.facing()
	assert.False(t, ok)

	app.HandleEvent(key('d'))
	h, ok := app.facing()
	require.True(t, ok)
	assert.InDelta(t, math.Pi/2, h, 1e-9)

	app.HandleEvent(key('w'))
	h, _ = app.facing()
	assert.InDelta(t, 3*math.Pi/4, h, 1e-9, "up+right faces the diagonal")
}

func TestFrame_ShellLeavesAlongHeldDirection(t *testing.T) {
	app, _ := newTestApp(t)
	app.HandleEvent(key('a'))
	app.HandleEvent(key(' '))
	app.Frame()

	shells := app.session.Snapshot().Shells
	require.NotEmpty(t, shells)
	assert.InDelta(t, -math.Pi/2, shells[0].Heading, 1e-9)
	assert.Equal(t, '←', headingGlyph(app.session.PlayerHeading()))
}

func TestPollEvents_StopsWhenNobodyReads(t *testing.T) {
	_, screen := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan tcell.Event) // never drained

	done := make(chan struct{})
	go func() {
		pollEvents(ctx, screen, events)
		close(done)
	}()
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pollEvents stayed blocked on a full channel after cancel")
	}
}

func TestRestart_ClearsSessionLog(t *testing.T) {
	app, _ := newTestApp(t)
	for i := 0; i < 30; i++ {
		app.Frame()
	}
	app.HandleEvent(key('r'))
	app.Frame()

	log := app.session.SimLog()
	assert.Equal(t, 1, log.Count(game.CatSession, game.KeyLevelStart), "only the restarted level remains")
	assert.Equal(t, 1, app.session.Level())
}
