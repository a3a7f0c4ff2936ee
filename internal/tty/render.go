package tty

import (
	"fmt"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/gdamore/tcell/v2"
)

const sidebarWidth = 26

var (
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleGround   = tcell.StyleDefault.Foreground(tcell.ColorDarkOliveGreen)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorTan)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleBoost    = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleEnemy    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleShell    = tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	styleEnemyHot = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	styleHealth   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleAttack   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBanner   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGold).Bold(true)
)

// grid maps the arena's ground plane onto a rectangle of terminal cells
// inside a one-cell border.
type grid struct {
	x, y, w, h int
	extent     float64
}

func newGrid(screenW, screenH int, extent float64) grid {
	w := screenW - sidebarWidth - 2
	h := screenH - 2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return grid{x: 1, y: 1, w: w, h: h, extent: extent}
}

// cell returns the terminal cell for a world position, clamped to the grid.
func (g grid) cell(p game.Vec3) (int, int) {
	cx := int((p.X + g.extent) / (2 * g.extent) * float64(g.w))
	cy := int((p.Z + g.extent) / (2 * g.extent) * float64(g.h))
	return g.x + clamp(cx, 0, g.w-1), g.y + clamp(cy, 0, g.h-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (a *App) put(x, y int, r rune, st tcell.Style) {
	a.screen.SetContent(x, y, r, nil, st)
}

func (a *App) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		a.put(x, y, r, st)
		x++
	}
}

// Draw renders the current snapshot.
func (a *App) Draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	snap := a.session.Snapshot()
	g := newGrid(w, h, snap.Extent)

	a.drawFrame(g)
	for _, o := range snap.Obstacles {
		x, y := g.cell(o)
		a.put(x, y, '#', styleObstacle)
	}
	for _, pu := range snap.PowerUps {
		x, y := g.cell(pu.Pos)
		if pu.Kind == game.PowerUpAttack {
			a.put(x, y, '*', styleAttack)
		} else {
			a.put(x, y, '+', styleHealth)
		}
	}
	for _, e := range snap.Enemies {
		x, y := g.cell(e.Pos)
		st := styleEnemy
		if e.AI == game.AIAttack {
			st = styleEnemyHot
		}
		a.put(x, y, headingGlyph(e.Heading), st)
	}
	px, py := g.cell(snap.Player.Pos)
	pst := stylePlayer
	if snap.BoostActive {
		pst = styleBoost
	}
	a.put(px, py, headingGlyph(snap.Player.Heading), pst)
	for _, s := range snap.Shells {
		x, y := g.cell(s.Pos)
		if s.PlayerOwned {
			a.put(x, y, '•', styleShell)
		} else {
			a.put(x, y, '•', styleEnemyHot)
		}
	}

	a.drawSidebar(g.x+g.w+2, snap)
	if title, ok := bannerText(snap.State); ok {
		a.text(g.x+(g.w-len(title))/2, g.y+g.h/2, title, styleBanner)
	}
	a.screen.Show()
}

func (a *App) drawFrame(g grid) {
	for x := g.x; x < g.x+g.w; x++ {
		a.put(x, g.y-1, '─', styleBorder)
		a.put(x, g.y+g.h, '─', styleBorder)
	}
	for y := g.y; y < g.y+g.h; y++ {
		a.put(g.x-1, y, '│', styleBorder)
		a.put(g.x+g.w, y, '│', styleBorder)
	}
	a.put(g.x-1, g.y-1, '┌', styleBorder)
	a.put(g.x+g.w, g.y-1, '┐', styleBorder)
	a.put(g.x-1, g.y+g.h, '└', styleBorder)
	a.put(g.x+g.w, g.y+g.h, '┘', styleBorder)
	for y := g.y; y < g.y+g.h; y += 4 {
		for x := g.x; x < g.x+g.w; x += 8 {
			a.put(x, y, '·', styleGround)
		}
	}
}

func sidebarLines(snap game.Snapshot, autopilot bool) []string {
	lines := []string{
		"TANK ARENA",
		"",
		fmt.Sprintf("Level   %d", snap.Level),
		fmt.Sprintf("Score   %d", snap.Score),
		fmt.Sprintf("Health  %d/%d", snap.Player.Health, snap.Player.MaxHealth),
		fmt.Sprintf("Enemies %d", len(snap.Enemies)),
		fmt.Sprintf("State   %s", snap.State),
	}
	if snap.BoostActive {
		lines = append(lines, fmt.Sprintf("Boost   %.0fs", snap.BoostLeft.Seconds()))
	}
	if autopilot {
		lines = append(lines, "", "[autopilot]")
	}
	return lines
}

var helpLines = []string{
	"wasd/arrows move",
	"space fire",
	"p pause  r restart",
	"n/enter next level",
	"t autopilot  q quit",
}

func (a *App) drawSidebar(x int, snap game.Snapshot) {
	y := 1
	for _, l := range sidebarLines(snap, a.autopilot) {
		a.text(x, y, l, styleText)
		y++
	}
	y++
	if a.showHelp {
		for _, l := range helpLines {
			a.text(x, y, l, styleDim)
			y++
		}
	} else {
		a.text(x, y, "h help", styleDim)
	}
}

func bannerText(st game.State) (string, bool) {
	switch st {
	case game.StatePaused:
		return " PAUSED - p to resume ", true
	case game.StateGameOver:
		return " GAME OVER - r to restart ", true
	case game.StateLevelComplete:
		return " LEVEL COMPLETE - n for next ", true
	}
	return "", false
}
