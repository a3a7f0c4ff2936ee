package ui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at
// inspScale.
const (
	inspScale = 2
	inspBufW  = 180
	inspBufH  = 150
	inspPad   = 4
	inspLineH = 13

	inspPickPixels = 16.0
)

var (
	inspBg     = color.RGBA{R: 14, G: 16, B: 14, A: 230}
	inspBorder = color.RGBA{R: 55, G: 80, B: 55, A: 255}
)

// Inspector tracks the selected tank by ID so the selection survives across
// snapshots and clears itself when the tank is destroyed.
type Inspector struct {
	selected int // tank ID; the player is 0
	active   bool
	rawView  bool
	buf      *ebiten.Image
}

// pickTank returns the live tank closest to at within radius world units.
func pickTank(snap game.Snapshot, at game.Vec3, radius float64) (game.TankView, bool) {
	var hit game.TankView
	best := radius * radius
	found := false
	consider := func(t game.TankView) {
		dx, dz := t.Pos.X-at.X, t.Pos.Z-at.Z
		if d2 := dx*dx + dz*dz; d2 <= best {
			best, hit, found = d2, t, true
		}
	}
	consider(snap.Player)
	for _, e := range snap.Enemies {
		consider(e)
	}
	return hit, found
}

// resolve looks up the selected tank in snap.
func (in *Inspector) resolve(snap game.Snapshot) (game.TankView, bool) {
	if !in.active {
		return game.TankView{}, false
	}
	if snap.Player.ID == in.selected {
		return snap.Player, true
	}
	for _, e := range snap.Enemies {
		if e.ID == in.selected {
			return e, true
		}
	}
	in.active = false
	return game.TankView{}, false
}

// click selects the tank under the cursor, or clears the selection on an
// empty spot.
func (in *Inspector) click(snap game.Snapshot, v view, sx, sy float64) bool {
	t, ok := pickTank(snap, v.toWorld(sx, sy), inspPickPixels/v.scale)
	in.selected, in.active = t.ID, ok
	return ok
}

func healthBar(health, maxHealth, width int) string {
	filled := 0
	if maxHealth > 0 {
		filled = health * width / maxHealth
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

// inspectorLines is the text of the panel for t.
func inspectorLines(t game.TankView, snap game.Snapshot, raw bool) []string {
	if raw {
		return []string{
			fmt.Sprintf("id=%d label=%s role=%s", t.ID, t.Label, t.Role),
			fmt.Sprintf("pos=(%.1f,%.1f,%.1f)", t.Pos.X, t.Pos.Y, t.Pos.Z),
			fmt.Sprintf("heading=%.3f", t.Heading),
			fmt.Sprintf("hp=%d/%d ai=%s", t.Health, t.MaxHealth, t.AI),
			fmt.Sprintf("tick=%d clock=%s", snap.Tick, snap.Clock),
		}
	}
	lines := []string{
		fmt.Sprintf("hp %s %d", healthBar(t.Health, t.MaxHealth, 12), t.Health),
		fmt.Sprintf("heading %3.0f deg", math.Mod(t.Heading*180/math.Pi+360, 360)),
	}
	if t.Role == game.RolePlayer {
		if snap.BoostActive {
			lines = append(lines, fmt.Sprintf("boost %.0fs", snap.BoostLeft.Seconds()))
		}
		return lines
	}
	return append(lines,
		fmt.Sprintf("state %s", t.AI),
		fmt.Sprintf("range %.1f", t.Pos.Dist(snap.Player.Pos)),
	)
}

// Draw renders the panel for the selected tank at the bottom of the arena.
func (in *Inspector) Draw(screen *ebiten.Image, snap game.Snapshot, x, y int) {
	t, ok := in.resolve(snap)
	if !ok {
		return
	}
	if in.buf == nil {
		in.buf = ebiten.NewImage(inspBufW, inspBufH)
	}
	in.buf.Clear()
	buf := in.buf
	vector.FillRect(buf, 0, 0, inspBufW, inspBufH, inspBg, false)
	vector.StrokeRect(buf, 0, 0, inspBufW, inspBufH, 1, inspBorder, false)

	viewName := "CURATED"
	if in.rawView {
		viewName = "RAW"
	}
	ly := inspPad
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ %s %s ]", t.Role, t.Label), inspPad, ly)
	ly += inspLineH
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("view: %s  [I] toggle", viewName), inspPad, ly)
	ly += inspLineH + 4
	vector.StrokeLine(buf, inspPad, float32(ly), inspBufW-inspPad, float32(ly), 1, inspBorder, false)
	ly += 4
	for _, l := range inspectorLines(t, snap, in.rawView) {
		ebitenutil.DebugPrintAt(buf, l, inspPad, ly)
		ly += inspLineH
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(x), float64(y-inspBufH*inspScale))
	screen.DrawImage(buf, opts)
}
