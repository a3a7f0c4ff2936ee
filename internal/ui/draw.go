package ui

import (
	"image/color"
	"math"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	groundColor   = color.RGBA{R: 0, G: 74, B: 0, A: 255}
	gridColor     = color.RGBA{R: 255, G: 255, B: 255, A: 22}
	borderColor   = color.RGBA{R: 65, G: 90, B: 65, A: 255}
	obstacleColor = color.RGBA{R: 120, G: 110, B: 95, A: 255}
	playerColor   = color.RGBA{R: 40, G: 220, B: 60, A: 255}
	enemyColor    = color.RGBA{R: 220, G: 60, B: 50, A: 255}
	boostColor    = color.RGBA{R: 255, G: 200, B: 40, A: 255}
	shellColor    = color.RGBA{R: 255, G: 240, B: 160, A: 255}
	healthPUColor = color.RGBA{R: 60, G: 230, B: 90, A: 255}
	attackPUColor = color.RGBA{R: 240, G: 60, B: 60, A: 255}
	hudText       = color.RGBA{R: 210, G: 230, B: 210, A: 255}
)

const (
	tankRadius     = 1.0 // world units
	obstacleHalf   = 1.0
	shellRadius    = 0.25
	powerUpRadius  = 0.5
	barrelLength   = 1.8
	healthBarWidth = 2.4
)

// view maps the arena's ground plane onto a square region of the screen.
// World X runs right and world Z runs down.
type view struct {
	originX, originY float64 // screen position of the arena's top-left corner
	scale            float64 // pixels per world unit
	extent           float64 // arena half-size
}

func newView(x, y, size int, extent float64) view {
	return view{originX: float64(x), originY: float64(y), scale: float64(size) / (2 * extent), extent: extent}
}

func (v view) toScreen(p game.Vec3) (float32, float32) {
	return float32(v.originX + (p.X+v.extent)*v.scale), float32(v.originY + (p.Z+v.extent)*v.scale)
}

func (v view) px(units float64) float32 { return float32(units * v.scale) }

// toWorld is the inverse of toScreen on the ground plane.
func (v view) toWorld(sx, sy float64) game.Vec3 {
	return game.Vec3{X: (sx-v.originX)/v.scale - v.extent, Z: (sy-v.originY)/v.scale - v.extent}
}

func (v view) drawGround(dst *ebiten.Image) {
	size := float32(2 * v.extent * v.scale)
	ox, oy := float32(v.originX), float32(v.originY)
	vector.FillRect(dst, ox, oy, size, size, groundColor, false)
	for u := 0.0; u <= 2*v.extent; u += 5 {
		d := float32(u * v.scale)
		vector.StrokeLine(dst, ox+d, oy, ox+d, oy+size, 1, gridColor, false)
		vector.StrokeLine(dst, ox, oy+d, ox+size, oy+d, 1, gridColor, false)
	}
	vector.StrokeRect(dst, ox-1, oy-1, size+2, size+2, 2, borderColor, false)
}

func (v view) drawObstacles(dst *ebiten.Image, obstacles []game.Vec3) {
	side := v.px(2 * obstacleHalf)
	for _, o := range obstacles {
		x, y := v.toScreen(o)
		vector.FillRect(dst, x-side/2, y-side/2, side, side, obstacleColor, false)
	}
}

func (v view) drawPowerUps(dst *ebiten.Image, pus []game.PowerUpView) {
	for _, pu := range pus {
		x, y := v.toScreen(pu.Pos)
		c := healthPUColor
		if pu.Kind == game.PowerUpAttack {
			c = attackPUColor
		}
		// Spin drives a pulsing halo in place of the 3D rotation.
		r := v.px(powerUpRadius)
		halo := r * float32(1.4+0.2*math.Sin(pu.Spin*4))
		vector.StrokeCircle(dst, x, y, halo, 1, c, true)
		vector.FillCircle(dst, x, y, r, c, true)
	}
}

func (v view) drawTank(dst *ebiten.Image, t game.TankView, body color.RGBA) {
	x, y := v.toScreen(t.Pos)
	r := v.px(tankRadius)
	vector.FillCircle(dst, x, y, r, body, true)

	// Heading 0 faces +Z, which is screen down.
	bx := x + v.px(barrelLength)*float32(math.Sin(t.Heading))
	by := y + v.px(barrelLength)*float32(math.Cos(t.Heading))
	vector.StrokeLine(dst, x, y, bx, by, float32(math.Max(2, float64(r)/3)), body, true)

	if t.MaxHealth > 0 {
		w := v.px(healthBarWidth)
		frac := float32(t.Health) / float32(t.MaxHealth)
		top := y - r - 6
		vector.FillRect(dst, x-w/2, top, w, 3, color.RGBA{R: 40, G: 0, B: 0, A: 200}, false)
		vector.FillRect(dst, x-w/2, top, w*frac, 3, body, false)
	}
}

func (v view) drawShells(dst *ebiten.Image, shells []game.ShellView) {
	r := float32(math.Max(2, float64(v.px(shellRadius))))
	for _, s := range shells {
		x, y := v.toScreen(s.Pos)
		c := shellColor
		if !s.PlayerOwned {
			c = enemyColor
		}
		vector.FillCircle(dst, x, y, r, c, true)
	}
}

// drawWorld renders one snapshot of the arena.
func (v view) drawWorld(dst *ebiten.Image, snap game.Snapshot) {
	v.drawGround(dst)
	v.drawObstacles(dst, snap.Obstacles)
	v.drawPowerUps(dst, snap.PowerUps)
	for _, e := range snap.Enemies {
		v.drawTank(dst, e, enemyColor)
	}
	body := playerColor
	if snap.BoostActive {
		body = boostColor
	}
	v.drawTank(dst, snap.Player, body)
	v.drawShells(dst, snap.Shells)
}
