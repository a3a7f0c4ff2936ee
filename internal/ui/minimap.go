package ui

import (
	"image/color"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	minimapSize  = 150
	minimapGrid  = 10
	minimapDotP  = 6
	minimapDotE  = 4
	minimapInset = 10
)

// minimapPoint scales a world position into a size x size square whose
// origin is the arena's top-left corner.
func minimapPoint(p game.Vec3, extent float64, size int) (float32, float32) {
	scale := float64(size) / (2 * extent)
	return float32((p.X + extent) * scale), float32((p.Z + extent) * scale)
}

func drawMinimap(dst *ebiten.Image, snap game.Snapshot, x, y int) {
	ox, oy := float32(x), float32(y)
	vector.FillRect(dst, ox, oy, minimapSize, minimapSize, color.RGBA{A: 128}, false)
	vector.FillRect(dst, ox, oy, minimapSize, minimapSize, color.RGBA{G: 119, A: 77}, false)

	step := float32(minimapSize) / minimapGrid
	for i := 1; i < minimapGrid; i++ {
		d := float32(i) * step
		vector.StrokeLine(dst, ox+d, oy, ox+d, oy+minimapSize, 1, gridColor, false)
		vector.StrokeLine(dst, ox, oy+d, ox+minimapSize, oy+d, 1, gridColor, false)
	}
	vector.StrokeRect(dst, ox, oy, minimapSize, minimapSize, 1, color.White, false)

	for _, e := range snap.Enemies {
		ex, ey := minimapPoint(e.Pos, snap.Extent, minimapSize)
		vector.FillCircle(dst, ox+ex, oy+ey, minimapDotE, color.RGBA{R: 255, A: 255}, true)
		vector.StrokeCircle(dst, ox+ex, oy+ey, minimapDotE, 1, color.White, true)
	}
	px, py := minimapPoint(snap.Player.Pos, snap.Extent, minimapSize)
	vector.FillCircle(dst, ox+px, oy+py, minimapDotP, color.RGBA{G: 255, A: 255}, true)
	vector.StrokeCircle(dst, ox+px, oy+py, minimapDotP, 1, color.White, true)
}
