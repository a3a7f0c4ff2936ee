package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	hudLineH = 15
	hudCharW = 7 // Face7x13 advance
	hudPadX  = 6
	hudPadY  = 5
)

// hudStatus is the frontend-only state shown next to the snapshot values.
type hudStatus struct {
	autopilot bool
	muted     bool
	showKeys  bool
	notice    string
}

func hudLines(snap game.Snapshot, st hudStatus) []string {
	lines := []string{
		fmt.Sprintf("LEVEL %d   SCORE %d", snap.Level, snap.Score),
		fmt.Sprintf("HP %d/%d   ENEMIES %d", snap.Player.Health, snap.Player.MaxHealth, len(snap.Enemies)),
	}
	if snap.BoostActive {
		lines = append(lines, fmt.Sprintf("ATTACK BOOST %ds", int(snap.BoostLeft.Round(time.Second)/time.Second)))
	}
	flags := ""
	if st.autopilot {
		flags += " AUTOPILOT"
	}
	if st.muted {
		flags += " MUTED"
	}
	if flags != "" {
		lines = append(lines, "["+flags[1:]+"]")
	}
	if st.showKeys {
		lines = append(lines,
			"WASD/arrows=move  space=fire",
			"right mouse=aim  P/esc=pause",
			"R=restart  N=next level",
			"T=autopilot  M=mute  C=copy log",
			"middle mouse=inspect  I=raw view",
			"H=hide keys",
		)
	}
	if st.notice != "" {
		lines = append(lines, st.notice)
	}
	return lines
}

// banner returns the centre-screen title and hint for a non-running state.
func banner(st game.State, score int) (title, hint string, ok bool) {
	switch st {
	case game.StatePaused:
		return "PAUSED", "press P to resume", true
	case game.StateGameOver:
		return "GAME OVER", fmt.Sprintf("score %d - press R to restart", score), true
	case game.StateLevelComplete:
		return "LEVEL COMPLETE", "press N for the next level", true
	}
	return "", "", false
}

func drawPanel(dst *ebiten.Image, lines []string, x, y int) {
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	w := float32(maxLen*hudCharW + hudPadX*2)
	h := float32(len(lines)*hudLineH + hudPadY*2)
	vector.FillRect(dst, float32(x), float32(y), w, h, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(dst, float32(x), float32(y), w, h, 1, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, l := range lines {
		text.Draw(dst, l, basicfont.Face7x13, x+hudPadX, y+hudPadY+11+i*hudLineH, hudText)
	}
}

func drawBanner(dst *ebiten.Image, title, hint string, cx, cy int) {
	w := (len(hint) + 4) * hudCharW
	if tw := (len(title) + 4) * hudCharW; tw > w {
		w = tw
	}
	x := cx - w/2
	vector.FillRect(dst, float32(x), float32(cy-28), float32(w), 52, color.RGBA{A: 200}, false)
	text.Draw(dst, title, basicfont.Face7x13, cx-len(title)*hudCharW/2, cy-6, boostColor)
	text.Draw(dst, hint, basicfont.Face7x13, cx-len(hint)*hudCharW/2, cy+14, hudText)
}
