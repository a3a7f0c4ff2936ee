package ui

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 60
	feedLineHeight = 14
	feedHighlight  = 3 // newest entries drawn on a highlighted row
)

// FeedEntry is a single line in the combat feed.
type FeedEntry struct {
	Tick    int
	Actor   string // "P", "E3", or "--"
	Message string
	Good    bool // in the player's favour
}

// CombatFeed is a ring buffer of recent gameplay events shown beside the
// arena.
type CombatFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewCombatFeed creates a feed with a fixed capacity.
func NewCombatFeed() *CombatFeed {
	return &CombatFeed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends an entry, overwriting the oldest when full.
func (f *CombatFeed) Add(e FeedEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// AddEvents records the events worth showing to a player. Movement, AI and
// enemy shot events are skipped.
func (f *CombatFeed) AddEvents(events []game.Event) {
	for _, e := range events {
		if entry, ok := feedEntry(e); ok {
			f.Add(entry)
		}
	}
}

func feedEntry(e game.Event) (FeedEntry, bool) {
	entry := FeedEntry{Tick: e.Tick, Actor: e.Actor, Message: e.Value}
	switch e.Key {
	case game.KeyHit, game.KeyPowerUpTaken, game.KeyLevelComplete, game.KeyLevelStart:
		entry.Good = true
	case game.KeyEnemyDestroyed:
		entry.Message = "destroyed, " + e.Value
		entry.Good = true
	case game.KeyPlayerHit, game.KeyGameOver:
	case game.KeyCommandDropped:
		entry.Message = "input dropped"
	default:
		return FeedEntry{}, false
	}
	return entry, true
}

// Recent returns entries oldest first.
func (f *CombatFeed) Recent() []FeedEntry {
	out := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		out[i] = f.entries[idx]
	}
	return out
}

// Clear empties the feed.
func (f *CombatFeed) Clear() {
	f.head, f.count = 0, 0
}

// Draw renders the feed panel at panelX, newest entry at the bottom.
func (f *CombatFeed) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, 18, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	text.Draw(screen, "COMBAT FEED", basicfont.Face7x13, panelX+8, 13, hudText)
	vector.StrokeLine(screen, float32(panelX), 18, float32(panelX+feedPanelWidth), 18, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := f.Recent()
	maxVisible := (panelH - 26) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 22
	for i, e := range entries {
		if i >= len(entries)-feedHighlight {
			vector.FillRect(screen, float32(panelX+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		dot := enemyColor
		if e.Good {
			dot = playerColor
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, dot, false)

		line := fmt.Sprintf("%5d [%s] %s", e.Tick, e.Actor, e.Message)
		text.Draw(screen, line, basicfont.Face7x13, panelX+12, y+11, hudText)
		y += feedLineHeight
	}
}
