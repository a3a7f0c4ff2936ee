package ui

import (
	"fmt"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/atotto/clipboard"
)

// reportTicks is how far back the copied event log reaches.
const reportTicks = 600

// sessionReport is the text copied to the clipboard: the summary followed by
// the event log of the last reportTicks ticks.
func sessionReport(s *game.Session) string {
	to := s.TickCount()
	from := max(0, to-reportTicks)
	return s.SimLog().Summary(s) + "\n" + s.SimLog().FormatRange(from, to)
}

var writeClipboard = clipboard.WriteAll

func copyReport(s *game.Session) error {
	if err := writeClipboard(sessionReport(s)); err != nil {
		return fmt.Errorf("copy report: %w", err)
	}
	return nil
}
