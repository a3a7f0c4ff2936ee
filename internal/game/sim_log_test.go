package game

import (
	"fmt"
	"testing"
)

func TestBoundedSimLog_KeepsRecentEntries(t *testing.T) {
	sl := NewBoundedSimLog(false, 10)
	for i := 0; i < 25; i++ {
		sl.Add(Event{Tick: i, Actor: "P", Category: CatCombat, Key: KeyShot, Value: fmt.Sprint(i)})
	}
	entries := sl.Entries()
	if len(entries) > 10 {
		t.Fatalf("entries=%d exceeds the limit", len(entries))
	}
	if last := entries[len(entries)-1]; last.Tick != 24 {
		t.Errorf("newest tick=%d want 24", last.Tick)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Tick != entries[i-1].Tick+1 {
			t.Fatalf("entries out of order: %v", entries)
		}
	}
	if e, ok := sl.LastOf(CatCombat, KeyShot); !ok || e.Tick != 24 {
		t.Errorf("LastOf=%+v %v", e, ok)
	}
}

func TestSimLog_ResetAndRange(t *testing.T) {
	sl := NewSimLog(false)
	for i := 0; i < 5; i++ {
		sl.Add(Event{Tick: i, Actor: "--", Category: CatSession, Key: KeyStateChange})
	}
	if got := len(sl.FilterTickRange(1, 3)); got != 3 {
		t.Errorf("range entries=%d want 3", got)
	}
	if _, ok := sl.LastOf(CatCombat, KeyHit); ok {
		t.Error("LastOf should miss on an absent key")
	}
	sl.Reset()
	if len(sl.Entries()) != 0 || sl.Format() != "" {
		t.Error("Reset should drop every entry")
	}
}
