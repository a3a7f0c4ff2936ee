package game

import (
	"fmt"
	"strings"
)

// Event categories.
const (
	CatCombat  = "combat"
	CatPickup  = "pickup"
	CatSession = "session"
	CatAI      = "ai"
	CatMove    = "move"
	CatCheck   = "check"
)

// Event keys within the categories above.
const (
	KeyShot           = "shot"
	KeyHit            = "hit"
	KeyPlayerHit      = "player_hit"
	KeyEnemyDestroyed = "enemy_destroyed"
	KeyPowerUpSpawned = "powerup_spawned"
	KeyPowerUpTaken   = "powerup_collected"
	KeyLevelStart     = "level_start"
	KeyLevelComplete  = "level_complete"
	KeyGameOver       = "game_over"
	KeyStateChange    = "state_change"
	KeyPosition       = "position"
	KeyCommandDropped = "command_dropped"
	KeyInvariant      = "invariant"
)

// Event is one recorded occurrence during a session tick.
type Event struct {
	Tick     int
	Actor    string  // tank label e.g. "P", "E3", or "--" for session events
	Category string  // combat, pickup, session, ai, move, check
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value (damage, score, distance)
}

// String formats the event as a fixed-width log line.
//
//	[T=042] E1   combat    hit              P -> E1 dmg=120 hp=80
func (e Event) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects the events of a session. Unlike the per-tick event buffer
// the frontends read, it spans many ticks and is meant for tests and
// reports. A bounded log keeps only its most recent entries, so counts taken
// from it cover that window.
type SimLog struct {
	entries []Event
	verbose bool
	limit   int
}

// NewSimLog creates an unbounded SimLog. If verbose is true, per-tick
// position and AI state entries are recorded too.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// NewBoundedSimLog creates a SimLog that holds at most limit entries. When
// full, the older half is dropped.
func NewBoundedSimLog(verbose bool, limit int) *SimLog {
	if limit < 2 {
		limit = 2
	}
	return &SimLog{verbose: verbose, limit: limit}
}

// Add records an event.
func (sl *SimLog) Add(e Event) {
	if sl.limit > 0 && len(sl.entries) >= sl.limit {
		n := copy(sl.entries, sl.entries[len(sl.entries)-sl.limit/2:])
		sl.entries = sl.entries[:n]
	}
	sl.entries = append(sl.entries, e)
}

// Verbose reports whether per-tick entries are recorded.
func (sl *SimLog) Verbose() bool {
	return sl.verbose
}

// Entries returns all recorded events.
func (sl *SimLog) Entries() []Event {
	return sl.entries
}

// Reset drops all entries.
func (sl *SimLog) Reset() {
	sl.entries = sl.entries[:0]
}

// Filter returns events matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns events for a specific tank label.
func (sl *SimLog) FilterActor(label string) []Event {
	var out []Event
	for _, e := range sl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns events within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []Event {
	var out []Event
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events match the given category and key.
func (sl *SimLog) Count(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent event matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (Event, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return Event{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one event matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of a session.
func (sl *SimLog) Summary(s *Session) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", s.TickCount())
	fmt.Fprintf(&sb, "State: %s  Level: %d  Score: %d\n", s.State(), s.Level(), s.Score())
	fmt.Fprintf(&sb, "Player: hp=%d/%d pos=(%.1f,%.1f)\n",
		s.PlayerHealth(), s.PlayerMaxHealth(), s.player.pos.X, s.player.pos.Z)

	states := map[AIState]int{}
	for _, e := range s.enemies {
		states[e.ai.state]++
	}
	fmt.Fprintf(&sb, "Enemies alive: %d  (patrol=%d chase=%d attack=%d)\n",
		len(s.enemies), states[AIPatrol], states[AIChase], states[AIAttack])
	fmt.Fprintf(&sb, "Shots: %d  Hits: %d  Kills: %d  Pickups: %d\n",
		sl.Count(CatCombat, KeyShot), sl.Count(CatCombat, KeyHit)+sl.Count(CatCombat, KeyPlayerHit),
		sl.Count(CatCombat, KeyEnemyDestroyed), sl.Count(CatPickup, KeyPowerUpTaken))
	return sb.String()
}
