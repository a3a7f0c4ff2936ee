package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Tank-Arena/internal/config"
	"github.com/Garsondee/Tank-Arena/internal/game"
)

// idleTailTicks is how long a run may go without a kill before the report
// calls it stalled.
const idleTailTicks = 3600

type runStats struct {
	runIndex int
	seed     int64
	steps    int

	firstShotTick   int
	firstHitTick    int
	firstKillTick   int
	firstDamageTick int
	firstPickupTick int
	firstClearTick  int
	lastKillTick    int
	finalTick       int

	aiChanges   int
	chaseEnters int
	enemyShots  int

	outcome game.RunOutcomeReason
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var levels int
	var startLevel int
	var configDir string

	flag.IntVar(&runs, "runs", 5, "number of headless autopilot runs")
	flag.IntVar(&ticks, "ticks", 36000, "maximum ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&levels, "levels", 3, "levels to clear before a run counts as won")
	flag.IntVar(&startLevel, "start-level", 1, "level each run starts on")
	flag.StringVar(&configDir, "config", "", "directory holding "+config.FileName+" (optional)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if levels <= 0 {
		fmt.Println("error: -levels must be > 0")
		return
	}

	settings, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg := settings.GameConfig()

	fmt.Printf("=== Headless Arena Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d levels=%d start_level=%d\n\n",
		runs, ticks, seedBase, seedStep, levels, startLevel)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runAutopilot(i+1, seed, ticks, levels, startLevel, cfg)
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

func runAutopilot(runIndex int, seed int64, ticks, levels, startLevel int, cfg game.Config) runStats {
	ts := game.NewTestSim(
		game.WithSimSeed(seed),
		game.WithConfig(cfg),
		game.WithLevel(startLevel),
	)
	steps := ts.RunAutopilot(game.NewAutopilot(), ticks, func(ts *game.TestSim) bool {
		return ts.Session.GameOver() || ts.SimLog.Count(game.CatSession, game.KeyLevelComplete) >= levels
	})

	entries := ts.SimLog.Entries()
	enemyShots := 0
	for _, e := range ts.SimLog.Filter(game.CatCombat, game.KeyShot) {
		if e.Actor != "P" {
			enemyShots++
		}
	}

	lastKill := -1
	if e, ok := ts.SimLog.LastOf(game.CatCombat, game.KeyEnemyDestroyed); ok {
		lastKill = e.Tick
	}

	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		steps:           steps,
		firstShotTick:   firstTick(entries, game.CatCombat, game.KeyShot, "P", ""),
		firstHitTick:    firstTick(entries, game.CatCombat, game.KeyHit, "", ""),
		firstKillTick:   firstTick(entries, game.CatCombat, game.KeyEnemyDestroyed, "", ""),
		firstDamageTick: firstTick(entries, game.CatCombat, game.KeyPlayerHit, "", ""),
		firstPickupTick: firstTick(entries, game.CatPickup, game.KeyPowerUpTaken, "", ""),
		firstClearTick:  firstTick(entries, game.CatSession, game.KeyLevelComplete, "", ""),
		lastKillTick:    lastKill,
		finalTick:       ts.CurrentTick(),
		aiChanges:       ts.SimLog.Count(game.CatAI, game.KeyStateChange),
		chaseEnters:     countContaining(entries, game.CatAI, game.KeyStateChange, "→ chase"),
		enemyShots:      enemyShots,
		outcome:         game.DetermineRunOutcome(ts.Session, levels),
	}
}

// firstTick returns the tick of the first matching event, or -1. Empty
// actor and contains match anything.
func firstTick(entries []game.Event, category, key, actor, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if actor != "" && e.Actor != actor {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func countContaining(entries []game.Event, category, key, contains string) int {
	n := 0
	for _, e := range entries {
		if e.Category == category && e.Key == key && strings.Contains(e.Value, contains) {
			n++
		}
	}
	return n
}

func printRun(rs runStats) {
	o := rs.outcome
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s reason=%s steps=%d\n", o.Outcome, o.Description, rs.steps)
	fmt.Printf("progress: level=%d levels_cleared=%d score=%d hp=%d enemies_left=%d\n",
		o.Level, o.LevelsCleared, o.Score, o.PlayerHealth, o.EnemiesLeft)
	fmt.Printf("combat: shots=%d hits=%d accuracy=%.0f%% kills=%d damage_taken=%d enemy_shots=%d pickups=%d\n",
		o.Shots, o.Hits, o.Accuracy()*100, o.Kills, o.DamageTaken, rs.enemyShots, o.PickupsTaken)
	fmt.Printf("phase_markers: first_shot=%d first_hit=%d first_kill=%d first_damage=%d first_pickup=%d first_clear=%d last_kill=%d\n",
		rs.firstShotTick, rs.firstHitTick, rs.firstKillTick, rs.firstDamageTick, rs.firstPickupTick, rs.firstClearTick, rs.lastKillTick)
	fmt.Printf("ai: state_changes=%d chase_entries=%d\n", rs.aiChanges, rs.chaseEnters)
	if stalled, reason := detectStall(rs); stalled {
		fmt.Printf("warning: stalled run (%s)\n", reason)
	}
	fmt.Println()
}

// detectStall flags inconclusive runs where the autopilot ran out of ticks
// without making progress: no kills at all, or more than idleTailTicks since
// the last one.
func detectStall(rs runStats) (bool, string) {
	o := rs.outcome
	if o.Outcome != game.OutcomeInconclusive {
		return false, "decisive"
	}
	var reasons []string
	if o.Kills == 0 {
		reasons = append(reasons, "no_kills")
	}
	if o.Shots > 0 && o.Hits == 0 {
		reasons = append(reasons, "no_hits")
	}
	if o.EnemiesLeft > 0 && o.Shots == 0 {
		reasons = append(reasons, "never_fired")
	}
	if o.Kills > 0 && rs.lastKillTick >= 0 && rs.finalTick-rs.lastKillTick > idleTailTicks {
		reasons = append(reasons, "idle_tail")
	}
	if len(reasons) == 0 {
		return false, "progressing"
	}
	return true, strings.Join(reasons, ",")
}

func outcomeCounts(all []runStats) map[game.RunOutcome]int {
	counts := map[game.RunOutcome]int{}
	for _, rs := range all {
		counts[rs.outcome.Outcome]++
	}
	return counts
}

func printAggregate(all []runStats) {
	totalScore := 0
	totalKills := 0
	totalShots := 0
	totalHits := 0
	totalDamage := 0
	totalPickups := 0
	totalCleared := 0
	stalled := 0
	highest := 0

	shotTicks := make([]int, 0, len(all))
	killTicks := make([]int, 0, len(all))
	damageTicks := make([]int, 0, len(all))
	clearTicks := make([]int, 0, len(all))
	descriptions := map[string]int{}

	for _, rs := range all {
		o := rs.outcome
		totalScore += o.Score
		totalKills += o.Kills
		totalShots += o.Shots
		totalHits += o.Hits
		totalDamage += o.DamageTaken
		totalPickups += o.PickupsTaken
		totalCleared += o.LevelsCleared
		if o.Level > highest {
			highest = o.Level
		}
		if s, _ := detectStall(rs); s {
			stalled++
		}
		if rs.firstShotTick >= 0 {
			shotTicks = append(shotTicks, rs.firstShotTick)
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.firstDamageTick >= 0 {
			damageTicks = append(damageTicks, rs.firstDamageTick)
		}
		if rs.firstClearTick >= 0 {
			clearTicks = append(clearTicks, rs.firstClearTick)
		}
		descriptions[o.Description]++
	}

	counts := outcomeCounts(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d cleared=%d destroyed=%d inconclusive=%d stalled=%d highest_level=%d\n",
		len(all), counts[game.OutcomeCleared], counts[game.OutcomeDestroyed], counts[game.OutcomeInconclusive], stalled, highest)
	fmt.Printf("avg_per_run: score=%.1f kills=%.1f shots=%.1f damage_taken=%.1f pickups=%.1f levels_cleared=%.1f\n",
		avg(totalScore, len(all)), avg(totalKills, len(all)), avg(totalShots, len(all)),
		avg(totalDamage, len(all)), avg(totalPickups, len(all)), avg(totalCleared, len(all)))
	accuracy := 0.0
	if totalShots > 0 {
		accuracy = float64(totalHits) / float64(totalShots) * 100
	}
	fmt.Printf("overall_accuracy=%.1f%%\n", accuracy)
	fmt.Printf("phase_marker_avg_ticks: first_shot=%s first_kill=%s first_damage=%s first_clear=%s\n",
		avgTickString(shotTicks), avgTickString(killTicks), avgTickString(damageTicks), avgTickString(clearTicks))
	fmt.Printf("reasons: %s\n", joinCounts(descriptions))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s(%d)", k, m[k])
	}
	return strings.Join(parts, ",")
}
