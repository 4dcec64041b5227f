// Headless runs an agent-vs-agent match at a fixed tick rate and prints the
// outcome; useful for behavior tuning and soak runs without a window.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/CosmicSlothOracle/HeMilch/ecs/system"
	"github.com/CosmicSlothOracle/HeMilch/level"
	"github.com/CosmicSlothOracle/HeMilch/match"
)

func main() {
	levelName := flag.String("level", "arena.yaml", "arena definition in level/")
	p1 := flag.String("p1", "sentinel.yaml", "first fighter prefab")
	b1 := flag.String("b1", "aggressive_melee", "first fighter behavior")
	p2 := flag.String("p2", "sentinel.yaml", "second fighter prefab")
	b2 := flag.String("b2", "ranged_kite", "second fighter behavior")
	ticks := flag.Int("ticks", 60*180, "tick limit before calling it a draw")
	rate := flag.Float64("rate", 60, "ticks per simulated second")
	flag.Parse()

	lvl, err := level.Load(*levelName)
	if err != nil {
		log.Fatal(err)
	}

	setups := []match.FighterSetup{
		{Prefab: *p1, Behavior: *b1},
		{Prefab: *p2, Behavior: *b2},
	}
	m, err := match.New(lvl, setups, system.DefaultBehaviors())
	if err != nil {
		log.Fatal(err)
	}

	dt := 1.0 / *rate
	n := 0
	for ; n < *ticks && !m.RoundOver(); n++ {
		m.Step(dt)
	}

	fmt.Printf("ticks: %d  simulated: %.1fs\n", n, m.Elapsed())
	for i, st := range m.Statuses() {
		tag := "standing"
		if st.Removed {
			tag = "out"
		}
		fmt.Printf("  slot %d %-12s %8.1f%%  stocks %d  %s\n", i+1, st.Name, st.Percent, st.Stocks, tag)
	}
	if !m.RoundOver() {
		fmt.Println("result: draw (tick limit)")
	}
}
