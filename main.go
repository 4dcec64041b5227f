package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/CosmicSlothOracle/HeMilch/ecs/system"
	"github.com/CosmicSlothOracle/HeMilch/level"
	"github.com/CosmicSlothOracle/HeMilch/match"
)

func main() {
	levelName := flag.String("level", "arena.yaml", "arena definition in level/")
	p1 := flag.String("p1", "vanguard.yaml", "primary fighter prefab")
	p1Variant := flag.String("p1-variant", "", "primary fighter override variant")
	p2 := flag.String("p2", "sentinel.yaml", "opponent fighter prefab")
	p2Variant := flag.String("p2-variant", "hunter", "opponent override variant")
	behavior := flag.String("behavior", "", "force opponent behavior (overrides prefab)")
	debug := flag.Bool("debug", false, "draw hitboxes and hurtboxes")
	flag.Parse()

	lvl, err := level.Load(*levelName)
	if err != nil {
		log.Fatal(err)
	}

	setups := []match.FighterSetup{
		{Prefab: *p1, Override: *p1Variant, Primary: true},
		{Prefab: *p2, Override: *p2Variant, Behavior: *behavior},
	}

	m, err := match.New(lvl, setups, system.DefaultBehaviors())
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("hemilch")

	if err := ebiten.RunGame(NewGame(m, setups, lvl, *debug)); err != nil {
		log.Fatal(err)
	}
}
