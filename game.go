package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/CosmicSlothOracle/HeMilch/ecs"
	"github.com/CosmicSlothOracle/HeMilch/ecs/component"
	"github.com/CosmicSlothOracle/HeMilch/level"
	"github.com/CosmicSlothOracle/HeMilch/match"
	"github.com/CosmicSlothOracle/HeMilch/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var fighterColors = []color.RGBA{
	{R: 0x4c, G: 0xaf, B: 0xe8, A: 0xff},
	{R: 0xe8, G: 0x5c, B: 0x4c, A: 0xff},
	{R: 0x7c, G: 0xc8, B: 0x5c, A: 0xff},
	{R: 0xc8, G: 0x9c, B: 0x3c, A: 0xff},
}

type Game struct {
	match  *match.Match
	setups []match.FighterSetup
	input  *Input
	lvl    *level.Level

	background *ebiten.Image

	paused  bool
	pauseUI *ebitenui.UI
	overUI  *ebitenui.UI

	watcher *prefabs.Watcher

	debug bool
}

func NewGame(m *match.Match, setups []match.FighterSetup, lvl *level.Level, debug bool) *Game {
	g := &Game{
		match:      m,
		setups:     setups,
		input:      NewInput(),
		lvl:        lvl,
		background: surfaceImage(lvl),
		debug:      debug,
	}
	g.pauseUI = NewPauseUI(g)

	w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
	if err != nil {
		log.Printf("game: prefab watcher unavailable: %v", err)
	} else {
		g.watcher = w
	}
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
		if g.paused {
			g.match.Freeze()
		} else {
			g.match.Unfreeze()
		}
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.match.RoundOver() {
		if g.overUI == nil {
			g.overUI = NewMatchOverUI(g.roundResult())
		}
		g.overUI.Update()
		return nil
	}

	g.drainWatcher()

	// Debug reset: snap the primary fighter back to its spawn point.
	if g.debug && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		ecs.Add(g.match.World(), g.match.Primary(), component.RespawnRequestComponent, component.RespawnRequest{})
	}

	g.match.SetIntent(g.match.Primary(), g.input.Poll())
	g.match.Step(1.0 / float64(ebiten.TPS()))
	return nil
}

// drainWatcher applies live prefab edits: each changed fighter YAML is
// rebuilt and its stats and boxes swapped in place between ticks.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: prefab change: %s", name)
			g.reloadFighters()
		case err := <-g.watcher.Errors:
			log.Printf("game: prefab watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reloadFighters() {
	w := g.match.World()
	statuses := g.match.Statuses()
	for i, setup := range g.setups {
		if i >= len(statuses) || statuses[i].Removed {
			continue
		}
		spec, err := prefabs.LoadFighterSpec(setup.Prefab)
		if err != nil {
			log.Printf("game: reload %s: %v", setup.Prefab, err)
			continue
		}
		if setup.Override != "" {
			if err := spec.ApplyOverride(setup.Override); err != nil {
				log.Printf("game: reload %s: %v", setup.Prefab, err)
				continue
			}
		}
		e := g.fighterEntity(i)
		if e == 0 {
			continue
		}
		if stats, ok := ecs.Get(w, e, component.FighterComponent); ok {
			*stats = spec.Fighter()
		}
		if boxes, ok := ecs.Get(w, e, component.HitboxComponent); ok {
			*boxes = spec.HitboxComponents()
		}
		if boxes, ok := ecs.Get(w, e, component.HurtboxComponent); ok {
			*boxes = spec.HurtboxComponents()
		}
	}
}

// fighterEntity maps a setup slot back to its entity via spawn order.
func (g *Game) fighterEntity(slot int) ecs.Entity {
	w := g.match.World()
	count := 0
	for _, e := range w.Query(component.FighterComponent.ID(), component.SpawnPointComponent.ID()) {
		if count == slot {
			return e
		}
		count++
	}
	return 0
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.background != nil {
		screen.DrawImage(g.background, nil)
	}

	w := g.match.World()

	// Fighters as solid rects; art is optional, the simulation is not.
	for i, st := range g.match.Statuses() {
		if st.Removed {
			continue
		}
		c := fighterColors[i%len(fighterColors)]
		e := g.fighterEntity(i)
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if !ok {
			continue
		}
		vector.DrawFilledRect(screen,
			float32(st.X-body.Width/2), float32(st.Y),
			float32(body.Width), float32(body.Height), c, false)
	}

	ecs.ForEach2(w, component.ProjectileComponent, component.TransformComponent,
		func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
			vector.DrawFilledRect(screen,
				float32(t.X-p.Width/2), float32(t.Y-p.Height/2),
				float32(p.Width), float32(p.Height),
				color.RGBA{R: 0xff, G: 0xe0, B: 0x60, A: 0xff}, false)
		})

	if g.debug {
		g.drawDebug(screen)
	}

	g.drawHUD(screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
	if g.overUI != nil {
		g.overUI.Draw(screen)
	}
}

// roundResult names the winning fighter, or calls a draw.
func (g *Game) roundResult() string {
	winner := g.match.Winner()
	if winner == 0 {
		return "Draw"
	}
	if stats, ok := ecs.Get(g.match.World(), winner, component.FighterComponent); ok {
		return stats.Name + " wins"
	}
	return "Round over"
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	line := fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS())
	for _, st := range g.match.Statuses() {
		if st.Removed {
			line += fmt.Sprintf("\n%s: out", st.Name)
			continue
		}
		if st.Hits > 0 {
			line += fmt.Sprintf("\n%s: %d hp  stocks %d  [%s]", st.Name, st.Hits, st.Stocks, st.State)
		} else {
			line += fmt.Sprintf("\n%s: %.0f%%  stocks %d  [%s]", st.Name, st.Percent, st.Stocks, st.State)
		}
	}
	if g.match.RoundOver() {
		line += "\nround over"
	}
	ebitenutil.DebugPrint(screen, line)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	w := g.match.World()
	hurtC := color.RGBA{G: 0xff, A: 0x60}
	hitC := color.RGBA{R: 0xff, A: 0x60}

	for _, e := range w.Query(component.CombatantComponent.ID(), component.TransformComponent.ID()) {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		com, _ := ecs.Get(w, e, component.CombatantComponent)
		if boxes, ok := ecs.Get(w, e, component.HurtboxComponent); ok {
			for _, b := range *boxes {
				vector.StrokeRect(screen,
					float32(t.X+b.OffsetX-b.Width/2), float32(t.Y+b.OffsetY),
					float32(b.Width), float32(b.Height), 1, hurtC, false)
			}
		}
		machine, ok := ecs.Get(w, e, component.StateMachineComponent)
		if !ok || machine.State == nil {
			continue
		}
		if boxes, ok := ecs.Get(w, e, component.HitboxComponent); ok {
			for _, b := range *boxes {
				if b.State != machine.State.Name() {
					continue
				}
				cx := t.X + b.OffsetX*com.Facing
				vector.StrokeRect(screen,
					float32(cx-b.Width/2), float32(t.Y+b.OffsetY),
					float32(b.Width), float32(b.Height), 1, hitC, false)
			}
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

// surfaceImage renders the collision surface's solid pixels for the
// background so what you stand on is what you see.
func surfaceImage(lvl *level.Level) *ebiten.Image {
	sw, sh := lvl.Surface.Size()
	img := ebiten.NewImage(sw, sh)
	ground := color.RGBA{R: 0x3a, G: 0x3a, B: 0x46, A: 0xff}
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			if lvl.Surface.IsSolid(float64(x), float64(y)) {
				img.Set(x, y, ground)
			}
		}
	}
	return img
}
