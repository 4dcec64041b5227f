package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/CosmicSlothOracle/HeMilch/prefabs"
)

// Scripted behaviors are named "script:<file>.tengo" and loaded from the
// prefabs script store. The script must define
//
//	update(ctx, probe)
//
// returning a key->bool map; ctx is the read-only world snapshot and probe
// exposes is_solid / ground_ahead callbacks.
const scriptBehaviorPrefix = "script:"

const behaviorDispatchScript = `
__intent = update(__ctx, __probe)
`

func isScriptBehavior(name string) bool {
	return strings.HasPrefix(name, scriptBehaviorPrefix)
}

type scriptBehavior struct {
	path     string
	compiled *tengo.Compiled
}

func newScriptBehavior(name string) (Behavior, error) {
	path := strings.TrimPrefix(name, scriptBehaviorPrefix)
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("behavior: load script %s: %w", path, err)
	}

	script := tengo.NewScript(append(src, []byte("\n"+behaviorDispatchScript)...))
	_ = script.Add("__ctx", map[string]any{})
	_ = script.Add("__probe", map[string]any{})
	_ = script.Add("__intent", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("behavior: compile %s: %w", path, err)
	}
	return &scriptBehavior{path: path, compiled: compiled}, nil
}

func (b *scriptBehavior) Step(ctx *BehaviorContext) map[string]bool {
	if err := b.compiled.Set("__ctx", behaviorContextMap(ctx)); err != nil {
		return nil
	}
	if err := b.compiled.Set("__probe", behaviorProbe(ctx)); err != nil {
		return nil
	}
	if err := b.compiled.Run(); err != nil {
		// Script faults degrade to "no intent this tick".
		return nil
	}

	raw := b.compiled.Get("__intent").Map()
	if len(raw) == 0 {
		return nil
	}
	keys := make(map[string]bool, len(raw))
	for k, v := range raw {
		if on, ok := v.(bool); ok && on {
			keys[k] = true
		}
	}
	return keys
}

func fighterViewMap(v FighterView) map[string]any {
	return map[string]any{
		"x":        v.X,
		"y":        v.Y,
		"vx":       v.VX,
		"vy":       v.VY,
		"facing":   v.Facing,
		"percent":  v.Percent,
		"grounded": v.Grounded,
		"state":    v.State,
		"width":    v.Width,
		"height":   v.Height,
	}
}

func behaviorContextMap(ctx *BehaviorContext) map[string]any {
	projectiles := make([]any, 0, len(ctx.Projectiles))
	for _, p := range ctx.Projectiles {
		projectiles = append(projectiles, map[string]any{
			"x": p.X, "y": p.Y, "vx": p.VX, "vy": p.VY,
		})
	}
	return map[string]any{
		"dt":           ctx.Dt,
		"self":         fighterViewMap(ctx.Self),
		"opponent":     fighterViewMap(ctx.Opponent),
		"has_opponent": ctx.HasOpponent,
		"projectiles":  projectiles,
		"los_clear":    ctx.LOSClear,
		"canvas_w":     ctx.CanvasW,
		"canvas_h":     ctx.CanvasH,
		"spawn_x":      ctx.Agent.SpawnX,
		"cooldown":     ctx.Agent.CooldownLeft,
	}
}

// behaviorProbe exposes solidity sampling to scripts as callables.
func behaviorProbe(ctx *BehaviorContext) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["is_solid"] = &tengo.UserFunction{Name: "is_solid", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Solid == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, ok1 := tengo.ToFloat64(args[0])
		y, ok2 := tengo.ToFloat64(args[1])
		if !ok1 || !ok2 {
			return tengo.FalseValue, nil
		}
		if ctx.Solid(x, y) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["ground_ahead"] = &tengo.UserFunction{Name: "ground_ahead", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.FirstSolidBelow == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		dir, ok := tengo.ToFloat64(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		footY := ctx.Self.Y + ctx.Self.Height
		x := ctx.Self.X + dir*ledgeLookahead
		if _, found := ctx.FirstSolidBelow(x, footY-2, footY+ledgeDropDepth); found {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
