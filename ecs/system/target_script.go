package system

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/component"
	"github.com/milk9111/gunturrets/logger"
)

var errBadPosition = errors.New("position must be an array of three numbers")

// scriptModules are the tengo stdlib modules a target script may import.
var scriptModules = []string{"math", "rand", "text", "times", "fmt"}

// TargetScriptSystem moves targets with tengo scripts. Each tick a script
// sees `elapsed` (seconds since start), `dt`, its persistent `state` map and
// its current `position`, and may assign `position` ([x, y, z]) and `present`
// (bool). `time` is a tengo builtin and cannot be a global.
type TargetScriptSystem struct{}

func NewTargetScriptSystem() *TargetScriptSystem {
	return &TargetScriptSystem{}
}

func (s *TargetScriptSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.TargetScriptComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sc *component.TargetScript, tr *component.Transform) {
		if sc.Err != nil {
			return
		}
		if err := runTargetScript(w, e, sc, tr); err != nil {
			sc.Err = err
			logger.L().Error("target script stopped", "path", sc.Path, "entity", e.String(), "error", err)
		}
	})
}

// CompileTargetScript compiles src with the script globals declared.
func CompileTargetScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	for _, g := range []struct {
		name  string
		value any
	}{
		{"elapsed", 0.0},
		{"dt", 0.0},
		{"state", map[string]any{}},
		{"position", []any{0.0, 0.0, 0.0}},
		{"present", true},
	} {
		if err := script.Add(g.name, g.value); err != nil {
			return nil, fmt.Errorf("compile target script: declare %s: %w", g.name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(scriptModules...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile target script: %w", err)
	}
	return compiled, nil
}

func runTargetScript(w *ecs.World, e ecs.Entity, sc *component.TargetScript, tr *component.Transform) error {
	if sc.Compiled == nil {
		compiled, err := CompileTargetScript(sc.Source)
		if err != nil {
			return err
		}
		sc.Compiled = compiled
	}
	if sc.State == nil {
		sc.State = &tengo.Map{Value: map[string]tengo.Object{}}
	}

	c := sc.Compiled
	p := tr.Position
	for name, v := range map[string]any{
		"elapsed":  w.Elapsed(),
		"dt":       w.DeltaTime(),
		"state":    sc.State,
		"position": []any{p.X(), p.Y(), p.Z()},
		"present":  true,
	} {
		if err := c.Set(name, v); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	if err := c.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	pos, err := scriptPosition(c.Get("position"))
	if err != nil {
		return err
	}
	tr.Position = pos

	if target, ok := ecs.Get(w, e, component.TargetComponent.Kind()); ok {
		target.Present = c.Get("present").Bool()
	}
	return nil
}

func scriptPosition(v *tengo.Variable) (mgl64.Vec3, error) {
	items := v.Array()
	if len(items) != 3 {
		return mgl64.Vec3{}, errBadPosition
	}
	var out mgl64.Vec3
	for i, item := range items {
		switch n := item.(type) {
		case float64:
			out[i] = n
		case int64:
			out[i] = float64(n)
		default:
			return mgl64.Vec3{}, errBadPosition
		}
	}
	return out, nil
}
