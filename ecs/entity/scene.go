package entity

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/component"
	"github.com/milk9111/gunturrets/logger"
	"github.com/milk9111/gunturrets/prefabs"
	"github.com/milk9111/gunturrets/turret"
)

// Scene is everything BuildScene created, keyed by prefab name in
// declaration order.
type Scene struct {
	Name    string
	Turrets *orderedmap.OrderedMap[string, *Turret]
	Targets *orderedmap.OrderedMap[string, ecs.Entity]
	Input   ecs.Entity

	world *ecs.World
}

// LoadScene reads a scene prefab and builds it into w.
func LoadScene(w *ecs.World, filename string) (*Scene, error) {
	spec, err := prefabs.LoadSceneSpec(filename)
	if err != nil {
		return nil, err
	}
	return BuildScene(w, spec)
}

// BuildScene creates the arena, then targets, then turrets, then binds
// controllers. A controller naming an unknown target is kept with no target,
// so its turret idles.
func BuildScene(w *ecs.World, spec prefabs.SceneSpec) (*Scene, error) {
	if w == nil {
		return nil, errNilWorld
	}

	s := &Scene{
		Name:    spec.Name,
		Turrets: orderedmap.NewOrderedMap[string, *Turret](),
		Targets: orderedmap.NewOrderedMap[string, ecs.Entity](),
		world:   w,
	}
	log := logger.L().With("scene", spec.Name)

	if a := spec.Arena; a != nil {
		w.SetPhysicsWorld(ecs.NewPhysicsWorld(ecs.Bounds{MinX: a.Min[0], MinZ: a.Min[1], MaxX: a.Max[0], MaxZ: a.Max[1]}))
	}

	for _, file := range spec.Targets {
		ts, err := prefabs.LoadTargetSpec(file)
		if err != nil {
			return nil, err
		}
		if _, dup := s.Targets.Get(ts.Name); dup {
			return nil, fmt.Errorf("entity: scene %s: duplicate target %q", spec.Name, ts.Name)
		}
		e, err := BuildTarget(w, ts)
		if err != nil {
			return nil, err
		}
		s.Targets.Set(ts.Name, e)
	}

	for _, file := range spec.Turrets {
		ts, err := prefabs.LoadTurretSpec(file)
		if err != nil {
			return nil, err
		}
		if _, dup := s.Turrets.Get(ts.Name); dup {
			return nil, fmt.Errorf("entity: scene %s: duplicate turret %q", spec.Name, ts.Name)
		}
		t, err := BuildTurret(w, ts)
		if err != nil {
			return nil, err
		}
		t.Prefab = file
		s.Turrets.Set(ts.Name, t)
	}

	for _, cs := range spec.Controllers {
		t, ok := s.Turrets.Get(cs.Turret)
		if !ok {
			return nil, fmt.Errorf("entity: scene %s: controller for unknown turret %q", spec.Name, cs.Turret)
		}
		if ecs.Has(w, t.Root, component.TurretControllerComponent.Kind()) {
			return nil, fmt.Errorf("entity: scene %s: turret %q has two controllers", spec.Name, cs.Turret)
		}
		target, ok := s.Targets.Get(cs.Target)
		if !ok {
			log.Warn("controller target not found, turret will idle", "turret", cs.Turret, "target", cs.Target)
		}
		ctrl := turret.NewController(cs.Turret, t.Aim, ecs.EntityTarget{World: w, Entity: target})
		if err := ecs.Add(w, t.Root, component.TurretControllerComponent.Kind(), &component.TurretController{
			Controller: ctrl,
			Turret:     uint64(t.Root),
			Target:     uint64(target),
			TargetName: cs.Target,
		}); err != nil {
			return nil, fmt.Errorf("entity: scene %s: controller %s: %w", spec.Name, cs.Turret, err)
		}
	}

	s.Input = ecs.CreateEntity(w)
	if err := ecs.Add(w, s.Input, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return nil, fmt.Errorf("entity: scene %s: input: %w", spec.Name, err)
	}

	log.Info("scene built", "turrets", s.Turrets.Len(), "targets", s.Targets.Len())
	return s, nil
}

// Turret looks a turret up by prefab name.
func (s *Scene) Turret(name string) (*Turret, bool) {
	return s.Turrets.Get(name)
}

// Reload re-reads a changed prefab or script file and applies it to whatever
// uses it. It reports whether anything in the scene used the file.
func (s *Scene) Reload(path string) (bool, error) {
	base := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(base), ".tengo") {
		return s.reloadScript(base)
	}

	used := false
	for el := s.Turrets.Front(); el != nil; el = el.Next() {
		t := el.Value
		if filepath.Base(t.Prefab) != base {
			continue
		}
		spec, err := prefabs.LoadTurretSpec(t.Prefab)
		if err != nil {
			return used, err
		}
		t.Apply(s.world, spec)
		used = true
		logger.L().Info("turret reloaded", "name", t.Name, "prefab", t.Prefab)
	}
	return used, nil
}

func (s *Scene) reloadScript(base string) (bool, error) {
	used := false
	for el := s.Targets.Front(); el != nil; el = el.Next() {
		sc, ok := ecs.Get(s.world, el.Value, component.TargetScriptComponent.Kind())
		if !ok || filepath.Base(sc.Path) != base {
			continue
		}
		src, err := prefabs.LoadScript(sc.Path)
		if err != nil {
			return used, fmt.Errorf("entity: reload script %s: %w", sc.Path, err)
		}
		sc.Source = src
		sc.Compiled = nil
		sc.Err = nil
		used = true
		logger.L().Info("target script reloaded", "target", el.Key, "script", sc.Path)
	}
	return used, nil
}

// ToggleAll asks every controller to flip its turret's idle state on the
// next tick.
func (s *Scene) ToggleAll() {
	if in, ok := ecs.Get(s.world, s.Input, component.InputComponent.Kind()); ok {
		in.Toggle = true
	}
}

type TurretStatus struct {
	Name      string
	Idle      bool
	Aimed     bool
	AtRest    bool
	Angle     float64
	Elevation float64
	Traverse  float64
}

func (st TurretStatus) String() string {
	mode := "active"
	switch {
	case st.Idle && st.AtRest:
		mode = "rest"
	case st.Idle:
		mode = "idle"
	case st.Aimed:
		mode = "aimed"
	}
	angle := "-"
	if !st.Idle {
		angle = fmt.Sprintf("%.1f", st.Angle)
	}
	return fmt.Sprintf("%-8s %-6s angle=%-6s elev=%6.1f trav=%7.1f", st.Name, mode, angle, st.Elevation, st.Traverse)
}

// Status lists every turret in declaration order.
func (s *Scene) Status() []TurretStatus {
	out := make([]TurretStatus, 0, s.Turrets.Len())
	for el := s.Turrets.Front(); el != nil; el = el.Next() {
		a := el.Value.Aim
		out = append(out, TurretStatus{
			Name:      el.Key,
			Idle:      a.IsIdle(),
			Aimed:     a.IsAimed(),
			AtRest:    a.IsTurretAtRest(),
			Angle:     a.AngleToTarget(),
			Elevation: a.Elevation(),
			Traverse:  a.Traverse(),
		})
	}
	return out
}

// Snapshot renders Status one turret per line.
func (s *Scene) Snapshot() string {
	var b strings.Builder
	for _, st := range s.Status() {
		b.WriteString(st.String())
		b.WriteByte('\n')
	}
	return b.String()
}
