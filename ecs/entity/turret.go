package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/gunturrets/common"
	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/component"
	"github.com/milk9111/gunturrets/prefabs"
	"github.com/milk9111/gunturrets/turret"
)

var errNilWorld = errors.New("entity: nil world")

// Turret is the set of entities one turret prefab builds. Hull is set only
// for rocking turrets and Barrels only when the prefab has barrels.
type Turret struct {
	Name   string
	Prefab string

	Hull    ecs.Entity
	Root    ecs.Entity
	Base    ecs.Entity
	Barrels ecs.Entity

	Aim *turret.Aim
}

// BuildTurret creates root, base and optional barrels entities and attaches
// the aiming state machine to the root. A rocking turret sits on a hull
// entity that carries the motion, so the root keeps its heading.
func BuildTurret(w *ecs.World, spec prefabs.TurretSpec) (*Turret, error) {
	if w == nil {
		return nil, errNilWorld
	}

	t := &Turret{Name: spec.Name}
	rootTransform := component.NewTransform(0, spec.Position.Vec3())
	rootTransform.Rotation = common.YawRotation(spec.Yaw)

	if spec.Rocking != nil {
		t.Hull = ecs.CreateEntity(w)
		rocking := &component.RockingMotion{Strength: spec.Rocking.Strength, Speed: spec.Rocking.Speed}
		if spec.Rocking.Offset != nil {
			rocking.Offset = *spec.Rocking.Offset
			rocking.HasOffset = true
		}
		if err := addAll(w, t.Hull,
			add(component.TransformComponent, component.NewTransform(0, spec.Position.Vec3())),
			add(component.NameComponent, &component.Name{Value: spec.Name}),
			add(component.RockingMotionComponent, rocking),
		); err != nil {
			return nil, fmt.Errorf("entity: build turret %s hull: %w", spec.Name, err)
		}
		rootTransform.Parent = uint64(t.Hull)
		rootTransform.Position = mgl64Zero
	}

	t.Root = ecs.CreateEntity(w)
	if err := addAll(w, t.Root,
		add(component.TransformComponent, rootTransform),
		add(component.NameComponent, &component.Name{Value: spec.Name}),
	); err != nil {
		return nil, fmt.Errorf("entity: build turret %s root: %w", spec.Name, err)
	}

	t.Base = ecs.CreateEntity(w)
	if err := ecs.Add(w, t.Base, component.TransformComponent.Kind(), component.NewTransform(uint64(t.Root), mgl64Zero)); err != nil {
		return nil, fmt.Errorf("entity: build turret %s base: %w", spec.Name, err)
	}

	rig := turret.Rig{
		Root: ecs.NewTransformNode(w, t.Root),
		Base: ecs.NewTransformNode(w, t.Base),
	}
	if spec.Barrels != nil {
		t.Barrels = ecs.CreateEntity(w)
		if err := ecs.Add(w, t.Barrels, component.TransformComponent.Kind(), component.NewTransform(uint64(t.Base), spec.Barrels.Vec3())); err != nil {
			return nil, fmt.Errorf("entity: build turret %s barrels: %w", spec.Name, err)
		}
		rig.Barrels = ecs.NewTransformNode(w, t.Barrels)
	}

	t.Aim = turret.New(spec.Name, spec.Config(), rig)
	t.Aim.SetIdle(spec.Idle)

	if err := ecs.Add(w, t.Root, component.TurretAimComponent.Kind(), &component.TurretAim{
		Aim:       t.Aim,
		Root:      uint64(t.Root),
		Base:      uint64(t.Base),
		Barrels:   uint64(t.Barrels),
		DebugRay:  spec.DebugRay,
		DebugArcs: spec.DebugArcs,
	}); err != nil {
		return nil, fmt.Errorf("entity: build turret %s aim: %w", spec.Name, err)
	}
	return t, nil
}

// Apply pushes a re-read prefab into a built turret. Position and barrels
// layout are fixed at build time; limits, speeds and debug flags change.
func (t *Turret) Apply(w *ecs.World, spec prefabs.TurretSpec) {
	t.Aim.Reconfigure(spec.Config())
	if ta, ok := ecs.Get(w, t.Root, component.TurretAimComponent.Kind()); ok {
		ta.DebugRay = spec.DebugRay
		ta.DebugArcs = spec.DebugArcs
	}
	if rm, ok := ecs.Get(w, t.Hull, component.RockingMotionComponent.Kind()); ok && spec.Rocking != nil {
		rm.Strength = spec.Rocking.Strength
		rm.Speed = spec.Rocking.Speed
	}
}
