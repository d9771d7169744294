package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/component"
	"github.com/milk9111/gunturrets/prefabs"
)

var errNoPhysics = errors.New("entity: physics target needs a scene arena")

// BuildTarget creates a target entity. A script or a body, when given, moves
// it; otherwise it stays where the prefab puts it.
func BuildTarget(w *ecs.World, spec prefabs.TargetSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, errNilWorld
	}

	pos := spec.Position.Vec3()
	e := ecs.CreateEntity(w)
	adders := []componentAdder{
		add(component.TransformComponent, component.NewTransform(0, pos)),
		add(component.NameComponent, &component.Name{Value: spec.Name}),
		add(component.TargetComponent, &component.Target{Present: spec.IsPresent()}),
	}

	if spec.Script != "" {
		src, err := prefabs.LoadScript(spec.Script)
		if err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("entity: build target %s: load script %s: %w", spec.Name, spec.Script, err)
		}
		adders = append(adders, add(component.TargetScriptComponent, &component.TargetScript{Path: spec.Script, Source: src}))
	}

	if spec.Body != nil {
		pw := w.PhysicsWorld()
		if pw == nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("entity: build target %s: %w", spec.Name, errNoPhysics)
		}
		body, shape := pw.AddDisc(pos.X(), pos.Z(), spec.Body.Velocity[0], spec.Body.Velocity[1], spec.Body.Radius)
		adders = append(adders, add(component.TargetBodyComponent, &component.TargetBody{
			Body:   body,
			Shape:  shape,
			Radius: spec.Body.Radius,
			Height: pos.Y(),
		}))
	}

	if err := addAll(w, e, adders...); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("entity: build target %s: %w", spec.Name, err)
	}
	return e, nil
}
