package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/component"
)

var mgl64Zero = mgl64.Vec3{}

type componentAdder func(w *ecs.World, e ecs.Entity) error

func add[T any](handle component.ComponentHandle[T], value *T) componentAdder {
	return func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, handle.Kind(), value)
	}
}

func addAll(w *ecs.World, e ecs.Entity, adders ...componentAdder) error {
	for _, a := range adders {
		if err := a(w, e); err != nil {
			return err
		}
	}
	return nil
}
