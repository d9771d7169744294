package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/component"
)

// TargetPhysicsSystem steps the world's physics and copies body positions
// onto target transforms.
type TargetPhysicsSystem struct{}

func NewTargetPhysicsSystem() *TargetPhysicsSystem {
	return &TargetPhysicsSystem{}
}

func (s *TargetPhysicsSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	pw.Step(w.DeltaTime())

	ecs.ForEach2(w, component.TargetBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, body *component.TargetBody, tr *component.Transform) {
		if body.Body == nil {
			return
		}
		p := body.Body.Position()
		tr.Position = mgl64.Vec3{p.X, body.Height, p.Y}
	})
}
