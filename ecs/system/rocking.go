package system

import (
	"math"

	"github.com/milk9111/gunturrets/common"
	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/component"
	"github.com/zeebo/xxh3"
)

// RockingSystem sways transforms with RockingMotion. Roll and pitch run at
// slightly different rates so the motion never repeats exactly.
type RockingSystem struct{}

func NewRockingSystem() *RockingSystem {
	return &RockingSystem{}
}

func (s *RockingSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	t := w.Elapsed()
	ecs.ForEach2(w, component.RockingMotionComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rm *component.RockingMotion, tr *component.Transform) {
		if !rm.HasOffset {
			rm.Offset = RockingPhase(entityName(w, e))
			rm.HasOffset = true
		}
		x := math.Sin(t*rm.Speed+rm.Offset) * rm.Strength
		z := math.Cos(t*rm.Speed*0.8+11+rm.Offset) * rm.Strength
		tr.Rotation = common.RollPitchRotation(x, z)
	})
}

// RockingPhase maps name onto a stable phase offset in [0, 1000).
func RockingPhase(name string) float64 {
	return float64(xxh3.HashString(name) % 1000)
}

func entityName(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
		return n.Value
	}
	return e.String()
}
