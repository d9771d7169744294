package system

import (
	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/component"
)

// TurretControllerSystem polls each controller's target and applies the
// tick's toggle request to every controlled turret.
type TurretControllerSystem struct{}

func NewTurretControllerSystem() *TurretControllerSystem {
	return &TurretControllerSystem{}
}

func (s *TurretControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	toggle := false
	if e, ok := ecs.First(w, component.InputComponent.Kind()); ok {
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			toggle = in.Toggle
			in.Toggle = false
		}
	}

	ecs.ForEach(w, component.TurretControllerComponent.Kind(), func(_ ecs.Entity, tc *component.TurretController) {
		if tc.Controller == nil {
			return
		}
		tc.Controller.Update(toggle)
	})
}
