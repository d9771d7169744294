package system

import (
	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/component"
	"github.com/milk9111/gunturrets/turret"
)

// GizmoSystem hands a debug drawer to every turret and draws limit arcs for
// the ones that ask for them. It must run before TurretAimSystem for aim rays
// to land in the same frame.
type GizmoSystem struct {
	drawer turret.DebugDrawer
}

func NewGizmoSystem(drawer turret.DebugDrawer) *GizmoSystem {
	return &GizmoSystem{drawer: drawer}
}

// SetDrawer swaps the drawer. nil turns debug drawing off.
func (s *GizmoSystem) SetDrawer(drawer turret.DebugDrawer) {
	s.drawer = drawer
}

func (s *GizmoSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TurretAimComponent.Kind(), func(_ ecs.Entity, ta *component.TurretAim) {
		if ta.Aim == nil {
			return
		}
		if s.drawer == nil {
			ta.Aim.SetDebugDrawer(nil, false)
			return
		}
		ta.Aim.SetDebugDrawer(s.drawer, ta.DebugRay)
		if ta.DebugArcs {
			ta.Aim.DrawGizmos(s.drawer)
		}
	})
}
