package system

import (
	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/component"
	"github.com/milk9111/gunturrets/logger"
)

// TurretAimSystem ticks every turret and reports flag changes as events.
type TurretAimSystem struct{}

func NewTurretAimSystem() *TurretAimSystem {
	return &TurretAimSystem{}
}

func (s *TurretAimSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaTime()
	ecs.ForEach(w, component.TurretAimComponent.Kind(), func(e ecs.Entity, ta *component.TurretAim) {
		if ta.Aim == nil || ta.Aim.Err() != nil {
			return
		}
		ta.Aim.Update(dt)
		emitTurretEvents(w, e, ta)
	})
}

func emitTurretEvents(w *ecs.World, e ecs.Entity, ta *component.TurretAim) {
	name := ta.Aim.Name()
	push := func(kind ecs.EventType) {
		w.Events().Push(ecs.Event{Type: kind, Entity: e, Data: name})
		logger.L().Debug("turret event", "name", name, "event", string(kind), "angle", ta.Aim.AngleToTarget())
	}

	if aimed := ta.Aim.IsAimed(); aimed != ta.WasAimed {
		ta.WasAimed = aimed
		if aimed {
			push(ecs.EventTurretAimed)
		} else {
			push(ecs.EventTurretUnaimed)
		}
	}

	if rest := ta.Aim.IsIdle() && ta.Aim.IsTurretAtRest(); rest != ta.WasAtRest {
		ta.WasAtRest = rest
		if rest {
			push(ecs.EventTurretAtRest)
		} else {
			push(ecs.EventTurretActive)
		}
	}
}
