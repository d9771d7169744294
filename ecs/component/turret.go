package component

import "github.com/milk9111/gunturrets/turret"

// TurretAim attaches an aiming state machine to the turret's root entity.
type TurretAim struct {
	Aim *turret.Aim

	Root    uint64
	Base    uint64
	Barrels uint64

	DebugRay  bool
	DebugArcs bool

	// Flags as of the last emitted events.
	WasAimed  bool
	WasAtRest bool
}

var TurretAimComponent = NewComponent[TurretAim]()

// TurretController binds a turret to a target entity. Target is 0 when the
// named target does not exist.
type TurretController struct {
	Controller *turret.Controller
	Turret     uint64
	Target     uint64
	TargetName string
}

var TurretControllerComponent = NewComponent[TurretController]()
