package turret

import "github.com/go-gl/mathgl/mgl64"

type ArcKind int

const (
	ArcTraverse ArcKind = iota
	ArcElevation
	ArcDepression
)

func (k ArcKind) String() string {
	switch k {
	case ArcTraverse:
		return "traverse"
	case ArcElevation:
		return "elevation"
	case ArcDepression:
		return "depression"
	default:
		return "unknown"
	}
}

// GizmoArcRadius is the radius of the limit sectors drawn by DrawGizmos.
const GizmoArcRadius = 10.0

// DebugDrawer receives debug geometry in world space. DrawSolidArc sweeps
// angle degrees from the direction from around normal.
type DebugDrawer interface {
	DrawRay(origin, dir mgl64.Vec3)
	DrawSolidArc(center, normal, from mgl64.Vec3, angle, radius float64, kind ArcKind)
}

// DrawGizmos draws the traverse sector and, with barrels, the elevation and
// depression sectors.
func (a *Aim) DrawGizmos(d DebugDrawer) {
	if d == nil || a.base == nil || a.root == nil {
		return
	}

	arcRoot := a.base
	if a.barrels != nil {
		arcRoot = a.barrels
	}

	if a.cfg.HasLimitedTraverse {
		d.DrawSolidArc(arcRoot.Position(), a.base.Up(), a.root.Forward(), a.cfg.RightLimit, GizmoArcRadius, ArcTraverse)
		d.DrawSolidArc(arcRoot.Position(), a.base.Up(), a.root.Forward(), -a.cfg.LeftLimit, GizmoArcRadius, ArcTraverse)
	} else {
		d.DrawSolidArc(arcRoot.Position(), a.base.Up(), a.root.Forward(), 360, GizmoArcRadius, ArcTraverse)
	}

	if a.barrels == nil {
		return
	}
	d.DrawSolidArc(a.barrels.Position(), a.barrels.Right(), a.base.Forward(), -a.cfg.MaxElevation, GizmoArcRadius, ArcElevation)
	d.DrawSolidArc(a.barrels.Position(), a.barrels.Right(), a.base.Forward(), a.cfg.MaxDepression, GizmoArcRadius, ArcDepression)
}
