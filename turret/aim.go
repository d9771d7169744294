package turret

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gunturrets/common"
	"github.com/milk9111/gunturrets/logger"
)

// IdleAngle is what AngleToTarget reports while the turret is idle.
const IdleAngle = 999.0

// restTolerance is how close to neutral, in degrees, an axis must be to count
// as at rest.
const restTolerance = 1e-4

var (
	ErrMissingBase = errors.New("turret: aim requires a base node")
	ErrMissingRoot = errors.New("turret: aim requires a root node")
)

// Aim rotates a base and optional barrels toward AimPosition at bounded
// speeds. It is driven by calling Update once per tick and is not safe for
// concurrent use.
type Aim struct {
	name string
	cfg  Config
	err  error

	root    Node
	base    Node
	barrels Node

	idle        bool
	aimPosition mgl64.Vec3

	elevation     float64
	traverse      float64
	angleToTarget float64

	aimed        bool
	baseAtRest   bool
	barrelAtRest bool

	drawer  DebugDrawer
	drawRay bool
}

// New builds an Aim with every angle at zero. A rig without a base or root
// is logged and yields an Aim whose Update does nothing.
func New(name string, cfg Config, rig Rig) *Aim {
	a := &Aim{
		name:          name,
		cfg:           cfg,
		root:          rig.Root,
		base:          rig.Base,
		barrels:       rig.Barrels,
		angleToTarget: IdleAngle,
	}

	log := logger.L().With("name", name)
	for _, w := range cfg.Validate() {
		log.Warn("turret config out of range", "warning", w)
	}
	switch {
	case a.base == nil:
		a.err = ErrMissingBase
	case a.root == nil:
		a.err = ErrMissingRoot
	}
	if a.err != nil {
		log.Error("turret disabled", "error", a.err)
	}
	return a
}

// Err reports the misconfiguration that disabled the turret, if any.
func (a *Aim) Err() error { return a.err }

// Name labels the turret in logs and events.
func (a *Aim) Name() string { return a.name }

func (a *Aim) Config() Config { return a.cfg }

// HasBarrels reports whether the rig has an elevation pivot.
func (a *Aim) HasBarrels() bool { return a.barrels != nil }

func (a *Aim) IsIdle() bool { return a.idle }

// SetIdle switches between aiming and returning to rest. The switch takes
// effect on the next Update.
func (a *Aim) SetIdle(idle bool) { a.idle = idle }

// AimPosition is the last point set with SetAimPosition.
func (a *Aim) AimPosition() mgl64.Vec3 { return a.aimPosition }

// SetAimPosition sets the world point aimed at while not idle.
func (a *Aim) SetAimPosition(p mgl64.Vec3) { a.aimPosition = p }

// IsAimed is true when the turret is active and within AimedThreshold of the
// target.
func (a *Aim) IsAimed() bool { return a.aimed }

// IsTurretAtRest is true once both axes have settled while idle.
func (a *Aim) IsTurretAtRest() bool { return a.baseAtRest && a.barrelAtRest }

// IsBaseAtRest is true once the base has returned to the root's heading
// while idle. Any active tick clears it.
func (a *Aim) IsBaseAtRest() bool { return a.baseAtRest }

// IsBarrelAtRest is true once the barrels are level while idle, and always
// after an idle tick for a rig without barrels.
func (a *Aim) IsBarrelAtRest() bool { return a.barrelAtRest }

// AngleToTarget is the last measured deviation from the target in degrees,
// or IdleAngle while idle.
func (a *Aim) AngleToTarget() float64 {
	if a.idle {
		return IdleAngle
	}
	return a.angleToTarget
}

// Elevation is the current barrel pitch relative to the base, positive up.
func (a *Aim) Elevation() float64 { return a.elevation }

// Traverse is the current base yaw relative to the root, positive right.
func (a *Aim) Traverse() float64 {
	if a.cfg.HasLimitedTraverse || a.err != nil {
		return a.traverse
	}
	return a.baseYaw()
}

// SetDebugDrawer attaches d for aim rays. Passing nil detaches it.
func (a *Aim) SetDebugDrawer(d DebugDrawer, drawRay bool) {
	a.drawer = d
	a.drawRay = drawRay
}

// Reconfigure swaps the limits at runtime. Current angles are clamped into
// the new ranges immediately.
func (a *Aim) Reconfigure(cfg Config) {
	for _, w := range cfg.Validate() {
		logger.L().Warn("turret config out of range", "name", a.name, "warning", w)
	}
	if cfg.HasLimitedTraverse && !a.cfg.HasLimitedTraverse && a.err == nil {
		a.traverse = a.baseYaw()
	}
	a.cfg = cfg
	if a.err != nil {
		return
	}

	a.elevation = common.Clamp(a.elevation, -cfg.MaxDepression, cfg.MaxElevation)
	if a.barrels != nil {
		a.barrels.SetLocalRotation(common.PitchRotation(a.elevation))
	}
	if cfg.HasLimitedTraverse {
		a.traverse = common.Clamp(a.traverse, -cfg.LeftLimit, cfg.RightLimit)
		a.base.SetLocalRotation(common.YawRotation(a.traverse))
	}
}

// Update advances the turret by dt seconds.
func (a *Aim) Update(dt float64) {
	if a.err != nil {
		return
	}
	if dt < 0 {
		dt = 0
	}

	if a.idle {
		if !a.IsTurretAtRest() {
			a.rotateToIdle(dt)
		}
		a.aimed = false
		return
	}

	a.baseAtRest = false
	a.barrelAtRest = false

	a.rotateBase(dt)
	if a.barrels != nil {
		a.rotateBarrels(dt)
	}

	if angle, ok := a.measureAngle(); ok {
		a.angleToTarget = angle
	}
	a.aimed = a.angleToTarget < a.cfg.AimedThreshold
}

func (a *Aim) rotateBase(dt float64) {
	up := a.root.Up()
	flat := common.ProjectOnPlane(a.aimPosition.Sub(a.base.Position()), up)
	if flat.Len() < common.Epsilon {
		return
	}
	step := a.cfg.TraverseSpeed * dt

	if a.cfg.HasLimitedTraverse {
		target, ok := common.SignedAngle(a.root.Forward(), flat, up)
		if !ok {
			return
		}
		target = common.Clamp(target, -a.cfg.LeftLimit, a.cfg.RightLimit)
		a.traverse = common.MoveTowards(a.traverse, target, step)
		a.base.SetLocalRotation(common.YawRotation(a.traverse))
	} else {
		from, ok := common.LookRotation(a.base.Forward(), up)
		if !ok {
			from = a.base.Rotation()
		}
		to, _ := common.LookRotation(flat, up)
		a.base.SetRotation(common.RotateTowards(from, to, step))
	}

	if a.drawer != nil && a.drawRay && a.barrels == nil {
		a.drawer.DrawRay(a.base.Position(), a.base.Forward().Mul(flat.Len()))
	}
}

func (a *Aim) rotateBarrels(dt float64) {
	local := a.base.Rotation().Conjugate().Rotate(a.aimPosition.Sub(a.barrels.Position()))
	target, ok := common.Elevation(local)
	if !ok {
		return
	}
	target = common.Clamp(target, -a.cfg.MaxDepression, a.cfg.MaxElevation)
	a.elevation = common.MoveTowards(a.elevation, target, a.cfg.ElevationSpeed*dt)
	a.barrels.SetLocalRotation(common.PitchRotation(a.elevation))

	if a.drawer != nil && a.drawRay {
		a.drawer.DrawRay(a.barrels.Position(), a.barrels.Forward().Mul(local.Len()))
	}
}

func (a *Aim) measureAngle() (float64, bool) {
	if a.barrels != nil {
		return common.Angle(a.aimPosition.Sub(a.barrels.Position()), a.barrels.Forward())
	}
	flat := common.ProjectOnPlane(a.aimPosition.Sub(a.base.Position()), a.base.Up())
	return common.Angle(flat, a.base.Forward())
}

func (a *Aim) rotateToIdle(dt float64) {
	step := a.cfg.TraverseSpeed * dt
	if a.cfg.HasLimitedTraverse {
		a.traverse = common.MoveTowards(a.traverse, 0, step)
		a.base.SetLocalRotation(common.YawRotation(a.traverse))
		a.baseAtRest = math.Abs(a.traverse) < restTolerance
	} else {
		a.base.SetRotation(common.RotateTowards(a.base.Rotation(), a.root.Rotation(), step))
		a.baseAtRest = math.Abs(a.baseYaw()) < restTolerance
	}

	if a.barrels == nil {
		a.barrelAtRest = true
		return
	}
	a.elevation = common.MoveTowards(a.elevation, 0, a.cfg.ElevationSpeed*dt)
	a.barrels.SetLocalRotation(common.PitchRotation(a.elevation))
	a.barrelAtRest = math.Abs(a.elevation) < restTolerance
}

// baseYaw measures the base's yaw against the root's forward around the
// root's up axis.
func (a *Aim) baseYaw() float64 {
	up := a.root.Up()
	fwd := common.ProjectOnPlane(a.base.Forward(), up)
	yaw, ok := common.SignedAngle(a.root.Forward(), fwd, up)
	if !ok {
		return 0
	}
	return yaw
}
