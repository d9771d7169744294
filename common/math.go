package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the shortest vector length treated as a direction.
const Epsilon = 1e-6

var (
	AxisRight   = mgl64.Vec3{1, 0, 0}
	AxisUp      = mgl64.Vec3{0, 1, 0}
	AxisForward = mgl64.Vec3{0, 0, 1}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// MoveTowards steps current toward target by at most maxDelta without
// overshooting.
func MoveTowards(current, target, maxDelta float64) float64 {
	if maxDelta < 0 {
		maxDelta = 0
	}
	delta := target - current
	if math.Abs(delta) <= maxDelta {
		return target
	}
	return current + Sign(delta)*maxDelta
}

// ProjectOnPlane removes the component of v along normal.
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	sqr := normal.Dot(normal)
	if sqr < Epsilon*Epsilon {
		return v
	}
	return v.Sub(normal.Mul(v.Dot(normal) / sqr))
}

// Angle returns the unsigned angle in degrees between a and b. ok is false
// when either vector is too short to have a direction.
func Angle(a, b mgl64.Vec3) (float64, bool) {
	la, lb := a.Len(), b.Len()
	if la < Epsilon || lb < Epsilon {
		return 0, false
	}
	cos := Clamp(a.Dot(b)/(la*lb), -1, 1)
	return mgl64.RadToDeg(math.Acos(cos)), true
}

// SignedAngle returns the angle from -> to, negative when from x to points
// away from axis.
func SignedAngle(from, to, axis mgl64.Vec3) (float64, bool) {
	angle, ok := Angle(from, to)
	if !ok {
		return 0, false
	}
	if axis.Dot(from.Cross(to)) < 0 {
		angle = -angle
	}
	return angle, true
}

// Elevation returns the signed angle of v above the XZ plane in degrees.
func Elevation(v mgl64.Vec3) (float64, bool) {
	if v.Len() < Epsilon {
		return 0, false
	}
	horizontal := math.Hypot(v.X(), v.Z())
	return mgl64.RadToDeg(math.Atan2(v.Y(), horizontal)), true
}

// LookRotation builds the orientation whose forward axis is forward and
// whose up axis lies in the plane of forward and up.
func LookRotation(forward, up mgl64.Vec3) (mgl64.Quat, bool) {
	if forward.Len() < Epsilon {
		return mgl64.QuatIdent(), false
	}
	z := forward.Normalize()
	x := up.Cross(z)
	if x.Len() < Epsilon {
		return mgl64.QuatIdent(), false
	}
	x = x.Normalize()
	y := z.Cross(x)
	// column-major: the basis vectors are the columns
	m := mgl64.Mat3{x[0], x[1], x[2], y[0], y[1], y[2], z[0], z[1], z[2]}
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize(), true
}

// QuatAngle returns the smallest rotation in degrees taking a onto b.
func QuatAngle(a, b mgl64.Quat) float64 {
	d := a.Normalize().Conjugate().Mul(b.Normalize())
	return mgl64.RadToDeg(2 * math.Atan2(d.V.Len(), math.Abs(d.W)))
}

// RotateTowards rotates from toward to by at most maxDeg degrees along the
// short arc. It returns to exactly once it is within reach.
func RotateTowards(from, to mgl64.Quat, maxDeg float64) mgl64.Quat {
	angle := QuatAngle(from, to)
	if angle == 0 {
		return to
	}
	if maxDeg <= 0 {
		return from
	}
	if angle <= maxDeg {
		return to
	}
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, maxDeg/angle).Normalize()
}

func Forward(q mgl64.Quat) mgl64.Vec3 { return q.Rotate(AxisForward) }

func Up(q mgl64.Quat) mgl64.Vec3 { return q.Rotate(AxisUp) }

func Right(q mgl64.Quat) mgl64.Vec3 { return q.Rotate(AxisRight) }

// YawRotation rotates deg degrees about +Y; positive turns toward +X.
func YawRotation(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), AxisUp)
}

// PitchRotation encodes an elevation: positive deg lifts +Z toward +Y.
func PitchRotation(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(-deg), AxisRight)
}

// RollPitchRotation composes local euler angles x then z in degrees, applied
// z first.
func RollPitchRotation(x, z float64) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(x), AxisRight)
	qz := mgl64.QuatRotate(mgl64.DegToRad(z), AxisForward)
	return qx.Mul(qz)
}
