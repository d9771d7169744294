package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tol = 1e-9

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestMoveTowards(t *testing.T) {
	cases := []struct {
		name                      string
		current, target, maxDelta float64
		want                      float64
	}{
		{"step_up", 0, 10, 3, 3},
		{"step_down", 0, -10, 3, -3},
		{"reach_exact", 9, 10, 3, 10},
		{"no_overshoot", 9.5, 10, 100, 10},
		{"zero_step_holds", 4, 10, 0, 4},
		{"negative_step_holds", 4, 10, -2, 4},
		{"already_there", 5, 5, 1, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := MoveTowards(c.current, c.target, c.maxDelta)
			if got != c.want {
				t.Fatalf("MoveTowards(%v,%v,%v)=%v want %v", c.current, c.target, c.maxDelta, got, c.want)
			}
		})
	}
}

func TestClampAndSign(t *testing.T) {
	if got := Clamp(-10, -5, 60); got != -5 {
		t.Fatalf("Clamp low=%v want -5", got)
	}
	if got := Clamp(80, -5, 60); got != 60 {
		t.Fatalf("Clamp high=%v want 60", got)
	}
	if got := Clamp(12, -5, 60); got != 12 {
		t.Fatalf("Clamp mid=%v want 12", got)
	}
	if Sign(0) != 1 || Sign(2) != 1 || Sign(-0.1) != -1 {
		t.Fatalf("unexpected Sign results")
	}
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Fatalf("Lerp=%v want 3", got)
	}
}

func TestProjectOnPlane(t *testing.T) {
	got := ProjectOnPlane(mgl64.Vec3{3, 4, 5}, AxisUp)
	if !got.ApproxEqualThreshold(mgl64.Vec3{3, 0, 5}, tol) {
		t.Fatalf("ProjectOnPlane=%v want [3 0 5]", got)
	}
	got = ProjectOnPlane(mgl64.Vec3{3, 4, 5}, mgl64.Vec3{0, 2, 0})
	if !got.ApproxEqualThreshold(mgl64.Vec3{3, 0, 5}, tol) {
		t.Fatalf("ProjectOnPlane with non-unit normal=%v", got)
	}
	got = ProjectOnPlane(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{})
	if got != (mgl64.Vec3{1, 2, 3}) {
		t.Fatalf("zero normal should return input, got %v", got)
	}
}

func TestAngles(t *testing.T) {
	angle, ok := Angle(AxisForward, AxisRight)
	if !ok || !approx(angle, 90, tol) {
		t.Fatalf("Angle(fwd,right)=%v,%v want 90", angle, ok)
	}
	if _, ok := Angle(mgl64.Vec3{}, AxisRight); ok {
		t.Fatalf("Angle with zero vector should not be ok")
	}

	signed, ok := SignedAngle(AxisForward, AxisRight, AxisUp)
	if !ok || !approx(signed, 90, tol) {
		t.Fatalf("SignedAngle toward +X=%v want 90", signed)
	}
	signed, _ = SignedAngle(AxisForward, mgl64.Vec3{-1, 0, 0}, AxisUp)
	if !approx(signed, -90, tol) {
		t.Fatalf("SignedAngle toward -X=%v want -90", signed)
	}

	elev, ok := Elevation(mgl64.Vec3{0, 1, 1})
	if !ok || !approx(elev, 45, tol) {
		t.Fatalf("Elevation=%v want 45", elev)
	}
	elev, _ = Elevation(mgl64.Vec3{0, 3, 0})
	if !approx(elev, 90, tol) {
		t.Fatalf("Elevation straight up=%v want 90", elev)
	}
	if _, ok := Elevation(mgl64.Vec3{}); ok {
		t.Fatalf("Elevation of zero vector should not be ok")
	}
}

func TestRotationHelpers(t *testing.T) {
	fwd := Forward(YawRotation(90))
	if !fwd.ApproxEqualThreshold(AxisRight, 1e-9) {
		t.Fatalf("yaw 90 forward=%v want +X", fwd)
	}
	fwd = Forward(PitchRotation(90))
	if !fwd.ApproxEqualThreshold(AxisUp, 1e-9) {
		t.Fatalf("pitch 90 forward=%v want +Y", fwd)
	}
	if up := Up(mgl64.QuatIdent()); up != AxisUp {
		t.Fatalf("identity up=%v", up)
	}
	if r := Right(YawRotation(90)); !r.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-9) {
		t.Fatalf("yaw 90 right=%v want -Z", r)
	}
}

func TestLookRotation(t *testing.T) {
	q, ok := LookRotation(mgl64.Vec3{1, 0, 1}, AxisUp)
	if !ok {
		t.Fatalf("LookRotation should succeed")
	}
	fwd := Forward(q)
	want := mgl64.Vec3{1, 0, 1}.Normalize()
	if !fwd.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("LookRotation forward=%v want %v", fwd, want)
	}
	if !Up(q).ApproxEqualThreshold(AxisUp, 1e-9) {
		t.Fatalf("LookRotation up=%v want +Y", Up(q))
	}
	if _, ok := LookRotation(AxisUp, AxisUp); ok {
		t.Fatalf("forward parallel to up should be degenerate")
	}
	if _, ok := LookRotation(mgl64.Vec3{}, AxisUp); ok {
		t.Fatalf("zero forward should be degenerate")
	}
}

func TestRotateTowards(t *testing.T) {
	from := mgl64.QuatIdent()
	to := YawRotation(90)

	step := RotateTowards(from, to, 30)
	if got := QuatAngle(from, step); !approx(got, 30, 1e-6) {
		t.Fatalf("step angle=%v want 30", got)
	}
	if got := QuatAngle(step, to); !approx(got, 60, 1e-6) {
		t.Fatalf("remaining angle=%v want 60", got)
	}

	if got := RotateTowards(from, to, 90); got != to {
		t.Fatalf("within reach should return target exactly")
	}
	if got := RotateTowards(from, to, 0); got != from {
		t.Fatalf("zero step should hold")
	}

	// Short arc: 350 degrees one way is 10 the other.
	far := YawRotation(350)
	step = RotateTowards(from, far, 5)
	yaw, _ := SignedAngle(AxisForward, Forward(step), AxisUp)
	if !approx(yaw, -5, 1e-6) {
		t.Fatalf("short arc yaw=%v want -5", yaw)
	}
}

func TestQuatAngleDoubleCover(t *testing.T) {
	q := YawRotation(40)
	neg := q.Scale(-1)
	if got := QuatAngle(q, neg); !approx(got, 0, 1e-6) {
		t.Fatalf("q and -q should be the same orientation, got %v", got)
	}
}

func TestRollPitchRotation(t *testing.T) {
	q := RollPitchRotation(0, 0)
	if QuatAngle(q, mgl64.QuatIdent()) > 1e-9 {
		t.Fatalf("zero euler should be identity")
	}
	q = RollPitchRotation(10, 0)
	if got := QuatAngle(q, mgl64.QuatIdent()); !approx(got, 10, 1e-6) {
		t.Fatalf("x-only euler angle=%v want 10", got)
	}
}
