package system

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gunturrets/common"
	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/component"
	"github.com/milk9111/gunturrets/ecs/entity"
	"github.com/milk9111/gunturrets/prefabs"
	"github.com/milk9111/gunturrets/turret"
)

func newScheduler() *ecs.Scheduler {
	return ecs.NewScheduler(
		NewTargetScriptSystem(),
		NewTargetPhysicsSystem(),
		NewRockingSystem(),
		NewTurretControllerSystem(),
		NewTurretAimSystem(),
	)
}

func floatPtr(v float64) *float64 { return &v }

func buildPair(t *testing.T, w *ecs.World, target prefabs.TargetSpec) (*entity.Turret, ecs.Entity) {
	t.Helper()
	te, err := entity.BuildTarget(w, target)
	if err != nil {
		t.Fatal(err)
	}
	tur, err := entity.BuildTurret(w, prefabs.TurretSpec{
		Name:          "gun",
		Barrels:       &prefabs.Vec3Spec{0, 1, 0},
		TraverseSpeed: floatPtr(90),
	})
	if err != nil {
		t.Fatal(err)
	}
	ctrl := turret.NewController("gun", tur.Aim, ecs.EntityTarget{World: w, Entity: te})
	if err := ecs.Add(w, tur.Root, component.TurretControllerComponent.Kind(), &component.TurretController{Controller: ctrl}); err != nil {
		t.Fatal(err)
	}
	in := ecs.CreateEntity(w)
	if err := ecs.Add(w, in, component.InputComponent.Kind(), &component.Input{}); err != nil {
		t.Fatal(err)
	}
	return tur, te
}

func eventTypes(w *ecs.World) []ecs.EventType {
	var out []ecs.EventType
	for _, e := range w.Events().Peek() {
		out = append(out, e.Type)
	}
	return out
}

func TestTurretAimSystemEvents(t *testing.T) {
	w := ecs.NewWorld()
	tur, _ := buildPair(t, w, prefabs.TargetSpec{Name: "front", Position: prefabs.Vec3Spec{0, 1, 30}})
	s := newScheduler()

	s.Update(w, 0.1)
	if got := eventTypes(w); len(got) != 1 || got[0] != ecs.EventTurretAimed {
		t.Fatalf("first tick events=%v", got)
	}
	s.Update(w, 0.1)
	if got := eventTypes(w); len(got) != 0 {
		t.Fatalf("steady state should be quiet, got %v", got)
	}

	w.Events().Drain()
	in, _ := ecs.First(w, component.InputComponent.Kind())
	input, _ := ecs.Get(w, in, component.InputComponent.Kind())
	input.Toggle = true
	s.Update(w, 0.1)
	got := eventTypes(w)
	if len(got) != 2 || got[0] != ecs.EventTurretUnaimed || got[1] != ecs.EventTurretAtRest {
		t.Fatalf("toggle to idle events=%v", got)
	}
	if input.Toggle {
		t.Fatal("toggle should be consumed")
	}
	if !tur.Aim.IsIdle() {
		t.Fatal("turret should be idle after toggle")
	}

	input.Toggle = true
	s.Update(w, 0.1)
	got = eventTypes(w)
	if len(got) != 2 || got[0] != ecs.EventTurretAimed || got[1] != ecs.EventTurretActive {
		t.Fatalf("toggle back events=%v", got)
	}
	if ev := w.Events().Peek()[0]; ev.Entity != tur.Root || ev.Data != "gun" {
		t.Fatalf("event payload=%+v", ev)
	}
}

func TestTurretTracksPhysicsTarget(t *testing.T) {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(ecs.Bounds{MinX: -20, MinZ: -20, MaxX: 20, MaxZ: 20}))
	tur, te := buildPair(t, w, prefabs.TargetSpec{
		Name:     "drift",
		Position: prefabs.Vec3Spec{5, 1, 10},
		Body:     &prefabs.BodySpec{Velocity: [2]float64{3, 0}, Radius: 1},
	})
	s := newScheduler()

	for i := 0; i < 60; i++ {
		s.Update(w, 1.0/60.0)
	}
	tr, _ := ecs.Get(w, te, component.TransformComponent.Kind())
	if !near(tr.Position.X(), 8, 0.05) || tr.Position.Y() != 1 || !near(tr.Position.Z(), 10, 1e-6) {
		t.Fatalf("target at %v, want about (8, 1, 10)", tr.Position)
	}
	if tur.Aim.AimPosition() != tr.Position {
		t.Fatalf("aim position %v lags target %v", tur.Aim.AimPosition(), tr.Position)
	}

	for i := 0; i < 10; i++ {
		s.Update(w, 1.0/60.0)
	}
	if tur.Aim.AngleToTarget() > 10 {
		t.Fatalf("turret is not tracking, angle=%v", tur.Aim.AngleToTarget())
	}
}

func TestTargetScriptSystem(t *testing.T) {
	w := ecs.NewWorld()
	e, err := entity.BuildTarget(w, prefabs.TargetSpec{Name: "orbit", Script: "orbit.tengo"})
	if err != nil {
		t.Fatal(err)
	}
	s := ecs.NewScheduler(NewTargetScriptSystem())

	s.Update(w, 0.5)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	sc, _ := ecs.Get(w, e, component.TargetScriptComponent.Kind())
	if sc.Err != nil {
		t.Fatalf("script error: %v", sc.Err)
	}
	wantX := math.Sin(0.5*0.4) * 20
	if !near(tr.Position.X(), wantX, 1e-9) {
		t.Fatalf("x=%v want %v", tr.Position.X(), wantX)
	}
}

func TestTargetScriptStateAndPresence(t *testing.T) {
	w := ecs.NewWorld()
	e, err := entity.BuildTarget(w, prefabs.TargetSpec{Name: "blinker", Script: "blink.tengo"})
	if err != nil {
		t.Fatal(err)
	}
	s := ecs.NewScheduler(NewTargetScriptSystem())
	target, _ := ecs.Get(w, e, component.TargetComponent.Kind())
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())

	for i := 0; i < 30; i++ {
		s.Update(w, 0.1) // up to 3s: visible
	}
	if !target.Present {
		t.Fatal("blinker should be visible in its first four seconds")
	}
	if !near(tr.Position.X(), -10+3*1.5, 1e-6) {
		t.Fatalf("state did not persist, x=%v", tr.Position.X())
	}

	for i := 0; i < 15; i++ {
		s.Update(w, 0.1) // 4.5s: hidden
	}
	if target.Present {
		t.Fatal("blinker should be hidden between four and six seconds")
	}
}

func TestCompileTargetScriptGlobals(t *testing.T) {
	compiled, err := CompileTargetScript([]byte("x := 1"))
	if err != nil {
		t.Fatal(err)
	}
	for name, v := range map[string]any{
		"elapsed":  1.5,
		"dt":       0.1,
		"state":    map[string]any{},
		"position": []any{1.0, 2.0, 3.0},
		"present":  false,
	} {
		if err := compiled.Set(name, v); err != nil {
			t.Fatalf("Set(%q): %v", name, err)
		}
	}
}

func TestTargetScriptErrorStopsScript(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"compile", "position = [", "compile"},
		{"runtime", "f := 1\nposition = f()", "run"},
		{"bad_position", "position = [1, 2]", "three numbers"},
		{"bad_element", `position = [1, "a", 3]`, "three numbers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			_ = ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(0, mgl64.Vec3{7, 7, 7}))
			sc := &component.TargetScript{Path: tt.name, Source: []byte(tt.src)}
			_ = ecs.Add(w, e, component.TargetScriptComponent.Kind(), sc)

			s := ecs.NewScheduler(NewTargetScriptSystem())
			s.Update(w, 0.1)
			if sc.Err == nil || !strings.Contains(sc.Err.Error(), tt.want) {
				t.Fatalf("err=%v want %q", sc.Err, tt.want)
			}
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if tr.Position != (mgl64.Vec3{7, 7, 7}) {
				t.Fatalf("failed script moved the target to %v", tr.Position)
			}
			s.Update(w, 0.1)
		})
	}
}

func TestRockingSystem(t *testing.T) {
	w := ecs.NewWorld()
	named := ecs.CreateEntity(w)
	_ = ecs.Add(w, named, component.TransformComponent.Kind(), component.NewTransform(0, mgl64.Vec3{}))
	_ = ecs.Add(w, named, component.NameComponent.Kind(), &component.Name{Value: "boat"})
	rm := &component.RockingMotion{Strength: 5, Speed: 2}
	_ = ecs.Add(w, named, component.RockingMotionComponent.Kind(), rm)

	s := ecs.NewScheduler(NewRockingSystem())
	s.Update(w, 0.25)

	if !rm.HasOffset || rm.Offset != RockingPhase("boat") {
		t.Fatalf("offset=%v want %v", rm.Offset, RockingPhase("boat"))
	}
	tr, _ := ecs.Get(w, named, component.TransformComponent.Kind())
	x := math.Sin(0.25*2+rm.Offset) * 5
	z := math.Cos(0.25*2*0.8+11+rm.Offset) * 5
	if common.QuatAngle(tr.Rotation, common.RollPitchRotation(x, z)) > 1e-9 {
		t.Fatalf("rotation=%v", tr.Rotation)
	}
	// Yaw stays untouched.
	if yaw, ok := common.SignedAngle(common.AxisForward, common.ProjectOnPlane(common.Forward(tr.Rotation), common.AxisUp), common.AxisUp); ok && math.Abs(yaw) > 1 {
		t.Fatalf("rocking introduced yaw %v", yaw)
	}
}

func TestRockingPhase(t *testing.T) {
	a, b := RockingPhase("boat"), RockingPhase("boat")
	if a != b || a < 0 || a >= 1000 || a != math.Trunc(a) {
		t.Fatalf("phase=%v,%v", a, b)
	}
}

type countingDrawer struct {
	rays, arcs int
}

func (d *countingDrawer) DrawRay(origin, dir mgl64.Vec3) { d.rays++ }

func (d *countingDrawer) DrawSolidArc(center, normal, from mgl64.Vec3, angle, radius float64, kind turret.ArcKind) {
	d.arcs++
}

func TestGizmoSystem(t *testing.T) {
	w := ecs.NewWorld()
	tur, _ := buildPair(t, w, prefabs.TargetSpec{Name: "front", Position: prefabs.Vec3Spec{0, 1, 30}})
	ta, _ := ecs.Get(w, tur.Root, component.TurretAimComponent.Kind())
	ta.DebugRay = true
	ta.DebugArcs = true

	d := &countingDrawer{}
	gizmos := NewGizmoSystem(d)
	s := ecs.NewScheduler(NewTurretControllerSystem(), gizmos, NewTurretAimSystem())
	s.Update(w, 0.1)
	if d.arcs != 3 || d.rays != 1 {
		t.Fatalf("arcs=%d rays=%d want 3 and 1", d.arcs, d.rays)
	}

	gizmos.SetDrawer(nil)
	s.Update(w, 0.1)
	if d.arcs != 3 || d.rays != 1 {
		t.Fatalf("detached drawer still received geometry: arcs=%d rays=%d", d.arcs, d.rays)
	}
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
