package turret

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gunturrets/common"
)

// testNode is a minimal transform hierarchy used to drive Aim in tests.
type testNode struct {
	parent   *testNode
	localPos mgl64.Vec3
	localRot mgl64.Quat
}

func newTestNode(parent *testNode, pos mgl64.Vec3) *testNode {
	return &testNode{parent: parent, localPos: pos, localRot: mgl64.QuatIdent()}
}

func (n *testNode) Position() mgl64.Vec3 {
	if n.parent == nil {
		return n.localPos
	}
	return n.parent.Position().Add(n.parent.Rotation().Rotate(n.localPos))
}

func (n *testNode) Rotation() mgl64.Quat {
	if n.parent == nil {
		return n.localRot
	}
	return n.parent.Rotation().Mul(n.localRot).Normalize()
}

func (n *testNode) SetRotation(q mgl64.Quat) {
	if n.parent == nil {
		n.localRot = q
		return
	}
	n.localRot = n.parent.Rotation().Conjugate().Mul(q).Normalize()
}

func (n *testNode) LocalRotation() mgl64.Quat { return n.localRot }
func (n *testNode) SetLocalRotation(q mgl64.Quat) { n.localRot = q }
func (n *testNode) Forward() mgl64.Vec3 { return common.Forward(n.Rotation()) }
func (n *testNode) Up() mgl64.Vec3 { return common.Up(n.Rotation()) }
func (n *testNode) Right() mgl64.Vec3 { return common.Right(n.Rotation()) }

type testRig struct {
	root, base, barrels *testNode
}

// newTestRig places the root at the origin, the base on it and, when
// withBarrels is set, the barrels one unit above the base.
func newTestRig(withBarrels bool) testRig {
	root := newTestNode(nil, mgl64.Vec3{})
	base := newTestNode(root, mgl64.Vec3{})
	r := testRig{root: root, base: base}
	if withBarrels {
		r.barrels = newTestNode(base, mgl64.Vec3{0, 1, 0})
	}
	return r
}

func (r testRig) rig() Rig {
	rig := Rig{Root: r.root, Base: r.base}
	if r.barrels != nil {
		rig.Barrels = r.barrels
	}
	return rig
}

type recordedArc struct {
	angle float64
	kind  ArcKind
}

type recordingDrawer struct {
	rays int
	arcs []recordedArc
}

func (d *recordingDrawer) DrawRay(origin, dir mgl64.Vec3) { d.rays++ }

func (d *recordingDrawer) DrawSolidArc(center, normal, from mgl64.Vec3, angle, radius float64, kind ArcKind) {
	d.arcs = append(d.arcs, recordedArc{angle: angle, kind: kind})
}
